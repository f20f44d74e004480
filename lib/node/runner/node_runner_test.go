package runner

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/keypair"
	"agoranet.io/agora/lib/governance"
	"agoranet.io/agora/lib/node"
	"agoranet.io/agora/lib/storage"
)

var networkID []byte = []byte("agora-test-network")

func prepareNodeRunner(t *testing.T) (*NodeRunner, *keypair.Full) {
	st := storage.NewTestStorage()
	kp := keypair.Random()

	_, err := governance.MakeGenesisChronicle(st, kp.Address(), string(networkID))
	require.NoError(t, err)

	conf := common.NewConfig(networkID)
	localNode := node.NewTestLocalNode(kp, &common.Endpoint{Scheme: "http", Host: "localhost:0"})

	nr, err := NewNodeRunner(localNode, governance.NewLedger(st), st, conf)
	require.NoError(t, err)

	return nr, kp
}

func TestNodeRunnerReadyRoutes(t *testing.T) {
	nr, _ := prepareNodeRunner(t)
	require.NoError(t, nr.Ready())

	ts := httptest.NewServer(nr.Router())
	defer ts.Close()

	{ // node info from the root path
		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	{ // chronicle through the full middleware stack
		resp, err := http.Get(ts.URL + "/v1/ledger")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	{ // prometheus endpoint
		resp, err := http.Get(ts.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	{ // mutating routes refuse bodies without the json content type
		resp, err := http.Post(ts.URL+"/v1/initiatives", "text/plain", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.NotEqual(t, http.StatusOK, resp.StatusCode)
	}
}

func TestNodeRunnerNodeInfo(t *testing.T) {
	nr, kp := prepareNodeRunner(t)

	info := NewNodeInfo(nr)
	require.Equal(t, kp.Address(), info.Node.Address)
	require.Equal(t, string(networkID), info.Policy.NetworkID)
	require.Equal(t, governance.MinDeliberationSpan, info.Policy.MinDeliberationSpan)
	require.Equal(t, kp.Address(), info.Ledger.Guardian)
	require.Equal(t, governance.MinDeliberationSpan, info.Ledger.StandardDeliberationSpan)
}

func TestNodeRunnerHeightTicker(t *testing.T) {
	nr, _ := prepareNodeRunner(t)
	nr.Conf.BlockTime = 10 * time.Millisecond

	go nr.startHeightTicker()
	defer close(nr.stopTicker)

	var advanced bool
	for i := 0; i < 100; i++ {
		if nr.Ledger().LatestSequence() > 2 {
			advanced = true
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, advanced)
}
