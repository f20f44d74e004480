package api

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/common/keypair"
	"agoranet.io/agora/lib/governance"
)

func TestAPIPostInitiative(t *testing.T) {
	ts, ledger, kp := prepareAPIServer()
	defer ts.Close()

	m := governance.NewProposal(kp.Address(), "Upgrade", "Add feature", 0)
	m.Sign(kp, networkID)

	status, payload := requestJSON(ts, "POST", "/v1/initiatives", m)
	require.Equal(t, 200, status)
	require.Equal(t, float64(1), payload["id"])
	require.Equal(t, "Upgrade", payload["title"])
	require.Equal(t, true, payload["is_active"])
	require.Equal(t, uint64(1), ledger.Total())
}

func TestAPIPostInitiativeUnauthorized(t *testing.T) {
	ts, ledger, _ := prepareAPIServer()
	defer ts.Close()

	stranger := keypair.Random()
	m := governance.NewProposal(stranger.Address(), "Upgrade", "Add feature", 0)
	m.Sign(stranger, networkID)

	status, _ := requestJSON(ts, "POST", "/v1/initiatives", m)
	require.Equal(t, 403, status)
	require.Equal(t, uint64(0), ledger.Total())
}

func TestAPIPostInitiativeBadSignature(t *testing.T) {
	ts, _, kp := prepareAPIServer()
	defer ts.Close()

	// signed by someone other than the source
	m := governance.NewProposal(kp.Address(), "Upgrade", "Add feature", 0)
	m.Sign(keypair.Random(), networkID)

	status, _ := requestJSON(ts, "POST", "/v1/initiatives", m)
	require.Equal(t, 400, status)
}

func TestAPIGetInitiative(t *testing.T) {
	ts, ledger, kp := prepareAPIServer()
	defer ts.Close()

	id, err := ledger.Create("Upgrade", "Add feature", governance.MinDeliberationSpan, kp.Address(), 0)
	require.NoError(t, err)

	status, payload := getJSON(ts, "/v1/initiatives/1")
	require.Equal(t, 200, status)
	require.Equal(t, float64(id), payload["id"])
	require.Equal(t, float64(governance.MinDeliberationSpan), payload["remaining"])
	require.Equal(t, true, payload["is_active"])

	status, _ = getJSON(ts, "/v1/initiatives/99")
	require.Equal(t, 404, status)

	status, _ = getJSON(ts, "/v1/initiatives/not-a-number")
	require.Equal(t, 400, status)
}

func TestAPIGetInitiatives(t *testing.T) {
	ts, ledger, kp := prepareAPIServer()
	defer ts.Close()

	for i := 0; i < 3; i++ {
		_, err := ledger.Create("title", "summary", 0, kp.Address(), 0)
		require.NoError(t, err)
	}

	status, payload := getJSON(ts, "/v1/initiatives?limit=2")
	require.Equal(t, 200, status)

	records := payload["_embedded"].(map[string]interface{})["records"].([]interface{})
	require.Equal(t, 2, len(records))
	require.Equal(t, float64(1), records[0].(map[string]interface{})["id"])
	require.Equal(t, float64(2), records[1].(map[string]interface{})["id"])

	links := payload["_links"].(map[string]interface{})
	require.NotEmpty(t, links["next"].(map[string]interface{})["href"])
}

func TestAPIPostSignal(t *testing.T) {
	ts, ledger, kp := prepareAPIServer()
	defer ts.Close()

	id, err := ledger.Create("title", "summary", 0, kp.Address(), 0)
	require.NoError(t, err)

	participant := keypair.Random()
	m := governance.NewSignal(participant.Address(), id)
	m.Sign(participant, networkID)

	status, payload := requestJSON(ts, "POST", "/v1/initiatives/1/signals", m)
	require.Equal(t, 200, status)
	require.Equal(t, true, payload["participated"])
	require.Equal(t, participant.Address(), payload["address"])
	require.True(t, ledger.HasSignaled(participant.Address(), id))

	// a second signal from the same participant conflicts
	status, _ = requestJSON(ts, "POST", "/v1/initiatives/1/signals", m)
	require.Equal(t, 409, status)

	// body id and url id must agree
	status, _ = requestJSON(ts, "POST", "/v1/initiatives/2/signals", m)
	require.Equal(t, 400, status)
}

func TestAPIGetParticipation(t *testing.T) {
	ts, ledger, kp := prepareAPIServer()
	defer ts.Close()

	id, err := ledger.Create("title", "summary", 0, kp.Address(), 0)
	require.NoError(t, err)

	participant := keypair.Random().Address()

	status, payload := getJSON(ts, "/v1/initiatives/1/participations/"+participant)
	require.Equal(t, 200, status)
	require.Equal(t, false, payload["participated"])

	require.NoError(t, ledger.Signal(id, participant, 0))

	status, payload = getJSON(ts, "/v1/initiatives/1/participations/"+participant)
	require.Equal(t, 200, status)
	require.Equal(t, true, payload["participated"])

	status, _ = getJSON(ts, "/v1/initiatives/99/participations/"+participant)
	require.Equal(t, 404, status)
}

func TestAPIPostTerminate(t *testing.T) {
	ts, ledger, kp := prepareAPIServer()
	defer ts.Close()

	id, err := ledger.Create("title", "summary", 0, kp.Address(), 0)
	require.NoError(t, err)

	stranger := keypair.Random()
	m := governance.NewTermination(stranger.Address(), id)
	m.Sign(stranger, networkID)
	status, _ := requestJSON(ts, "POST", "/v1/initiatives/1/terminate", m)
	require.Equal(t, 403, status)
	require.True(t, ledger.IsActive(id, 0))

	m = governance.NewTermination(kp.Address(), id)
	m.Sign(kp, networkID)
	status, payload := requestJSON(ts, "POST", "/v1/initiatives/1/terminate", m)
	require.Equal(t, 200, status)
	require.Equal(t, false, payload["is_active"])
	require.False(t, ledger.IsActive(id, 0))
}
