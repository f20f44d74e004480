package node

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/keypair"
)

func TestNodeMakeAlias(t *testing.T) {
	kp := keypair.Random()
	alias := MakeAlias(kp.Address())
	require.Equal(t, 9, len(alias))
	require.Equal(t, kp.Address()[:4], alias[:4])
}

func TestLocalNodeDefaultAlias(t *testing.T) {
	kp := keypair.Random()
	endpoint := &common.Endpoint{Scheme: "memory", Host: "unittests"}

	localNode, err := NewLocalNode(kp, endpoint, "")
	require.NoError(t, err)
	require.Equal(t, MakeAlias(kp.Address()), localNode.Alias())
	require.Equal(t, StateBOOTING, localNode.State())
}

func TestLocalNodePublishEndpoint(t *testing.T) {
	localNode := NewTestLocalNode0()
	require.Equal(t, localNode.BindEndpoint(), localNode.Endpoint())

	publish := &common.Endpoint{Scheme: "https", Host: "agora.example.com"}
	localNode.SetPublishEndpoint(publish)
	require.Equal(t, publish, localNode.Endpoint())
}

func TestNodeStateJSON(t *testing.T) {
	b, err := StateRUNNING.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"RUNNING"`, string(b))

	var s State
	require.NoError(t, s.UnmarshalJSON(b))
	require.Equal(t, StateRUNNING, s)
}
