package resource

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/keypair"
	"agoranet.io/agora/lib/governance"
)

func TestResourceInitiative(t *testing.T) {
	author := keypair.Random().Address()
	in := governance.NewInitiative(3, "pave the agora", "replace the gravel", author, 100, governance.MinDeliberationSpan)

	ri := NewInitiative(&governance.InitiativeStatus{
		Initiative: in,
		IsActive:   true,
		Remaining:  int64(governance.MinDeliberationSpan),
	})
	r := ri.Resource()
	j, _ := json.MarshalIndent(r, "", " ")

	var f interface{}
	common.MustUnmarshalJSON(j, &f)
	m := f.(map[string]interface{})
	require.Equal(t, in.Title, m["title"])
	require.Equal(t, in.Author, m["author"])
	require.Equal(t, in.ID, uint64(m["id"].(float64)))
	require.Equal(t, true, m["is_active"])
	require.Equal(t, in.Hash, m["hash"])

	l := m["_links"].(map[string]interface{})
	require.Equal(t, strings.Replace(URLInitiative, "{id}", "3", -1), l["self"].(map[string]interface{})["href"])
}

func TestResourceParticipation(t *testing.T) {
	address := keypair.Random().Address()
	p := governance.NewParticipation(7, address, 500)

	rp := NewParticipation(p)
	j, _ := json.MarshalIndent(rp.Resource(), "", " ")

	var f interface{}
	common.MustUnmarshalJSON(j, &f)
	m := f.(map[string]interface{})
	require.Equal(t, address, m["address"])
	require.Equal(t, true, m["participated"])
	require.Equal(t, p.InitiativeID, uint64(m["initiative_id"].(float64)))

	l := m["_links"].(map[string]interface{})
	self := l["self"].(map[string]interface{})["href"].(string)
	require.True(t, strings.Contains(self, "/initiatives/7/participations/"+address))
}

func TestResourceChronicle(t *testing.T) {
	guardian := keypair.Random().Address()
	c := governance.NewChronicle(guardian, "agora-test-network")

	rc := NewChronicle(c)
	j, _ := json.MarshalIndent(rc.Resource(), "", " ")

	var f interface{}
	common.MustUnmarshalJSON(j, &f)
	m := f.(map[string]interface{})
	require.Equal(t, guardian, m["guardian"])
	require.Equal(t, "agora-test-network", m["network_id"])

	l := m["_links"].(map[string]interface{})
	require.Equal(t, URLLedger, l["self"].(map[string]interface{})["href"])
}
