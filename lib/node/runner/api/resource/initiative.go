package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/governance"
)

type Initiative struct {
	status *governance.InitiativeStatus
}

func NewInitiative(status *governance.InitiativeStatus) *Initiative {
	i := &Initiative{
		status: status,
	}
	return i
}

func (i Initiative) GetMap() hal.Entry {
	in := i.status.Initiative
	return hal.Entry{
		"id":                in.ID,
		"title":             in.Title,
		"summary":           in.Summary,
		"consensus_tally":   in.ConsensusTally,
		"active":            in.Active,
		"author":            in.Author,
		"genesis_sequence":  in.GenesisSequence,
		"deliberation_span": in.DeliberationSpan,
		"expiry_sequence":   in.ExpirySequence(),
		"is_active":         i.status.IsActive,
		"remaining":         i.status.Remaining,
		"hash":              in.Hash,
		"confirmed":         in.Confirmed,
	}
}

func (i Initiative) Resource() *hal.Resource {
	id := strconv.FormatUint(i.status.Initiative.ID, 10)

	r := hal.NewResource(i, i.LinkSelf())
	r.AddLink("signals", hal.NewLink(strings.Replace(URLInitiativeSignals, "{id}", id, -1)))
	r.AddLink("participations", hal.NewLink(strings.Replace(URLInitiativeParticipations, "{id}", id, -1)+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	return r
}

func (i Initiative) LinkSelf() string {
	id := strconv.FormatUint(i.status.Initiative.ID, 10)
	return strings.Replace(URLInitiative, "{id}", id, -1)
}

func (i Initiative) MarshalJSON() ([]byte, error) {
	r := i.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}
