package resource

import (
	"github.com/nvellon/hal"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/governance"
)

type Chronicle struct {
	c *governance.Chronicle
}

func NewChronicle(c *governance.Chronicle) *Chronicle {
	return &Chronicle{
		c: c,
	}
}

func (c Chronicle) GetMap() hal.Entry {
	return hal.Entry{
		"guardian":                   c.c.Guardian,
		"network_id":                 c.c.NetworkID,
		"total_initiatives":          c.c.TotalInitiatives,
		"standard_deliberation_span": c.c.StandardDeliberationSpan,
		"latest_sequence":            c.c.LatestSequence,
		"confirmed":                  c.c.Confirmed,
	}
}

func (c Chronicle) Resource() *hal.Resource {
	r := hal.NewResource(c, c.LinkSelf())
	r.AddLink("initiatives", hal.NewLink(URLInitiatives+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	return r
}

func (c Chronicle) LinkSelf() string {
	return URLLedger
}

func (c Chronicle) MarshalJSON() ([]byte, error) {
	r := c.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}
