package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/governance"
)

type Participation struct {
	p *governance.Participation
}

func NewParticipation(p *governance.Participation) *Participation {
	return &Participation{
		p: p,
	}
}

func (p Participation) GetMap() hal.Entry {
	return hal.Entry{
		"initiative_id":          p.p.InitiativeID,
		"address":                p.p.Address,
		"participated":           p.p.Participated,
		"participation_sequence": p.p.ParticipationSequence,
		"confirmed":              p.p.Confirmed,
	}
}

func (p Participation) Resource() *hal.Resource {
	id := strconv.FormatUint(p.p.InitiativeID, 10)

	r := hal.NewResource(p, p.LinkSelf())
	r.AddLink("initiative", hal.NewLink(strings.Replace(URLInitiative, "{id}", id, -1)))
	return r
}

func (p Participation) LinkSelf() string {
	id := strconv.FormatUint(p.p.InitiativeID, 10)
	link := strings.Replace(URLInitiativeParticipation, "{id}", id, -1)
	return strings.Replace(link, "{address}", p.p.Address, -1)
}

func (p Participation) MarshalJSON() ([]byte, error) {
	r := p.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}
