package client

import (
	"encoding/json"
	"fmt"
)

type Problem struct {
	Type     string                     `json:"type"`
	Title    string                     `json:"title"`
	Status   int                        `json:"status"`
	Detail   string                     `json:"detail,omitempty"`
	Instance string                     `json:"instance,omitempty"`
	Extras   map[string]json.RawMessage `json:"extras,omitempty"`
}

type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	return fmt.Sprintf("problem: %s(%d)", e.Problem.Title, e.Problem.Status)
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type Initiative struct {
	Links struct {
		Self           Link `json:"self"`
		Signals        Link `json:"signals"`
		Participations Link `json:"participations"`
	} `json:"_links"`

	ID               uint64 `json:"id"`
	Title            string `json:"title"`
	Summary          string `json:"summary"`
	Author           string `json:"author"`
	ConsensusTally   uint64 `json:"consensus_tally"`
	Active           bool   `json:"active"`
	GenesisSequence  uint64 `json:"genesis_sequence"`
	DeliberationSpan uint64 `json:"deliberation_span"`
	ExpirySequence   uint64 `json:"expiry_sequence"`
	IsActive         bool   `json:"is_active"`
	Remaining        int64  `json:"remaining"`
	Hash             string `json:"hash"`
	Confirmed        string `json:"confirmed"`
}

type InitiativesPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Initiative `json:"records"`
	} `json:"_embedded"`
}

type Participation struct {
	Links struct {
		Self       Link `json:"self"`
		Initiative Link `json:"initiative"`
	} `json:"_links"`

	InitiativeID          uint64 `json:"initiative_id"`
	Address               string `json:"address"`
	Participated          bool   `json:"participated"`
	ParticipationSequence uint64 `json:"participation_sequence"`
	Confirmed             string `json:"confirmed"`
}

type Chronicle struct {
	Links struct {
		Self        Link `json:"self"`
		Initiatives Link `json:"initiatives"`
	} `json:"_links"`

	Guardian                 string `json:"guardian"`
	NetworkID                string `json:"network_id"`
	TotalInitiatives         uint64 `json:"total_initiatives"`
	StandardDeliberationSpan uint64 `json:"standard_deliberation_span"`
	LatestSequence           uint64 `json:"latest_sequence"`
	Confirmed                string `json:"confirmed"`
}
