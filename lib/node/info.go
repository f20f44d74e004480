package node

import (
	"encoding/json"
	"time"

	"agoranet.io/agora/lib/common"
)

type NodeInfo struct {
	Node   NodeInfoNode   `json:"node"`
	Policy NodePolicy     `json:"policy"`
	Ledger NodeLedgerInfo `json:"ledger"`
}

type NodeInfoNode struct {
	Version  NodeVersion      `json:"version"`
	Started  string           `json:"started"`
	State    State            `json:"state"`
	Alias    string           `json:"alias"`
	Address  string           `json:"address"`
	Endpoint *common.Endpoint `json:"endpoint"`
}

type NodePolicy struct {
	NetworkID            string        `json:"network-id"`
	BlockTime            time.Duration `json:"block-time"`
	MinDeliberationSpan  uint64        `json:"min-deliberation-span"`
	MaxDeliberationSpan  uint64        `json:"max-deliberation-span"`
	MaxTitleLength       int           `json:"max-title-length"`
	MaxSummaryLength     int           `json:"max-summary-length"`
	RateLimitRuleAPI     string        `json:"rate-limit-api"`
}

type NodeLedgerInfo struct {
	Sequence                 uint64 `json:"sequence"`
	TotalInitiatives         uint64 `json:"total-initiatives"`
	Guardian                 string `json:"guardian"`
	StandardDeliberationSpan uint64 `json:"standard-deliberation-span"`
}

type NodeVersion struct {
	Version   string `json:"version"`
	GitCommit string `json:"git-commit"`
	GitState  string `json:"git-state"`
	BuildDate string `json:"build-date"`
}

func NewNodeInfoFromJSON(b []byte) (nodeInfo NodeInfo, err error) {
	err = json.Unmarshal(b, &nodeInfo)
	return
}
