package runner

import (
	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/governance"
	"agoranet.io/agora/lib/node"
	"agoranet.io/agora/lib/version"
)

func NewNodeInfo(nr *NodeRunner) node.NodeInfo {
	localNode := nr.Node()

	var endpoint *common.Endpoint
	if localNode.PublishEndpoint() != nil {
		endpoint = localNode.PublishEndpoint()
	}

	nv := node.NodeVersion{
		Version:   version.Version,
		GitCommit: version.GitCommit,
		GitState:  version.GitState,
		BuildDate: version.BuildDate,
	}

	nd := node.NodeInfoNode{
		Version:  nv,
		Started:  common.FormatISO8601(nr.started),
		State:    localNode.State(),
		Alias:    localNode.Alias(),
		Address:  localNode.Address(),
		Endpoint: endpoint,
	}

	policy := node.NodePolicy{
		NetworkID:           string(nr.NetworkID()),
		BlockTime:           nr.Conf.BlockTime,
		MinDeliberationSpan: governance.MinDeliberationSpan,
		MaxDeliberationSpan: governance.MaxDeliberationSpan,
		MaxTitleLength:      governance.MaxTitleLength,
		MaxSummaryLength:    governance.MaxSummaryLength,
		RateLimitRuleAPI:    nr.Conf.RateLimitRuleAPI.String(),
	}

	ledgerInfo := node.NodeLedgerInfo{}
	if chronicle, err := nr.Ledger().Chronicle(); err == nil {
		ledgerInfo = node.NodeLedgerInfo{
			Sequence:                 chronicle.LatestSequence,
			TotalInitiatives:         chronicle.TotalInitiatives,
			Guardian:                 chronicle.Guardian,
			StandardDeliberationSpan: chronicle.StandardDeliberationSpan,
		}
	}

	return node.NodeInfo{
		Node:   nd,
		Policy: policy,
		Ledger: ledgerInfo,
	}
}
