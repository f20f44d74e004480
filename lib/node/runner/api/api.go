package api

import (
	"fmt"

	"agoranet.io/agora/lib/governance"
	"agoranet.io/agora/lib/node"
	"agoranet.io/agora/lib/storage"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetInitiativesHandlerPattern   = "/initiatives"
	GetInitiativeHandlerPattern    = "/initiatives/{id}"
	GetParticipationHandlerPattern = "/initiatives/{id}/participations/{address}"
	GetLedgerHandlerPattern        = "/ledger"
	PostInitiativeHandlerPattern   = "/initiatives"
	PostTerminateHandlerPattern    = "/initiatives/{id}/terminate"
	PostSignalHandlerPattern       = "/initiatives/{id}/signals"
	PutStandardSpanHandlerPattern  = "/ledger/standard-span"
	PostSubscribePattern           = "/subscribe"
	GetNodeInfoPattern             = "/"
)

type NetworkHandlerAPI struct {
	localNode *node.LocalNode
	ledger    *governance.Ledger
	storage   *storage.LevelDBBackend
	networkID []byte
	urlPrefix string
	version   string

	GetNodeInfo func() node.NodeInfo
}

func NewNetworkHandlerAPI(localNode *node.LocalNode, ledger *governance.Ledger, storage *storage.LevelDBBackend, networkID []byte, urlPrefix string) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		localNode: localNode,
		ledger:    ledger,
		storage:   storage,
		networkID: networkID,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}
