//
// Defines the `LocalNode` type, which is the node this program runs as.
//
// There should only be one `LocalNode` per program.
//
package node

import (
	"encoding/json"
	"fmt"
	"sync"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/keypair"
)

type LocalNode struct {
	sync.RWMutex

	keypair *keypair.Full

	state           State
	alias           string
	bindEndpoint    *common.Endpoint
	publishEndpoint *common.Endpoint
}

func NewLocalNode(kp *keypair.Full, bindEndpoint *common.Endpoint, alias string) (*LocalNode, error) {
	if len(alias) < 1 {
		alias = MakeAlias(kp.Address())
	}

	node := &LocalNode{
		keypair:      kp,
		state:        StateBOOTING,
		alias:        alias,
		bindEndpoint: bindEndpoint,
	}

	return node, nil
}

func (n *LocalNode) String() string {
	return n.Alias()
}

func (n *LocalNode) State() State {
	n.RLock()
	defer n.RUnlock()
	return n.state
}

func (n *LocalNode) SetBooting() {
	n.Lock()
	defer n.Unlock()
	n.state = StateBOOTING
}

func (n *LocalNode) SetRunning() {
	n.Lock()
	defer n.Unlock()
	n.state = StateRUNNING
}

func (n *LocalNode) SetTerminating() {
	n.Lock()
	defer n.Unlock()
	n.state = StateTERMINATING
}

func (n *LocalNode) Address() string {
	return n.keypair.Address()
}

func (n *LocalNode) Keypair() *keypair.Full {
	return n.keypair
}

func (n *LocalNode) Alias() string {
	return n.alias
}

func (n *LocalNode) Endpoint() *common.Endpoint {
	if n.publishEndpoint != nil {
		return n.publishEndpoint
	}

	return n.bindEndpoint
}

func (n *LocalNode) BindEndpoint() *common.Endpoint {
	return n.bindEndpoint
}

func (n *LocalNode) PublishEndpoint() *common.Endpoint {
	return n.publishEndpoint
}

func (n *LocalNode) SetPublishEndpoint(endpoint *common.Endpoint) {
	n.Lock()
	defer n.Unlock()
	n.publishEndpoint = endpoint
}

func (n *LocalNode) MarshalJSON() ([]byte, error) {
	n.RLock()
	defer n.RUnlock()

	return json.Marshal(map[string]interface{}{
		"address":  n.Address(),
		"alias":    n.Alias(),
		"endpoint": n.Endpoint().String(),
		"state":    n.State().String(),
	})
}

func (n *LocalNode) Serialize() ([]byte, error) {
	return json.Marshal(n)
}

func MakeAlias(address string) string {
	l := len(address)
	return fmt.Sprintf("%s.%s", address[:4], address[l-8:l-4])
}
