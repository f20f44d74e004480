//
// Functions and types usable only from unit tests
//
package governance

import (
	"agoranet.io/agora/lib/common/keypair"
	"agoranet.io/agora/lib/storage"
)

var networkID []byte = []byte("agora-test-network")

// prepareLedger returns a ledger over a fresh in-memory storage, already
// initialized with a genesis chronicle for a random guardian.
func prepareLedger() (*Ledger, *keypair.Full) {
	st := storage.NewTestStorage()
	kp := keypair.Random()
	if _, err := MakeGenesisChronicle(st, kp.Address(), string(networkID)); err != nil {
		panic(err)
	}
	return NewLedger(st), kp
}
