package governance

import (
	"fmt"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/observer"
	"agoranet.io/agora/lib/storage"
)

// Initiative is a single governance proposal with a bounded deliberation
// window. the storage should support,
//  * find by `ID`
//  * get list by id order, which is also creation order
//
// models
//  * 'id'
// 	- 'gi-id-<padded Initiative.ID>': `Initiative`
const (
	InitiativePrefixID       string = "gi-id-"
	maxInitiativeIDKeyLength int    = 20
)

type Initiative struct {
	ID               uint64 `json:"id"`
	Title            string `json:"title"`
	Summary          string `json:"summary"`
	ConsensusTally   uint64 `json:"consensus_tally"`
	Active           bool   `json:"active"`
	Author           string `json:"author"`
	GenesisSequence  uint64 `json:"genesis_sequence"`
	DeliberationSpan uint64 `json:"deliberation_span"`

	Hash      string `json:"hash"`
	Confirmed string `json:"confirmed"`
}

func NewInitiative(id uint64, title, summary, author string, genesisSequence, deliberationSpan uint64) *Initiative {
	in := &Initiative{
		ID:               id,
		Title:            title,
		Summary:          summary,
		ConsensusTally:   0,
		Active:           true,
		Author:           author,
		GenesisSequence:  genesisSequence,
		DeliberationSpan: deliberationSpan,
		Confirmed:        common.NowISO8601(),
	}
	in.Hash = common.MustMakeObjectHashString(struct {
		ID               uint64
		Title            string
		Summary          string
		Author           string
		GenesisSequence  uint64
		DeliberationSpan uint64
	}{in.ID, in.Title, in.Summary, in.Author, in.GenesisSequence, in.DeliberationSpan})

	return in
}

func (in *Initiative) String() string {
	return string(common.MustMarshalJSON(in))
}

func (in *Initiative) Serialize() ([]byte, error) {
	return common.EncodeJSONValue(in)
}

func (in *Initiative) Deserialize(encoded []byte) error {
	return common.DecodeJSONValue(encoded, in)
}

// ExpirySequence is the first sequence value at which the deliberation
// window no longer accepts signals.
func (in Initiative) ExpirySequence() uint64 {
	return in.GenesisSequence + in.DeliberationSpan
}

// IsActiveAt derives activity from the stored fields; the stored `Active`
// flag is never flipped by expiry, expiry is always computed on read.
func (in Initiative) IsActiveAt(sequence uint64) bool {
	return in.Active && sequence < in.ExpirySequence()
}

// RemainingAt goes negative once the window has expired.
func (in Initiative) RemainingAt(sequence uint64) int64 {
	return int64(in.ExpirySequence()) - int64(sequence)
}

func (in *Initiative) Save(st *storage.LevelDBBackend) (err error) {
	key := GetInitiativeKey(in.ID)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, in)
	} else {
		err = st.New(key, in)
	}
	if err == nil {
		observer.GovernanceObserver.Trigger("initiative-saved", in)
		observer.GovernanceObserver.Trigger(fmt.Sprintf("initiative-saved id-%d", in.ID), in)
	}

	return
}

func GetInitiativeKey(id uint64) string {
	f := fmt.Sprintf("%%s%%0%dd", maxInitiativeIDKeyLength)
	return fmt.Sprintf(f, InitiativePrefixID, id)
}

func ExistsInitiative(st *storage.LevelDBBackend, id uint64) (bool, error) {
	return st.Has(GetInitiativeKey(id))
}

func GetInitiative(st *storage.LevelDBBackend, id uint64) (in *Initiative, err error) {
	if err = st.Get(GetInitiativeKey(id), &in); err != nil {
		return
	}

	return
}

// GetInitiatives iterates initiatives in id order; ids are dense so this is
// also creation order.
func GetInitiatives(st *storage.LevelDBBackend, options storage.ListOptions) (func() (*Initiative, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(InitiativePrefixID, options)

	return (func() (*Initiative, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return nil, false
			}

			var in Initiative
			if err := common.DecodeJSONValue(item.Value, &in); err != nil {
				return nil, false
			}
			return &in, hasNext
		}), (func() {
			closeFunc()
		})
}
