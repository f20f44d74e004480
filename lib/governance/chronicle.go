package governance

import (
	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/observer"
	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/storage"
)

// Chronicle holds the ledger-wide scalars. There is exactly one chronicle
// per storage; it is created by genesis and mutated only through Ledger
// operations.
const ChronicleKey string = "gc-chronicle"

type Chronicle struct {
	Guardian                 string `json:"guardian"`
	NetworkID                string `json:"network_id"`
	TotalInitiatives         uint64 `json:"total_initiatives"`
	StandardDeliberationSpan uint64 `json:"standard_deliberation_span"`
	LatestSequence           uint64 `json:"latest_sequence"`
	Confirmed                string `json:"confirmed"`
}

func NewChronicle(guardian, networkID string) *Chronicle {
	return &Chronicle{
		Guardian:                 guardian,
		NetworkID:                networkID,
		TotalInitiatives:         0,
		StandardDeliberationSpan: MinDeliberationSpan,
		LatestSequence:           0,
		Confirmed:                common.NowISO8601(),
	}
}

func (c *Chronicle) String() string {
	return string(common.MustMarshalJSON(c))
}

func (c *Chronicle) Serialize() ([]byte, error) {
	return common.EncodeJSONValue(c)
}

func (c *Chronicle) Save(st *storage.LevelDBBackend) (err error) {
	var exists bool
	if exists, err = st.Has(ChronicleKey); err != nil {
		return
	}

	if exists {
		err = st.Set(ChronicleKey, c)
	} else {
		err = st.New(ChronicleKey, c)
	}
	if err == nil {
		observer.GovernanceObserver.Trigger("chronicle-saved", c)
	}

	return
}

func ExistsChronicle(st *storage.LevelDBBackend) (bool, error) {
	return st.Has(ChronicleKey)
}

func GetChronicle(st *storage.LevelDBBackend) (c *Chronicle, err error) {
	if err = st.Get(ChronicleKey, &c); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.ChronicleNotFound
		}
		return
	}

	return
}

// MakeGenesisChronicle initializes the ledger with its guardian. It fails
// when the storage already holds a chronicle.
func MakeGenesisChronicle(st *storage.LevelDBBackend, guardian, networkID string) (*Chronicle, error) {
	if exists, err := ExistsChronicle(st); err != nil {
		return nil, err
	} else if exists {
		return nil, errors.ChronicleAlreadyExists
	}

	c := NewChronicle(guardian, networkID)
	if err := c.Save(st); err != nil {
		return nil, err
	}

	log.Info("genesis chronicle created", "guardian", guardian, "network-id", networkID)

	return c, nil
}
