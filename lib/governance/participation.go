package governance

import (
	"fmt"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/observer"
	"agoranet.io/agora/lib/storage"
)

// Participation is the one-and-one record of a participant and an
// initiative. Records are set-once; they are never deleted or reset.
//
// models
//  * 'initiative' and 'participant'
// 	- 'gp-<padded Initiative.ID>-<Participation.Address>': `Participation`
const ParticipationPrefix string = "gp-"

type Participation struct {
	InitiativeID          uint64 `json:"initiative_id"`
	Address               string `json:"address"`
	Participated          bool   `json:"participated"`
	ParticipationSequence uint64 `json:"participation_sequence"`
	Confirmed             string `json:"confirmed"`
}

func NewParticipation(initiativeID uint64, address string, sequence uint64) *Participation {
	return &Participation{
		InitiativeID:          initiativeID,
		Address:               address,
		Participated:          true,
		ParticipationSequence: sequence,
		Confirmed:             common.NowISO8601(),
	}
}

func (p *Participation) String() string {
	return string(common.MustMarshalJSON(p))
}

func (p *Participation) Serialize() ([]byte, error) {
	return common.EncodeJSONValue(p)
}

// Save only creates; a participation can not be overwritten.
func (p *Participation) Save(st *storage.LevelDBBackend) (err error) {
	if err = st.New(GetParticipationKey(p.InitiativeID, p.Address), p); err != nil {
		return
	}

	observer.GovernanceObserver.Trigger("signaled", p)
	observer.GovernanceObserver.Trigger(fmt.Sprintf("signaled initiative-%d", p.InitiativeID), p)
	observer.GovernanceObserver.Trigger(fmt.Sprintf("signaled participant-%s", p.Address), p)

	return
}

func GetParticipationKey(initiativeID uint64, address string) string {
	return fmt.Sprintf("%s%s", GetParticipationKeyPrefix(initiativeID), address)
}

func GetParticipationKeyPrefix(initiativeID uint64) string {
	f := fmt.Sprintf("%%s%%0%dd-", maxInitiativeIDKeyLength)
	return fmt.Sprintf(f, ParticipationPrefix, initiativeID)
}

func ExistsParticipation(st *storage.LevelDBBackend, address string, initiativeID uint64) (bool, error) {
	return st.Has(GetParticipationKey(initiativeID, address))
}

func GetParticipation(st *storage.LevelDBBackend, address string, initiativeID uint64) (p *Participation, err error) {
	if err = st.Get(GetParticipationKey(initiativeID, address), &p); err != nil {
		return
	}

	return
}

func GetParticipationsByInitiative(st *storage.LevelDBBackend, initiativeID uint64, options storage.ListOptions) (func() (*Participation, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(GetParticipationKeyPrefix(initiativeID), options)

	return (func() (*Participation, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return nil, false
			}

			var p Participation
			if err := common.DecodeJSONValue(item.Value, &p); err != nil {
				return nil, false
			}
			return &p, hasNext
		}), (func() {
			closeFunc()
		})
}
