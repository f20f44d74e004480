package governance

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/keypair"
	"agoranet.io/agora/lib/errors"
)

// Every mutating request carries a signed message: the body is hashed,
// the hash is signed by the source over the network id. Queries are
// plain GETs and carry nothing.

type MessageHeader struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

func (h MessageHeader) verify(source, bodyHash string, networkID []byte) (err error) {
	if h.Hash != bodyHash {
		return errors.InvalidMessage
	}
	if err = keypair.VerifySignature(source, networkID, h.Hash, base58.Decode(h.Signature)); err != nil {
		return errors.InvalidSignature
	}
	return
}

type ProposalBody struct {
	Source  string `json:"source"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Span    uint64 `json:"span"` // 0 means the chronicle's standard span
}

func (b ProposalBody) MakeHash() []byte {
	return common.MustMakeObjectHash(b)
}

func (b ProposalBody) MakeHashString() string {
	return base58.Encode(b.MakeHash())
}

// Proposal asks the ledger to create a new initiative. Only the
// guardian's proposals pass the authorization guard.
type Proposal struct {
	T string         `json:"T"`
	H MessageHeader  `json:"H"`
	B ProposalBody   `json:"B"`
}

func NewProposal(source, title, summary string, span uint64) Proposal {
	body := ProposalBody{
		Source:  source,
		Title:   title,
		Summary: summary,
		Span:    span,
	}

	return Proposal{
		T: "proposal",
		H: MessageHeader{
			Created: common.NowISO8601(),
			Hash:    body.MakeHashString(),
		},
		B: body,
	}
}

func (m *Proposal) Sign(kp keypair.KP, networkID []byte) {
	m.H.Hash = m.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, m.H.Hash)

	m.H.Signature = base58.Encode(signature)

	return
}

func (m Proposal) IsWellFormed(networkID []byte) error {
	return m.H.verify(m.B.Source, m.B.MakeHashString(), networkID)
}

func (m Proposal) Source() string {
	return m.B.Source
}

func (m Proposal) Serialize() ([]byte, error) {
	return json.Marshal(m)
}

type SignalBody struct {
	Source       string `json:"source"`
	InitiativeID uint64 `json:"initiative_id"`
}

func (b SignalBody) MakeHash() []byte {
	return common.MustMakeObjectHash(b)
}

func (b SignalBody) MakeHashString() string {
	return base58.Encode(b.MakeHash())
}

// Signal registers the source's participation in an initiative.
type Signal struct {
	T string        `json:"T"`
	H MessageHeader `json:"H"`
	B SignalBody    `json:"B"`
}

func NewSignal(source string, initiativeID uint64) Signal {
	body := SignalBody{
		Source:       source,
		InitiativeID: initiativeID,
	}

	return Signal{
		T: "signal",
		H: MessageHeader{
			Created: common.NowISO8601(),
			Hash:    body.MakeHashString(),
		},
		B: body,
	}
}

func (m *Signal) Sign(kp keypair.KP, networkID []byte) {
	m.H.Hash = m.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, m.H.Hash)

	m.H.Signature = base58.Encode(signature)

	return
}

func (m Signal) IsWellFormed(networkID []byte) error {
	return m.H.verify(m.B.Source, m.B.MakeHashString(), networkID)
}

func (m Signal) Source() string {
	return m.B.Source
}

func (m Signal) Serialize() ([]byte, error) {
	return json.Marshal(m)
}

type TerminationBody struct {
	Source       string `json:"source"`
	InitiativeID uint64 `json:"initiative_id"`
}

func (b TerminationBody) MakeHash() []byte {
	return common.MustMakeObjectHash(b)
}

func (b TerminationBody) MakeHashString() string {
	return base58.Encode(b.MakeHash())
}

// Termination closes an initiative before its window ends.
type Termination struct {
	T string          `json:"T"`
	H MessageHeader   `json:"H"`
	B TerminationBody `json:"B"`
}

func NewTermination(source string, initiativeID uint64) Termination {
	body := TerminationBody{
		Source:       source,
		InitiativeID: initiativeID,
	}

	return Termination{
		T: "termination",
		H: MessageHeader{
			Created: common.NowISO8601(),
			Hash:    body.MakeHashString(),
		},
		B: body,
	}
}

func (m *Termination) Sign(kp keypair.KP, networkID []byte) {
	m.H.Hash = m.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, m.H.Hash)

	m.H.Signature = base58.Encode(signature)

	return
}

func (m Termination) IsWellFormed(networkID []byte) error {
	return m.H.verify(m.B.Source, m.B.MakeHashString(), networkID)
}

func (m Termination) Source() string {
	return m.B.Source
}

func (m Termination) Serialize() ([]byte, error) {
	return json.Marshal(m)
}

type SpanUpdateBody struct {
	Source string `json:"source"`
	Span   uint64 `json:"span"`
}

func (b SpanUpdateBody) MakeHash() []byte {
	return common.MustMakeObjectHash(b)
}

func (b SpanUpdateBody) MakeHashString() string {
	return base58.Encode(b.MakeHash())
}

// SpanUpdate changes the chronicle's standard deliberation span for
// initiatives created afterwards.
type SpanUpdate struct {
	T string         `json:"T"`
	H MessageHeader  `json:"H"`
	B SpanUpdateBody `json:"B"`
}

func NewSpanUpdate(source string, span uint64) SpanUpdate {
	body := SpanUpdateBody{
		Source: source,
		Span:   span,
	}

	return SpanUpdate{
		T: "span-update",
		H: MessageHeader{
			Created: common.NowISO8601(),
			Hash:    body.MakeHashString(),
		},
		B: body,
	}
}

func (m *SpanUpdate) Sign(kp keypair.KP, networkID []byte) {
	m.H.Hash = m.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, m.H.Hash)

	m.H.Signature = base58.Encode(signature)

	return
}

func (m SpanUpdate) IsWellFormed(networkID []byte) error {
	return m.H.verify(m.B.Source, m.B.MakeHashString(), networkID)
}

func (m SpanUpdate) Source() string {
	return m.B.Source
}

func (m SpanUpdate) Serialize() ([]byte, error) {
	return json.Marshal(m)
}
