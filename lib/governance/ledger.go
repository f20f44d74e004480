package governance

import (
	"sync"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/metrics"
	"agoranet.io/agora/lib/storage"
)

// Ledger is the governance state machine. Every mutating operation runs
// under one mutex and one leveldb transaction; a failed precondition
// discards the transaction, so no partial write is ever visible. Queries
// read committed state only.
type Ledger struct {
	sync.RWMutex

	st *storage.LevelDBBackend
}

func NewLedger(st *storage.LevelDBBackend) *Ledger {
	return &Ledger{st: st}
}

func (l *Ledger) Storage() *storage.LevelDBBackend {
	return l.st
}

func (l *Ledger) Chronicle() (*Chronicle, error) {
	return GetChronicle(l.st)
}

// Guardian is the only identity allowed to create, terminate and
// reconfigure; it is fixed at genesis.
func (l *Ledger) Guardian() (string, error) {
	c, err := GetChronicle(l.st)
	if err != nil {
		return "", err
	}

	return c.Guardian, nil
}

func (l *Ledger) IsGuardian(address string) bool {
	guardian, err := l.Guardian()
	if err != nil {
		return false
	}

	return guardian == address
}

// Create registers a new initiative and returns its id. A requestedSpan of
// 0 applies the chronicle's standard deliberation span.
func (l *Ledger) Create(title, summary string, requestedSpan uint64, caller string, sequence uint64) (uint64, error) {
	l.Lock()
	defer l.Unlock()

	ts, err := l.st.OpenTransaction()
	if err != nil {
		return 0, err
	}

	chronicle, err := GetChronicle(ts)
	if err != nil {
		ts.Discard()
		return 0, err
	}

	checker := &CreateChecker{
		DefaultChecker: common.DefaultChecker{Funcs: DefaultCreateCheckerFuncs},
		Transaction:    ts,
		Chronicle:      chronicle,
		Caller:         caller,
		Title:          title,
		Summary:        summary,
		RequestedSpan:  requestedSpan,
		Sequence:       sequence,
	}
	if err := common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		ts.Discard()
		metrics.Governance.RejectedTotal.With("operation", "create").Add(1)
		return 0, err
	}

	if err := ts.Commit(); err != nil {
		ts.Discard()
		return 0, err
	}

	metrics.Governance.CreatedTotal.Add(1)
	metrics.Governance.Initiatives.Set(float64(checker.Chronicle.TotalInitiatives))
	log.Info(
		"initiative created",
		"id", checker.Initiative.ID,
		"title", checker.Initiative.Title,
		"genesis-sequence", checker.Initiative.GenesisSequence,
		"deliberation-span", checker.Initiative.DeliberationSpan,
	)

	return checker.Initiative.ID, nil
}

// Terminate closes the initiative unconditionally; terminating an already
// inactive initiative succeeds silently. Unlike Signal, a range miss and a
// lookup miss stay distinct errors here.
func (l *Ledger) Terminate(id uint64, caller string) error {
	l.Lock()
	defer l.Unlock()

	ts, err := l.st.OpenTransaction()
	if err != nil {
		return err
	}

	discard := func(err error) error {
		ts.Discard()
		metrics.Governance.RejectedTotal.With("operation", "terminate").Add(1)
		return err
	}

	chronicle, err := GetChronicle(ts)
	if err != nil {
		return discard(err)
	}

	if id < 1 || id > chronicle.TotalInitiatives {
		return discard(errors.InvalidInitiative.Clone().SetData("id", id))
	}
	if caller != chronicle.Guardian {
		return discard(errors.UnauthorizedAccess.Clone().SetData("caller", caller))
	}

	in, err := GetInitiative(ts, id)
	if err != nil {
		return discard(errors.InitiativeNotFound.Clone().SetData("id", id))
	}

	in.Active = false
	if err := in.Save(ts); err != nil {
		return discard(err)
	}

	if err := ts.Commit(); err != nil {
		ts.Discard()
		return err
	}

	metrics.Governance.TerminatedTotal.Add(1)
	log.Info("initiative terminated", "id", id)

	return nil
}

// Signal records one consensus signal by caller on the initiative. Open to
// any identity.
func (l *Ledger) Signal(id uint64, caller string, sequence uint64) error {
	l.Lock()
	defer l.Unlock()

	ts, err := l.st.OpenTransaction()
	if err != nil {
		return err
	}

	chronicle, err := GetChronicle(ts)
	if err != nil {
		ts.Discard()
		return err
	}

	checker := &SignalChecker{
		DefaultChecker: common.DefaultChecker{Funcs: DefaultSignalCheckerFuncs},
		Transaction:    ts,
		Chronicle:      chronicle,
		Caller:         caller,
		InitiativeID:   id,
		Sequence:       sequence,
	}
	if err := common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		ts.Discard()
		metrics.Governance.RejectedTotal.With("operation", "signal").Add(1)
		return err
	}

	if err := ts.Commit(); err != nil {
		ts.Discard()
		return err
	}

	metrics.Governance.SignalsTotal.Add(1)
	log.Info("signal recorded", "id", id, "participant", caller, "tally", checker.Initiative.ConsensusTally)

	return nil
}

// SetStandardSpan reconfigures the default deliberation span. Initiatives
// already created keep the span frozen at their creation.
func (l *Ledger) SetStandardSpan(span uint64, caller string) error {
	l.Lock()
	defer l.Unlock()

	ts, err := l.st.OpenTransaction()
	if err != nil {
		return err
	}

	discard := func(err error) error {
		ts.Discard()
		metrics.Governance.RejectedTotal.With("operation", "configure").Add(1)
		return err
	}

	chronicle, err := GetChronicle(ts)
	if err != nil {
		return discard(err)
	}

	if caller != chronicle.Guardian {
		return discard(errors.UnauthorizedAccess.Clone().SetData("caller", caller))
	}
	if span < MinDeliberationSpan || span > MaxDeliberationSpan {
		return discard(errors.MalformedInput.Clone().SetData("field", "standard_deliberation_span"))
	}

	chronicle.StandardDeliberationSpan = span
	if err := chronicle.Save(ts); err != nil {
		return discard(err)
	}

	if err := ts.Commit(); err != nil {
		ts.Discard()
		return err
	}

	log.Info("standard deliberation span configured", "span", span)

	return nil
}

// AdvanceSequence bumps the ledger height by one. This is the hosting
// environment's clock, not a governance operation; the state machine itself
// only ever consumes the sequence as an input.
func (l *Ledger) AdvanceSequence() (uint64, error) {
	l.Lock()
	defer l.Unlock()

	chronicle, err := GetChronicle(l.st)
	if err != nil {
		return 0, err
	}

	chronicle.LatestSequence++
	if err := chronicle.Save(l.st); err != nil {
		return 0, err
	}

	metrics.Governance.LatestSequence.Set(float64(chronicle.LatestSequence))

	return chronicle.LatestSequence, nil
}

func (l *Ledger) LatestSequence() uint64 {
	l.RLock()
	defer l.RUnlock()

	chronicle, err := GetChronicle(l.st)
	if err != nil {
		return 0
	}

	return chronicle.LatestSequence
}

// Total returns the count of initiatives ever created, which is also the
// highest valid id.
func (l *Ledger) Total() uint64 {
	l.RLock()
	defer l.RUnlock()

	chronicle, err := GetChronicle(l.st)
	if err != nil {
		return 0
	}

	return chronicle.TotalInitiatives
}

// InitiativeStatus is the read-only snapshot returned by GetStatus.
type InitiativeStatus struct {
	Initiative *Initiative `json:"initiative"`
	IsActive   bool        `json:"is_active"`
	Remaining  int64       `json:"remaining"`
}

// GetStatus returns nothing when the id was never assigned; queries never
// fail.
func (l *Ledger) GetStatus(id uint64, sequence uint64) (*InitiativeStatus, bool) {
	l.RLock()
	defer l.RUnlock()

	in, err := GetInitiative(l.st, id)
	if err != nil {
		return nil, false
	}

	return &InitiativeStatus{
		Initiative: in,
		IsActive:   in.IsActiveAt(sequence),
		Remaining:  in.RemainingAt(sequence),
	}, true
}

// HasSignaled returns false for unknown ids or participants, never an
// error.
func (l *Ledger) HasSignaled(address string, id uint64) bool {
	l.RLock()
	defer l.RUnlock()

	p, err := GetParticipation(l.st, address, id)
	if err != nil {
		return false
	}

	return p.Participated
}

// IsActive derives activity from stored fields and the given sequence.
func (l *Ledger) IsActive(id uint64, sequence uint64) bool {
	l.RLock()
	defer l.RUnlock()

	in, err := GetInitiative(l.st, id)
	if err != nil {
		return false
	}

	return in.IsActiveAt(sequence)
}

// Remaining returns 0 for unknown initiatives and a possibly negative
// count of sequence units otherwise.
func (l *Ledger) Remaining(id uint64, sequence uint64) int64 {
	l.RLock()
	defer l.RUnlock()

	in, err := GetInitiative(l.st, id)
	if err != nil {
		return 0
	}

	return in.RemainingAt(sequence)
}
