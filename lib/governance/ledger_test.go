package governance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/common/keypair"
	"agoranet.io/agora/lib/errors"
)

func requireErrorCode(t *testing.T, expected *errors.Error, err error) {
	require.Error(t, err)
	e, ok := err.(*errors.Error)
	require.True(t, ok)
	require.Equal(t, expected.Code, e.Code)
}

func TestLedgerCreateDenseIDs(t *testing.T) {
	l, kp := prepareLedger()
	guardian := kp.Address()

	for i := uint64(1); i <= 3; i++ {
		id, err := l.Create("title", "summary", 0, guardian, 0)
		require.NoError(t, err)
		require.Equal(t, i, id)
		require.Equal(t, i, l.Total())
	}
}

func TestLedgerCreateUnauthorized(t *testing.T) {
	l, _ := prepareLedger()
	stranger := keypair.Random().Address()

	_, err := l.Create("title", "summary", 0, stranger, 0)
	requireErrorCode(t, errors.UnauthorizedAccess, err)
	require.Equal(t, uint64(0), l.Total())
}

func TestLedgerCreateMalformedBody(t *testing.T) {
	l, kp := prepareLedger()
	guardian := kp.Address()

	longTitle := make([]byte, MaxTitleLength+1)
	longSummary := make([]byte, MaxSummaryLength+1)
	for i := range longTitle {
		longTitle[i] = 'a'
	}
	for i := range longSummary {
		longSummary[i] = 'a'
	}

	_, err := l.Create("", "summary", 0, guardian, 0)
	requireErrorCode(t, errors.MalformedInput, err)

	_, err = l.Create(string(longTitle), "summary", 0, guardian, 0)
	requireErrorCode(t, errors.MalformedInput, err)

	_, err = l.Create("title", "", 0, guardian, 0)
	requireErrorCode(t, errors.MalformedInput, err)

	_, err = l.Create("title", string(longSummary), 0, guardian, 0)
	requireErrorCode(t, errors.MalformedInput, err)

	require.Equal(t, uint64(0), l.Total())
}

func TestLedgerCreateSpanBounds(t *testing.T) {
	l, kp := prepareLedger()
	guardian := kp.Address()

	_, err := l.Create("title", "summary", MinDeliberationSpan-1, guardian, 0)
	requireErrorCode(t, errors.MalformedInput, err)

	_, err = l.Create("title", "summary", MaxDeliberationSpan+1, guardian, 0)
	requireErrorCode(t, errors.MalformedInput, err)

	require.Equal(t, uint64(0), l.Total())

	id, err := l.Create("title", "summary", MaxDeliberationSpan, guardian, 0)
	require.NoError(t, err)

	status, found := l.GetStatus(id, 0)
	require.True(t, found)
	require.Equal(t, MaxDeliberationSpan, status.Initiative.DeliberationSpan)
}

func TestLedgerCreateStandardSpanApplied(t *testing.T) {
	l, kp := prepareLedger()
	guardian := kp.Address()

	// no explicit span: the chronicle's standard span applies
	id, err := l.Create("title", "summary", 0, guardian, 0)
	require.NoError(t, err)

	status, found := l.GetStatus(id, 0)
	require.True(t, found)
	require.Equal(t, MinDeliberationSpan, status.Initiative.DeliberationSpan)
}

func TestLedgerSignalTallyConsistency(t *testing.T) {
	l, kp := prepareLedger()
	guardian := kp.Address()

	id, err := l.Create("title", "summary", 0, guardian, 0)
	require.NoError(t, err)

	participants := []string{
		keypair.Random().Address(),
		keypair.Random().Address(),
		keypair.Random().Address(),
	}
	for _, p := range participants {
		require.NoError(t, l.Signal(id, p, 10))
	}

	status, found := l.GetStatus(id, 10)
	require.True(t, found)
	require.Equal(t, uint64(len(participants)), status.Initiative.ConsensusTally)

	for _, p := range participants {
		require.True(t, l.HasSignaled(p, id))
	}
	require.False(t, l.HasSignaled(keypair.Random().Address(), id))
}

func TestLedgerSignalDuplicate(t *testing.T) {
	l, kp := prepareLedger()
	guardian := kp.Address()

	id, err := l.Create("title", "summary", 0, guardian, 0)
	require.NoError(t, err)

	participant := keypair.Random().Address()
	require.NoError(t, l.Signal(id, participant, 1))

	err = l.Signal(id, participant, 2)
	requireErrorCode(t, errors.DuplicateParticipation, err)

	status, _ := l.GetStatus(id, 2)
	require.Equal(t, uint64(1), status.Initiative.ConsensusTally)
}

func TestLedgerSignalUnknownInitiative(t *testing.T) {
	l, kp := prepareLedger()
	guardian := kp.Address()

	_, err := l.Create("title", "summary", 0, guardian, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(1), l.Total())

	anyone := keypair.Random().Address()
	err = l.Signal(99, anyone, 0)
	requireErrorCode(t, errors.InvalidInitiative, err)
	require.False(t, l.HasSignaled(anyone, 99))

	err = l.Signal(0, anyone, 0)
	requireErrorCode(t, errors.InvalidInitiative, err)
}

func TestLedgerSignalExpired(t *testing.T) {
	l, kp := prepareLedger()
	guardian := kp.Address()

	id, err := l.Create("title", "summary", MinDeliberationSpan, guardian, 100)
	require.NoError(t, err)

	// the expiry sequence itself no longer accepts signals
	err = l.Signal(id, keypair.Random().Address(), 100+MinDeliberationSpan)
	requireErrorCode(t, errors.DeliberationExpired, err)

	// one before does
	require.NoError(t, l.Signal(id, keypair.Random().Address(), 100+MinDeliberationSpan-1))
}

func TestLedgerTerminate(t *testing.T) {
	l, kp := prepareLedger()
	guardian := kp.Address()

	id, err := l.Create("title", "summary", 0, guardian, 0)
	require.NoError(t, err)
	require.True(t, l.IsActive(id, 0))

	require.NoError(t, l.Terminate(id, guardian))
	require.False(t, l.IsActive(id, 0))

	// terminate is idempotent
	require.NoError(t, l.Terminate(id, guardian))
	require.False(t, l.IsActive(id, 0))

	// a terminated initiative refuses signals even inside the window
	err = l.Signal(id, keypair.Random().Address(), 0)
	requireErrorCode(t, errors.DeliberationExpired, err)
}

func TestLedgerTerminateErrors(t *testing.T) {
	l, kp := prepareLedger()
	guardian := kp.Address()

	_, err := l.Create("title", "summary", 0, guardian, 0)
	require.NoError(t, err)

	// out-of-range id: range check comes before the authorization check
	err = l.Terminate(99, keypair.Random().Address())
	requireErrorCode(t, errors.InvalidInitiative, err)

	// in-range id, wrong caller
	err = l.Terminate(1, keypair.Random().Address())
	requireErrorCode(t, errors.UnauthorizedAccess, err)

	require.True(t, l.IsActive(1, 0))
}

func TestLedgerStatusScenario(t *testing.T) {
	l, kp := prepareLedger()
	guardian := kp.Address()

	id, err := l.Create("Upgrade", "Add feature", MinDeliberationSpan, guardian, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(1), l.Total())

	status, found := l.GetStatus(id, 0)
	require.True(t, found)
	require.True(t, status.IsActive)
	require.Equal(t, int64(MinDeliberationSpan), status.Remaining)

	status, found = l.GetStatus(id, MinDeliberationSpan+1)
	require.True(t, found)
	require.False(t, status.IsActive)
	require.Equal(t, int64(-1), status.Remaining)
}

func TestLedgerStatusUnknown(t *testing.T) {
	l, _ := prepareLedger()

	_, found := l.GetStatus(1, 0)
	require.False(t, found)
	require.False(t, l.IsActive(1, 0))
	require.Equal(t, int64(0), l.Remaining(1, 0))
}

func TestLedgerSetStandardSpan(t *testing.T) {
	l, kp := prepareLedger()
	guardian := kp.Address()

	err := l.SetStandardSpan(MinDeliberationSpan-1, guardian)
	requireErrorCode(t, errors.MalformedInput, err)

	err = l.SetStandardSpan(MinDeliberationSpan, keypair.Random().Address())
	requireErrorCode(t, errors.UnauthorizedAccess, err)

	// still the genesis default
	c, err := l.Chronicle()
	require.NoError(t, err)
	require.Equal(t, MinDeliberationSpan, c.StandardDeliberationSpan)

	// a creation with no explicit span uses the prior valid default
	id, err := l.Create("title", "summary", 0, guardian, 0)
	require.NoError(t, err)
	status, _ := l.GetStatus(id, 0)
	require.Equal(t, MinDeliberationSpan, status.Initiative.DeliberationSpan)

	newSpan := MinDeliberationSpan * 2
	require.NoError(t, l.SetStandardSpan(newSpan, guardian))

	c, err = l.Chronicle()
	require.NoError(t, err)
	require.Equal(t, newSpan, c.StandardDeliberationSpan)

	// initiatives already created keep their span
	status, _ = l.GetStatus(id, 0)
	require.Equal(t, MinDeliberationSpan, status.Initiative.DeliberationSpan)

	id2, err := l.Create("title", "summary", 0, guardian, 0)
	require.NoError(t, err)
	status, _ = l.GetStatus(id2, 0)
	require.Equal(t, newSpan, status.Initiative.DeliberationSpan)
}

func TestLedgerAdvanceSequence(t *testing.T) {
	l, _ := prepareLedger()

	require.Equal(t, uint64(0), l.LatestSequence())

	sequence, err := l.AdvanceSequence()
	require.NoError(t, err)
	require.Equal(t, uint64(1), sequence)
	require.Equal(t, uint64(1), l.LatestSequence())
}

func TestLedgerGenesisChronicle(t *testing.T) {
	l, kp := prepareLedger()

	c, err := l.Chronicle()
	require.NoError(t, err)
	require.Equal(t, kp.Address(), c.Guardian)
	require.Equal(t, string(networkID), c.NetworkID)
	require.True(t, l.IsGuardian(kp.Address()))
	require.False(t, l.IsGuardian(keypair.Random().Address()))

	// genesis can happen only once
	_, err = MakeGenesisChronicle(l.Storage(), kp.Address(), string(networkID))
	requireErrorCode(t, errors.ChronicleAlreadyExists, err)
}
