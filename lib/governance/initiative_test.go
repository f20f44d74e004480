package governance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/common/keypair"
	"agoranet.io/agora/lib/storage"
)

func TestInitiativeSaveAndGet(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	author := keypair.Random().Address()
	in := NewInitiative(1, "title", "summary", author, 10, MinDeliberationSpan)
	require.NoError(t, in.Save(st))

	found, err := ExistsInitiative(st, 1)
	require.NoError(t, err)
	require.True(t, found)

	fetched, err := GetInitiative(st, 1)
	require.NoError(t, err)
	require.Equal(t, in.Title, fetched.Title)
	require.Equal(t, in.Hash, fetched.Hash)
	require.Equal(t, uint64(10+MinDeliberationSpan), fetched.ExpirySequence())

	// saving again overwrites
	in.ConsensusTally = 5
	require.NoError(t, in.Save(st))
	fetched, err = GetInitiative(st, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(5), fetched.ConsensusTally)
}

func TestInitiativeIterator(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	author := keypair.Random().Address()
	for i := uint64(1); i <= 5; i++ {
		in := NewInitiative(i, "title", "summary", author, 0, MinDeliberationSpan)
		require.NoError(t, in.Save(st))
	}

	{ // id order
		var ids []uint64
		iterFunc, closeFunc := GetInitiatives(st, storage.NewDefaultListOptions(false, nil, 0))
		for {
			in, hasNext := iterFunc()
			if !hasNext {
				break
			}
			ids = append(ids, in.ID)
		}
		closeFunc()
		require.Equal(t, []uint64{1, 2, 3, 4, 5}, ids)
	}

	{ // reverse with limit
		var ids []uint64
		iterFunc, closeFunc := GetInitiatives(st, storage.NewDefaultListOptions(true, nil, 2))
		for {
			in, hasNext := iterFunc()
			if !hasNext {
				break
			}
			ids = append(ids, in.ID)
		}
		closeFunc()
		require.Equal(t, []uint64{5, 4}, ids)
	}
}

func TestParticipationSetOnce(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	address := keypair.Random().Address()
	p := NewParticipation(1, address, 7)
	require.NoError(t, p.Save(st))

	exists, err := ExistsParticipation(st, address, 1)
	require.NoError(t, err)
	require.True(t, exists)

	fetched, err := GetParticipation(st, address, 1)
	require.NoError(t, err)
	require.True(t, fetched.Participated)
	require.Equal(t, uint64(7), fetched.ParticipationSequence)

	// a second save of the same key must fail
	require.Error(t, NewParticipation(1, address, 8).Save(st))
}
