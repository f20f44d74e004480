package storage

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/errors"
)

func TestLevelDBBackendInitMemStorage(t *testing.T) {
	st := &LevelDBBackend{}
	defer st.Close()

	config, _ := NewConfigFromString("memory://")
	if err := st.Init(config); err != nil {
		t.Errorf("failed to initialize mem db: %v", err)
	}
}

func TestLevelDBBackendNew(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := "showme"
	input := map[int]string{
		90: "99",
		91: "91",
		92: "92",
	}
	if err := st.New(key, input); err != nil {
		t.Errorf("failed to 'New' in leveldb: %v", err)
		return
	}

	fetched := map[int]string{}
	err := st.Get(key, &fetched)
	if err != nil {
		t.Errorf("failed to 'Get' in leveldb: %v", err)
		return
	}

	if !reflect.DeepEqual(input, fetched) {
		t.Errorf("failed to 'Get' the same input in leveldb")
		return
	}

	if err := st.New(key, input); err == nil {
		t.Errorf("'New' only for new key in leveldb")
		return
	}
}

func TestLevelDBBackendNews(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	input := map[string]int{}
	for i := 0; i < 100; i++ {
		input[fmt.Sprintf("%d", i)] = i
	}
	var args []Item
	for k, v := range input {
		args = append(
			args,
			Item{k, v},
		)
	}

	if err := st.News(args...); err != nil {
		t.Errorf("failed to `News`: %v", err)
	}

	for _, i := range args {
		if exists, err := st.Has(i.Key); !exists || err != nil {
			if !exists {
				t.Errorf("failed to `News`, key, '%s' is missing", i.Key)
			} else {
				t.Errorf("failed to `News`: %v", err)
			}
		}
	}
}

func TestLevelDBBackendHas(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := "showme"
	if exists, _ := st.Has(key); exists {
		t.Error("failed to 'Has' in leveldb")
		return
	}

	st.New(key, 10)

	if exists, _ := st.Has(key); !exists {
		t.Error("failed to 'Has' in leveldb")
		return
	}

	st.Remove(key)
	if exists, _ := st.Has(key); exists {
		t.Error("failed to 'Has' in leveldb")
		return
	}
}

func TestLevelDBBackendGetRaw(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	st.New("showme", "input")

	// when record does not exist, it should return StorageRecordDoesNotExist
	if _, err := st.GetRaw("vacuum"); err != errors.StorageRecordDoesNotExist {
		t.Errorf("failed to GetRaw: want=%v have=%v", errors.StorageRecordDoesNotExist, err)
	}
}

func TestLevelDBBackendSet(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := "showme"
	input := 20

	if err := st.Set(key, input); err == nil {
		t.Errorf("'Set' must be failed with new key")
		return
	}

	st.New(key, input)

	if err := st.Set(key, input+1); err != nil {
		t.Errorf("failed to 'Set': %v", err)
		return
	}
}

func TestLevelDBBackendGetIterator(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	total := 30
	for i := 0; i < total; i++ {
		require.NoError(t, st.New(fmt.Sprintf("gi-%03d", i), i))
	}
	require.NoError(t, st.New("other-000", 99))

	var fetched []uint64
	iterFunc, closeFunc := st.GetIterator("gi-", NewDefaultListOptions(false, nil, 0))
	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}
		fetched = append(fetched, item.N)
	}
	closeFunc()

	require.Equal(t, total, len(fetched))

	// reverse
	iterFunc, closeFunc = st.GetIterator("gi-", NewDefaultListOptions(true, nil, 0))
	item, hasNext := iterFunc()
	closeFunc()
	require.True(t, hasNext)
	require.Equal(t, fmt.Sprintf("gi-%03d", total-1), string(item.Key))

	// limited
	var limited int
	iterFunc, closeFunc = st.GetIterator("gi-", NewDefaultListOptions(false, nil, 10))
	for {
		_, hasNext := iterFunc()
		if !hasNext {
			break
		}
		limited++
	}
	closeFunc()
	require.Equal(t, 10, limited)
}

func TestLevelDBBackendTransaction(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	ts, err := st.OpenTransaction()
	require.NoError(t, err)

	require.NoError(t, ts.New("showme", 1))
	require.NoError(t, ts.Commit())

	exists, err := st.Has("showme")
	require.NoError(t, err)
	require.True(t, exists)

	ts, err = st.OpenTransaction()
	require.NoError(t, err)

	require.NoError(t, ts.New("findme", 2))
	require.NoError(t, ts.Discard())

	exists, err = st.Has("findme")
	require.NoError(t, err)
	require.False(t, exists)
}
