package httpcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var _ Adapter = (*MemCacheAdapter)(nil)

func TestMemCacheAdapter(t *testing.T) {
	a := NewMemCacheAdapter(10)
	now := time.Now()

	key := "GET /v1/initiatives/1"
	resp := &Response{
		Value:      []byte(`{"id":1,"title":"raise quorum"}`),
		Expiration: now.Add(time.Second),
	}

	a.Set(key, resp, now)

	cachedResp, ok := a.Get(key)
	require.True(t, ok)
	require.Equal(t, resp, cachedResp)

	_, ok = a.Get("GET /v1/initiatives/2")
	require.False(t, ok)

	a.Remove(key)
	_, ok = a.Get(key)
	require.False(t, ok)
}
