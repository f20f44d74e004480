package network

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	kitmetrics "github.com/go-kit/kit/metrics"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/metrics"
)

func TestRecoverMiddleware(t *testing.T) {
	panicMsg := "Don't panic,just use go"

	router := mux.NewRouter()
	router.Use(RecoverMiddleware(false))
	router.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		panic(panicMsg)
	})

	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/test")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 500, resp.StatusCode)
	require.Equal(t, "application/problem+json", resp.Header["Content-Type"][0])

	bs, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(bs, &msg))
	require.Equal(t, "panic: "+panicMsg, msg["title"])
}

func TestRateLimitMiddleware(t *testing.T) {
	rate, err := limiter.NewRateFromFormatted("3-M")
	require.NoError(t, err)

	router := mux.NewRouter()
	router.Use(RateLimitMiddleware(nil, common.NewRateLimitRule(rate)))
	router.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(router)
	defer server.Close()

	for i := 0; i < 3; i++ {
		resp, err := http.Get(server.URL + "/test")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := http.Get(server.URL + "/test")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

type testCounter struct {
	n      float64
	labels []string
}

func (c *testCounter) With(labelValues ...string) kitmetrics.Counter {
	c.labels = labelValues
	return c
}

func (c *testCounter) Add(delta float64) {
	c.n += delta
}

type testHistogram struct {
	observed int
}

func (h *testHistogram) With(labelValues ...string) kitmetrics.Histogram {
	return h
}

func (h *testHistogram) Observe(float64) {
	h.observed++
}

func TestMetricsMiddleware(t *testing.T) {
	requests := &testCounter{}
	requestErrors := &testCounter{}
	durations := &testHistogram{}
	m := &metrics.APIMetrics{
		RequestsTotal:          requests,
		RequestErrorsTotal:     requestErrors,
		RequestDurationSeconds: durations,
	}

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/initiatives/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/initiatives/1")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, float64(1), requests.n)
	require.Equal(t, float64(0), requestErrors.n)
	require.Equal(t, 1, durations.observed)
	require.Equal(
		t,
		[]string{"endpoint", "/initiatives/{id}", "method", "GET", "status", "200"},
		requests.labels,
	)

	resp, err = http.Get(server.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, float64(2), requests.n)
	require.Equal(t, float64(1), requestErrors.n)
}
