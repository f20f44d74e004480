package network

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/metrics"
	"agoranet.io/agora/lib/network/httputils"
)

func RecoverMiddleware(printStack bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", r)
					}
					httputils.WriteJSONError(w, err)
					log.Error("recover an panic", "err", err)
					if printStack == true {
						debug.PrintStack()
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func RateLimitMiddleware(logger logging.Logger, rule common.RateLimitRule) mux.MiddlewareFunc {
	if logger == nil {
		logger = common.NopLogger()
	}

	newMiddleware := func(rate limiter.Rate) *stdlib.Middleware {
		return stdlib.NewMiddleware(
			limiter.New(
				memory.NewStore(),
				rate,
				limiter.WithTrustForwardHeader(true),
			),
		)
	}

	defaultMiddleware := newMiddleware(rule.Default)

	middlewares := map[string]*stdlib.Middleware{}
	for ip, rate := range rule.ByIPAddress {
		middlewares[ip] = newMiddleware(rate)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			middleware := defaultMiddleware
			if len(middlewares) > 0 {
				ip := defaultMiddleware.Limiter.GetIPKey(r)
				if m, found := middlewares[ip]; found {
					middleware = m
				}
			}

			// limit of 0 means unlimited
			if middleware.Limiter.Rate.Limit < 1 {
				next.ServeHTTP(w, r)
				return
			}

			middleware.Handler(next).ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func MetricsMiddleware(m *metrics.APIMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tpl
				}
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			begin := time.Now()
			next.ServeHTTP(rec, r)

			labels := []string{
				"endpoint", endpoint,
				"method", r.Method,
				"status", strconv.Itoa(rec.status),
			}
			m.RequestsTotal.With(labels...).Add(1)
			if rec.status >= http.StatusBadRequest {
				m.RequestErrorsTotal.With(labels...).Add(1)
			}
			m.RequestDurationSeconds.With(labels...).Observe(time.Since(begin).Seconds())
		})
	}
}
