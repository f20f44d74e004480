//
// NodeRunner bridges together the storage, the governance ledger and the
// HTTP surface of a single node. It drives the height ticker that advances
// the ledger sequence once per block time.
//
package runner

import (
	"context"
	"net/http"
	"os"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/governance"
	"agoranet.io/agora/lib/metrics"
	"agoranet.io/agora/lib/network"
	"agoranet.io/agora/lib/network/httpcache"
	"agoranet.io/agora/lib/node"
	"agoranet.io/agora/lib/node/runner/api"
	"agoranet.io/agora/lib/storage"
)

const (
	UrlPathPrefixMetric = "/metrics"

	// CachedGetTTL bounds how stale a cached status response can be; one
	// block time keeps cached `remaining` values off by at most one.
	CachedGetTTL = 5 * time.Second
)

type NodeRunner struct {
	networkID []byte
	localNode *node.LocalNode
	ledger    *governance.Ledger
	storage   *storage.LevelDBBackend

	router *mux.Router
	server *http.Server

	stopTicker chan struct{}
	started    time.Time

	log logging.Logger

	Conf     common.Config
	nodeInfo node.NodeInfo
}

func NewNodeRunner(
	localNode *node.LocalNode,
	ledger *governance.Ledger,
	st *storage.LevelDBBackend,
	conf common.Config,
) (nr *NodeRunner, err error) {
	nr = &NodeRunner{
		networkID:  conf.NetworkID,
		localNode:  localNode,
		ledger:     ledger,
		storage:    st,
		stopTicker: make(chan struct{}),
		started:    time.Now(),
		log:        log.New(logging.Ctx{"node": localNode.Alias()}),
		Conf:       conf,
	}
	nr.localNode.SetBooting()

	var chronicle *governance.Chronicle
	if chronicle, err = ledger.Chronicle(); err != nil {
		return nil, err
	}
	nr.log.Debug(
		"chronicle restored",
		"guardian", chronicle.Guardian,
		"total", chronicle.TotalInitiatives,
		"sequence", chronicle.LatestSequence,
	)

	nr.nodeInfo = NewNodeInfo(nr)

	return
}

func (nr *NodeRunner) Ready() (err error) {
	router := mux.NewRouter()

	router.Use(network.RecoverMiddleware(false))
	router.Use(network.RateLimitMiddleware(nr.log, nr.Conf.RateLimitRuleAPI))
	router.Use(network.MetricsMiddleware(metrics.API))

	{ //CORS
		allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
		allowedMethods := ghandlers.AllowedMethods([]string{"GET", "POST", "PUT"})
		allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"})

		router.Use(ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders))
	}

	var cachedGet func(http.HandlerFunc) http.HandlerFunc
	{
		var adapter httpcache.Adapter
		if adapter, err = httpcache.NewAdapter(nr.Conf); err != nil {
			return err
		}
		if adapter != nil {
			var client *httpcache.Client
			client, err = httpcache.NewClient(
				httpcache.WithAdapter(adapter),
				httpcache.WithExpire(CachedGetTTL),
				httpcache.WithLogger(nr.log),
			)
			if err != nil {
				return err
			}
			cachedGet = client.WrapHandlerFunc
		} else {
			cachedGet = func(handlerFunc http.HandlerFunc) http.HandlerFunc {
				return handlerFunc
			}
		}
	}

	apiHandler := api.NewNetworkHandlerAPI(nr.localNode, nr.ledger, nr.storage, nr.networkID, "")
	apiHandler.GetNodeInfo = func() node.NodeInfo {
		return NewNodeInfo(nr)
	}

	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.GetInitiativesHandlerPattern),
		cachedGet(apiHandler.GetInitiativesHandler),
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.GetInitiativeHandlerPattern),
		cachedGet(apiHandler.GetInitiativeHandler),
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.GetParticipationHandlerPattern),
		cachedGet(apiHandler.GetParticipationHandler),
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.GetLedgerHandlerPattern),
		cachedGet(apiHandler.GetLedgerHandler),
	).Methods("GET", "OPTIONS")

	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.PostInitiativeHandlerPattern),
		apiHandler.PostInitiativeHandler,
	).Methods("POST").Headers("Content-Type", "application/json")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.PostSignalHandlerPattern),
		apiHandler.PostSignalHandler,
	).Methods("POST").Headers("Content-Type", "application/json")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.PostTerminateHandlerPattern),
		apiHandler.PostTerminateHandler,
	).Methods("POST").Headers("Content-Type", "application/json")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.PutStandardSpanHandlerPattern),
		apiHandler.PutStandardSpanHandler,
	).Methods("PUT").Headers("Content-Type", "application/json")

	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.PostSubscribePattern),
		apiHandler.PostSubscribeHandler,
	).Methods("POST")

	router.Handle(UrlPathPrefixMetric, promhttp.Handler()).Methods("GET")
	router.HandleFunc(api.GetNodeInfoPattern, apiHandler.GetNodeInfoHandler).Methods("GET")

	var handler http.Handler = router
	if len(nr.Conf.HTTPLogOutput) > 0 {
		var out *os.File
		if out, err = os.OpenFile(nr.Conf.HTTPLogOutput, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err != nil {
			return err
		}
		handler = ghandlers.CombinedLoggingHandler(out, handler)
	}

	endpoint := nr.localNode.BindEndpoint()
	server := &http.Server{
		Addr:    endpoint.Host,
		Handler: handler,

		ReadTimeout:  0,
		WriteTimeout: 0,
		IdleTimeout:  5 * time.Second,
	}
	server.SetKeepAlivesEnabled(true)

	http2.ConfigureServer(server, &http2.Server{})

	nr.router = router
	nr.server = server

	return nil
}

func (nr *NodeRunner) Start() (err error) {
	if _, err := common.CheckClockOffset(""); err != nil {
		nr.log.Warn("ntp clock check did not complete", "err", err)
	}

	if err = nr.Ready(); err != nil {
		return
	}

	go nr.startHeightTicker()

	nr.localNode.SetRunning()
	nr.log.Info(
		"node started",
		"bind", nr.localNode.BindEndpoint().String(),
		"address", nr.localNode.Address(),
	)

	endpoint := nr.localNode.BindEndpoint()
	if endpoint.Scheme == "https" {
		query := endpoint.Query()
		err = nr.server.ListenAndServeTLS(query.Get("TLSCertFile"), query.Get("TLSKeyFile"))
	} else {
		err = nr.server.ListenAndServe()
	}
	if err == http.ErrServerClosed {
		err = nil
	}

	return
}

// startHeightTicker advances the ledger sequence once per block time. The
// ledger itself never reads the clock; this ticker is its only time source.
func (nr *NodeRunner) startHeightTicker() {
	ticker := time.NewTicker(nr.Conf.BlockTime)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sequence, err := nr.ledger.AdvanceSequence()
			if err != nil {
				nr.log.Error("failed to advance the ledger sequence", "err", err)
				continue
			}
			nr.log.Debug("ledger sequence advanced", "sequence", sequence)
		case <-nr.stopTicker:
			return
		}
	}
}

func (nr *NodeRunner) Stop() {
	nr.localNode.SetTerminating()
	close(nr.stopTicker)

	if nr.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := nr.server.Shutdown(ctx); err != nil {
			nr.log.Error("failed to shut down the http server", "err", err)
		}
	}
}

func (nr *NodeRunner) Node() *node.LocalNode {
	return nr.localNode
}

func (nr *NodeRunner) NetworkID() []byte {
	return nr.networkID
}

func (nr *NodeRunner) Ledger() *governance.Ledger {
	return nr.ledger
}

func (nr *NodeRunner) Storage() *storage.LevelDBBackend {
	return nr.storage
}

func (nr *NodeRunner) Router() *mux.Router {
	return nr.router
}

func (nr *NodeRunner) Log() logging.Logger {
	return nr.log
}
