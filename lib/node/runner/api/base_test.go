package api

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/keypair"
	"agoranet.io/agora/lib/governance"
	"agoranet.io/agora/lib/node"
	"agoranet.io/agora/lib/storage"
)

var networkID []byte = []byte("agora-test-network")

func prepareAPIServer() (*httptest.Server, *governance.Ledger, *keypair.Full) {
	st := storage.NewTestStorage()
	kp := keypair.Random()
	if _, err := governance.MakeGenesisChronicle(st, kp.Address(), string(networkID)); err != nil {
		panic(err)
	}
	ledger := governance.NewLedger(st)

	localNode := node.NewTestLocalNode(kp, &common.Endpoint{Scheme: "memory", Host: "unittests"})
	apiHandler := NewNetworkHandlerAPI(localNode, ledger, st, networkID, "")

	router := mux.NewRouter()
	router.HandleFunc(apiHandler.HandlerURLPattern(GetInitiativesHandlerPattern), apiHandler.GetInitiativesHandler).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(PostInitiativeHandlerPattern), apiHandler.PostInitiativeHandler).Methods("POST")
	router.HandleFunc(apiHandler.HandlerURLPattern(GetInitiativeHandlerPattern), apiHandler.GetInitiativeHandler).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(GetParticipationHandlerPattern), apiHandler.GetParticipationHandler).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(PostSignalHandlerPattern), apiHandler.PostSignalHandler).Methods("POST")
	router.HandleFunc(apiHandler.HandlerURLPattern(PostTerminateHandlerPattern), apiHandler.PostTerminateHandler).Methods("POST")
	router.HandleFunc(apiHandler.HandlerURLPattern(GetLedgerHandlerPattern), apiHandler.GetLedgerHandler).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(PutStandardSpanHandlerPattern), apiHandler.PutStandardSpanHandler).Methods("PUT")
	router.HandleFunc(apiHandler.HandlerURLPattern(PostSubscribePattern), apiHandler.PostSubscribeHandler).Methods("POST")

	ts := httptest.NewServer(router)
	return ts, ledger, kp
}

func request(ts *httptest.Server, url string, streaming bool) io.ReadCloser {
	url = ts.URL + url
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		panic(err)
	}
	if streaming {
		req.Header.Set("Accept", "text/event-stream")
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		panic(err)
	}
	return resp.Body
}

func requestJSON(ts *httptest.Server, method, url string, body interface{}) (int, map[string]interface{}) {
	bs, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	req, err := http.NewRequest(method, ts.URL+url, bytes.NewReader(bs))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	rb, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		panic(err)
	}
	var payload map[string]interface{}
	if len(rb) > 0 {
		common.MustUnmarshalJSON(rb, &payload)
	}
	return resp.StatusCode, payload
}

func getJSON(ts *httptest.Server, url string) (int, map[string]interface{}) {
	resp, err := ts.Client().Get(ts.URL + url)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	rb, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		panic(err)
	}
	var payload map[string]interface{}
	common.MustUnmarshalJSON(rb, &payload)
	return resp.StatusCode, payload
}
