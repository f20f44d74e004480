package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/governance"
	"agoranet.io/agora/lib/network/httputils"
	"agoranet.io/agora/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetLedgerHandler(w http.ResponseWriter, r *http.Request) {
	c, err := api.ledger.Chronicle()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewChronicle(c))
}

func (api NetworkHandlerAPI) PutStandardSpanHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var m governance.SpanUpdate
	if err := json.Unmarshal(body, &m); err != nil {
		httputils.WriteJSONError(w, errors.InvalidMessage.Clone().SetData("error", err.Error()))
		return
	}
	if err := m.IsWellFormed(api.networkID); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if err := api.ledger.SetStandardSpan(m.B.Span, m.B.Source); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	c, err := api.ledger.Chronicle()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewChronicle(c))
}
