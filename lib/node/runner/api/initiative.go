package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/governance"
	"agoranet.io/agora/lib/network/httputils"
	"agoranet.io/agora/lib/node/runner/api/resource"
)

func parseInitiativeID(r *http.Request) (uint64, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		return 0, errors.BadRequestParameter.Clone().SetData("error", err.Error())
	}
	return id, nil
}

func (api NetworkHandlerAPI) GetInitiativesHandler(w http.ResponseWriter, r *http.Request) {
	p, err := NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var options = p.ListOptions()
	var firstCursor []byte
	var cursor []byte

	sequence := api.ledger.LatestSequence()

	var rs []resource.Resource
	iterFunc, closeFunc := governance.GetInitiatives(api.storage, options)
	for {
		in, hasNext := iterFunc()
		if !hasNext {
			break
		}
		cursor = []byte(governance.GetInitiativeKey(in.ID))
		if len(firstCursor) == 0 {
			firstCursor = append(firstCursor, cursor...)
		}

		rs = append(rs, resource.NewInitiative(&governance.InitiativeStatus{
			Initiative: in,
			IsActive:   in.IsActiveAt(sequence),
			Remaining:  in.RemainingAt(sequence),
		}))
	}
	closeFunc()

	list := p.ResourceList(rs, firstCursor, cursor)
	httputils.MustWriteJSON(w, 200, list)
}

func (api NetworkHandlerAPI) GetInitiativeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseInitiativeID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	status, found := api.ledger.GetStatus(id, api.ledger.LatestSequence())
	if !found {
		httputils.WriteJSONError(w, errors.InitiativeNotFound)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewInitiative(status))
}

func (api NetworkHandlerAPI) GetParticipationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseInitiativeID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	address := mux.Vars(r)["address"]

	if found, err := governance.ExistsInitiative(api.storage, id); err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if !found {
		httputils.WriteJSONError(w, errors.InitiativeNotFound)
		return
	}

	p, err := governance.GetParticipation(api.storage, address, id)
	if err != nil {
		// absence is an answer, not an error
		p = &governance.Participation{InitiativeID: id, Address: address}
	}

	httputils.MustWriteJSON(w, 200, resource.NewParticipation(p))
}

func (api NetworkHandlerAPI) PostInitiativeHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var m governance.Proposal
	if err := json.Unmarshal(body, &m); err != nil {
		httputils.WriteJSONError(w, errors.InvalidMessage.Clone().SetData("error", err.Error()))
		return
	}
	if err := m.IsWellFormed(api.networkID); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	id, err := api.ledger.Create(m.B.Title, m.B.Summary, m.B.Span, m.B.Source, api.ledger.LatestSequence())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	status, found := api.ledger.GetStatus(id, api.ledger.LatestSequence())
	if !found {
		httputils.WriteJSONError(w, errors.InitiativeNotFound)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewInitiative(status))
}

func (api NetworkHandlerAPI) PostSignalHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := parseInitiativeID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var m governance.Signal
	if err := json.Unmarshal(body, &m); err != nil {
		httputils.WriteJSONError(w, errors.InvalidMessage.Clone().SetData("error", err.Error()))
		return
	}
	if m.B.InitiativeID != id {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", "initiative id mismatch"))
		return
	}
	if err := m.IsWellFormed(api.networkID); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if err := api.ledger.Signal(id, m.B.Source, api.ledger.LatestSequence()); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	p, err := governance.GetParticipation(api.storage, m.B.Source, id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewParticipation(p))
}

func (api NetworkHandlerAPI) PostTerminateHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := parseInitiativeID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var m governance.Termination
	if err := json.Unmarshal(body, &m); err != nil {
		httputils.WriteJSONError(w, errors.InvalidMessage.Clone().SetData("error", err.Error()))
		return
	}
	if m.B.InitiativeID != id {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", "initiative id mismatch"))
		return
	}
	if err := m.IsWellFormed(api.networkID); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if err := api.ledger.Terminate(id, m.B.Source); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	status, found := api.ledger.GetStatus(id, api.ledger.LatestSequence())
	if !found {
		httputils.WriteJSONError(w, errors.InitiativeNotFound)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewInitiative(status))
}
