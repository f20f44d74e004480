package httputils

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/errors"
)

func TestProblem(t *testing.T) {
	router := mux.NewRouter()

	statusProblem := NewStatusProblem(http.StatusBadRequest)
	detailedStatusProblem := NewDetailedStatusProblem(http.StatusBadRequest, "parameters are not enough")
	errorProblem := NewErrorProblem(errors.InvalidInitiative, http.StatusBadRequest)

	router.HandleFunc("/problem_status_default", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 400, statusProblem)
	})

	router.HandleFunc("/problem_status_with_detail", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 400, detailedStatusProblem)
	})

	router.HandleFunc("/problem_with_error", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 400, errorProblem)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	{ // problem_status_default
		resp, err := http.Get(ts.URL + "/problem_status_default")
		require.NoError(t, err)
		defer resp.Body.Close()

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var f interface{}
		common.MustUnmarshalJSON(readByte, &f)
		m := f.(map[string]interface{})
		require.Equal(t, statusProblem.Type, m["type"])
		require.Equal(t, statusProblem.Title, m["title"])
		require.Equal(t, float64(statusProblem.Status), m["status"])
		require.Empty(t, m["detail"])
		require.Empty(t, m["instance"])
	}

	{ // problem_status_with_detail
		resp, err := http.Get(ts.URL + "/problem_status_with_detail")
		require.NoError(t, err)
		defer resp.Body.Close()

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var f interface{}
		common.MustUnmarshalJSON(readByte, &f)
		m := f.(map[string]interface{})
		require.Equal(t, "parameters are not enough", m["detail"])
	}

	{ // problem_with_error
		resp, err := http.Get(ts.URL + "/problem_with_error")
		require.NoError(t, err)
		defer resp.Body.Close()

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var f interface{}
		common.MustUnmarshalJSON(readByte, &f)
		m := f.(map[string]interface{})
		require.Equal(t, errors.InvalidInitiative.Message, m["title"])
		require.Equal(t, float64(errors.InvalidInitiative.Code), m["code"])
	}
}

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONError(rec, errors.InitiativeNotFound)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	WriteJSONError(rec, errors.UnauthorizedAccess)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
