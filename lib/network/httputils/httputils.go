package httputils

import (
	"net/http"

	"agoranet.io/agora/lib/errors"
)

var ErrorsToStatus = map[uint]int{
	errors.UnauthorizedAccess.Code:         http.StatusForbidden,
	errors.DuplicateParticipation.Code:     http.StatusConflict,
	errors.InvalidInitiative.Code:          http.StatusBadRequest,
	errors.DeliberationExpired.Code:        http.StatusGone,
	errors.MalformedInput.Code:             http.StatusBadRequest,
	errors.InitiativeNotFound.Code:         http.StatusNotFound,
	errors.DeliberationWindowExceeded.Code: http.StatusBadRequest,

	errors.InvalidQueryString.Code:      http.StatusBadRequest,
	errors.BadRequestParameter.Code:     http.StatusBadRequest,
	errors.PageQueryLimitMaxExceed.Code: http.StatusBadRequest,
	errors.InvalidMessage.Code:          http.StatusBadRequest,
	errors.InvalidSignature.Code:        http.StatusBadRequest,
	errors.ChronicleNotFound.Code:       http.StatusServiceUnavailable,
	errors.ChronicleAlreadyExists.Code:  http.StatusConflict,

	errors.StorageRecordDoesNotExist.Code: http.StatusNotFound,
}

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, ok := ErrorsToStatus[e.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}
