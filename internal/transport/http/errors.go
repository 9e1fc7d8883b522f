package http

import (
	"errors"
	"net/http"

	"github.com/light-bringer/fnb-pricing-service/internal/app/pricing/domain"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errInvalidPayload = errors.New("invalid request payload")

// mapDomainErrorToHTTP converts domain errors to a status code and stable error code.
func mapDomainErrorToHTTP(err error) (int, ErrorResponse) {
	kind := domain.KindOf(err)
	resp := ErrorResponse{Code: kind.String(), Message: err.Error()}

	switch kind {
	case domain.KindMalformedRecord:
		return http.StatusBadRequest, resp
	case domain.KindModelUnavailable:
		return http.StatusServiceUnavailable, resp
	case domain.KindJoinMismatch, domain.KindUndefinedLift:
		return http.StatusUnprocessableEntity, resp
	case domain.KindCommitFailure:
		return http.StatusInternalServerError, resp
	case domain.KindNotFound:
		return http.StatusNotFound, resp
	}

	if errors.Is(err, errInvalidPayload) {
		return http.StatusBadRequest, ErrorResponse{Code: "INVALID_PAYLOAD", Message: err.Error()}
	}
	// Internal errors are not leaked to clients
	return http.StatusInternalServerError, ErrorResponse{Code: kind.String(), Message: "internal server error"}
}
