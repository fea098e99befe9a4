package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/foundation/core/handler"
	"github.com/google/uuid"

	"github.com/contentgate/contentgate/internal/common"
)

// Error codes reported to clients. The paywall operator is free to reword
// the messages; the codes are part of the API.
const (
	codeInvalidCredentials = "InvalidPaywallCredentials"
	codeAccountProblem     = "AccountProblem"
	codeInvalidProduct     = "InvalidProduct"
	codeSessionExpired     = "SessionExpired"
	codeInvalidFormat      = "InvalidFormat"
	codeInvalidAuthScheme  = "InvalidAuthScheme"
	codeInternalError      = "InternalError"
)

// errorBody is the wire form of every failure:
//
//	{"error": {"id": ..., "code": ..., "message": ..., "resource": ...}}
//
// "id" identifies one occurrence for support correlation; "resource" echoes
// the request path. Never put secrets in "message", it reaches end users.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Resource string `json:"resource"`
}

// errorResponse renders a failure payload. The Authorization header is
// mirrored back when the client sent one, as the proxy API requires.
func errorResponse(status int, code, message string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if auth := r.Header.Get("Authorization"); auth != "" {
			w.Header().Set("Authorization", auth)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		return json.NewEncoder(w).Encode(errorBody{Error: errorDetail{
			ID:       uuid.NewString(),
			Code:     code,
			Message:  message,
			Resource: r.URL.Path,
		}})
	}
}

// errorCode maps a paywall core error to its client-facing code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, common.ErrUnknownCredentials):
		return codeInvalidCredentials
	case errors.Is(err, common.ErrAccountDisabled):
		return codeAccountProblem
	case errors.Is(err, common.ErrProductNotFound):
		return codeInvalidProduct
	case errors.Is(err, common.ErrSessionExpired):
		return codeSessionExpired
	default:
		return codeInternalError
	}
}

// serviceErrorResponse maps a paywall core error to its transport shape.
func serviceErrorResponse(err error) handler.Response {
	switch {
	case errors.Is(err, common.ErrUnknownCredentials):
		return errorResponse(http.StatusForbidden, codeInvalidCredentials,
			"The credentials you have provided are not valid.")
	case errors.Is(err, common.ErrAccountDisabled):
		return errorResponse(http.StatusForbidden, codeAccountProblem,
			"Your account is not valid. Please contact support.")
	case errors.Is(err, common.ErrProductNotFound):
		return errorResponse(http.StatusNotFound, codeInvalidProduct,
			"The requested article could not be found.")
	case errors.Is(err, common.ErrSessionExpired):
		return errorResponse(http.StatusUnauthorized, codeSessionExpired,
			"The session key provided has expired.")
	default:
		return errorResponse(http.StatusInternalServerError, codeInternalError,
			"An internal error occurred.")
	}
}
