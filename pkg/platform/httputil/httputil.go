// Package httputil centralizes JSON encoding and domain error translation
// for the HTTP surface so every handler produces the same envelope.
package httputil

import (
	"net/http"

	json "github.com/goccy/go-json"

	dErrors "penledger/pkg/domain-errors"
)

// statusByCode maps domain error codes onto HTTP statuses.
var statusByCode = map[dErrors.Code]int{
	dErrors.CodeUnauthorized:      http.StatusForbidden,
	dErrors.CodeNotFound:          http.StatusNotFound,
	dErrors.CodeAlreadyRegistered: http.StatusConflict,
	dErrors.CodeInvalidState:      http.StatusConflict,
	dErrors.CodeNotEligible:       http.StatusUnprocessableEntity,
	dErrors.CodeInvalidInput:      http.StatusBadRequest,
	dErrors.CodeBadRequest:        http.StatusBadRequest,
	dErrors.CodeConflict:          http.StatusConflict,
	dErrors.CodeInternal:          http.StatusInternalServerError,
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the standard error envelope.
// Internal errors omit the description so implementation details never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
		code = dErrors.CodeInternal
	}

	body := map[string]string{"error": string(code)}
	if desc := dErrors.Description(err); desc != "" {
		body["error_description"] = desc
	}
	WriteJSON(w, status, body)
}

// DecodeJSON decodes the request body into dst, rejecting unparsable bodies
// with a bad_request error the caller can pass straight to WriteError.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body")
	}
	return nil
}
