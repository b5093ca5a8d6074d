package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	dErrors "diddht/pkg/domain-errors"
)

// maxBodyBytes caps request bodies; agent calls carry small JSON argument objects.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error to its HTTP status and error body.
// Internal errors never expose their description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	resp := errorResponse{Error: string(code)}
	if code != dErrors.CodeInternal {
		resp.ErrorDescription = err.Error()
	}
	WriteJSON(w, StatusFor(code), resp)
}

// StatusFor returns the HTTP status used for a domain error code.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidNetwork:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeNotImplemented:
		return http.StatusNotImplemented
	case dErrors.CodePublishFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON reads a JSON body into T. An empty body decodes to the zero value.
func DecodeJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, nil
		}
		return v, dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
	}
	return v, nil
}
