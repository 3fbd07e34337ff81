package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gauravscripts/empdir"
)

// Error codes carried in error bodies.
const (
	CodeNotFound     = "not_found"
	CodeBadRequest   = "bad_request"
	CodeBodyTooLarge = "body_too_large"
	CodeInternal     = "internal"
)

// ErrorBody is the JSON body of every non-2xx response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeFail(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{Code: code, Message: message})
}

// writeError maps directory errors onto HTTP statuses. Unexpected
// errors are logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	if nf, ok := empdir.IsNotFound(err); ok {
		writeFail(w, http.StatusNotFound, CodeNotFound, nf.Error())
		return
	}
	if br, ok := empdir.IsBadRequest(err); ok {
		writeFail(w, http.StatusBadRequest, CodeBadRequest, br.Error())
		return
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeFail(w, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, tooLarge.Error())
		return
	}
	logger.Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", RequestIDFrom(r.Context())).
		Msg("directory call failed")
	writeFail(w, http.StatusInternalServerError, CodeInternal, "internal error")
}
