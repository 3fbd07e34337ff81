// Package rest serves the employee directory as JSON over HTTP and
// provides the matching client.
package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/wirejson"
)

// Handler maps the REST routes onto a directory.
type Handler struct {
	dir    empdir.Directory
	logger zerolog.Logger
}

// NewHandler creates a handler over dir. dir is usually the shared
// server.Server; in proxy mode it is a dirgrpc.Client.
func NewHandler(dir empdir.Directory, logger zerolog.Logger) *Handler {
	return &Handler{
		dir:    dir,
		logger: logger.With().Str("component", "rest").Logger(),
	}
}

// RegisterRoutes adds the directory routes to r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employee/{id}", h.handleGetEmployee)
	r.Post("/employee", h.handleAddEmployee)
	r.Get("/employees", h.handleListEmployees)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	e, err := h.dir.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	body, err := wirejson.MarshalEmployee(e)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	candidate, err := wirejson.UnmarshalEmployee(raw)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	stored, err := h.dir.AddEmployee(r.Context(), candidate)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	body, err := wirejson.MarshalEmployee(stored)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.dir.ListEmployees(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	body, err := wirejson.MarshalEmployees(list)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// ParseID parses a path id. Anything that is not a 32-bit integer is
// a BadRequest on the "id" field.
func ParseID(raw string) (int32, error) {
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, empdir.NewBadRequestError("id", "expected a 32-bit integer, got "+strconv.Quote(raw))
	}
	return int32(n), nil
}
