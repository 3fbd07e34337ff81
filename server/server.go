// Package server provides the directory service both transports call
// into. It owns the store and translates store results into the
// empdir.Directory contract.
package server

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/store"
	"github.com/gauravscripts/empdir/types"
)

// Compile-time interface checks.
var (
	_ empdir.Connection = (*Server)(nil)
	_ empdir.Greeter    = (*Server)(nil)
)

// Server wraps a store with request logging. The gRPC service, the
// REST handler and in-process callers all share one Server so every
// transport observes the same records.
type Server struct {
	store  *store.Store
	logger zerolog.Logger
}

// New creates a new Server over st.
func New(st *store.Store, logger zerolog.Logger) *Server {
	return &Server{
		store:  st,
		logger: logger.With().Str("component", "directory").Logger(),
	}
}

// GetEmployee returns the record stored under id.
func (s *Server) GetEmployee(_ context.Context, id int32) (types.Employee, error) {
	e, err := s.store.Get(id)
	if err != nil {
		s.logger.Debug().Int32("id", id).Msg("employee not found")
		return types.Employee{}, err
	}
	return e, nil
}

// AddEmployee stores e under a fresh ID. Text that is not valid UTF-8
// is rejected, since the JSON transport could not render it faithfully.
func (s *Server) AddEmployee(_ context.Context, e types.Employee) (types.Employee, error) {
	if err := checkText(e); err != nil {
		s.logger.Debug().Err(err).Msg("employee rejected")
		return types.Employee{}, err
	}
	stored := s.store.Add(e)
	s.logger.Info().
		Int32("id", stored.ID).
		Int("departments", len(stored.Departments)).
		Msg("employee added")
	return stored, nil
}

func checkText(e types.Employee) error {
	if !utf8.ValidString(e.Name) {
		return empdir.NewBadRequestError("name", "invalid UTF-8")
	}
	for _, d := range e.Departments {
		if !utf8.ValidString(d.Name) {
			return empdir.NewBadRequestError("departments.name", "invalid UTF-8")
		}
	}
	for k, v := range e.AddressMap {
		if !utf8.ValidString(k) || !utf8.ValidString(v) {
			return empdir.NewBadRequestError("addressMap", "invalid UTF-8")
		}
	}
	return nil
}

// ListEmployees returns a snapshot of every record. Safe for
// concurrent use.
func (s *Server) ListEmployees(_ context.Context) ([]types.Employee, error) {
	return s.store.List(), nil
}

// SayHello answers the liveness greeting served next to the directory.
func (s *Server) SayHello(_ context.Context, name string) (string, error) {
	return fmt.Sprintf("Hello, %s! (via gRPC)", name), nil
}

// Store returns the underlying store for advanced use.
func (s *Server) Store() *store.Store {
	return s.store
}

// Close is a no-op for the server wrapper.
func (s *Server) Close() error { return nil }
