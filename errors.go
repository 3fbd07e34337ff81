package empdir

import (
	"errors"
	"fmt"
)

// NotFoundError signals that no record is stored under the requested
// ID. Transports surface it natively: codes.NotFound on gRPC, 404 on
// HTTP.
type NotFoundError struct {
	ID int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("employee %d not found", e.ID)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(id int32) *NotFoundError {
	return &NotFoundError{ID: id}
}

// IsNotFound checks whether an error is a NotFoundError and returns it.
func IsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// BadRequestError signals a request the directory cannot decode:
// malformed JSON, a value of the wrong type, or an unparsable path
// parameter. Field is empty when the problem is not tied to one field.
type BadRequestError struct {
	Field  string
	Reason string
}

func (e *BadRequestError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bad request: %s", e.Reason)
	}
	return fmt.Sprintf("bad request: field %q: %s", e.Field, e.Reason)
}

// NewBadRequestError creates a new BadRequestError.
func NewBadRequestError(field, reason string) *BadRequestError {
	return &BadRequestError{Field: field, Reason: reason}
}

// IsBadRequest checks whether an error is a BadRequestError and returns it.
func IsBadRequest(err error) (*BadRequestError, bool) {
	var br *BadRequestError
	if errors.As(err, &br) {
		return br, true
	}
	return nil, false
}
