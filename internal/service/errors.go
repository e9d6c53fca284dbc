package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/EliasMeh/ExamenBDD/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error categories. Handlers switch on them with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConflict          = errors.New("conflict")
	ErrTransient         = errors.New("transient store error")
)

const msgTransient = "Service temporarily unavailable, please retry"

// Error is a categorised failure carrying a message safe to show to clients.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error { return unwrapAll(e.Kind, e.Err) }

func newError(kind error, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// PlacementError reports why an order placement was rejected. Line is the
// zero-based index of the offending line, -1 when the order header is at fault.
type PlacementError struct {
	Kind      error
	Line      int
	ProduitID int64
	Msg       string
	Err       error
}

func (e *PlacementError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (e *PlacementError) Unwrap() []error { return unwrapAll(e.Kind, e.Err) }

func unwrapAll(errs ...error) []error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// Message returns the client-facing text of err, or fallback when err does
// not carry one.
func Message(err error, fallback string) string {
	var pe *PlacementError
	if errors.As(err, &pe) {
		return pe.Msg
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Msg
	}
	return fallback
}

// isRetryable reports deadlocks and serialization failures: the transaction
// was rolled back by the server and may succeed if replayed.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40P01" || pgErr.Code == "40001"
	}
	return false
}

func transient(err error) error {
	return newError(ErrTransient, msgTransient, err)
}

// storeError maps repository failures for entity operations.
func storeError(entity string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return newError(ErrNotFound, entity+" not found", err)
	case errors.Is(err, repository.ErrDuplicate):
		return newError(ErrConflict, entity+" already exists", err)
	case errors.Is(err, repository.ErrInvalidReference):
		return newError(ErrValidation, "Invalid reference to a related record", err)
	case errors.Is(err, repository.ErrInvalidValue):
		return newError(ErrValidation, entity+" has a value out of range", err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return transient(err)
	}
	return err
}

// deleteError is storeError for deletions, where a foreign key violation
// means the row is still referenced.
func deleteError(entity string, err error) error {
	if errors.Is(err, repository.ErrInvalidReference) {
		return newError(ErrConflict, entity+" is still referenced", err)
	}
	return storeError(entity, err)
}
