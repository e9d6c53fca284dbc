package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidReference wraps foreign key violations (SQLSTATE 23503).
	ErrInvalidReference = errors.New("invalid reference")
	// ErrDuplicate wraps unique/primary key violations (SQLSTATE 23505).
	ErrDuplicate = errors.New("duplicate key")
	// ErrInvalidValue wraps data exceptions (SQLSTATE class 22), such as a
	// numeric overflow.
	ErrInvalidValue = errors.New("invalid value")
)

// translate maps driver and gorm errors onto the repository sentinels.
// Anything else is returned untouched so that callers can still inspect
// the underlying *pgconn.PgError (deadlocks, serialization failures).
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
		case "23505":
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		}
		if strings.HasPrefix(pgErr.Code, "22") {
			return fmt.Errorf("%w: %s", ErrInvalidValue, pgErr.Message)
		}
	}
	return err
}

// affected turns a zero-row UPDATE/DELETE into ErrNotFound.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
