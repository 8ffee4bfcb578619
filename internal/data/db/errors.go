package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrDuplicate    = errors.New("duplicate key")
	ErrForeignKey   = errors.New("referenced row does not exist")
	// ErrInvalidValue is a value the column rejects: a failed CHECK or a
	// numeric overflow.
	ErrInvalidValue = errors.New("value rejected by column constraint")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOverflow     = "22003"
)

// Classify maps driver-specific constraint failures onto ErrDuplicate,
// ErrForeignKey and ErrInvalidValue. Other errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrForeignKey) || errors.Is(err, ErrInvalidValue) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Join(ErrDuplicate, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errors.Join(ErrForeignKey, err)
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return errors.Join(ErrInvalidValue, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Join(ErrDuplicate, err)
		case pgForeignKeyViolation:
			return errors.Join(ErrForeignKey, err)
		case pgCheckViolation, pgNumericOverflow:
			return errors.Join(ErrInvalidValue, err)
		}
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return errors.Join(ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return errors.Join(ErrForeignKey, err)
	case strings.Contains(msg, "CHECK constraint failed"):
		return errors.Join(ErrInvalidValue, err)
	}
	return err
}
