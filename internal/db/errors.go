package db

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("duplicate key")
	ErrInvalidData = errors.New("invalid data")
)

const pgUniqueViolation = "23505"

// translate maps driver errors onto the store sentinels, keeping the cause
// in the message.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(ErrNotFound, op)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(ErrDuplicate, op)
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return errors.Wrap(ErrInvalidData, op)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return errors.Wrap(ErrDuplicate, op)
		// class 22 is data exception, class 23 integrity constraint violation
		case len(pgErr.Code) == 5 && (pgErr.Code[:2] == "22" || pgErr.Code[:2] == "23"):
			return errors.Wrapf(ErrInvalidData, "%s: %s", op, pgErr.Message)
		}
	}

	return errors.Wrap(err, op)
}
