package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors the service layer matches on. Repositories translate
// driver errors so nothing above this package imports pgx.
var (
	ErrNotFound  = errors.New("row not found")
	ErrDuplicate = errors.New("duplicate row")
)

const uniqueViolationCode = "23505"

// translate maps driver errors to the package sentinels. Unique-constraint
// violations become ErrDuplicate: the database constraint, not the
// application pre-check, is the authoritative duplicate signal.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicate
	}
	return err
}
