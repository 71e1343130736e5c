package apperror

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// FromStore converts a data store failure into a StoreFailure. AppErrors pass
// through unchanged, Postgres errors keep the server's message and SQLSTATE,
// and anything else gets the generic message with UNKNOWN_ERROR.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return Store(pgErr.Message, pgErr.Code, err)
	}
	return Store("", "", err)
}
