package postgres

import "go-hr-dashboard-backend/pkg/apperror"

// storeError converts a pgx failure into a StoreFailure carrying the server's
// message and SQLSTATE. Errors without a server response (dial, timeout,
// scan) keep the generic message and the UNKNOWN_ERROR code.
func storeError(err error) error {
	return apperror.FromStore(err)
}
