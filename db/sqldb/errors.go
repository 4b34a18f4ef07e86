package sqldb

import "errors"

// Dialect-neutral error values. Implementations translate their driver
// errors into these so callers never import a driver package.
var (
	ErrNoRows    = errors.New("sqldb: no rows in result set")
	ErrDuplicate = errors.New("sqldb: unique constraint violation")
)
