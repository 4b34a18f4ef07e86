package sqldb

import "context"

// Row scans a single result row.
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set. Callers must Close.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Handle is the query surface shared by clients and transactions.
// Queries use `?` placeholders; dialects that number their parameters
// rebind internally.
type Handle interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error) // rows affected
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

type Client interface {
	Init() error
	Close() error
	Handle // Methods required for Handle are also required, so, promote it
	GetConf() *Conf
	Ping(ctx context.Context) error
}
