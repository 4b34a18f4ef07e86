package kvdb

import (
	"context"
	"time"
)

// Client is the key-value surface the app consumes: expiring session
// markers written on unlock and checked on every gated request.
type Client interface {
	Init() error
	Close() error
	GetConf() *Conf

	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}
