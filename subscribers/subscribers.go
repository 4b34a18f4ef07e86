// Package subscribers implements the email-capture list: one table, unique
// emails, newest first.
package subscribers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/invoicepress/invoicepress/db/sqldb"
)

var ErrDuplicateEmail = errors.New("subscribers: email already subscribed")

type Subscriber struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is what the HTTP handlers need; SQLStore is the real implementation.
type Store interface {
	Create(ctx context.Context, email string) (*Subscriber, error)
	ListAll(ctx context.Context) ([]Subscriber, error)
}

type SQLStore struct {
	DB sqldb.Client
}

// Ensure SQLStore implements Store
var _ Store = (*SQLStore)(nil)

// EnsureSchema creates the subscribers table if missing.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	var ddl string
	switch s.DB.GetConf().Type {
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS subscribers (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	default: // pgsql
		ddl = `CREATE TABLE IF NOT EXISTS subscribers (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	}
	if _, err := s.DB.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure subscribers schema: %w", err)
	}
	return nil
}

// Create inserts a new subscriber. A unique-constraint hit maps to
// ErrDuplicateEmail.
func (s *SQLStore) Create(ctx context.Context, email string) (*Subscriber, error) {
	var sub Subscriber
	var err error

	switch s.DB.GetConf().Type {
	case "mysql":
		// No RETURNING: insert, then read the row back by its unique key.
		if _, err = s.DB.Exec(ctx, `INSERT INTO subscribers (email) VALUES (?)`, email); err == nil {
			err = s.DB.QueryRow(ctx,
				`SELECT id, email, created_at FROM subscribers WHERE email = ?`, email,
			).Scan(&sub.ID, &sub.Email, &sub.CreatedAt)
		}
	default: // pgsql
		err = s.DB.QueryRow(ctx,
			`INSERT INTO subscribers (email) VALUES (?) RETURNING id, email, created_at`, email,
		).Scan(&sub.ID, &sub.Email, &sub.CreatedAt)
	}

	if err != nil {
		if errors.Is(err, sqldb.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &sub, nil
}

// ListAll returns every subscriber, newest first.
func (s *SQLStore) ListAll(ctx context.Context) ([]Subscriber, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT id, email, created_at FROM subscribers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]Subscriber, 0)
	for rows.Next() {
		var sub Subscriber
		if err = rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}
