package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	lowimpl "github.com/go-sql-driver/mysql"

	"github.com/invoicepress/invoicepress/db/sqldb"
)

func Register() {
	sqldb.RegisterFactory("mysql", func(conf *sqldb.Conf) (sqldb.Client, error) {
		return &Client{Conf: conf}, nil
	})
}

type Client struct {
	Conf *sqldb.Conf
	db   *sql.DB
	dsn  string
}

// Ensure mysql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func (c *Client) Init() error {
	if c.Conf.DSN != "" {
		c.dsn = c.Conf.DSN
	} else {
		c.dsn = fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=%s",
			c.Conf.User,
			c.Conf.PW,
			c.Conf.Host,
			c.Conf.Port,
			c.Conf.DB,
			url.QueryEscape(c.Conf.TZ),
		)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Open(ctx); err != nil {
		return err
	}
	if err := c.Ping(ctx); err != nil {
		return fmt.Errorf("mysql ping failed: %w", err)
	}
	log.Print("[INFO] mysql client initialized")
	return nil
}

func (c *Client) Open(_ context.Context) error {
	db, err := sql.Open("mysql", c.dsn)
	if err != nil {
		return fmt.Errorf("failed to open mysql handle: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(3 * time.Minute)
	c.db = db
	return nil
}

func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	log.Println("[INFO] closing mysql client")
	return c.db.Close()
}

func (c *Client) GetConf() *sqldb.Conf {
	return c.Conf
}

func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Client) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateErr(err)
	}
	return res.RowsAffected()
}

func (c *Client) Query(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	return &rowsAdapter{rows: rows}, nil
}

func (c *Client) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	return &rowAdapter{row: c.db.QueryRowContext(ctx, query, args...)}
}

// translateErr maps driver errors to the dialect-neutral sqldb values.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return sqldb.ErrNoRows
	}
	var myErr *lowimpl.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 { // ER_DUP_ENTRY
		return fmt.Errorf("%w: %s", sqldb.ErrDuplicate, myErr.Message)
	}
	return err
}

type rowsAdapter struct {
	rows *sql.Rows
}

func (r *rowsAdapter) Next() bool {
	return r.rows.Next()
}

func (r *rowsAdapter) Scan(dest ...any) error {
	return translateErr(r.rows.Scan(dest...))
}

func (r *rowsAdapter) Err() error {
	return translateErr(r.rows.Err())
}

func (r *rowsAdapter) Close() {
	if err := r.rows.Close(); err != nil {
		log.Printf("[ERROR] closing mysql rows: %v", err)
	}
}

type rowAdapter struct {
	row *sql.Row
}

func (r *rowAdapter) Scan(dest ...any) error {
	return translateErr(r.row.Scan(dest...))
}
