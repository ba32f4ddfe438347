package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"wp-importer/config"
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25

	// DefaultMaxIdleConns is the default maximum number of idle connections
	DefaultMaxIdleConns = 5

	// DefaultConnMaxLifetime is the default maximum lifetime of a connection
	DefaultConnMaxLifetime = 5 * time.Minute

	// DefaultPingTimeout is the default timeout for pinging the database
	DefaultPingTimeout = 5 * time.Second
)

var ErrMissingDatabaseURL = errors.New("DB_URL is not set")

// Gateway is the part of a database connection the importer needs: run a
// statement, or read at most one row.
type Gateway interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

// Conn is a Gateway acquired from a Pool that must be released.
type Conn interface {
	Gateway
	Close() error
}

// Acquirer hands out one connection per request.
type Acquirer interface {
	Acquire(ctx context.Context) (Conn, error)
}

// Pool owns the *sqlx.DB. It is created once in main and injected.
type Pool struct {
	db *sqlx.DB
}

func NewPool(db *sqlx.DB) *Pool {
	return &Pool{db: db}
}

// Acquire reserves a single connection from the pool.
func (p *Pool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return conn, nil
}

// Ping checks the database with SELECT 1.
func (p *Pool) Ping(ctx context.Context) error {
	var one int
	if err := p.db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		return err
	}
	if one != 1 {
		return fmt.Errorf("unexpected SELECT 1 result: %d", one)
	}
	return nil
}

func (p *Pool) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// NewMySQLConnection opens the Ghost MySQL database with connection pooling.
func NewMySQLConnection(ctx context.Context, rawURL string, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn, err := DSNFromURL(rawURL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, DefaultMaxOpenConns))
	db.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, DefaultMaxIdleConns))
	db.SetConnMaxLifetime(orDefaultDuration(cfg.ConnMaxLifetime, DefaultConnMaxLifetime))

	pingCtx, cancel := context.WithTimeout(ctx, orDefaultDuration(cfg.PingTimeout, DefaultPingTimeout))
	defer cancel()

	if pingErr := db.PingContext(pingCtx); pingErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	return db, nil
}

// DSNFromURL accepts either a mysql:// URL or a go-sql-driver DSN and returns
// a DSN for the driver.
func DSNFromURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrMissingDatabaseURL
	}

	if !strings.HasPrefix(rawURL, "mysql://") {
		cfg, err := mysql.ParseDSN(rawURL)
		if err != nil {
			return "", fmt.Errorf("invalid database DSN: %w", err)
		}
		return cfg.FormatDSN(), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid database URL: %w", err)
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = u.Host + ":3306"
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	params := map[string]string{}
	for key, values := range u.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	if len(params) > 0 {
		cfg.Params = params
	}
	return cfg.FormatDSN(), nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func orDefaultDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
