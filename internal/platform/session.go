// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package platform manages the authenticated session with the remote
// knowledge-base platform and the interpretation of its responses. The
// platform speaks a SQL dialect over the MySQL wire protocol; every
// operation in this client is one statement executed on one Session, used
// strictly sequentially.
package platform

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/meshintel/kbctl/internal/statement"
	"github.com/meshintel/kbctl/pkg/types"
)

// Executor is the subset of Session the operation layers depend on. Tests
// substitute fakes.
type Executor interface {
	Exec(ctx context.Context, st statement.Statement) error
	Query(ctx context.Context, st statement.Statement) (*ResultSet, error)
}

// Session is an open connection to the platform. It is not safe for
// concurrent use; the client issues statements one at a time.
type Session struct {
	db      *sql.DB
	timeout time.Duration
	log     *zap.Logger
}

// BuildDSN renders the MySQL-wire connection string. The API key travels as
// the session password.
func BuildDSN(cfg types.PlatformConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/?parseTime=true&timeout=10s",
		cfg.User, cfg.APIKey, cfg.Host, cfg.Port)
}

// Connect opens and verifies a session. An authentication rejection
// surfaces here, before any operation runs.
func Connect(ctx context.Context, cfg types.PlatformConfig, log *zap.Logger) (*Session, error) {
	cfg.Defaults()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("platform api key is required")
	}

	db, err := sql.Open("mysql", BuildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening platform connection: %w", err)
	}
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StatementTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, Classify(fmt.Errorf("connecting to %s:%d: %w", cfg.Host, cfg.Port, err))
	}

	log.Info("connected to platform",
		zap.String("host", cfg.Host), zap.Int("port", cfg.Port), zap.String("user", cfg.User))

	return &Session{db: db, timeout: cfg.StatementTimeout, log: log}, nil
}

// Close releases the connection.
func (s *Session) Close() error {
	return s.db.Close()
}

// Exec runs a statement that returns no rows. Remote errors come back
// classified so callers can tell idempotent conflicts from fatal failures.
func (s *Session) Exec(ctx context.Context, st statement.Statement) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.log.Debug("executing statement", zap.String("statement", st.String()))
	if _, err := s.db.ExecContext(ctx, st.Text()); err != nil {
		return Classify(err)
	}
	return nil
}

// Query runs a statement and normalizes the response into a ResultSet.
func (s *Session) Query(ctx context.Context, st statement.Statement) (*ResultSet, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.log.Debug("executing query", zap.String("statement", st.String()))
	rows, err := s.db.QueryContext(ctx, st.Text())
	if err != nil {
		return nil, Classify(err)
	}
	defer rows.Close()

	return normalize(rows)
}
