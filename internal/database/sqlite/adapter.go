package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/mcpseed/internal/database/common"
	"github.com/mattn/go-sqlite3"
)

// Adapter maps each database name to a file <dir>/<name>.db. Connected to a
// directory it only provisions files; connected to a file it seeds it.
type Adapter struct {
	db   *sql.DB
	qb   squirrel.StatementBuilderType
	dir  string
	path string
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	target := strings.TrimPrefix(url, "sqlite://")
	if idx := strings.Index(target, "?"); idx > 0 {
		target = target[:idx]
	}

	if filepath.Ext(target) == "" {
		s.dir = target
		return nil
	}

	s.path = target
	s.dir = filepath.Dir(target)

	db, err := sql.Open("sqlite3", dsn(target))
	if err != nil {
		return common.Unreachable(fmt.Errorf("failed to open SQLite connection: %w", err))
	}

	// A domain holds one long transaction; a second connection would only
	// wait on the file lock.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
}

func dsn(path string) string {
	return path + "?_foreign_keys=1&_busy_timeout=5000"
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	if s.db == nil {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return common.Unreachable(err)
		}
		return nil
	}
	return common.Unreachable(s.db.PingContext(ctx))
}

func (s *Adapter) filePath(name string) string {
	return filepath.Join(s.dir, name+".db")
}

func (s *Adapter) DatabaseExists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(s.filePath(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to look up database %s: %w", name, err)
}

// CreateDatabase creates the database file by opening it once.
func (s *Adapter) CreateDatabase(ctx context.Context, name string) error {
	if err := common.CheckIdentifiers(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sql.Open("sqlite3", dsn(s.filePath(name)))
	if err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

func (s *Adapter) requireFile() error {
	if s.db == nil {
		return fmt.Errorf("sqlite adapter is connected to directory %s, not a database file", s.dir)
	}
	return nil
}

func (s *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	if err := s.requireFile(); err != nil {
		return nil, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return common.NewSQLTx(tx, common.Dialect{
		QB:           s.qb,
		Quote:        quote,
		RandomFunc:   "RANDOM()",
		CreateTable:  s.GenerateCreateTableSQL,
		IsConstraint: isConstraintViolation,
	}), nil
}

// TruncateAll deletes every row of every table in one transaction and resets
// the AUTOINCREMENT counters.
func (s *Adapter) TruncateAll(ctx context.Context) error {
	if err := s.requireFile(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		tables = append(tables, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+quote(table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	var hasSequence int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'sqlite_sequence'`,
	).Scan(&hasSequence); err != nil {
		return err
	}
	if hasSequence > 0 {
		if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence"); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func isConstraintViolation(err error) bool {
	var sqErr sqlite3.Error
	return errors.As(err, &sqErr) && sqErr.Code == sqlite3.ErrConstraint
}
