package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/mcpseed/internal/database/common"
	"github.com/go-sql-driver/mysql"
)

type Adapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// NewWithDB wraps an already opened handle.
func NewWithDB(db *sql.DB) *Adapter {
	a := New()
	a.db = db
	return a
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = strings.TrimPrefix(url, "mysql://")

		atIndex := strings.LastIndex(dsn, "@")
		if atIndex > 0 {
			credentials := dsn[:atIndex]
			remainder := dsn[atIndex+1:]

			slashIndex := strings.Index(remainder, "/")
			if slashIndex > 0 {
				hostPort := remainder[:slashIndex]
				dbAndParams := remainder[slashIndex+1:]
				dsn = fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
			}
		}
	}

	if _, err := mysql.ParseDSN(dsn); err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return common.Unreachable(fmt.Errorf("failed to open MySQL connection: %w", err))
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	return common.Unreachable(m.db.PingContext(ctx))
}

func (m *Adapter) DatabaseExists(ctx context.Context, name string) (bool, error) {
	query, args, err := m.qb.Select("COUNT(*)").
		From("information_schema.SCHEMATA").
		Where(squirrel.Eq{"SCHEMA_NAME": name}).
		ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := m.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to look up database %s: %w", name, err)
	}
	return n > 0, nil
}

func (m *Adapter) CreateDatabase(ctx context.Context, name string) error {
	if err := common.CheckIdentifiers(name); err != nil {
		return err
	}
	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s CHARACTER SET utf8mb4", quote(name))
	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

// Begin opens the seeding transaction. MySQL commits DDL implicitly, so the
// CREATE TABLE statements of a domain are durable even if the row work is
// later rolled back.
func (m *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return common.NewSQLTx(tx, m.dialect()), nil
}

func (m *Adapter) dialect() common.Dialect {
	return common.Dialect{
		QB:           m.qb,
		Quote:        quote,
		RandomFunc:   "RAND()",
		CreateTable:  m.GenerateCreateTableSQL,
		IsConstraint: isConstraintViolation,
	}
}

// TruncateAll empties every table of the current database on a single
// connection with foreign key checks suspended.
func (m *Adapter) TruncateAll(ctx context.Context) error {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return common.Unreachable(err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
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

	if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		return err
	}
	defer conn.ExecContext(context.Background(), "SET FOREIGN_KEY_CHECKS = 1")

	for _, table := range tables {
		if _, err := conn.ExecContext(ctx, "TRUNCATE TABLE "+quote(table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// isConstraintViolation matches duplicate key, foreign key and NOT NULL
// errors.
func isConstraintViolation(err error) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	switch myErr.Number {
	case 1048, 1062, 1216, 1217, 1451, 1452:
		return true
	}
	return false
}
