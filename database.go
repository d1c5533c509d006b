package main

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const memoryDSN = ":memory:"

// Target selects the database a Session connects to
type Target struct {
	path   string
	memory bool
}

// FileTarget is a database file at path, created on first use.
func FileTarget(path string) Target { return Target{path: path} }

// MemoryTarget is a private in-memory database.
func MemoryTarget() Target { return Target{memory: true} }

func (t Target) dsn() string {
	if t.memory {
		return memoryDSN
	}
	return t.path
}

// Session owns the single database connection and the active table
type Session struct {
	db          *sql.DB
	target      Target
	displayPath string
	activeTable string
	validator   *Validator
	log         *slog.Logger
}

func NewSession(v *Validator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		validator: v,
		target:    MemoryTarget(),
		log:       logger.With("session", uuid.NewString()),
	}
}

// Connect opens target, replacing any previous connection. The active
// table belongs to the old database and is cleared.
func (s *Session) Connect(ctx context.Context, target Target) error {
	db, err := sql.Open("sqlite3", target.dsn())
	if err != nil {
		return errors.Wrap(ErrConnection, err.Error())
	}
	// every pooled connection to :memory: would be a separate database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return errors.Wrapf(ErrConnection, "open %s: %v", target.dsn(), err)
	}

	displayPath := ""
	if !target.memory {
		abs, err := filepath.Abs(target.path)
		if err == nil {
			abs, err = filepath.EvalSymlinks(abs)
		}
		if err != nil {
			db.Close()
			return errors.Wrapf(ErrConnection, "resolve %s: %v", target.path, err)
		}
		displayPath = abs
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.log.Warn("closing previous connection failed", "error", err)
		}
	}
	s.db = db
	s.target = target
	s.displayPath = displayPath
	s.activeTable = ""
	s.log.Info("connected", "in_memory", target.memory, "path", displayPath)
	return nil
}

// Close closes the connection. It is safe to call without one.
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Session) IsInMemory() bool { return s.target.memory }

// Path returns the canonical path of a file-backed database.
func (s *Session) Path() (string, bool) {
	if s.target.memory {
		return "", false
	}
	return s.displayPath, true
}

func (s *Session) ActiveTable() (string, bool) {
	return s.activeTable, s.activeTable != ""
}

// RequireTable returns the active table or ErrNoActiveTable.
func (s *Session) RequireTable() (string, error) {
	if s.activeTable == "" {
		return "", ErrNoActiveTable
	}
	return s.activeTable, nil
}

// SetActiveTable makes name the active table once the catalog confirms it
// exists. Nothing keeps the table alive afterwards.
func (s *Session) SetActiveTable(ctx context.Context, name string) error {
	if err := s.validator.CheckIdentifier(name); err != nil {
		return err
	}
	if s.db == nil {
		return errors.Wrap(ErrConnection, "connection is not set")
	}

	rows, err := s.db.QueryContext(ctx, BuildCatalogLookup(name))
	if err != nil {
		return newStatementError(BuildCatalogLookup(name), err)
	}
	defer rows.Close()
	exists := rows.Next()
	if err := rows.Err(); err != nil {
		return newStatementError(BuildCatalogLookup(name), err)
	}
	if !exists {
		return errors.Wrapf(ErrNotFound, "table %s does not exist", name)
	}

	s.activeTable = name
	s.log.Debug("active table set", "table", name)
	return nil
}

// Columns probes the active table's columns.
func (s *Session) Columns(ctx context.Context) ([]Column, error) {
	name, err := s.RequireTable()
	if err != nil {
		return nil, err
	}
	return s.TableColumns(ctx, name)
}

// TableColumns reads name and declared type of every column of table
// without fetching rows. Columns without a declared type are skipped.
func (s *Session) TableColumns(ctx context.Context, table string) ([]Column, error) {
	if s.db == nil {
		return nil, errors.Wrap(ErrConnection, "connection is not set")
	}
	query := BuildProbe(table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(ErrSchema, "probe %s: %v", table, err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.Wrapf(ErrSchema, "probe %s: %v", table, err)
	}
	var cols []Column
	for _, ct := range types {
		declType := declaredType(ct)
		if declType == "" {
			continue
		}
		cols = append(cols, Column{Name: ct.Name(), SQLType: declType})
	}
	if len(cols) == 0 {
		return nil, errors.Wrapf(ErrSchema, "table %s", table)
	}
	return cols, nil
}

// Exec runs a single statement and returns the number of affected rows
func (s *Session) Exec(ctx context.Context, query string) (int64, error) {
	if s.db == nil {
		return 0, errors.Wrap(ErrConnection, "connection is not set")
	}
	s.log.Debug("exec", "query", query)
	res, err := s.db.ExecContext(ctx, query)
	if err != nil {
		s.log.Info("statement rejected", "query", query, "error", err)
		return 0, newStatementError(query, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, newStatementError(query, err)
	}
	return n, nil
}

// ResultColumn is a result column with its declared type, empty for
// expressions
type ResultColumn struct {
	Name     string
	DeclType string
}

// ResultSet is a fully read query result
type ResultSet struct {
	Columns []ResultColumn
	Rows    [][]interface{}
}

// Query runs query and reads every row into memory
func (s *Session) Query(ctx context.Context, query string) (*ResultSet, error) {
	if s.db == nil {
		return nil, errors.Wrap(ErrConnection, "connection is not set")
	}
	s.log.Debug("query", "query", query)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, newStatementError(query, err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, newStatementError(query, err)
	}
	rs := &ResultSet{Columns: make([]ResultColumn, len(types))}
	for i, ct := range types {
		rs.Columns[i] = ResultColumn{Name: ct.Name(), DeclType: declaredType(ct)}
	}

	for rows.Next() {
		valPtrs := make([]interface{}, len(types))
		vals := make([]interface{}, len(types))
		for i := range types {
			valPtrs[i] = &vals[i]
		}
		if err := rows.Scan(valPtrs...); err != nil {
			return nil, newStatementError(query, err)
		}
		rs.Rows = append(rs.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, newStatementError(query, err)
	}
	return rs, nil
}

// declaredType is the column's declared type in upper case. The driver
// passes some declarations through as written.
func declaredType(ct *sql.ColumnType) string {
	return strings.ToUpper(ct.DatabaseTypeName())
}
