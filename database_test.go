package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMemorySession returns a connected in-memory session
func newMemorySession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(NewValidator(), testLogger())
	if err := s.Connect(context.Background(), MemoryTarget()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustExec(t *testing.T, s *Session, query string) int64 {
	t.Helper()
	n, err := s.Exec(context.Background(), query)
	if err != nil {
		t.Fatalf("exec %s: %v", query, err)
	}
	return n
}

func TestMemorySessionAccessors(t *testing.T) {
	s := newMemorySession(t)
	assert.Assert(t, s.IsInMemory())
	_, ok := s.Path()
	assert.Assert(t, !ok)
	_, ok = s.ActiveTable()
	assert.Assert(t, !ok)
	_, err := s.RequireTable()
	assert.Assert(t, errors.Is(err, ErrNoActiveTable))
}

func TestSetActiveTableOnEmptyDatabase(t *testing.T) {
	s := newMemorySession(t)
	ctx := context.Background()
	for _, name := range []string{"t", "users", "sqlite_master"} {
		err := s.SetActiveTable(ctx, name)
		assert.Assert(t, errors.Is(err, ErrNotFound), "table %s: %v", name, err)
	}
	_, ok := s.ActiveTable()
	assert.Assert(t, !ok)
}

func TestSetActiveTableErrors(t *testing.T) {
	ctx := context.Background()
	s := NewSession(NewValidator(), testLogger())

	err := s.SetActiveTable(ctx, "bad name")
	assert.Assert(t, errors.Is(err, ErrValidation))

	err = s.SetActiveTable(ctx, "t")
	assert.Assert(t, errors.Is(err, ErrConnection))
}

func TestSetActiveTable(t *testing.T) {
	s := newMemorySession(t)
	ctx := context.Background()
	mustExec(t, s, "CREATE TABLE IF NOT EXISTS t(a INTEGER)")

	assert.NilError(t, s.SetActiveTable(ctx, "t"))
	name, ok := s.ActiveTable()
	assert.Assert(t, ok)
	assert.Equal(t, name, "t")
}

func TestCreateThenProbeRoundTrip(t *testing.T) {
	s := newMemorySession(t)
	ctx := context.Background()

	def := &TableDefinition{}
	def.SetName("t")
	def.AddColumn(ColumnDefinition{Name: "a", SQLType: "INTEGER"})
	def.AddColumn(ColumnDefinition{Name: "b", SQLType: "TEXT"})
	query, err := BuildCreate(def)
	assert.NilError(t, err)
	mustExec(t, s, query)

	cols, err := s.TableColumns(ctx, "t")
	assert.NilError(t, err)
	want := []Column{{Name: "a", SQLType: "INTEGER"}, {Name: "b", SQLType: "TEXT"}}
	if diff := cmp.Diff(want, cols); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclaredTypesAreUpperCased(t *testing.T) {
	s := newMemorySession(t)
	ctx := context.Background()
	mustExec(t, s, "CREATE TABLE mixed(a integer, b varchar not null)")

	cols, err := s.TableColumns(ctx, "mixed")
	assert.NilError(t, err)
	for _, c := range cols {
		assert.Equal(t, c.SQLType, strings.ToUpper(c.SQLType))
	}
	assert.Equal(t, len(cols), 2)
	assert.Equal(t, cols[0].SQLType, "INTEGER")
	assert.Assert(t, strings.HasPrefix(cols[1].SQLType, "VARCHAR"), cols[1].SQLType)

	rs, err := s.Query(ctx, BuildProbe("mixed"))
	assert.NilError(t, err)
	for i, c := range rs.Columns {
		assert.Equal(t, c.DeclType, cols[i].SQLType)
	}
}

func TestProbeFailures(t *testing.T) {
	s := newMemorySession(t)
	ctx := context.Background()

	_, err := s.TableColumns(ctx, "missing")
	assert.Assert(t, errors.Is(err, ErrSchema))

	mustExec(t, s, "CREATE TABLE untyped(a, b)")
	_, err = s.TableColumns(ctx, "untyped")
	assert.Assert(t, errors.Is(err, ErrSchema))

	_, err = s.Columns(ctx)
	assert.Assert(t, errors.Is(err, ErrNoActiveTable))
}

func TestExecReportsStatementError(t *testing.T) {
	s := newMemorySession(t)
	_, err := s.Exec(context.Background(), "INSERT INTO nowhere VALUES (1)")
	assert.Assert(t, errors.Is(err, ErrExecution))

	var stmtErr *StatementError
	assert.Assert(t, errors.As(err, &stmtErr))
	assert.Equal(t, stmtErr.Query, "INSERT INTO nowhere VALUES (1)")
}

func TestQueryReadsRows(t *testing.T) {
	s := newMemorySession(t)
	mustExec(t, s, "CREATE TABLE t(id INTEGER, name TEXT)")
	mustExec(t, s, BuildInsert("t", []string{"1", "'ann'"}))
	mustExec(t, s, BuildInsert("t", []string{"2", "NULL"}))

	rs, err := s.Query(context.Background(), BuildSelect("t", 0, 50, &SortSpec{}))
	assert.NilError(t, err)
	assert.DeepEqual(t, rs.Columns, []ResultColumn{{Name: "id", DeclType: "INTEGER"}, {Name: "name", DeclType: "TEXT"}})
	assert.Equal(t, len(rs.Rows), 2)
	assert.Equal(t, rs.Rows[0][0], int64(1))
	assert.Equal(t, fmt.Sprintf("%s", rs.Rows[0][1]), "ann")
	assert.Equal(t, rs.Rows[1][1], nil)
}

func TestConsecutiveInsertAddsOneRow(t *testing.T) {
	s := newMemorySession(t)
	ctx := context.Background()
	mustExec(t, s, "CREATE TABLE t(id INTEGER, name TEXT)")
	mustExec(t, s, BuildInsert("t", []string{"1", "'a'"}))

	cols, err := s.TableColumns(ctx, "t")
	assert.NilError(t, err)
	n := mustExec(t, s, BuildConsecutiveInsert("t", cols))
	assert.Equal(t, n, int64(1))

	rs, err := s.Query(ctx, "SELECT COUNT(*) FROM t")
	assert.NilError(t, err)
	assert.Equal(t, rs.Rows[0][0], int64(2))
}

func TestFileSessionCanonicalPath(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s := NewSession(NewValidator(), testLogger())
	t.Cleanup(func() { s.Close() })

	rel, err := filepath.Rel(mustGetwd(t), filepath.Join(dir, "demo.db"))
	assert.NilError(t, err)
	assert.NilError(t, s.Connect(ctx, FileTarget(rel)))

	assert.Assert(t, !s.IsInMemory())
	path, ok := s.Path()
	assert.Assert(t, ok)
	want, err := filepath.EvalSymlinks(filepath.Join(dir, "demo.db"))
	assert.NilError(t, err)
	assert.Equal(t, path, want)
}

func TestReconnectClearsActiveTable(t *testing.T) {
	s := newMemorySession(t)
	ctx := context.Background()
	mustExec(t, s, "CREATE TABLE t(a INTEGER)")
	assert.NilError(t, s.SetActiveTable(ctx, "t"))

	assert.NilError(t, s.Connect(ctx, MemoryTarget()))
	_, ok := s.ActiveTable()
	assert.Assert(t, !ok)
	err := s.SetActiveTable(ctx, "t")
	assert.Assert(t, errors.Is(err, ErrNotFound))
}

func TestConnectFailure(t *testing.T) {
	s := NewSession(NewValidator(), testLogger())
	target := FileTarget(filepath.Join(t.TempDir(), "missing", "dir", "demo.db"))
	err := s.Connect(context.Background(), target)
	assert.Assert(t, errors.Is(err, ErrConnection))
}

func mustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	return wd
}
