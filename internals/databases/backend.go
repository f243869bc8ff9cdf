package database

import (
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"performance_backend/internals/configs"
)

// Backend hides everything that differs between storage engines: driver,
// DSN shape, pool limits, the substring function and the duplicate-key error.
// One Backend is chosen at startup; callers never branch on the dialect.
type Backend interface {
	Name() string
	Dialector() gorm.Dialector
	TunePool(sqlDB *sql.DB)
	// Contains matches rows whose column holds needle as a plain substring (no wildcards).
	Contains(column, needle string) clause.Expression
	IsDuplicateKey(err error) bool
	// ColumnDefault returns the DDL that replaces a column default, or false
	// when the engine can't alter defaults in place.
	ColumnDefault(table, column, literal string) (clause.Expr, bool)
}

// NewBackend builds the strategy for the configured driver.
func NewBackend(driver string) (Backend, error) {
	switch driver {
	case configs.DriverPostgres:
		return NewPostgresBackend(PostgresDSN()), nil
	case configs.DriverSQLite, "":
		path := configs.SQLitePath
		if path == "" {
			path = configs.DefaultSQLitePath
		}
		return NewSQLiteBackend(path), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: sqlite, postgres)", driver)
	}
}

// quoteLiteral renders s as a single-quoted SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// containsExpr renders fn(column, needle) > 0 with the column quoted by the dialect.
func containsExpr(fn, column, needle string) clause.Expression {
	return clause.Expr{
		SQL:  fn + "(?, ?) > 0",
		Vars: []any{clause.Column{Name: column}, needle},
	}
}
