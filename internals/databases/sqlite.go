package database

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"performance_backend/internals/configs"
)

type sqliteBackend struct {
	path string
}

func NewSQLiteBackend(path string) Backend {
	return &sqliteBackend{path: path}
}

func (b *sqliteBackend) Name() string { return configs.DriverSQLite }

func (b *sqliteBackend) dsn() string {
	params := "_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on"
	if strings.Contains(b.path, "?") {
		return b.path + "&" + params
	}
	return b.path + "?" + params
}

func (b *sqliteBackend) Dialector() gorm.Dialector {
	return sqlite.Open(b.dsn())
}

// SQLite has a single writer; one connection avoids SQLITE_BUSY.
func (b *sqliteBackend) TunePool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
}

func (b *sqliteBackend) Contains(column, needle string) clause.Expression {
	return containsExpr("instr", column, needle)
}

// SQLite would need a table rebuild to change a default; reads normalize instead.
func (b *sqliteBackend) ColumnDefault(table, column, literal string) (clause.Expr, bool) {
	return clause.Expr{}, false
}

func (b *sqliteBackend) IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
