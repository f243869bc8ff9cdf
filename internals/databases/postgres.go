package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"performance_backend/internals/configs"
)

const pgUniqueViolation = "23505"

type postgresBackend struct {
	dsn string
}

func NewPostgresBackend(dsn string) Backend {
	return &postgresBackend{dsn: dsn}
}

// PostgresDSN prefers the loaded DATABASE_URL, otherwise builds one from DB_* parts.
func PostgresDSN() string {
	if configs.DatabaseURL != "" {
		return configs.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=performances&options=-c statement_timeout=3000",
		configs.GetEnv("DB_USER"),
		configs.GetEnv("DB_PASSWORD"),
		configs.GetEnv("DB_HOST", "localhost"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "require"),
	)
}

func (b *postgresBackend) Name() string { return configs.DriverPostgres }

func (b *postgresBackend) Dialector() gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  b.dsn,
		PreferSimpleProtocol: true, // 👍 PgBouncer (transaction pooling) friendly
	})
}

func (b *postgresBackend) TunePool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func (b *postgresBackend) Contains(column, needle string) clause.Expression {
	return containsExpr("strpos", column, needle)
}

func (b *postgresBackend) ColumnDefault(table, column, literal string) (clause.Expr, bool) {
	return clause.Expr{
		SQL:  "ALTER TABLE ? ALTER COLUMN ? SET DEFAULT " + quoteLiteral(literal),
		Vars: []any{clause.Table{Name: table}, clause.Column{Name: column}},
	}, true
}

// IsDuplicateKey understands both pgx and lib/pq error shapes.
func (b *postgresBackend) IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
