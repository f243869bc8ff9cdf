package configs

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultSQLitePath = "events.db"
)

var (
	Port           string
	DBDriver       string
	DatabaseURL    string
	SQLitePath     string
	AppTimezone    string
	RequestTimeout time.Duration
	AllowOrigins   string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" && os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env file not found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on a hosted environment, using system ENV")
	}

	Port = GetEnv("PORT", "3000")
	DatabaseURL = GetEnv("DATABASE_URL")
	SQLitePath = GetEnv("SQLITE_PATH", DefaultSQLitePath)
	AppTimezone = GetEnv("APP_TIMEZONE", "Asia/Seoul")
	AllowOrigins = GetEnv("CORS_ALLOW_ORIGINS", "*")
	DBDriver = ResolveDriver(GetEnv("DB_DRIVER"), DatabaseURL, GetEnv("DB_HOST"))

	RequestTimeout = 5 * time.Second
	if v := GetEnv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			RequestTimeout = d
		} else {
			log.Printf("⚠️ REQUEST_TIMEOUT=%q invalid, keeping %s", v, RequestTimeout)
		}
	}

	log.Printf("✅ Storage backend: %s", DBDriver)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// ResolveDriver picks the storage backend once at startup.
// An explicit DB_DRIVER wins; otherwise any networked DB setting selects postgres.
func ResolveDriver(explicit, databaseURL, dbHost string) string {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case "sqlite", "sqlite3":
		return DriverSQLite
	case "postgres", "postgresql", "pg":
		return DriverPostgres
	case "":
	default:
		log.Printf("⚠️ DB_DRIVER=%q unknown, falling back to auto detection", explicit)
	}
	if strings.TrimSpace(databaseURL) != "" || strings.TrimSpace(dbHost) != "" {
		return DriverPostgres
	}
	return DriverSQLite
}

// Location returns the timezone used to compute "today" for the default view.
func Location() *time.Location {
	if AppTimezone != "" {
		if loc, err := time.LoadLocation(AppTimezone); err == nil {
			return loc
		}
		log.Printf("⚠️ APP_TIMEZONE=%q invalid, using UTC", AppTimezone)
	}
	return time.UTC
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      ParseLogLevel(GetEnv("DB_LOG_LEVEL", "warn")),
	}
}

func ParseLogLevel(s string) gormLogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
