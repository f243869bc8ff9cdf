package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"performance_backend/internals/configs"
)

// ConnectDB opens the pool for the given backend and tunes it.
func ConnectDB(backend Backend) (*gorm.DB, error) {
	log.Printf("🔌 Connecting to %s...", backend.Name())

	db, err := gorm.Open(backend.Dialector(), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", backend.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("pool %s: %w", backend.Name(), err)
	}
	backend.TunePool(sqlDB)

	log.Printf("✅ DB connected (%s).", backend.Name())
	return db, nil
}

// WarmUp pings in the background so the first request doesn't pay the dial.
func WarmUp(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
