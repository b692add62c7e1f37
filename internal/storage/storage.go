package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"teamsync/internal/config"
	"teamsync/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 10
	connMaxLifetime = 30 * time.Minute
	connMaxIdleTime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

var (
	db   *gorm.DB
	once sync.Once
)

// GetDb returns the shared gorm handle, connecting on first use.
func GetDb() *gorm.DB {
	once.Do(func() {
		log := logger.GetLogger()

		connection, err := Connect(config.GetEnv().DatabaseDsn, log)
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			panic(err)
		}

		db = connection
	})

	return db
}

// Connect opens a postgres connection pool and verifies it with a ping.
func Connect(dsn string, log *slog.Logger) (*gorm.DB, error) {
	gormDb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gorm_logger.Default.LogMode(gorm_logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDb, err := gormDb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}

	sqlDb.SetMaxOpenConns(maxOpenConns)
	sqlDb.SetMaxIdleConns(maxIdleConns)
	sqlDb.SetConnMaxLifetime(connMaxLifetime)
	sqlDb.SetConnMaxIdleTime(connMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := sqlDb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established")

	return gormDb, nil
}

// Ping checks the database is reachable.
func Ping(ctx context.Context) error {
	sqlDb, err := GetDb().DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return sqlDb.PingContext(ctx)
}
