package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ErrDSNRequired = errors.New("database url is required for the postgres backend")

// DB represents the database connection
type DB struct {
	logger *logrus.Logger
	*gorm.DB
}

// Config holds database configuration
type Config struct {
	// DSN is a postgres connection string (URL or key=value form)
	DSN         string
	PingTimeout time.Duration
}

// NewDB opens the connection and verifies it with a ping.
func NewDB(logger *logrus.Logger, cfg *Config) (*DB, error) {
	if cfg == nil || strings.TrimSpace(cfg.DSN) == "" {
		return nil, ErrDSNRequired
	}
	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 30 * time.Second
	}

	logger.WithFields(logrus.Fields{
		"host":    dsnHost(cfg.DSN),
		"timeout": pingTimeout.String(),
	}).Info("connecting to database")

	gormDB, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql DB: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return &DB{logger: logger, DB: gormDB}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// dsnHost returns the host of a URL-form DSN, never the credentials.
func dsnHost(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
