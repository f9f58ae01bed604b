package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/h4ks-com/expense-tracker/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePragmas = "_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"

type Option func(*gorm.Config)

// WithLogLevel sets the GORM query logger level. Queries are silent by default.
func WithLogLevel(level logger.LogLevel) Option {
	return func(c *gorm.Config) {
		c.Logger = logger.Default.LogMode(level)
	}
}

// Connect opens the store named by databaseURL. An empty URL or ":memory:"
// yields a private in-memory SQLite database, "sqlite:<path>" a file-backed
// one; anything else is handed to the PostgreSQL driver.
func Connect(databaseURL string, opts ...Option) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	for _, opt := range opts {
		opt(config)
	}

	var (
		db       *gorm.DB
		err      error
		inMemory bool
	)

	switch {
	case databaseURL == "" || databaseURL == ":memory:" || databaseURL == "sqlite::memory:":
		inMemory = true
		db, err = gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), config)
	case strings.HasPrefix(databaseURL, "sqlite:"):
		dbPath := strings.TrimPrefix(databaseURL, "sqlite:")
		separator := "?"
		if strings.Contains(dbPath, "?") {
			separator = "&"
		}
		db, err = gorm.Open(sqlite.Open(dbPath+separator+sqlitePragmas), config)
	default:
		db, err = gorm.Open(postgres.Open(databaseURL), config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if inMemory {
		// Every new connection to ":memory:" is a fresh, empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	slog.Info("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Expense{},
	)

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed")
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
