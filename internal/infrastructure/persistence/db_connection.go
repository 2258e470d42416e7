package persistence

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenCatalog connects to the configured database and migrates the key pair schema
func OpenCatalog(settings config.DatabaseSettings) (*gorm.DB, error) {
	db, err := NewDBConnection(settings)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		if closeErr := CloseDB(db); closeErr != nil {
			log.Printf("warning: failed to close database after migration error: %v\n", closeErr)
		}
		return nil, err
	}
	return db, nil
}

// NewDBConnection creates a database connection based on settings
func NewDBConnection(settings config.DatabaseSettings) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	switch settings.Type {
	case config.PostgresDbType:
		return connectPostgres(settings, gormConfig)
	case config.SqliteDbType:
		return connectSQLite(settings, gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", settings.Type)
	}
}

// connectPostgres connects to settings.DSN and, when Name is set, creates that database if needed
// and reconnects to it
func connectPostgres(settings config.DatabaseSettings, gormConfig *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(settings.DSN), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if settings.Name == "" {
		return db, nil
	}

	var exists bool
	if err := db.Raw("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = ?)", settings.Name).Scan(&exists).Error; err != nil {
		return nil, fmt.Errorf("failed to look up database '%s': %w", settings.Name, err)
	}
	if !exists {
		if err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", quoteIdentifier(settings.Name))).Error; err != nil {
			return nil, fmt.Errorf("failed to create database '%s': %w", settings.Name, err)
		}
	}

	if err := CloseDB(db); err != nil {
		return nil, fmt.Errorf("failed to close initial DB connection: %w", err)
	}

	dsn := fmt.Sprintf("%s dbname=%s", settings.DSN, settings.Name)
	db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database '%s': %w", settings.Name, err)
	}
	return db, nil
}

// connectSQLite opens a file database, creating its directory, or an in-memory one for an empty DSN
func connectSQLite(settings config.DatabaseSettings, gormConfig *gorm.Config) (*gorm.DB, error) {
	dsn := settings.DSN
	if dsn == "" {
		dsn = ":memory:"
	}

	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(filepath.Clean(dsn)), 0750); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}

	// a second pooled connection to ":memory:" would see an empty database
	if dsn == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get raw DB connection: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// DropDatabase drops a PostgreSQL database (test cleanup utility)
func DropDatabase(adminDSN, dbName string) error {
	db, err := gorm.Open(postgres.Open(adminDSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer func() {
		if err := CloseDB(db); err != nil {
			log.Printf("Warning: failed to close database connection: %v", err)
		}
	}()

	err = db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", quoteIdentifier(dbName))).Error
	if err != nil {
		return fmt.Errorf("failed to drop database '%s': %w", dbName, err)
	}

	return nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
