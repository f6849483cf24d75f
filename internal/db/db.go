package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskmanager/internal/config"
)

// Open connects to the database selected by cfg.DBDriver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return NewMySQL(cfg.DBDSN)
	case config.DriverSQLServer:
		return NewSQLServer(cfg.DBDSN)
	case config.DriverSQLite:
		return NewSQLite(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// NewSQLServer returns a GORM DB instance backed by Microsoft SQL Server.
func NewSQLServer(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlserver.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect sqlserver: %w", err)
	}
	return db, nil
}

// NewSQLite returns a GORM DB instance backed by a SQLite file, or an
// in-memory database for ":memory:".
func NewSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	if dsn == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}
