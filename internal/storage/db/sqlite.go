package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ HealthChecker = (*SQLiteClient)(nil)

// SQLiteClient is an embedded database handle used when no Postgres server is available.
type SQLiteClient struct {
	*gorm.DB
}

// NewSQLiteClient opens the SQLite database at path.
// Transactions start with BEGIN IMMEDIATE so concurrent writers queue instead of failing.
func NewSQLiteClient(path string) (*SQLiteClient, error) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	return &SQLiteClient{DB: db}, nil
}

func (c *SQLiteClient) IsHealthy(ctx context.Context) (bool, error) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return false, fmt.Errorf("get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return false, fmt.Errorf("ping sqlite: %w", err)
	}
	return true, nil
}

func (c *SQLiteClient) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_txlock=immediate&_busy_timeout=5000"
}
