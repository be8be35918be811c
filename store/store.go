// Package store là lớp lưu trữ Room, Booking, Review và Admin trên gorm.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coralbay/models"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Store wraps a *gorm.DB. Inside Transaction the wrapped handle is the transaction.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open mở kết nối theo driver. SQLite dùng một kết nối duy nhất vì chỉ có một writer.
func Open(driver, dsn string, log *logrus.Logger) (*gorm.DB, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		driver = DriverSQLite
	}
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		if dsn == "" {
			dsn = "bookings.db"
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	gormConfig := &gorm.Config{TranslateError: true}
	if log != nil {
		gormConfig.Logger = logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&models.Admin{}, &models.Room{}, &models.Booking{}, &models.Review{})
}

// Transaction chạy fn trong một transaction; fn trả lỗi thì rollback toàn bộ.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) SavePoint(name string) error {
	return s.db.SavePoint(name).Error
}

func (s *Store) RollbackTo(name string) error {
	return s.db.RollbackTo(name).Error
}

func notFound(kind string, id uint) error {
	return fmt.Errorf("%s %d: %w", kind, id, models.ErrNotFound)
}
