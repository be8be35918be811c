package config

import (
	"context"
	"fmt"
	"time"

	"coralbay/store"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Kết nối DB và migrate schema.
func ConnectDB(ctx context.Context, cfg Config, log *logrus.Logger) (*store.Store, *gorm.DB, error) {
	db, err := store.Open(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return st, db, nil
}

// Kết nối Redis. Không cấu hình REDIS_ADDR thì trả nil, cache và thu hồi token tắt.
func ConnectRedis(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}
	return rdb, nil
}

// Khởi tạo Cloudinary, nil khi chưa có CLOUDINARY_URL.
func ConnectCloudinary(cfg Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("connect cloudinary: %w", err)
	}
	return cld, nil
}

func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
