package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RateLimiter đếm request theo key trong cửa sổ cố định trên Redis.
// Redis lỗi thì cho qua để chatbot không bị chặn.
type RateLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
	log    logrus.FieldLogger
}

func NewRateLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration, log logrus.FieldLogger) (*RateLimiter, error) {
	if limit <= 0 || window <= 0 {
		return nil, errors.New("rate limiter requires positive limit and window")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "coralbay:ratelimit"
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RateLimiter{rdb: rdb, prefix: prefix, limit: limit, window: window, now: time.Now, log: log}, nil
}

func (l *RateLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.rdb == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}
	windowMs := l.window.Milliseconds()
	slot := l.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	count, err := fixedWindowScript.Run(ctx, l.rdb, []string{redisKey}, windowMs).Int64()
	if err != nil {
		l.log.WithError(err).Warn("rate limiter unavailable, allowing request")
		return true
	}
	return count <= int64(l.limit)
}
