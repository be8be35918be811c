package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"coralbay/models"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, dest any) error {
	data, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return rdb.Set(ctx, key, data, ttl).Err()
}

func DeleteFromRedis(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}

// DeleteByPattern xóa mọi key khớp pattern bằng SCAN, không dùng KEYS.
func DeleteByPattern(ctx context.Context, rdb *redis.Client, pattern string) error {
	iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

const (
	availableRoomsKeyPrefix = "rooms:available:"
	roomTypesKey            = "rooms:types"
	generationKey           = "rooms:gen"
)

// setIfGeneration chỉ ghi khi thế hệ cache chưa đổi kể từ lúc đọc DB.
var setIfGeneration = redis.NewScript(`
if (redis.call("GET", KEYS[1]) or "0") == ARGV[1] then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
	return 1
end
return 0
`)

// RoomCache lưu danh sách phòng trống theo loại. Client nil thì mọi thao tác là no-op.
type RoomCache struct {
	rdb *redis.Client
	ttl time.Duration
	log logrus.FieldLogger
}

func NewRoomCache(rdb *redis.Client, ttl time.Duration, log logrus.FieldLogger) *RoomCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RoomCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *RoomCache) enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *RoomCache) Available(ctx context.Context, roomType string) ([]models.Room, bool) {
	if !c.enabled() {
		return nil, false
	}
	var rooms []models.Room
	if err := GetFromRedis(ctx, c.rdb, availableRoomsKeyPrefix+roomType, &rooms); err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithError(err).Warn("read available rooms from cache")
		}
		return nil, false
	}
	return rooms, true
}

// Generation đọc trước khi truy vấn DB, rồi truyền lại cho SetAvailable/SetRoomTypes.
func (c *RoomCache) Generation(ctx context.Context) string {
	if !c.enabled() {
		return "0"
	}
	gen, err := c.rdb.Get(ctx, generationKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithError(err).Warn("read cache generation")
			// không biết thế hệ hiện tại thì không ghi
			return ""
		}
		return "0"
	}
	return gen
}

func (c *RoomCache) SetAvailable(ctx context.Context, gen, roomType string, rooms []models.Room) {
	if err := c.setGuarded(ctx, gen, availableRoomsKeyPrefix+roomType, rooms); err != nil {
		c.log.WithError(err).Warn("write available rooms to cache")
	}
}

// setGuarded bỏ qua lần ghi nếu Invalidate đã chạy sau khi gen được đọc.
func (c *RoomCache) setGuarded(ctx context.Context, gen, key string, value any) error {
	if !c.enabled() || gen == "" {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	ttl := strconv.FormatInt(c.ttl.Milliseconds(), 10)
	return setIfGeneration.Run(ctx, c.rdb, []string{generationKey, key}, gen, data, ttl).Err()
}

func (c *RoomCache) RoomTypes(ctx context.Context) ([]string, bool) {
	if !c.enabled() {
		return nil, false
	}
	var types []string
	if err := GetFromRedis(ctx, c.rdb, roomTypesKey, &types); err != nil {
		return nil, false
	}
	return types, true
}

func (c *RoomCache) SetRoomTypes(ctx context.Context, gen string, types []string) {
	if err := c.setGuarded(ctx, gen, roomTypesKey, types); err != nil {
		c.log.WithError(err).Warn("write room types to cache")
	}
}

// Invalidate chạy sau mỗi thay đổi availability hoặc danh mục phòng.
// Tăng thế hệ trước khi xóa để các lần đọc DB đang dở không ghi đè dữ liệu cũ.
func (c *RoomCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		c.log.WithError(err).Warn("bump cache generation")
	}
	if err := DeleteByPattern(ctx, c.rdb, availableRoomsKeyPrefix+"*"); err != nil {
		c.log.WithError(err).Warn("invalidate available rooms cache")
	}
	if err := DeleteFromRedis(ctx, c.rdb, roomTypesKey); err != nil {
		c.log.WithError(err).Warn("invalidate room types cache")
	}
}
