package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coralbay/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

type AdminClaims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// TokenManager ký token HS256 cho admin; logout ghi jti vào Redis tới khi token hết hạn.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	rdb    *redis.Client
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration, rdb *redis.Client) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, rdb: rdb, now: time.Now}
}

func (m *TokenManager) Generate(admin models.Admin) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := AdminClaims{
		Username: admin.Username,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   fmt.Sprint(admin.ID),
			IssuedAt:  now.Unix(),
			ExpiresAt: exp.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse kiểm tra chữ ký, hạn dùng và danh sách thu hồi.
func (m *TokenManager) Parse(ctx context.Context, tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", models.ErrUnauthorized)
	}
	revoked, err := m.isRevoked(ctx, claims.Id)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", models.ErrUnauthorized)
	}
	return claims, nil
}

func (m *TokenManager) Revoke(ctx context.Context, claims *AdminClaims) error {
	if m.rdb == nil || claims == nil || claims.Id == "" {
		return nil
	}
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		return nil
	}
	return m.rdb.Set(ctx, revokedKeyPrefix+claims.Id, 1, ttl).Err()
}

func (m *TokenManager) isRevoked(ctx context.Context, id string) (bool, error) {
	if m.rdb == nil || id == "" {
		return false, nil
	}
	n, err := m.rdb.Exists(ctx, revokedKeyPrefix+id).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return n > 0, nil
}
