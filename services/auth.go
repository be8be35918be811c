package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coralbay/models"
	"coralbay/store"

	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = fmt.Errorf("%w: invalid username or password", models.ErrUnauthorized)

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
}

type AuthService struct {
	store  *store.Store
	tokens *TokenManager
}

func NewAuthService(s *store.Store, tokens *TokenManager) *AuthService {
	return &AuthService{store: s, tokens: tokens}
}

func (a *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	admin, err := a.store.FindAdmin(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return LoginResult{}, errBadCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, errBadCredentials
	}
	token, exp, err := a.tokens.Generate(admin)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}
	return LoginResult{Token: token, ExpiresAt: exp, Username: admin.Username}, nil
}

func (a *AuthService) Logout(ctx context.Context, claims *AdminClaims) error {
	return a.tokens.Revoke(ctx, claims)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
