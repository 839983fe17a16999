package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
)

// AuthSession представляет результат регистрации или входа:
// пользователя и выданный ему токен доступа.
type AuthSession struct {
	UserID      string
	Email       string
	Username    string
	CreatedAt   time.Time
	AccessToken string
	ExpiresAt   time.Time
}
