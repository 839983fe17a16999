package entities

import (
	"errors"
	"time"
)

// Определяем ошибки домена пользователя как константы.
var (
	ErrEmptyUserID   = errors.New("user ID cannot be empty")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrUserNotFound  = errors.New("user not found")
)

// User представляет основную сущность домена пользователя.
// PasswordHash никогда не сериализуется наружу.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
