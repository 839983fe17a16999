// Package dto содержит объекты передачи данных HTTP API.
package dto

import (
	"time"

	"notekeeper/internal/auth/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse содержит поля пользователя, отдаваемые наружу.
// Хэш пароля наружу не сериализуется никогда.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse - ответ на регистрацию и вход: пользователь и токен.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// NewAuthResponse собирает ответ из доменной сессии.
func NewAuthResponse(session *services.AuthSession) AuthResponse {
	return AuthResponse{
		User: UserResponse{
			ID:        session.UserID,
			Username:  session.Username,
			Email:     session.Email,
			CreatedAt: session.CreatedAt,
		},
		Token:     session.AccessToken,
		ExpiresAt: session.ExpiresAt,
	}
}

// ProfileResponse содержит данные профиля пользователя.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
