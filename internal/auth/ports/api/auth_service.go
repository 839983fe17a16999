package api

import (
	"context"

	"notekeeper/internal/auth/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Register(ctx context.Context, email, username, password string) (*services.AuthSession, error)

	Login(ctx context.Context, email, password string) (*services.AuthSession, error)
}
