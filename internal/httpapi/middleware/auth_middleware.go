// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/ports/repositories"
	"notekeeper/internal/auth/ports/services"
	"notekeeper/pkg/logger"
)

// UserKey - ключ fiber.Locals, под которым хранится аутентифицированный пользователь.
const UserKey = "currentUser"

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorTokenRejected      = "token verification failed"
	ErrorUnknownUser        = "token subject does not resolve to a user"
	ErrorUserLookup         = "failed to load user for token subject"
)

// Наружу любая причина отказа выглядит одинаково,
// чтобы не раскрывать, какая именно проверка не прошла.
const msgUnauthorized = "unauthorized"

const bearerPrefix = "Bearer "

// NewAuthMiddleware создает промежуточное ПО, которое извлекает токен из
// заголовка Authorization, проверяет его и резолвит в пользователя.
// Ровно одна проверка на запрос, результаты между запросами не кэшируются.
func NewAuthMiddleware(tokens services.TokenService, users repositories.UserRepository) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return unauthorized(ctx)
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return unauthorized(ctx)
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)
		if token == "" {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return unauthorized(ctx)
		}

		userID, err := tokens.Verify(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorTokenRejected, zap.Error(err))
			return unauthorized(ctx)
		}

		user, err := users.FindByID(requestCtx, userID)
		if err != nil {
			if errors.Is(err, entities.ErrUserNotFound) {
				log.Debug(requestCtx, ErrorUnknownUser, zap.String("userID", userID))
				return unauthorized(ctx)
			}
			log.Error(requestCtx, ErrorUserLookup, zap.Error(err))
			if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			}); err != nil {
				return fmt.Errorf("sending error response: %w", err)
			}
			return nil
		}

		ctx.Locals(UserKey, user)

		return ctx.Next()
	}
}

// UserFromContext достает аутентифицированного пользователя из запроса.
func UserFromContext(ctx fiber.Ctx) (*entities.User, bool) {
	user, ok := ctx.Locals(UserKey).(*entities.User)
	return user, ok
}

func unauthorized(ctx fiber.Ctx) error {
	if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msgUnauthorized,
	}); err != nil {
		return fmt.Errorf("sending unauthorized response: %w", err)
	}
	return nil
}
