// Package auth содержит HTTP обработчики для регистрации и входа.
package auth

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/domain/services"
	"notekeeper/internal/auth/ports/api"
	"notekeeper/internal/httpapi/dto"
	"notekeeper/internal/httpapi/middleware"
	"notekeeper/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "auth handler: register"
	LogHandlerLogin      = "auth handler: login"
	LogHandlerGetProfile = "auth handler: get profile"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgFieldsRequired     = "username, email and password are required"
	ErrMsgLoginFields        = "email and password are required"
)

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return badRequest(ctx, ErrMsgFieldsRequired)
	}

	session, err := h.authUseCase.Register(requestCtx, req.Email, req.Username, req.Password)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NewAuthResponse(session)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(ctx, ErrMsgLoginFields)
	}

	session, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewAuthResponse(session)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetProfile обрабатывает запрос на получение профиля пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		}); err != nil {
			return fmt.Errorf("sending response: %w", err)
		}
		return nil
	}

	profile, err := h.userUseCase.GetUserProfile(requestCtx, user.ID)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.ProfileResponse{
		ID:        profile.ID,
		Username:  profile.Username,
		Email:     profile.Email,
		CreatedAt: profile.CreatedAt,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

func badRequest(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("sending bad request response: %w", err)
	}
	return nil
}

// handleError переводит доменные ошибки в статусы HTTP.
// Причины отказа входа наружу не различаются.
func handleError(ctx fiber.Ctx, err error) error {
	log := logger.Log(ctx.Context())

	var status int
	var message string

	switch {
	case errors.Is(err, services.ErrEmailAlreadyExists):
		status, message = fiber.StatusConflict, "email already registered"
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrEmptyUsername),
		errors.Is(err, entities.ErrEmptyPassword):
		status, message = fiber.StatusBadRequest, err.Error()
	default:
		log.Error(ctx.Context(), "auth handler: internal error", zap.Error(err))
		status, message = fiber.StatusInternalServerError, "internal server error"
	}

	if err := ctx.Status(status).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("sending error response: %w", err)
	}
	return nil
}
