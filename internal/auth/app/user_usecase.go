package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/ports/api"
	"notekeeper/internal/auth/ports/cache"
	"notekeeper/internal/auth/ports/repositories"
	"notekeeper/pkg/logger"

	"go.uber.org/zap"
)

const (
	methodGetUserProfile = "GetUserProfile"

	msgRequestingProfile   = "requesting user profile"
	msgEmptyUserIDProvided = "empty user ID provided"
	msgProfileFromCache    = "user profile served from cache"
	msgProfileRetrieved    = "user profile successfully retrieved"

	msgErrFindingUserByID = "failed to find user by ID"
	msgErrCacheRead       = "failed to read profile from cache"
	msgErrCacheWrite      = "failed to write profile to cache"

	errCtxValidatingUserID = "validating user ID"
	errCtxFetchingProfile  = "fetching user profile"

	profileCacheKeyPrefix = "profile:"
)

// cachedProfile - форма профиля, сериализуемая в кэш.
// Хэш пароля в кэш не попадает.
type cachedProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo     repositories.UserRepository
	profileCache cache.Cache
	cacheTTL     time.Duration
}

// NewUserUseCase создает новый экземпляр сервиса пользователя.
// profileCache может быть nil, тогда кэширование отключено.
func NewUserUseCase(userRepo repositories.UserRepository, profileCache cache.Cache, cacheTTL time.Duration) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:     userRepo,
		profileCache: profileCache,
		cacheTTL:     cacheTTL,
	}
}

// GetUserProfile получает профиль пользователя по ID.
// Кэшируется только профиль; решения аутентификации не кэшируются.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUserProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	if cached := u.fromCache(ctx, userID); cached != nil {
		log.Debug(ctx, msgProfileFromCache)
		return cached, nil
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	u.toCache(ctx, user)

	log.Info(ctx, msgProfileRetrieved)
	return user, nil
}

// fromCache пытается достать профиль из кэша; любая ошибка кэша
// деградирует в промах.
func (u *UserUseCaseImpl) fromCache(ctx context.Context, userID string) *entities.User {
	if u.profileCache == nil {
		return nil
	}

	log := logger.Log(ctx)

	raw, err := u.profileCache.Get(ctx, profileCacheKeyPrefix+userID)
	if err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err))
		return nil
	}
	if raw == "" {
		return nil
	}

	var profile cachedProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err))
		return nil
	}

	return &entities.User{
		ID:        profile.ID,
		Email:     profile.Email,
		Username:  profile.Username,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

func (u *UserUseCaseImpl) toCache(ctx context.Context, user *entities.User) {
	if u.profileCache == nil {
		return
	}

	log := logger.Log(ctx)

	raw, err := json.Marshal(cachedProfile{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
	if err != nil {
		log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
		return
	}

	if err := u.profileCache.Set(ctx, profileCacheKeyPrefix+user.ID, string(raw), u.cacheTTL); err != nil {
		log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
	}
}
