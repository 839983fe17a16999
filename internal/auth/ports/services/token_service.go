package services

import (
	"context"
	"time"
)

// TokenService определяет интерфейс для операций с токенами доступа.
// Состояние на сервере не хранится: валидность пересчитывается на каждый запрос.
type TokenService interface {
	Issue(ctx context.Context, userID, username string) (string, time.Time, error)

	Verify(ctx context.Context, token string) (string, error)
}
