package middleware

import (
	"github.com/gofiber/fiber/v3"

	"notekeeper/pkg/logger"
)

// HeaderRequestID - заголовок, в котором клиент может передать свой идентификатор запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware прокидывает идентификатор запроса в контекст,
// генерируя новый, если клиент его не передал.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		ctx.SetContext(logger.NewRequestIDContext(ctx.Context(), requestID))
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}
