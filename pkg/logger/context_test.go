package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/pkg/logger"
)

func TestNewContextAndFromContext(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	ctx := logger.NewContext(context.Background(), log)

	extracted, err := logger.FromContext(ctx)

	require.NoError(t, err)
	assert.Same(t, log, extracted)
}

func TestFromContextWithoutLogger(t *testing.T) {
	extracted, err := logger.FromContext(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	assert.Nil(t, extracted)
}

func TestLog(t *testing.T) {
	t.Run("логгер из контекста имеет приоритет", func(t *testing.T) {
		contextLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), contextLogger)

		assert.Same(t, contextLogger, logger.Log(ctx))
	})

	t.Run("без логгера в контексте используется глобальный или резервный", func(t *testing.T) {
		log := logger.Log(context.Background())

		require.NotNil(t, log)
		assert.NotPanics(t, func() {
			log.Info(context.Background(), "fallback message")
		})
	})
}

func TestSetGlobalLogger(t *testing.T) {
	customLogger, err := logger.NewLogger(logger.Production, "warn")
	require.NoError(t, err)

	logger.SetGlobalLogger(customLogger)

	assert.Same(t, customLogger, logger.Log(context.Background()))
}

func TestInitGlobalLoggerIsIdempotent(t *testing.T) {
	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "info"))

	first := logger.Log(context.Background())

	// Повторная инициализация не заменяет уже установленный логгер.
	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Production, "error"))

	assert.Same(t, first, logger.Log(context.Background()))
}
