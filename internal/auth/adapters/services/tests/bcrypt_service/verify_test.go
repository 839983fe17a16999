package bcrypt_service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapters "notekeeper/internal/auth/adapters/services"
	"notekeeper/internal/auth/domain/services"
)

//nolint:gosec
const (
	msgVerifySuccess        = "should successfully verify correct password"
	msgVerifyWrongPassword  = "should return false for wrong password without error"
	msgVerifyEmptyPassword  = "should return error for empty password"
	msgVerifyEmptyHash      = "should return error for empty hash"
	msgVerifyInvalidHash    = "should return error for malformed hash"
	msgResultFalseWithError = "result should be false when error is returned"
	msgNoErrorCreatingHash  = "should not return error when creating hash"
)

func TestVerifySuccess(t *testing.T) {
	service := adapters.NewBcrypt(10)
	ctx := context.Background()
	password := "validPassword123"

	hash, err := service.Hash(ctx, password)
	require.NoError(t, err, msgNoErrorCreatingHash)

	result, err := service.Verify(ctx, password, hash)

	require.NoError(t, err, msgVerifySuccess)
	assert.True(t, result, msgVerifySuccess)
}

func TestVerifyWrongPassword(t *testing.T) {
	service := adapters.NewBcrypt(10)
	ctx := context.Background()

	hash, err := service.Hash(ctx, "validPassword123")
	require.NoError(t, err, msgNoErrorCreatingHash)

	result, err := service.Verify(ctx, "wrongPassword123", hash)

	require.NoError(t, err, msgVerifyWrongPassword)
	assert.False(t, result, msgVerifyWrongPassword)
}

func TestVerifyEmptyInputs(t *testing.T) {
	service := adapters.NewBcrypt(10)
	ctx := context.Background()

	hash, err := service.Hash(ctx, "validPassword123")
	require.NoError(t, err, msgNoErrorCreatingHash)

	t.Run("Пустой пароль", func(t *testing.T) {
		result, err := service.Verify(ctx, "", hash)

		require.Error(t, err, msgVerifyEmptyPassword)
		assert.ErrorIs(t, err, services.ErrInvalidPassword)
		assert.False(t, result, msgResultFalseWithError)
	})

	t.Run("Пустой хэш", func(t *testing.T) {
		result, err := service.Verify(ctx, "validPassword123", "")

		require.Error(t, err, msgVerifyEmptyHash)
		assert.ErrorIs(t, err, services.ErrInvalidPassword)
		assert.False(t, result, msgResultFalseWithError)
	})
}

func TestVerifyInvalidHash(t *testing.T) {
	service := adapters.NewBcrypt(10)
	ctx := context.Background()

	result, err := service.Verify(ctx, "validPassword123", "not-a-bcrypt-hash")

	require.Error(t, err, msgVerifyInvalidHash)
	assert.False(t, result, msgResultFalseWithError)
}
