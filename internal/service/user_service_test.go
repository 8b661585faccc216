package service

import (
	"Fitboard/internal/api/dto"
	"Fitboard/internal/pkg/security"
	"Fitboard/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepo(db))
	ctx := context.Background()

	result, err := svc.Register(ctx, &dto.RegisterDTO{
		Email:    "runner@example.com",
		Password: "secret123",
		Name:     "Runner",
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, "runner@example.com", result.User.Email)
	assert.NotEmpty(t, result.Token)

	claims, err := security.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "runner@example.com", claims.Email)

	login, err := svc.Login(ctx, &dto.CredentialDTO{
		Email:    "runner@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepo(db))
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterDTO{Email: "runner@example.com", Password: "secret123", Name: "Runner"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterDTO{Email: "runner@example.com", Password: "another1", Name: "Clone"})
	assert.ErrorIs(t, err, ErrUserEmailExist)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepo(db))
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterDTO{Email: "runner@example.com", Password: "secret123", Name: "Runner"})
	require.NoError(t, err)

	// 未注册邮箱与密码错误返回同一错误
	_, err = svc.Login(ctx, &dto.CredentialDTO{Email: "unknown@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrCredentialsIncorrect)

	_, err = svc.Login(ctx, &dto.CredentialDTO{Email: "runner@example.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrCredentialsIncorrect)
}

func TestGetUserInfo(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepo(db))
	ctx := context.Background()

	result, err := svc.Register(ctx, &dto.RegisterDTO{Email: "runner@example.com", Password: "secret123", Name: "Runner"})
	require.NoError(t, err)

	info, err := svc.GetUserInfo(ctx, result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Runner", info.Name)
	assert.Equal(t, "runner@example.com", info.Email)

	_, err = svc.GetUserInfo(ctx, result.User.ID+100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
