package usecase_test

import (
	"net/http"
	"testing"

	"marketplace/internal/config"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/usecase"
	"marketplace/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthUsecase(t *testing.T) *usecase.AuthUsecase {
	t.Helper()

	db := newTestDB(t)
	users := infraRepo.NewUserGormRepository(db)
	cfg := config.Config{JWTSecret: "test_secret"}
	return usecase.NewAuthUsecase(cfg, users, validator.NewAuthValidator(users))
}

func TestRegisterAndLogin(t *testing.T) {
	uc := newAuthUsecase(t)
	ctx := ctxTODO()

	res, err := uc.Register(ctx, usecase.AuthRegisterRequest{
		Email:    "student@example.com",
		Password: "password123",
		Role:     "student",
	})
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", res.User.Email)
	assert.Equal(t, "student", res.User.Role)

	login, err := uc.Login(ctx, usecase.AuthLoginRequest{
		Email:    "student@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token.AccessToken)
	assert.Greater(t, login.Token.ExpiresIn, 0)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc := newAuthUsecase(t)
	ctx := ctxTODO()

	_, err := uc.Register(ctx, usecase.AuthRegisterRequest{
		Email: "dup@example.com", Password: "password123", Role: "client",
	})
	require.NoError(t, err)

	_, err = uc.Register(ctx, usecase.AuthRegisterRequest{
		Email: "dup@example.com", Password: "password123", Role: "client",
	})
	requireHTTPStatus(t, err, http.StatusBadRequest)
}

func TestRegister_AdminRoleForbidden(t *testing.T) {
	uc := newAuthUsecase(t)

	_, err := uc.Register(ctxTODO(), usecase.AuthRegisterRequest{
		Email: "admin@example.com", Password: "password123", Role: "admin",
	})
	requireHTTPStatus(t, err, http.StatusBadRequest)
}

func TestLogin_WrongPasswordAndUnknownUserLookTheSame(t *testing.T) {
	uc := newAuthUsecase(t)
	ctx := ctxTODO()

	_, err := uc.Register(ctx, usecase.AuthRegisterRequest{
		Email: "user@example.com", Password: "password123", Role: "client",
	})
	require.NoError(t, err)

	_, wrongPw := uc.Login(ctx, usecase.AuthLoginRequest{
		Email: "user@example.com", Password: "wrongpassword",
	})
	_, unknown := uc.Login(ctx, usecase.AuthLoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})

	//どちらも同じ401・同じメッセージ
	he1, ok := usecase.AsHTTPError(wrongPw)
	require.True(t, ok)
	he2, ok := usecase.AsHTTPError(unknown)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he1.Status)
	assert.Equal(t, he1.Message, he2.Message)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	uc := newAuthUsecase(t)
	ctx := ctxTODO()

	res, err := uc.Register(ctx, usecase.AuthRegisterRequest{
		Email: "user@example.com", Password: "password123", Role: "student",
	})
	require.NoError(t, err)

	bio := "学生エンジニアです"
	out, err := uc.UpdateProfile(ctx, res.User.ID, usecase.ProfileUpdateRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, out.Bio)

	//渡していないフィールドは変わらない
	phone := "090-0000-0000"
	out, err = uc.UpdateProfile(ctx, res.User.ID, usecase.ProfileUpdateRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, out.Phone)
	assert.Equal(t, bio, out.Bio)
}
