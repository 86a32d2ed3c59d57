package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/domain/model"
	"marketplace/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 15 * time.Minute

const bcryptCost = 12

// usecaseがValidatorに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, email string, password string, role string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type UserOutput struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Phone   string `json:"phone"`
	Bio     string `json:"bio"`
	Socials string `json:"socials"`
	Company string `json:"company"`
}

type JwtAccessTokenOutput struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// student または client。adminはprovisionでしか作らない
	Role string `json:"role"`
}

type AuthRegisterResponse struct {
	User UserOutput `json:"user"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	User  UserOutput           `json:"user"`
	Token JwtAccessTokenOutput `json:"token"`
}

type ProfileUpdateRequest struct {
	Phone   *string `json:"phone"`
	Bio     *string `json:"bio"`
	Socials *string `json:"socials"`
	Company *string `json:"company"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	validator AuthValidator
}

func NewAuthUsecase(cfg config.Config, users repository.UserRepository, validator AuthValidator) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		validator: validator,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*AuthRegisterResponse, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, req.Email, req.Password, req.Role); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		Role:         model.Role(req.Role),
		IsActive:     true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return &AuthRegisterResponse{User: toUserOutput(user)}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthLoginResponse, error) {
	if err := u.validator.ValidateLogin(ctx, req.Email, req.Password); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//存在しないときも同じ401を返す
	if user == nil || !user.IsActive {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	token, expiresAt, err := u.issueAccessToken(user)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &AuthLoginResponse{
		User: toUserOutput(user),
		Token: JwtAccessTokenOutput{
			AccessToken: token,
			ExpiresIn:   int(time.Until(expiresAt).Seconds()),
		},
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*UserOutput, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}

	out := toUserOutput(user)
	return &out, nil
}

// プロフィール更新。渡されたフィールドだけ書き換える
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID int64, req ProfileUpdateRequest) (*UserOutput, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}

	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Socials != nil {
		user.Socials = *req.Socials
	}
	if req.Company != nil {
		user.Company = *req.Company
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := toUserOutput(user)
	return &out, nil
}

// HS256で署名したアクセストークンを発行する。
// subにuser_id、roleにロールを入れる（ペイロードの形はこれで固定）。
func (u *AuthUsecase) issueAccessToken(user *model.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func toUserOutput(u *model.User) UserOutput {
	return UserOutput{
		ID:      u.ID,
		Email:   u.Email,
		Role:    string(u.Role),
		Phone:   u.Phone,
		Bio:     u.Bio,
		Socials: u.Socials,
		Company: u.Company,
	}
}
