package validator_test

import (
	"context"
	"testing"

	"marketplace/internal/domain/model"
	"marketplace/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FindByEmailだけ動けばよいスタブ
type userRepoStub struct {
	byEmail map[string]*model.User
}

func (s *userRepoStub) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return nil, nil
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.byEmail[email], nil
}

func (s *userRepoStub) Create(ctx context.Context, u *model.User) error { return nil }
func (s *userRepoStub) Update(ctx context.Context, u *model.User) error { return nil }

func TestValidateRegister(t *testing.T) {
	v := validator.NewAuthValidator(&userRepoStub{
		byEmail: map[string]*model.User{
			"taken@example.com": {ID: 1, Email: "taken@example.com"},
		},
	})
	ctx := context.TODO()

	//正常系
	require.NoError(t, v.ValidateRegister(ctx, "new@example.com", "password123", "student"))
	require.NoError(t, v.ValidateRegister(ctx, "new@example.com", "password123", "client"))

	//admin登録は拒否
	assert.ErrorIs(t, v.ValidateRegister(ctx, "new@example.com", "password123", "admin"),
		validator.ErrInvalidInput)

	//未知のrole
	assert.ErrorIs(t, v.ValidateRegister(ctx, "new@example.com", "password123", "superuser"),
		validator.ErrInvalidInput)

	//email形式
	assert.ErrorIs(t, v.ValidateRegister(ctx, "not-an-email", "password123", "student"),
		validator.ErrInvalidInput)

	//短すぎるパスワード
	assert.ErrorIs(t, v.ValidateRegister(ctx, "new@example.com", "short", "student"),
		validator.ErrInvalidInput)

	//空
	assert.ErrorIs(t, v.ValidateRegister(ctx, "", "", "student"),
		validator.ErrInvalidInput)

	//重複email
	assert.ErrorIs(t, v.ValidateRegister(ctx, "taken@example.com", "password123", "student"),
		validator.ErrEmailAlreadyUsed)
}

func TestValidateLogin(t *testing.T) {
	v := validator.NewAuthValidator(&userRepoStub{})
	ctx := context.TODO()

	require.NoError(t, v.ValidateLogin(ctx, "user@example.com", "whatever"))

	assert.ErrorIs(t, v.ValidateLogin(ctx, "", "whatever"), validator.ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin(ctx, "user@example.com", ""), validator.ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin(ctx, "bad-email", "whatever"), validator.ErrInvalidInput)
}
