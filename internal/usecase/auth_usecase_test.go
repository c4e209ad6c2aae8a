package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthValidator struct{}

func (fakeAuthValidator) ValidateRegister(email string, password string, fullName string) error {
	return nil
}
func (fakeAuthValidator) ValidateLogin(email string, password string) error { return nil }

func testConfig() config.Config {
	return config.Config{JWTSecret: "test_secret"}
}

func TestAuthRegister(t *testing.T) {
	profiles := &ProfileRepoMock{}
	uc := NewAuthUsecase(testConfig(), profiles, fakeAuthValidator{})

	profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Profile) bool {
		//email正規化・cashierロール・ハッシュ保存
		return p.Email == "ana@example.com" &&
			p.Role == model.RoleCashier &&
			p.IsActive &&
			p.PasswordHash != "" && p.PasswordHash != "secret-password"
	})).Return(nil)

	out, err := uc.Register(context.Background(), AuthRegisterInput{
		Email:    "  Ana@Example.com ",
		Password: "secret-password",
		FullName: "Ana",
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, "cashier", out.Role)
}

func TestAuthRegister_DuplicateEmail(t *testing.T) {
	profiles := &ProfileRepoMock{}
	uc := NewAuthUsecase(testConfig(), profiles, fakeAuthValidator{})

	profiles.On("Create", mock.Anything, mock.Anything).Return(repo.ErrConflict)

	_, err := uc.Register(context.Background(), AuthRegisterInput{
		Email: "ana@example.com", Password: "secret-password",
	})

	require.Error(t, err)
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestAuthLogin(t *testing.T) {
	profiles := &ProfileRepoMock{}
	uc := NewAuthUsecase(testConfig(), profiles, fakeAuthValidator{})

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	require.NoError(t, err)
	profiles.On("FindByEmail", mock.Anything, "ana@example.com").
		Return(&model.Profile{
			ID: 1, Email: "ana@example.com", PasswordHash: string(hash),
			Role: model.RoleCashier, IsActive: true,
		}, nil)

	out, err := uc.Login(context.Background(), AuthLoginInput{
		Email: "ana@example.com", Password: "secret-password",
	})

	require.NoError(t, err)
	require.NotEmpty(t, out.AccessToken)

	//署名とclaimsを検証
	token, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test_secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(1), claims["sub"])
	assert.Equal(t, "cashier", claims["role"])
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	profiles := &ProfileRepoMock{}
	uc := NewAuthUsecase(testConfig(), profiles, fakeAuthValidator{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	profiles.On("FindByEmail", mock.Anything, "ana@example.com").
		Return(&model.Profile{ID: 1, Email: "ana@example.com", PasswordHash: string(hash), IsActive: true}, nil)

	_, err := uc.Login(context.Background(), AuthLoginInput{
		Email: "ana@example.com", Password: "wrong",
	})

	require.Error(t, err)
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}

func TestAuthLogin_InactiveUser(t *testing.T) {
	profiles := &ProfileRepoMock{}
	uc := NewAuthUsecase(testConfig(), profiles, fakeAuthValidator{})

	profiles.On("FindByEmail", mock.Anything, "ana@example.com").
		Return(&model.Profile{ID: 1, Email: "ana@example.com", PasswordHash: "x", IsActive: false}, nil)

	_, err := uc.Login(context.Background(), AuthLoginInput{
		Email: "ana@example.com", Password: "secret-password",
	})

	require.Error(t, err)
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusForbidden, he.Status)
}

func TestUpdateUser_RoleChange(t *testing.T) {
	profiles := &ProfileRepoMock{}
	uc := NewAuthUsecase(testConfig(), profiles, fakeAuthValidator{})

	profiles.On("FindByID", mock.Anything, int64(2)).
		Return(&model.Profile{ID: 2, Email: "luis@example.com", Role: model.RoleCashier, IsActive: true}, nil)
	profiles.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Profile) bool {
		return p.Role == model.RoleAdmin
	})).Return(nil)

	role := "admin"
	out, err := uc.UpdateUser(context.Background(), 2, UpdateUserInput{Role: &role})

	require.NoError(t, err)
	assert.Equal(t, "admin", out.Role)
}

func TestUpdateUser_InvalidRole(t *testing.T) {
	profiles := &ProfileRepoMock{}
	uc := NewAuthUsecase(testConfig(), profiles, fakeAuthValidator{})

	profiles.On("FindByID", mock.Anything, int64(2)).
		Return(&model.Profile{ID: 2, Role: model.RoleCashier}, nil)

	role := "owner"
	_, err := uc.UpdateUser(context.Background(), 2, UpdateUserInput{Role: &role})

	require.Error(t, err)
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}
