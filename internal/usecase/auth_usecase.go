package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 15 * time.Minute

// usecaseがValidatorに依存する約束
type AuthValidator interface {
	ValidateRegister(email string, password string, fullName string) error
	ValidateLogin(email string, password string) error
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type AuthRegisterInput struct {
	Email    string
	Password string
	FullName string
}

type AuthLoginInput struct {
	Email    string
	Password string
}

type AuthLoginOutput struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
	ExpiresIn   int     `json:"expires_in"`
}

type AuthUsecase struct {
	cfg       config.Config
	profiles  repo.ProfileRepository
	validator AuthValidator
}

func NewAuthUsecase(cfg config.Config, profiles repo.ProfileRepository, validator AuthValidator) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		profiles:  profiles,
		validator: validator,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in AuthRegisterInput) (UserDTO, error) {
	if err := u.validator.ValidateRegister(in.Email, in.Password, in.FullName); err != nil {
		return UserDTO{}, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//新規登録はcashier。adminへの昇格は管理者操作。
	p := &model.Profile{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(pwHash),
		FullName:     in.FullName,
		Role:         model.RoleCashier,
		IsActive:     true,
	}

	if err := u.profiles.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return UserDTO{}, NewHTTPError(http.StatusConflict, "email already registered")
		}
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserDTO(p), nil
}

func (u *AuthUsecase) Login(ctx context.Context, in AuthLoginInput) (AuthLoginOutput, error) {
	if err := u.validator.ValidateLogin(in.Email, in.Password); err != nil {
		return AuthLoginOutput{}, err
	}

	p, err := u.profiles.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil || p == nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//停止ユーザーはログイン不可
	if !p.IsActive {
		return AuthLoginOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	token, expiresIn, err := u.issueAccessToken(p)
	if err != nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthLoginOutput{
		User:        toUserDTO(p),
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, nil
}

func (u *AuthUsecase) issueAccessToken(p *model.Profile) (string, int, error) {
	now := time.Now()
	expiresAt := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  p.ID,
		"role": string(p.Role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}

	return signed, int(accessTokenTTL.Seconds()), nil
}

// Me はトークンの本人情報。
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserDTO, error) {
	p, err := u.profiles.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && p == nil) {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(p), nil
}

func (u *AuthUsecase) ListUsers(ctx context.Context) ([]UserDTO, error) {
	profiles, err := u.profiles.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out := make([]UserDTO, 0, len(profiles))
	for i := range profiles {
		out = append(out, toUserDTO(&profiles[i]))
	}
	return out, nil
}

type UpdateUserInput struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// UpdateUser は管理者によるロール変更・停止。
func (u *AuthUsecase) UpdateUser(ctx context.Context, userID int64, in UpdateUserInput) (UserDTO, error) {
	p, err := u.profiles.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && p == nil) {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.FullName != nil {
		p.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Role != nil {
		switch model.Role(*in.Role) {
		case model.RoleAdmin, model.RoleCashier:
			p.Role = model.Role(*in.Role)
		default:
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid role")
		}
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	if err := u.profiles.Update(ctx, p); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(p), nil
}

func toUserDTO(p *model.Profile) UserDTO {
	return UserDTO{
		ID:       p.ID,
		Email:    p.Email,
		FullName: p.FullName,
		Role:     string(p.Role),
		IsActive: p.IsActive,
	}
}
