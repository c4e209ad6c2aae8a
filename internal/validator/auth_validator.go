package validator

import (
	"net/http"
	"strings"

	"app/internal/usecase"
)

// handlerに渡す前の入力検証。失敗は400で返す。
type AuthValidator struct{}

func New() *AuthValidator {
	return &AuthValidator{}
}

func (v *AuthValidator) ValidateRegister(email string, password string, fullName string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(password) < 8 {
		return usecase.NewHTTPError(http.StatusBadRequest, "password too short")
	}
	if len(fullName) > 255 {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid full_name")
	}
	return nil
}

func (v *AuthValidator) ValidateLogin(email string, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "email and password required")
	}
	return nil
}
