package validator

import (
	"context"
	"fmt"
	"strings"

	"app/internal/usecase"
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証
func (v *authValidator) ValidateSignup(ctx context.Context, username string, password string, name string) error {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)

	// 必須チェック
	if username == "" || password == "" || name == "" {
		return fmt.Errorf("%w: all fields are required", usecase.ErrInvalidArgument)
	}

	// ユーザー名最低文字数
	if len(username) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters", usecase.ErrInvalidArgument)
	}

	// パスワード最低文字数
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", usecase.ErrInvalidArgument)
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", usecase.ErrInvalidArgument)
	}
	return nil
}
