package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateSignup(ctx context.Context, username string, password string, name string) error
	ValidateLogin(ctx context.Context, username string, password string) error
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

type LoginResult struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	sessions  *session.FileStore
	validator AuthValidator
	log       *zap.Logger
}

// DI
func NewAuthUsecase(
	users repository.UserRepository,
	sessions *session.FileStore,
	validator AuthValidator,
	log *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		sessions:  sessions,
		validator: validator,
		log:       log,
	}
}

// Signup は必ずpending/viewerで作成する。呼び手がroleを指定しても無視する。
func (u *AuthUsecase) Signup(ctx context.Context, username string, password string, name string) (UserDTO, error) {
	if err := u.validator.ValidateSignup(ctx, username, password, name); err != nil {
		return UserDTO{}, err
	}

	existing, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return UserDTO{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if existing != nil {
		return UserDTO{}, fmt.Errorf("%w: username already exists", ErrConflict)
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return UserDTO{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(pwHash),
		Name:         name,
		Role:         model.RoleViewer,
		Status:       model.StatusPending,
	}

	if err := u.users.Create(ctx, user); err != nil {
		// unique制約に負けた場合もConflict扱い
		return UserDTO{}, fmt.Errorf("%w: username already exists", ErrConflict)
	}

	u.log.Info("user signed up", zap.String("username", username))
	return toUserDTO(user), nil
}

// Login は認証してセッションを発行し、ファイルへ保存する。
// 「ユーザーなし」「パスワード違い」「未承認」は内部でログに区別して残すが、
// 返すエラーは必ず1種類にまとめる（ユーザー名の列挙防止）。
func (u *AuthUsecase) Login(ctx context.Context, username string, password string) (LoginResult, error) {
	if err := u.validator.ValidateLogin(ctx, username, password); err != nil {
		return LoginResult{}, err
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if user == nil {
		u.log.Info("login failed", zap.String("username", username), zap.String("reason", "user not found"))
		return LoginResult{}, ErrInvalidCredentials
	}

	// bcryptの比較は一定時間
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		u.log.Info("login failed", zap.String("username", username), zap.String("reason", "wrong password"))
		return LoginResult{}, ErrInvalidCredentials
	}

	if user.Status != model.StatusApproved {
		u.log.Info("login failed", zap.String("username", username), zap.String("reason", "not approved"),
			zap.String("status", string(user.Status)))
		return LoginResult{}, ErrInvalidCredentials
	}

	now := time.Now()
	token, expiresAt, err := u.sessions.Issue(user.Username, user.Name, user.Role, now)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	// auto-login用にファイルへも保存
	if err := u.sessions.Save(token, expiresAt); err != nil {
		u.log.Warn("failed to persist session file", zap.Error(err))
	}

	u.log.Info("login succeeded", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	return LoginResult{
		User:      toUserDTO(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout はセッションファイルを消す。
func (u *AuthUsecase) Logout() error {
	return u.sessions.Clear()
}

// ValidateSession はtokenの署名・期限を確認し、さらにユーザーの現在の
// status/roleをDBで再確認する。承認取り消し・降格済みのセッションに
// 古い権限を持たせない。
func (u *AuthUsecase) ValidateSession(ctx context.Context, token string) (Actor, error) {
	sess, err := u.sessions.Validate(token, time.Now())
	if errors.Is(err, session.ErrExpired) {
		return Actor{}, ErrSessionExpired
	}
	if err != nil {
		return Actor{}, ErrSessionInvalid
	}

	user, err := u.users.FindByUsername(ctx, sess.Username)
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if user == nil || user.Status != model.StatusApproved {
		return Actor{}, ErrSessionInvalid
	}

	// roleはtokenではなくDBの現在値を信じる
	return Actor{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// RestoreSession は起動時にセッションファイルからログイン状態を復元する。
func (u *AuthUsecase) RestoreSession(ctx context.Context) (Actor, string, error) {
	_, token, err := u.sessions.Load(time.Now())
	if errors.Is(err, session.ErrExpired) {
		return Actor{}, "", ErrSessionExpired
	}
	if err != nil {
		return Actor{}, "", ErrSessionInvalid
	}

	actor, err := u.ValidateSession(ctx, token)
	if err != nil {
		return Actor{}, "", err
	}
	return actor, token, nil
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     string(u.Role),
		Status:   string(u.Status),
	}
}
