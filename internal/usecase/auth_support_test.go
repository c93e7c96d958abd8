package usecase_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"app/internal/domain/model"
	"app/internal/session"
	"app/internal/usecase"
	"app/internal/validator"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// インメモリのUserRepository（認証・ユーザー管理テスト用）
type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*model.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByStatus(ctx context.Context, status model.UserStatus) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Status == status {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return nil
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

type authEnv struct {
	users    *fakeUserRepo
	sessions *session.FileStore
	auth     *usecase.AuthUsecase
	admin    *usecase.UserAdminUsecase
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	users := newFakeUserRepo()
	sessions := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"), []byte("test-secret"))
	log := zap.NewNop()

	return &authEnv{
		users:    users,
		sessions: sessions,
		auth:     usecase.NewAuthUsecase(users, sessions, validator.NewAuthValidator(), log),
		admin:    usecase.NewUserAdminUsecase(users, log),
	}
}

// 承認済みユーザーを直接投入する
func (e *authEnv) seedUser(t *testing.T, username string, password string, role model.Role, status model.UserStatus) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         username,
		Role:         role,
		Status:       status,
	}
	if err := e.users.Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u
}
