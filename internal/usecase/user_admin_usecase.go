package usecase

import (
	"context"
	"fmt"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/repository"

	"go.uber.org/zap"
)

// ユーザー管理（承認・ロール変更・削除・bootstrap投入）。
type UserAdminUsecase struct {
	users repository.UserRepository
	log   *zap.Logger
}

// DI
func NewUserAdminUsecase(users repository.UserRepository, log *zap.Logger) *UserAdminUsecase {
	return &UserAdminUsecase{users: users, log: log}
}

func (u *UserAdminUsecase) List(ctx context.Context, actor Actor) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return users, nil
}

func (u *UserAdminUsecase) ListPending(ctx context.Context, actor Actor) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	users, err := u.users.ListByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return users, nil
}

// Approve はpendingまたはrejectedをapprovedにする。
// rejectedからの復帰は管理者の明示的な操作としてのみ許す。
func (u *UserAdminUsecase) Approve(ctx context.Context, actor Actor, targetUsername string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	target, err := u.users.FindByUsername(ctx, targetUsername)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if target == nil {
		return ErrNotFound
	}

	target.Status = model.StatusApproved
	target.ApprovedBy = actor.Username
	if err := u.users.Update(ctx, target); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	u.log.Info("user approved",
		zap.String("username", target.Username),
		zap.String("approved_by", actor.Username),
	)
	return nil
}

// Reject はpendingをrejectedにする。rejectedは再承認以外では終端。
func (u *UserAdminUsecase) Reject(ctx context.Context, actor Actor, targetUsername string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	target, err := u.users.FindByUsername(ctx, targetUsername)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if target == nil {
		return ErrNotFound
	}

	target.Status = model.StatusRejected
	if err := u.users.Update(ctx, target); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	u.log.Info("user rejected",
		zap.String("username", target.Username),
		zap.String("rejected_by", actor.Username),
	)
	return nil
}

// SetRole はロールを変更する。
// ownerの付与はownerにしかできない（信頼の根を1つに保つ）。
func (u *UserAdminUsecase) SetRole(ctx context.Context, actor Actor, targetUsername string, newRole model.Role) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if !newRole.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, newRole)
	}
	if newRole == model.RoleOwner && !actor.IsOwner() {
		return fmt.Errorf("%w: only an owner may grant owner", ErrForbidden)
	}

	target, err := u.users.FindByUsername(ctx, targetUsername)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if target == nil {
		return ErrNotFound
	}

	target.Role = newRole
	if err := u.users.Update(ctx, target); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	u.log.Info("user role changed",
		zap.String("username", target.Username),
		zap.String("new_role", string(newRole)),
		zap.String("changed_by", actor.Username),
	)
	return nil
}

// Delete はユーザー行を消す（owner専用）。
func (u *UserAdminUsecase) Delete(ctx context.Context, actor Actor, targetUsername string) error {
	if !actor.IsOwner() {
		return ErrForbidden
	}

	target, err := u.users.FindByUsername(ctx, targetUsername)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if target == nil {
		return ErrNotFound
	}

	if err := u.users.Delete(ctx, target.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	return nil
}

// Bootstrap は設定に書かれた信頼済みアカウントをapprovedで投入する。
// 冪等：既存のアカウントは上書きも降格もしない。
func (u *UserAdminUsecase) Bootstrap(ctx context.Context, users []config.BootstrapUser) (int, error) {
	created := 0
	for _, bu := range users {
		existing, err := u.users.FindByUsername(ctx, bu.Username)
		if err != nil {
			return created, fmt.Errorf("%w: %v", ErrStore, err)
		}
		if existing != nil {
			continue
		}

		role := model.Role(bu.Role)
		if !role.Valid() {
			role = model.RoleViewer
		}

		user := &model.User{
			Username:     bu.Username,
			PasswordHash: bu.PasswordHash,
			Name:         bu.Name,
			Role:         role,
			Status:       model.StatusApproved,
			ApprovedBy:   "bootstrap",
		}
		if err := u.users.Create(ctx, user); err != nil {
			return created, fmt.Errorf("%w: %v", ErrStore, err)
		}

		created++
		u.log.Info("bootstrap user created",
			zap.String("username", bu.Username),
			zap.String("role", string(role)),
		)
	}
	return created, nil
}
