package usecase_test

import (
	"context"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestApprove_PendingUserCanLogin(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	env.seedUser(t, "boss", "bosspass", model.RoleAdmin, model.StatusApproved)
	env.seedUser(t, "bob", "secret123", model.RoleViewer, model.StatusPending)

	_, err := env.auth.Login(ctx, "bob", "secret123")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	err = env.admin.Approve(ctx, adminActor, "bob")
	assert.NoError(t, err)

	stored, _ := env.users.FindByUsername(ctx, "bob")
	assert.Equal(t, model.StatusApproved, stored.Status)
	assert.Equal(t, adminActor.Username, stored.ApprovedBy)

	_, err = env.auth.Login(ctx, "bob", "secret123")
	assert.NoError(t, err)
}

// rejectedは終端だが、明示的なApproveでだけ復帰できる
func TestApprove_RecoversRejectedUser(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	env.seedUser(t, "bob", "secret123", model.RoleViewer, model.StatusRejected)

	err := env.admin.Approve(ctx, adminActor, "bob")
	assert.NoError(t, err)

	stored, _ := env.users.FindByUsername(ctx, "bob")
	assert.Equal(t, model.StatusApproved, stored.Status)
}

func TestReject(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	env.seedUser(t, "bob", "secret123", model.RoleViewer, model.StatusPending)

	err := env.admin.Reject(ctx, adminActor, "bob")
	assert.NoError(t, err)

	stored, _ := env.users.FindByUsername(ctx, "bob")
	assert.Equal(t, model.StatusRejected, stored.Status)

	_, err = env.auth.Login(ctx, "bob", "secret123")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestUserAdmin_ViewerForbidden(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	_, err := env.admin.List(ctx, viewerActor)
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	_, err = env.admin.ListPending(ctx, viewerActor)
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	err = env.admin.Approve(ctx, viewerActor, "bob")
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	err = env.admin.SetRole(ctx, viewerActor, "bob", model.RoleAdmin)
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestSetRole(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	env.seedUser(t, "bob", "secret123", model.RoleViewer, model.StatusApproved)

	err := env.admin.SetRole(ctx, adminActor, "bob", model.RoleAdmin)
	assert.NoError(t, err)
	stored, _ := env.users.FindByUsername(ctx, "bob")
	assert.Equal(t, model.RoleAdmin, stored.Role)

	err = env.admin.SetRole(ctx, adminActor, "bob", "superuser")
	assert.ErrorIs(t, err, usecase.ErrInvalidArgument)

	err = env.admin.SetRole(ctx, adminActor, "ghost", model.RoleViewer)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

// ownerの付与はownerにしかできない
func TestSetRole_OnlyOwnerGrantsOwner(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	env.seedUser(t, "bob", "secret123", model.RoleAdmin, model.StatusApproved)

	err := env.admin.SetRole(ctx, adminActor, "bob", model.RoleOwner)
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	err = env.admin.SetRole(ctx, ownerActor, "bob", model.RoleOwner)
	assert.NoError(t, err)
	stored, _ := env.users.FindByUsername(ctx, "bob")
	assert.Equal(t, model.RoleOwner, stored.Role)
}

func TestDeleteUser_OwnerOnly(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	env.seedUser(t, "bob", "secret123", model.RoleViewer, model.StatusApproved)

	err := env.admin.Delete(ctx, adminActor, "bob")
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	err = env.admin.Delete(ctx, ownerActor, "bob")
	assert.NoError(t, err)

	stored, _ := env.users.FindByUsername(ctx, "bob")
	assert.Nil(t, stored)

	err = env.admin.Delete(ctx, ownerActor, "bob")
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestBootstrap_Idempotent(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	seed := []config.BootstrapUser{
		{Username: "olivia", PasswordHash: "$2a$10$hash1", Name: "Olivia", Role: "owner"},
		{Username: "amir", PasswordHash: "$2a$10$hash2", Name: "Amir", Role: "admin"},
	}

	created, err := env.admin.Bootstrap(ctx, seed)
	assert.NoError(t, err)
	assert.Equal(t, 2, created)

	owner, _ := env.users.FindByUsername(ctx, "olivia")
	assert.Equal(t, model.RoleOwner, owner.Role)
	assert.Equal(t, model.StatusApproved, owner.Status)
	assert.Equal(t, "bootstrap", owner.ApprovedBy)

	// 2回目は何も作らず、既存ユーザーにも触らない
	owner.Role = model.RoleViewer
	assert.NoError(t, env.users.Update(ctx, owner))

	created, err = env.admin.Bootstrap(ctx, seed)
	assert.NoError(t, err)
	assert.Equal(t, 0, created)

	again, _ := env.users.FindByUsername(ctx, "olivia")
	assert.Equal(t, model.RoleViewer, again.Role)
}

// 不正なroleはviewerに落とす
func TestBootstrap_InvalidRoleDefaultsViewer(t *testing.T) {
	env := newAuthEnv(t)

	created, err := env.admin.Bootstrap(context.Background(), []config.BootstrapUser{
		{Username: "sam", PasswordHash: "$2a$10$hash", Name: "Sam", Role: "root"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, created)

	stored, _ := env.users.FindByUsername(context.Background(), "sam")
	assert.Equal(t, model.RoleViewer, stored.Role)
}
