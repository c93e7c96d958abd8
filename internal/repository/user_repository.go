package repository

import (
	"app/internal/domain/model"
	"context"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。見つからない時は (nil, nil)。
	FindByID(ctx context.Context, id int64) (*model.User, error)
	//ユーザー名から1件取得（大文字小文字を区別しない）。見つからない時は (nil, nil)。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListByStatus(ctx context.Context, status model.UserStatus) ([]model.User, error)
	// ステータス・ロール・承認者などの更新
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}
