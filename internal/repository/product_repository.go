package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, includeInactive bool) ([]model.Product, error)
	ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	//名前は大文字小文字を区別しない
	FindByName(ctx context.Context, name string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SetActive(ctx context.Context, id int64, active bool) error

	// 在庫の現在値を設定
	SetStock(ctx context.Context, id int64, stock int64) error
	// 在庫へ符号付き増減を加算（負数になっても許容する）
	AddStock(ctx context.Context, id int64, delta int64) error
	// 仕入れ時のデフォルト仕入先を更新
	SetSupplier(ctx context.Context, id int64, supplier string) error
}
