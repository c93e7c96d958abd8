package repository

import (
	"app/internal/domain/model"
	"context"
)

// 移動履歴の検索条件
type MovementListQuery struct {
	ProductID *int64
	Types     []model.MovementType
	//nilなら期間フィルタなし
	Days *int
}

type MovementRepository interface {
	List(ctx context.Context, q MovementListQuery) ([]model.Movement, error)
	FindByID(ctx context.Context, id int64) (model.Movement, error)

	// 商品に紐づく移動の件数（INITIAL制約の判定に使う）
	CountByProduct(ctx context.Context, productID int64) (int64, error)
	// exceptID以外の件数（編集時の判定に使う）
	CountByProductExcept(ctx context.Context, productID int64, exceptID int64) (int64, error)

	Create(ctx context.Context, m model.Movement) (model.Movement, error)
	Update(ctx context.Context, m model.Movement) error
	Delete(ctx context.Context, id int64) error
}
