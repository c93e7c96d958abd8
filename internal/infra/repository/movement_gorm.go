package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type MovementGormRepository struct {
	db *gorm.DB
}

// DI
func NewMovementGormRepository(db *gorm.DB) *MovementGormRepository {
	return &MovementGormRepository{db: db}
}

// 移動履歴の一覧（商品/種類/期間フィルタ付き）
func (r *MovementGormRepository) List(ctx context.Context, q repo.MovementListQuery) ([]model.Movement, error) {
	var movements []model.Movement

	tx := r.db.WithContext(ctx).Model(&model.Movement{})

	if q.ProductID != nil {
		tx = tx.Where("product_id = ?", *q.ProductID)
	}
	if len(q.Types) > 0 {
		tx = tx.Where("type IN ?", q.Types)
	}
	if q.Days != nil {
		since := time.Now().AddDate(0, 0, -*q.Days)
		tx = tx.Where("movement_date >= ?", since)
	}

	if err := tx.Order("movement_date desc").Order("id desc").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *MovementGormRepository) FindByID(ctx context.Context, id int64) (model.Movement, error) {
	var m model.Movement
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Movement{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Movement{}, err
	}
	return m, nil
}

// 商品に紐づく移動の件数
func (r *MovementGormRepository) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Movement{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// exceptIDを除いた件数（編集中の行は数えない）
func (r *MovementGormRepository) CountByProductExcept(ctx context.Context, productID int64, exceptID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Movement{}).
		Where("product_id = ? AND id <> ?", productID, exceptID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MovementGormRepository) Create(ctx context.Context, m model.Movement) (model.Movement, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.Movement{}, err
	}
	return m, nil
}

func (r *MovementGormRepository) Update(ctx context.Context, m model.Movement) error {
	res := r.db.WithContext(ctx).Model(&model.Movement{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
		"type":          m.Type,
		"quantity":      m.Quantity,
		"price":         m.Price,
		"party_id":      m.PartyID,
		"notes":         m.Notes,
		"movement_date": m.MovementDate,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MovementGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Movement{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
