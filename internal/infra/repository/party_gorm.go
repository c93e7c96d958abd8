package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type PartyGormRepository struct {
	db *gorm.DB
}

// DI
func NewPartyGormRepository(db *gorm.DB) *PartyGormRepository {
	return &PartyGormRepository{db: db}
}

func (r *PartyGormRepository) List(ctx context.Context, includeInactive bool) ([]model.Party, error) {
	var parties []model.Party

	tx := r.db.WithContext(ctx).Model(&model.Party{})
	if !includeInactive {
		tx = tx.Where("is_active = ?", true)
	}

	if err := tx.Order("name asc").Find(&parties).Error; err != nil {
		return nil, err
	}
	return parties, nil
}

func (r *PartyGormRepository) FindByID(ctx context.Context, id int64) (model.Party, error) {
	var p model.Party
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Party{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Party{}, err
	}
	return p, nil
}

// 名前で取引先を取得（大文字小文字を区別しない）
func (r *PartyGormRepository) FindByName(ctx context.Context, name string) (model.Party, error) {
	var p model.Party
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Party{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Party{}, err
	}
	return p, nil
}

func (r *PartyGormRepository) Create(ctx context.Context, p model.Party) (model.Party, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Party{}, err
	}
	return p, nil
}

func (r *PartyGormRepository) Update(ctx context.Context, p model.Party) error {
	res := r.db.WithContext(ctx).Model(&model.Party{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":      p.Name,
		"type":      p.Type,
		"is_active": p.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
