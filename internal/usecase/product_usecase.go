package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"app/internal/cache"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"go.uber.org/zap"
)

type ProductUsecase struct {
	productRepo       repo.ProductRepository
	versions          *cache.Versions
	lowStockThreshold int64
	log               *zap.Logger
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	versions *cache.Versions,
	lowStockThreshold int64,
	log *zap.Logger,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:       productRepo,
		versions:          versions,
		lowStockThreshold: lowStockThreshold,
		log:               log,
	}
}

type ProductInput struct {
	Name         string
	Category     string
	Brand        string
	Description  string
	ImageURL     string
	CurrentStock int64
	CostPrice    float64
	SalePrice    float64
	Supplier     string
}

func (in *ProductInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidArgument)
	}
	if in.CurrentStock < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrInvalidArgument)
	}
	if in.CostPrice < 0 || in.SalePrice < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrInvalidArgument)
	}
	return nil
}

func (u *ProductUsecase) Create(ctx context.Context, actor Actor, in ProductInput) (model.Product, error) {
	if !actor.CanWrite() {
		return model.Product{}, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	// 名前は大文字小文字を無視して一意
	_, err := u.productRepo.FindByName(ctx, in.Name)
	if err == nil {
		return model.Product{}, fmt.Errorf("%w: duplicate product name", ErrConflict)
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:         in.Name,
		Category:     in.Category,
		Brand:        in.Brand,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		CurrentStock: in.CurrentStock,
		CostPrice:    in.CostPrice,
		SalePrice:    in.SalePrice,
		Supplier:     in.Supplier,
		IsActive:     true,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	u.versions.BumpProducts()
	u.log.Info("product created",
		zap.Int64("product_id", p.ID),
		zap.String("name", p.Name),
		zap.String("actor", actor.Username),
	)

	return p, nil
}

// Update は属性更新。リネームしてもmovementsはIDで参照しているのでカスケードは無い。
func (u *ProductUsecase) Update(ctx context.Context, actor Actor, productID int64, in ProductInput) error {
	if !actor.CanWrite() {
		return ErrForbidden
	}
	if err := in.validate(); err != nil {
		return err
	}

	current, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	// リネーム先が他の商品と衝突しないか
	if !strings.EqualFold(current.Name, in.Name) {
		existing, err := u.productRepo.FindByName(ctx, in.Name)
		if err == nil && existing.ID != productID {
			return fmt.Errorf("%w: duplicate product name", ErrConflict)
		}
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
	}

	current.Name = in.Name
	current.Category = in.Category
	current.Brand = in.Brand
	current.Description = in.Description
	current.ImageURL = in.ImageURL
	current.CostPrice = in.CostPrice
	current.SalePrice = in.SalePrice
	current.Supplier = in.Supplier

	if err := u.productRepo.Update(ctx, current); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	u.versions.BumpProducts()
	return nil
}

// SoftDelete はis_activeを落とすだけ。履歴と在庫値はそのまま残す。
func (u *ProductUsecase) SoftDelete(ctx context.Context, actor Actor, productID int64) error {
	if !actor.IsOwner() {
		return ErrForbidden
	}

	err := u.productRepo.SetActive(ctx, productID, false)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	u.versions.BumpProducts()
	u.log.Info("product deactivated",
		zap.Int64("product_id", productID),
		zap.String("actor", actor.Username),
	)
	return nil
}

// Restore はis_activeを戻すだけ。履歴から在庫を再計算はしない。
func (u *ProductUsecase) Restore(ctx context.Context, actor Actor, productID int64) error {
	if !actor.IsOwner() {
		return ErrForbidden
	}

	err := u.productRepo.SetActive(ctx, productID, true)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	u.versions.BumpProducts()
	return nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, ErrNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return p, nil
}

// List は計算時点のバージョンでタグ付けした一覧を返す。
func (u *ProductUsecase) List(ctx context.Context, includeInactive bool) (cache.Tagged[[]model.Product], error) {
	version := u.versions.Products()

	products, err := u.productRepo.List(ctx, includeInactive)
	if err != nil {
		return cache.Tagged[[]model.Product]{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	return cache.Tag(products, version), nil
}

// ListLowStock はしきい値以下の在庫を返す（アラート用）。
func (u *ProductUsecase) ListLowStock(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.ListLowStock(ctx, u.lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return products, nil
}
