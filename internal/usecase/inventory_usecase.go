package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/cache"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"go.uber.org/zap"
)

// InventoryUsecase が在庫台帳のルールを一手に持つ。
// pageハンドラはここを経由する以外に行を書き換えてはならない。
type InventoryUsecase struct {
	tx           repo.TransactionManager
	movementRepo repo.MovementRepository
	versions     *cache.Versions
	log          *zap.Logger
}

// DI
func NewInventoryUsecase(
	tx repo.TransactionManager,
	movementRepo repo.MovementRepository,
	versions *cache.Versions,
	log *zap.Logger,
) *InventoryUsecase {
	return &InventoryUsecase{
		tx:           tx,
		movementRepo: movementRepo,
		versions:     versions,
		log:          log,
	}
}

type RecordMovementInput struct {
	ProductID int64
	Type      model.MovementType
	Quantity  int64
	Price     *float64
	PartyName string
	PartyType model.PartyType
	Notes     string
	Date      time.Time
}

type EditMovementInput struct {
	Type      model.MovementType
	Quantity  int64
	Price     *float64
	PartyName string
	PartyType model.PartyType
	Notes     string
	Date      time.Time
}

// 種類ごとの数量ルール。
// IN/OUT/INITIALは正の数量、ADJUSTMENTは符号付きで0以外。
func validateTypeAndQuantity(t model.MovementType, quantity int64) error {
	if !t.Valid() {
		return fmt.Errorf("%w: unknown movement type %q", ErrInvalidArgument, t)
	}
	if t == model.MovementAdjustment {
		if quantity == 0 {
			return fmt.Errorf("%w: adjustment quantity must be non-zero", ErrInvalidArgument)
		}
		return nil
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
	}
	return nil
}

// RecordMovement は移動を記録して在庫を更新する。
// 在庫更新と移動の挿入は1つのTxで行う（片方だけの適用は正しさの破壊）。
func (u *InventoryUsecase) RecordMovement(ctx context.Context, actor Actor, in RecordMovementInput) (model.Movement, error) {
	if !actor.CanWrite() {
		return model.Movement{}, ErrForbidden
	}
	if err := validateTypeAndQuantity(in.Type, in.Quantity); err != nil {
		return model.Movement{}, err
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	var created model.Movement
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, in.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		if !p.IsActive {
			return fmt.Errorf("%w: product is inactive", ErrInvalidArgument)
		}

		// INITIALは移動履歴が空の時しか記録できない
		if in.Type == model.MovementInitial {
			count, err := r.Movements().CountByProduct(ctx, in.ProductID)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrStore, err)
			}
			if count > 0 {
				return fmt.Errorf("%w: initial stock can only be set before any other movement", ErrInvariant)
			}
		}

		m := model.Movement{
			ProductID:    in.ProductID,
			Type:         in.Type,
			Quantity:     in.Quantity,
			Price:        in.Price,
			Notes:        in.Notes,
			MovementDate: in.Date,
		}

		// 取引先が指定されていれば無ければ作る
		if in.PartyName != "" {
			party, err := upsertParty(ctx, r.Parties(), in.PartyName, in.PartyType)
			if err != nil {
				return err
			}
			m.PartyID = &party.ID
		}

		var newStock int64
		switch in.Type {
		case model.MovementInitial:
			// 絶対値で在庫をセット
			newStock = in.Quantity
		case model.MovementOut:
			if in.Quantity > p.CurrentStock {
				return fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, in.Quantity, p.CurrentStock)
			}
			newStock = p.CurrentStock - in.Quantity
		default:
			newStock = p.CurrentStock + in.Quantity
		}

		if err := r.Products().SetStock(ctx, p.ID, newStock); err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}

		// 仕入れ時はデフォルト仕入先も更新
		if in.Type == model.MovementIn && in.PartyName != "" {
			if err := r.Products().SetSupplier(ctx, p.ID, in.PartyName); err != nil {
				return fmt.Errorf("%w: %v", ErrStore, err)
			}
		}

		created, err = r.Movements().Create(ctx, m)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		return nil
	})
	if err != nil {
		return model.Movement{}, err
	}

	u.versions.BumpProducts()
	u.versions.BumpMovements()
	u.log.Info("movement recorded",
		zap.Int64("movement_id", created.ID),
		zap.Int64("product_id", created.ProductID),
		zap.String("type", string(created.Type)),
		zap.Int64("quantity", created.Quantity),
		zap.String("actor", actor.Username),
	)

	return created, nil
}

// EditMovement は元のdeltaを打ち消してから新しいdeltaを適用する。
// 正味の結果はゼロから再計算した値と一致しなければならない。
func (u *InventoryUsecase) EditMovement(ctx context.Context, actor Actor, movementID int64, in EditMovementInput) (model.Movement, error) {
	if !actor.CanWrite() {
		return model.Movement{}, ErrForbidden
	}
	if err := validateTypeAndQuantity(in.Type, in.Quantity); err != nil {
		return model.Movement{}, err
	}

	var updated model.Movement
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		old, err := r.Movements().FindByID(ctx, movementID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}

		p, err := r.Products().FindByID(ctx, old.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}

		// INITIALへ・INITIALのままの編集は他の移動が無い時だけ
		if in.Type == model.MovementInitial {
			others, err := r.Movements().CountByProductExcept(ctx, old.ProductID, old.ID)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrStore, err)
			}
			if others > 0 {
				return fmt.Errorf("%w: initial stock can only be edited while it is the only movement", ErrInvariant)
			}
		}

		updated = old
		updated.Type = in.Type
		updated.Quantity = in.Quantity
		updated.Price = in.Price
		updated.Notes = in.Notes
		if !in.Date.IsZero() {
			updated.MovementDate = in.Date
		}

		updated.PartyID = nil
		if in.PartyName != "" {
			party, err := upsertParty(ctx, r.Parties(), in.PartyName, in.PartyType)
			if err != nil {
				return err
			}
			updated.PartyID = &party.ID
		}

		var newStock int64
		if in.Type == model.MovementInitial {
			// INITIALは絶対値
			newStock = in.Quantity
		} else {
			newStock = p.CurrentStock - old.StockDelta() + updated.StockDelta()
		}

		if err := r.Movements().Update(ctx, updated); err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		if err := r.Products().SetStock(ctx, p.ID, newStock); err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		return nil
	})
	if err != nil {
		return model.Movement{}, err
	}

	u.versions.BumpProducts()
	u.versions.BumpMovements()
	u.log.Info("movement edited",
		zap.Int64("movement_id", movementID),
		zap.String("actor", actor.Username),
	)

	return updated, nil
}

// DeleteMovement は移動の在庫効果を取り消してから行を消す。
// 結果として在庫が負になっても構わない（上流のデータ異常を見えるままにする）。
func (u *InventoryUsecase) DeleteMovement(ctx context.Context, actor Actor, movementID int64) error {
	if !actor.IsOwner() {
		return ErrForbidden
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		m, err := r.Movements().FindByID(ctx, movementID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}

		if err := r.Products().AddStock(ctx, m.ProductID, -m.StockDelta()); err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		if err := r.Movements().Delete(ctx, m.ID); err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.versions.BumpProducts()
	u.versions.BumpMovements()
	u.log.Info("movement deleted",
		zap.Int64("movement_id", movementID),
		zap.String("actor", actor.Username),
	)

	return nil
}

type ListMovementsInput struct {
	ProductID *int64
	Types     []model.MovementType
	Days      *int
}

// ListMovements は計算時点のバージョンでタグ付けした一覧を返す。
func (u *InventoryUsecase) ListMovements(ctx context.Context, in ListMovementsInput) (cache.Tagged[[]model.Movement], error) {
	version := u.versions.Movements()

	movements, err := u.movementRepo.List(ctx, repo.MovementListQuery{
		ProductID: in.ProductID,
		Types:     in.Types,
		Days:      in.Days,
	})
	if err != nil {
		return cache.Tagged[[]model.Movement]{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	return cache.Tag(movements, version), nil
}

func (u *InventoryUsecase) GetMovement(ctx context.Context, movementID int64) (model.Movement, error) {
	m, err := u.movementRepo.FindByID(ctx, movementID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Movement{}, ErrNotFound
	}
	if err != nil {
		return model.Movement{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return m, nil
}
