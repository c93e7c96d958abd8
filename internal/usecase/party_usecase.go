package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"go.uber.org/zap"
)

type PartyUsecase struct {
	partyRepo repo.PartyRepository
	log       *zap.Logger
}

// DI
func NewPartyUsecase(partyRepo repo.PartyRepository, log *zap.Logger) *PartyUsecase {
	return &PartyUsecase{partyRepo: partyRepo, log: log}
}

// 既存の種別と新しい種別のマージ。
// 明示的なSupplier/CustomerはOtherに勝つ。衝突（Supplier vs Customer）は既存を維持する。
func mergePartyType(existing model.PartyType, incoming model.PartyType) model.PartyType {
	if existing == "" {
		if incoming == "" {
			return model.PartyOther
		}
		return incoming
	}
	if existing == incoming {
		return existing
	}
	if existing == model.PartyOther && incoming != model.PartyOther {
		return incoming
	}
	return existing
}

// upsertParty は無ければ作成、あれば種別をマージして再アクティブ化する。
// Ledgerの移動記録からも同じルールで呼ばれる。
func upsertParty(ctx context.Context, parties repo.PartyRepository, name string, ptype model.PartyType) (model.Party, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Party{}, fmt.Errorf("%w: party name required", ErrInvalidArgument)
	}
	if ptype == "" {
		ptype = model.PartyOther
	}

	existing, err := parties.FindByName(ctx, name)
	if err == nil {
		existing.Type = mergePartyType(existing.Type, ptype)
		existing.IsActive = true
		if err := parties.Update(ctx, existing); err != nil {
			return model.Party{}, fmt.Errorf("%w: %v", ErrStore, err)
		}
		return existing, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Party{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	created, err := parties.Create(ctx, model.Party{
		Name:     name,
		Type:     ptype,
		IsActive: true,
	})
	if err != nil {
		return model.Party{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return created, nil
}

func (u *PartyUsecase) Upsert(ctx context.Context, actor Actor, name string, ptype model.PartyType) (model.Party, error) {
	if !actor.CanWrite() {
		return model.Party{}, ErrForbidden
	}
	return upsertParty(ctx, u.partyRepo, name, ptype)
}

// Rename は名前の付け替えだけ。movementsはIDで参照するのでカスケード更新は無い。
func (u *PartyUsecase) Rename(ctx context.Context, actor Actor, partyID int64, newName string) error {
	if !actor.CanWrite() {
		return ErrForbidden
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("%w: party name required", ErrInvalidArgument)
	}

	p, err := u.partyRepo.FindByID(ctx, partyID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	// 別の取引先と衝突しないか
	existing, err := u.partyRepo.FindByName(ctx, newName)
	if err == nil && existing.ID != p.ID {
		return fmt.Errorf("%w: party name already exists", ErrConflict)
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	p.Name = newName
	if err := u.partyRepo.Update(ctx, p); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	u.log.Info("party renamed",
		zap.Int64("party_id", partyID),
		zap.String("new_name", newName),
		zap.String("actor", actor.Username),
	)
	return nil
}

// Deactivate はソフトデリート。移動履歴はそのまま残る。
func (u *PartyUsecase) Deactivate(ctx context.Context, actor Actor, partyID int64) error {
	if !actor.CanWrite() {
		return ErrForbidden
	}

	p, err := u.partyRepo.FindByID(ctx, partyID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	p.IsActive = false
	if err := u.partyRepo.Update(ctx, p); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	return nil
}

func (u *PartyUsecase) List(ctx context.Context, includeInactive bool) ([]model.Party, error) {
	parties, err := u.partyRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return parties, nil
}
