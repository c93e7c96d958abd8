package repository

import (
	"app/internal/domain/model"
	"context"
)

type PartyRepository interface {
	List(ctx context.Context, includeInactive bool) ([]model.Party, error)
	FindByID(ctx context.Context, id int64) (model.Party, error)
	//名前は大文字小文字を区別しない
	FindByName(ctx context.Context, name string) (model.Party, error)

	Create(ctx context.Context, p model.Party) (model.Party, error)
	Update(ctx context.Context, p model.Party) error
}
