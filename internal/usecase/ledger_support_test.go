package usecase_test

import (
	"context"
	"strings"

	"app/internal/cache"
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"go.uber.org/zap"
)

// =====================
// インメモリのfake store（台帳テスト用）
// =====================

type fakeStore struct {
	products  map[int64]model.Product
	movements map[int64]model.Movement
	parties   map[int64]model.Party

	nextProductID  int64
	nextMovementID int64
	nextPartyID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  map[int64]model.Product{},
		movements: map[int64]model.Movement{},
		parties:   map[int64]model.Party{},
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	cp.nextProductID = s.nextProductID
	cp.nextMovementID = s.nextMovementID
	cp.nextPartyID = s.nextPartyID
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.movements {
		cp.movements[k] = v
	}
	for k, v := range s.parties {
		cp.parties[k] = v
	}
	return cp
}

func (s *fakeStore) restore(from *fakeStore) {
	s.products = from.products
	s.movements = from.movements
	s.parties = from.parties
	s.nextProductID = from.nextProductID
	s.nextMovementID = from.nextMovementID
	s.nextPartyID = from.nextPartyID
}

// --- ProductRepository ---

type fakeProducts struct{ s *fakeStore }

func (r *fakeProducts) List(ctx context.Context, includeInactive bool) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.s.products {
		if includeInactive || p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProducts) ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.s.products {
		if p.IsActive && p.CurrentStock <= threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProducts) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *fakeProducts) FindByName(ctx context.Context, name string) (model.Product, error) {
	for _, p := range r.s.products {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (r *fakeProducts) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.s.nextProductID++
	p.ID = r.s.nextProductID
	r.s.products[p.ID] = p
	return p, nil
}

func (r *fakeProducts) Update(ctx context.Context, p model.Product) error {
	cur, ok := r.s.products[p.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cur.Name = p.Name
	cur.Category = p.Category
	cur.Brand = p.Brand
	cur.Description = p.Description
	cur.ImageURL = p.ImageURL
	cur.CostPrice = p.CostPrice
	cur.SalePrice = p.SalePrice
	cur.Supplier = p.Supplier
	r.s.products[p.ID] = cur
	return nil
}

func (r *fakeProducts) SetActive(ctx context.Context, id int64, active bool) error {
	p, ok := r.s.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.IsActive = active
	r.s.products[id] = p
	return nil
}

func (r *fakeProducts) SetStock(ctx context.Context, id int64, stock int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.CurrentStock = stock
	r.s.products[id] = p
	return nil
}

func (r *fakeProducts) AddStock(ctx context.Context, id int64, delta int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.CurrentStock += delta
	r.s.products[id] = p
	return nil
}

func (r *fakeProducts) SetSupplier(ctx context.Context, id int64, supplier string) error {
	p, ok := r.s.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.Supplier = supplier
	r.s.products[id] = p
	return nil
}

// --- MovementRepository ---

type fakeMovements struct{ s *fakeStore }

func (r *fakeMovements) List(ctx context.Context, q repo.MovementListQuery) ([]model.Movement, error) {
	var out []model.Movement
	for _, m := range r.s.movements {
		if q.ProductID != nil && m.ProductID != *q.ProductID {
			continue
		}
		if len(q.Types) > 0 {
			found := false
			for _, t := range q.Types {
				if m.Type == t {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMovements) FindByID(ctx context.Context, id int64) (model.Movement, error) {
	m, ok := r.s.movements[id]
	if !ok {
		return model.Movement{}, repo.ErrNotFound
	}
	return m, nil
}

func (r *fakeMovements) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var n int64
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMovements) CountByProductExcept(ctx context.Context, productID int64, exceptID int64) (int64, error) {
	var n int64
	for _, m := range r.s.movements {
		if m.ProductID == productID && m.ID != exceptID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMovements) Create(ctx context.Context, m model.Movement) (model.Movement, error) {
	r.s.nextMovementID++
	m.ID = r.s.nextMovementID
	r.s.movements[m.ID] = m
	return m, nil
}

func (r *fakeMovements) Update(ctx context.Context, m model.Movement) error {
	if _, ok := r.s.movements[m.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.movements[m.ID] = m
	return nil
}

func (r *fakeMovements) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.movements[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.movements, id)
	return nil
}

// --- PartyRepository ---

type fakeParties struct{ s *fakeStore }

func (r *fakeParties) List(ctx context.Context, includeInactive bool) ([]model.Party, error) {
	var out []model.Party
	for _, p := range r.s.parties {
		if includeInactive || p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParties) FindByID(ctx context.Context, id int64) (model.Party, error) {
	p, ok := r.s.parties[id]
	if !ok {
		return model.Party{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *fakeParties) FindByName(ctx context.Context, name string) (model.Party, error) {
	for _, p := range r.s.parties {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return model.Party{}, repo.ErrNotFound
}

func (r *fakeParties) Create(ctx context.Context, p model.Party) (model.Party, error) {
	r.s.nextPartyID++
	p.ID = r.s.nextPartyID
	r.s.parties[p.ID] = p
	return p, nil
}

func (r *fakeParties) Update(ctx context.Context, p model.Party) error {
	if _, ok := r.s.parties[p.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.parties[p.ID] = p
	return nil
}

// --- TxRepos / TransactionManager ---

type fakeTxRepos struct{ s *fakeStore }

func (r *fakeTxRepos) Products() repo.ProductRepository   { return &fakeProducts{s: r.s} }
func (r *fakeTxRepos) Movements() repo.MovementRepository { return &fakeMovements{s: r.s} }
func (r *fakeTxRepos) Parties() repo.PartyRepository      { return &fakeParties{s: r.s} }

type fakeTxManager struct{ s *fakeStore }

// rollbackはsnapshotを書き戻して再現する
func (tm *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	before := tm.s.snapshot()
	if err := fn(&fakeTxRepos{s: tm.s}); err != nil {
		tm.s.restore(before)
		return err
	}
	return nil
}

// =====================
// テスト用のヘルパ
// =====================

var (
	ownerActor  = usecase.Actor{UserID: 1, Username: "olivia", Role: model.RoleOwner}
	adminActor  = usecase.Actor{UserID: 2, Username: "amir", Role: model.RoleAdmin}
	viewerActor = usecase.Actor{UserID: 3, Username: "vera", Role: model.RoleViewer}
)

type ledgerEnv struct {
	store     *fakeStore
	versions  *cache.Versions
	inventory *usecase.InventoryUsecase
	products  *usecase.ProductUsecase
	parties   *usecase.PartyUsecase
}

func newLedgerEnv() *ledgerEnv {
	store := newFakeStore()
	versions := cache.NewVersions()
	log := zap.NewNop()

	return &ledgerEnv{
		store:     store,
		versions:  versions,
		inventory: usecase.NewInventoryUsecase(&fakeTxManager{s: store}, &fakeMovements{s: store}, versions, log),
		products:  usecase.NewProductUsecase(&fakeProducts{s: store}, versions, 5, log),
		parties:   usecase.NewPartyUsecase(&fakeParties{s: store}, log),
	}
}

func (e *ledgerEnv) addProduct(name string, stock int64) model.Product {
	p, _ := (&fakeProducts{s: e.store}).Create(context.Background(), model.Product{
		Name:         name,
		CurrentStock: stock,
		IsActive:     true,
	})
	return p
}

// 生き残っている移動をゼロからリプレイした在庫
func (e *ledgerEnv) replayStock(productID int64) int64 {
	var stock int64
	for _, m := range e.store.movements {
		if m.ProductID == productID {
			stock += m.StockDelta()
		}
	}
	return stock
}
