// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con transacciones por snapshot. Lo usan los tests de los
// workflows; el modelo de concurrencia imita al de PostgreSQL a grano de
// store: Run serializa las transacciones y restaura el snapshot si fn falla.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/repository"
)

var _ stock.TxRunner = (*Store)(nil)

// Store almacén en memoria con snapshot/rollback.
type Store struct {
	mu           sync.Mutex
	txMu         sync.Mutex
	items        map[string]entity.Item
	ledger       []entity.StockTransaction
	requisitions map[string]entity.Requisition
	locations    map[string]entity.Location
	categories   map[string]entity.Category
	units        map[string]entity.Unit
	users        map[string]entity.User

	// FailAppend permite inyectar un fallo de almacenamiento en Append
	// (para probar rollback de la segunda pata de un traslado).
	FailAppend func(tx *entity.StockTransaction) error
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		items:        map[string]entity.Item{},
		requisitions: map[string]entity.Requisition{},
		locations:    map[string]entity.Location{},
		categories:   map[string]entity.Category{},
		units:        map[string]entity.Unit{},
		users:        map[string]entity.User{},
	}
}

type snapshot struct {
	items        map[string]entity.Item
	ledger       []entity.StockTransaction
	requisitions map[string]entity.Requisition
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		items:        make(map[string]entity.Item, len(s.items)),
		ledger:       append([]entity.StockTransaction(nil), s.ledger...),
		requisitions: make(map[string]entity.Requisition, len(s.requisitions)),
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	for k, v := range s.requisitions {
		snap.requisitions[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snap.items
	s.ledger = snap.ledger
	s.requisitions = snap.requisitions
}

// Run implementa stock.TxRunner: serializa transacciones y revierte el
// estado mutable (items, ledger, requisiciones) si fn devuelve error.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	ledgerRepo repository.LedgerRepository,
	reqRepo repository.RequisitionRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := s.takeSnapshot()
	if err := fn(s.Items(), s.Ledger(), s.Requisitions()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Seed helpers (solo tests).

// PutItem inserta o reemplaza un artículo.
func (s *Store) PutItem(it entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
}

// PutLocation inserta una sede.
func (s *Store) PutLocation(l entity.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[l.ID] = l
}

// PutCategory inserta una categoría.
func (s *Store) PutCategory(c entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

// PutUnit inserta una unidad.
func (s *Store) PutUnit(u entity.Unit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units[u.ID] = u
}

// PutUser inserta un usuario.
func (s *Store) PutUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// LedgerLen cantidad de entradas del ledger (aserciones de tests).
func (s *Store) LedgerLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ledger)
}

// Accessors a los repos atados al store.

// Items devuelve el repositorio de artículos.
func (s *Store) Items() repository.ItemRepository { return &itemRepo{s: s} }

// Ledger devuelve el repositorio del ledger.
func (s *Store) Ledger() repository.LedgerRepository { return &ledgerRepo{s: s} }

// Requisitions devuelve el repositorio de requisiciones.
func (s *Store) Requisitions() repository.RequisitionRepository { return &requisitionRepo{s: s} }

// Locations devuelve el repositorio de sedes.
func (s *Store) Locations() repository.LocationRepository { return &locationRepo{s: s} }

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s: s} }

// Units devuelve el repositorio de unidades.
func (s *Store) Units() repository.UnitRepository { return &unitRepo{s: s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// ─── item repo ───────────────────────────────────────────────────────────────

type itemRepo struct{ s *Store }

func (r *itemRepo) Create(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, it := range r.s.items {
		if it.SKU == item.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *itemRepo) GetByID(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it, ok := r.s.items[id]; ok {
		cp := it
		return &cp, nil
	}
	return nil, nil
}

func (r *itemRepo) GetBySKU(sku string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.SKU == sku {
			cp := it
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate: el lock de fila lo da la serialización de Run (txMu).
func (r *itemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *itemRepo) List(limit, offset int) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Item, 0, len(r.s.items))
	for _, it := range r.s.items {
		cp := it
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *itemRepo) UpdateMetadata(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// Conserva la cantidad: los metadatos nunca la tocan.
	cp := *item
	cp.Quantity = existing.Quantity
	r.s.items[item.ID] = cp
	return nil
}

func (r *itemRepo) UpdateQuantity(id string, quantity decimal.Decimal, updatedBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.UpdatedBy = updatedBy
	it.UpdatedAt = time.Now()
	r.s.items[id] = it
	return nil
}

func (r *itemRepo) Retire(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if !existing.IsActive {
		return domain.ErrItemRetired
	}
	cp := *item
	cp.Quantity = existing.Quantity
	cp.IsActive = false
	r.s.items[item.ID] = cp
	return nil
}

// ─── ledger repo ─────────────────────────────────────────────────────────────

type ledgerRepo struct{ s *Store }

func (r *ledgerRepo) Append(tx *entity.StockTransaction) error {
	if !tx.Kind.Valid() || !tx.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if r.s.FailAppend != nil {
		if err := r.s.FailAppend(tx); err != nil {
			return err
		}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ledger = append(r.s.ledger, *tx)
	return nil
}

func (r *ledgerRepo) GetByID(id string) (*entity.StockTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.ledger {
		if r.s.ledger[i].ID == id {
			cp := r.s.ledger[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ledgerRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	return r.list(func(t *entity.StockTransaction) bool { return t.ItemID == itemID }, from, to, limit, offset)
}

func (r *ledgerRepo) ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	return r.list(func(t *entity.StockTransaction) bool {
		return t.LocationID != nil && *t.LocationID == locationID
	}, from, to, limit, offset)
}

func (r *ledgerRepo) CountByItem(itemID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for i := range r.s.ledger {
		if r.s.ledger[i].ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (r *ledgerRepo) list(match func(*entity.StockTransaction) bool, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.StockTransaction
	for i := range r.s.ledger {
		t := r.s.ledger[i]
		if !match(&t) {
			continue
		}
		if from != nil && t.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && t.CreatedAt.After(*to) {
			continue
		}
		cp := t
		all = append(all, &cp)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

// ─── requisition repo ────────────────────────────────────────────────────────

type requisitionRepo struct{ s *Store }

func (r *requisitionRepo) Create(req *entity.Requisition) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.requisitions[req.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.requisitions[req.ID] = *req
	return nil
}

func (r *requisitionRepo) GetByID(id string) (*entity.Requisition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if req, ok := r.s.requisitions[id]; ok {
		cp := req
		return &cp, nil
	}
	return nil, nil
}

func (r *requisitionRepo) List(status entity.RequisitionStatus, limit, offset int) ([]*entity.Requisition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Requisition
	for _, req := range r.s.requisitions {
		if status != "" && req.Status != status {
			continue
		}
		cp := req
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *requisitionRepo) ClaimPending(id string, status entity.RequisitionStatus, reviewerID, note string, reviewedAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requisitions[id]
	if !ok || req.Status != entity.RequisitionPending {
		return false, nil
	}
	req.Status = status
	req.ReviewerID = &reviewerID
	req.AdminNote = note
	req.ReviewedAt = &reviewedAt
	r.s.requisitions[id] = req
	return true, nil
}

// ─── master data / users ─────────────────────────────────────────────────────

type locationRepo struct{ s *Store }

func (r *locationRepo) GetByID(id string) (*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.locations[id]; ok {
		cp := l
		return &cp, nil
	}
	return nil, nil
}

func (r *locationRepo) List(limit, offset int) ([]*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Location
	for _, l := range r.s.locations {
		cp := l
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) GetByID(id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.categories[id]; ok {
		cp := c
		return &cp, nil
	}
	return nil, nil
}

type unitRepo struct{ s *Store }

func (r *unitRepo) GetByID(id string) (*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.units[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *userRepo) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
