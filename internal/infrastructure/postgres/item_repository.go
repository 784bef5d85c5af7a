package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, sku, category_id, unit_id, quantity, reorder_level, is_active, unit_price, storage_tag, created_by, updated_by, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo nuevo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.CategoryID, item.UnitID,
		item.Quantity, item.ReorderLevel, item.IsActive, item.UnitPrice,
		item.StorageTag, item.CreatedBy, item.UpdatedBy, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item")
}

// GetBySKU obtiene un artículo por SKU.
func (r *ItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get item by sku")
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
// Un segundo apply concurrente sobre el mismo artículo espera aquí hasta el
// commit de la transacción que tiene el lock.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item for update")
}

// List lista artículos paginados, por nombre.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := scanItem(rows, &it); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateMetadata actualiza metadatos. La cantidad queda explícitamente fuera:
// solo UpdateQuantity (gateway, bajo lock) la escribe.
func (r *ItemRepo) UpdateMetadata(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, sku = $3, category_id = $4, unit_id = $5,
			reorder_level = $6, unit_price = $7, storage_tag = $8,
			updated_by = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.CategoryID, item.UnitID,
		item.ReorderLevel, item.UnitPrice, item.StorageTag,
		item.UpdatedBy, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateQuantity escribe la nueva cantidad. Invocar solo desde el gateway,
// en la transacción que tomó el lock con GetForUpdate.
func (r *ItemRepo) UpdateQuantity(id string, quantity decimal.Decimal, updatedBy string) error {
	query := `UPDATE items SET quantity = $2, updated_by = $3, updated_at = $4 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, quantity, updatedBy, time.Now())
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Retire marca el artículo inactivo con nombre/SKU ya renombrados.
// Nunca hay DELETE de items: el ledger referencia la fila.
func (r *ItemRepo) Retire(item *entity.Item) error {
	query := `
		UPDATE items SET is_active = false, name = $2, sku = $3, updated_by = $4, updated_at = $5
		WHERE id = $1 AND is_active = true`
	cmd, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.UpdatedBy, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("retire item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrItemRetired
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	var it entity.Item
	if err := scanItem(row, &it); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}

func scanItem(row pgx.Row, it *entity.Item) error {
	return row.Scan(
		&it.ID, &it.Name, &it.SKU, &it.CategoryID, &it.UnitID,
		&it.Quantity, &it.ReorderLevel, &it.IsActive, &it.UnitPrice,
		&it.StorageTag, &it.CreatedBy, &it.UpdatedBy, &it.CreatedAt, &it.UpdatedAt,
	)
}
