package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const ledgerColumns = `id, item_id, kind, quantity, quantity_before, quantity_after, location_id, user_id, note, created_at`

// LedgerRepo adaptador PostgreSQL del ledger (usable con pool o tx).
// Append-only por construcción: este tipo no tiene UPDATE ni DELETE.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Append inserta una entrada. Sin validación de negocio más allá de rangos:
// la consistencia antes/después con el artículo es responsabilidad del gateway.
func (r *LedgerRepo) Append(tx *entity.StockTransaction) error {
	if !tx.Kind.Valid() || !tx.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_transactions (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ItemID, string(tx.Kind), tx.Quantity,
		tx.QuantityBefore, tx.QuantityAfter, tx.LocationID,
		tx.UserID, tx.Note, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: append ledger entry: %v", domain.ErrStorage, err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *LedgerRepo) GetByID(id string) (*entity.StockTransaction, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_transactions WHERE id = $1`
	var t entity.StockTransaction
	err := scanLedgerEntry(r.q.QueryRow(context.Background(), query, id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return &t, nil
}

// ListByItem proyección por artículo, ordenada por fecha descendente.
func (r *LedgerRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	return r.list(`item_id`, itemID, from, to, limit, offset)
}

// ListByLocation proyección por sede: solo entradas con ubicación.
func (r *LedgerRepo) ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	return r.list(`location_id`, locationID, from, to, limit, offset)
}

// CountByItem cuenta las entradas de un artículo.
func (r *LedgerRepo) CountByItem(itemID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM stock_transactions WHERE item_id = $1`, itemID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ledger entries: %w", err)
	}
	return n, nil
}

func (r *LedgerRepo) list(column, value string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_transactions WHERE ` + column + ` = $1`
	args := []any{value}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := scanLedgerEntry(rows, &t); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func scanLedgerEntry(row pgx.Row, t *entity.StockTransaction) error {
	var kind string
	if err := row.Scan(
		&t.ID, &t.ItemID, &kind, &t.Quantity,
		&t.QuantityBefore, &t.QuantityAfter, &t.LocationID,
		&t.UserID, &t.Note, &t.CreatedAt,
	); err != nil {
		return err
	}
	t.Kind = entity.MovementKind(kind)
	return nil
}
