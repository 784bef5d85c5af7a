package repository

import (
	"time"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
)

// LedgerRepository define el puerto del ledger de stock. Append-only:
// no existe Update ni Delete, una corrección es otra entrada.
type LedgerRepository interface {
	Append(tx *entity.StockTransaction) error
	GetByID(id string) (*entity.StockTransaction, error)
	// ListByItem proyección por artículo, ordenada por fecha descendente.
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error)
	// ListByLocation proyección por sede (solo entradas con ubicación).
	ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error)
	CountByItem(itemID string) (int, error)
}
