package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// UpdateQuantity solo debe invocarse desde el gateway de mutación, dentro de
// la misma transacción que tomó el lock con GetForUpdate.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetBySKU(sku string) (*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	// UpdateMetadata actualiza nombre, SKU, referencias y precio; nunca Quantity.
	UpdateMetadata(item *entity.Item) error
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Item, error)
	UpdateQuantity(id string, quantity decimal.Decimal, updatedBy string) error
	// Retire marca el artículo inactivo con el nombre/SKU ya renombrados.
	Retire(item *entity.Item) error
}
