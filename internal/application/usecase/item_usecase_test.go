package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/dto"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/usecase"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/infrastructure/memory"
)

const (
	categoryID = "66666666-6666-6666-6666-666666666666"
	unitID     = "77777777-7777-7777-7777-777777777777"
	actorID    = "22222222-2222-2222-2222-222222222222"
)

func newItemFixture(t *testing.T) (*memory.Store, *usecase.ItemUseCase) {
	t.Helper()
	store := memory.NewStore()
	store.PutCategory(entity.Category{ID: categoryID, Name: "Periféricos"})
	store.PutUnit(entity.Unit{ID: unitID, Name: "Unidad", Abbreviation: "u"})
	gw := stock.NewGateway(store, nil)
	uc := usecase.NewItemUseCase(store, gw, store.Items(), store.Categories(), store.Units())
	return store, uc
}

func validCreate() dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Name:         "Cable HDMI",
		SKU:          "HDMI-001",
		CategoryID:   categoryID,
		UnitID:       unitID,
		ReorderLevel: decimal.NewFromInt(2),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCreate_SinStockInicial(t *testing.T) {
	store, uc := newItemFixture(t)

	item, err := uc.Create(context.Background(), actorID, validCreate())
	require.NoError(t, err)

	assert.True(t, item.Quantity.IsZero())
	assert.True(t, item.IsActive)
	assert.True(t, item.LowStock, "cantidad 0 con reorder 2 es stock bajo")
	// Sin stock inicial no hay entrada de ledger.
	assert.Equal(t, 0, store.LedgerLen())
}

// El alta con stock inicial crea el artículo y su primera entrada de ledger
// en la misma transacción: el historial completo existe desde el día uno.
func TestItemCreate_ConStockInicial(t *testing.T) {
	store, uc := newItemFixture(t)
	in := validCreate()
	in.InitialQuantity = decimal.NewFromInt(7)

	item, err := uc.Create(context.Background(), actorID, in)
	require.NoError(t, err)

	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(7)))
	assert.False(t, item.LowStock)
	require.Equal(t, 1, store.LedgerLen())

	entries, err := store.Ledger().ListByItem(item.ID, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.MovementAdd, entries[0].Kind)
	assert.Equal(t, "initial stock", entries[0].Note)
	assert.True(t, entries[0].QuantityBefore.IsZero())
	assert.True(t, entries[0].QuantityAfter.Equal(decimal.NewFromInt(7)))
}

func TestItemCreate_Validaciones(t *testing.T) {
	_, uc := newItemFixture(t)
	ctx := context.Background()

	neg := decimal.NewFromInt(-1)

	base := validCreate()
	noName := base
	noName.Name = "  "
	negInitial := base
	negInitial.InitialQuantity = neg
	negReorder := base
	negReorder.ReorderLevel = neg
	negPrice := base
	negPrice.UnitPrice = &neg
	badCategory := base
	badCategory.CategoryID = "no-existe"

	cases := []struct {
		name string
		in   dto.CreateItemRequest
		want error
	}{
		{"nombre vacío", noName, domain.ErrInvalidInput},
		{"stock inicial negativo", negInitial, domain.ErrInvalidInput},
		{"reorder negativo", negReorder, domain.ErrInvalidInput},
		{"precio negativo", negPrice, domain.ErrInvalidInput},
		{"categoría inexistente", badCategory, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, actorID, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestItemCreate_SKUDuplicado(t *testing.T) {
	_, uc := newItemFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, actorID, validCreate())
	require.NoError(t, err)

	_, err = uc.Create(ctx, actorID, validCreate())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización de metadatos
// ──────────────────────────────────────────────────────────────────────────────

// Los metadatos se editan; la cantidad no entra por aquí jamás.
func TestItemUpdate_NoTocaCantidad(t *testing.T) {
	store, uc := newItemFixture(t)
	in := validCreate()
	in.InitialQuantity = decimal.NewFromInt(5)
	item, err := uc.Create(context.Background(), actorID, in)
	require.NoError(t, err)

	name := "Cable HDMI 2.1"
	updated, err := uc.UpdateMetadata(context.Background(), item.ID, actorID, dto.UpdateItemRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Cable HDMI 2.1", updated.Name)
	assert.True(t, updated.Quantity.Equal(decimal.NewFromInt(5)))

	stored, _ := store.Items().GetByID(item.ID)
	assert.True(t, stored.Quantity.Equal(decimal.NewFromInt(5)))
}

func TestItemUpdate_SKUDeOtroArticulo(t *testing.T) {
	_, uc := newItemFixture(t)
	ctx := context.Background()

	a, err := uc.Create(ctx, actorID, validCreate())
	require.NoError(t, err)
	other := validCreate()
	other.SKU = "HDMI-002"
	b, err := uc.Create(ctx, actorID, other)
	require.NoError(t, err)

	sku := a.SKU
	_, err = uc.UpdateMetadata(ctx, b.ID, actorID, dto.UpdateItemRequest{SKU: &sku})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Retiro
// ──────────────────────────────────────────────────────────────────────────────

// Retirar desactiva y renombra (libera el SKU); la fila y su historial quedan.
func TestItemRetire(t *testing.T) {
	store, uc := newItemFixture(t)
	ctx := context.Background()
	in := validCreate()
	in.InitialQuantity = decimal.NewFromInt(3)
	item, err := uc.Create(ctx, actorID, in)
	require.NoError(t, err)

	retired, err := uc.Retire(ctx, item.ID, actorID)
	require.NoError(t, err)

	assert.False(t, retired.IsActive)
	assert.Contains(t, retired.Name, "(retired)")
	assert.NotEqual(t, item.SKU, retired.SKU)
	assert.Contains(t, retired.SKU, "-RET-")
	// La cantidad y el historial no se tocan.
	assert.True(t, retired.Quantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 1, store.LedgerLen())

	// El SKU original queda libre para un artículo nuevo.
	_, err = uc.Create(ctx, actorID, in)
	require.NoError(t, err)

	// Retirar dos veces no procede, y tampoco editar un retirado.
	_, err = uc.Retire(ctx, item.ID, actorID)
	assert.ErrorIs(t, err, domain.ErrItemRetired)
	name := "otro"
	_, err = uc.UpdateMetadata(ctx, item.ID, actorID, dto.UpdateItemRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrItemRetired)
}
