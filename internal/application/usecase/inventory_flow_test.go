package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/dto"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/requisition"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/transfer"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/usecase"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/infrastructure/memory"
)

// Ciclo de vida completo de un artículo: alta con stock inicial, una
// requisición aprobada, una rechazada y un traslado entre sedes. Al final el
// ledger debe reconstruir exactamente el saldo.
func TestFlujoCompletoDeInventario(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.PutCategory(entity.Category{ID: categoryID, Name: "Periféricos"})
	store.PutUnit(entity.Unit{ID: unitID, Name: "Unidad"})
	locA := "aaaaaaaa-0000-0000-0000-000000000000"
	locB := "bbbbbbbb-0000-0000-0000-000000000000"
	store.PutLocation(entity.Location{ID: locA, Name: "Bodega Central"})
	store.PutLocation(entity.Location{ID: locB, Name: "Sede Norte"})

	gw := stock.NewGateway(store, nil)
	itemUC := usecase.NewItemUseCase(store, gw, store.Items(), store.Categories(), store.Units())
	reqUC := requisition.NewUseCase(store, gw, store.Requisitions(), store.Items(), store.Locations())
	transferUC := transfer.NewUseCase(store, gw, store.Items(), store.Locations())

	// 1. Alta con 10 unidades.
	item, err := itemUC.Create(ctx, actorID, dto.CreateItemRequest{
		Name:            "Docking station",
		SKU:             "DOCK-001",
		CategoryID:      categoryID,
		UnitID:          unitID,
		InitialQuantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.True(t, item.Quantity.Equal(decimal.NewFromInt(10)))

	// 2. Requisición de 4, aprobada: 10 -> 6.
	reqA, err := reqUC.Create(ctx, "solicitante-1", requisition.CreateInput{
		ItemID: item.ID, Quantity: 4, LocationID: locB,
	})
	require.NoError(t, err)
	resA, err := reqUC.Review(ctx, actorID, reqA.ID, entity.RequisitionApproved, "equipo nuevo")
	require.NoError(t, err)
	assert.True(t, resA.Apply.NewQuantity.Equal(decimal.NewFromInt(6)))

	// 3. Requisición de 8, rechazada: el saldo no cambia.
	reqB, err := reqUC.Create(ctx, "solicitante-2", requisition.CreateInput{
		ItemID: item.ID, Quantity: 8, LocationID: locB,
	})
	require.NoError(t, err)
	resB, err := reqUC.Review(ctx, actorID, reqB.ID, entity.RequisitionDeclined, "excede lo razonable")
	require.NoError(t, err)
	assert.Nil(t, resB.Apply)

	// 4. Traslado de 3 entre sedes: neto cero sobre el saldo global.
	_, err = transferUC.Transfer(ctx, actorID, transfer.Input{
		ItemID:         item.ID,
		FromLocationID: locA,
		ToLocationID:   locB,
		Quantity:       decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	// Saldo final: 10 - 4 = 6.
	final, err := itemUC.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, final.Quantity.Equal(decimal.NewFromInt(6)))

	// Ledger: initial add + remove + out + in = 4 entradas que, replegadas en
	// orden, reconstruyen el saldo final.
	entries, err := store.Ledger().ListByItem(item.ID, nil, nil, 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	replayed := decimal.Zero
	for _, e := range entries {
		replayed = replayed.Add(e.SignedDelta())
	}
	assert.True(t, replayed.Equal(final.Quantity), "el replay del ledger debe reproducir el saldo")

	n, err := store.Ledger().CountByItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
