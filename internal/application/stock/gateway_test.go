package stock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testItemID  = "11111111-1111-1111-1111-111111111111"
	testActorID = "22222222-2222-2222-2222-222222222222"
)

// recorderNotifier captura los eventos despachados por el gateway.
type recorderNotifier struct {
	mu     sync.Mutex
	events []stock.Event
}

func (r *recorderNotifier) Notify(_ context.Context, ev stock.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorderNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// newFixture devuelve un store con un artículo sembrado y el gateway encima.
func newFixture(t *testing.T, quantity int64) (*memory.Store, *stock.Gateway, *recorderNotifier) {
	t.Helper()
	store := memory.NewStore()
	store.PutItem(entity.Item{
		ID:       testItemID,
		Name:     "Teclado USB",
		SKU:      "KB-001",
		Quantity: decimal.NewFromInt(quantity),
		IsActive: true,
	})
	rec := &recorderNotifier{}
	return store, stock.NewGateway(store, rec), rec
}

func itemQuantity(t *testing.T, store *memory.Store) decimal.Decimal {
	t.Helper()
	it, err := store.Items().GetByID(testItemID)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Aritmética de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestGateway_Apply_AddSumaYRegistraEntrada(t *testing.T) {
	store, gw, rec := newFixture(t, 10)

	res, err := gw.Apply(context.Background(), stock.ApplyInput{
		ItemID:   testItemID,
		Kind:     entity.MovementAdd,
		Quantity: decimal.NewFromInt(5),
		ActorID:  testActorID,
		Note:     "reposición",
	})
	require.NoError(t, err)

	assert.True(t, res.NewQuantity.Equal(decimal.NewFromInt(15)))
	assert.True(t, itemQuantity(t, store).Equal(decimal.NewFromInt(15)))

	require.NotNil(t, res.Entry)
	assert.Equal(t, entity.MovementAdd, res.Entry.Kind)
	assert.True(t, res.Entry.QuantityBefore.Equal(decimal.NewFromInt(10)))
	assert.True(t, res.Entry.QuantityAfter.Equal(decimal.NewFromInt(15)))
	assert.True(t, res.Entry.SignedDelta().Equal(decimal.NewFromInt(5)))
	assert.Equal(t, testActorID, res.Entry.UserID)
	assert.Equal(t, 1, store.LedgerLen())
	assert.Equal(t, 1, rec.count())
}

func TestGateway_Apply_RemoveResta(t *testing.T) {
	store, gw, _ := newFixture(t, 10)

	res, err := gw.Apply(context.Background(), stock.ApplyInput{
		ItemID:   testItemID,
		Kind:     entity.MovementRemove,
		Quantity: decimal.NewFromInt(4),
		ActorID:  testActorID,
	})
	require.NoError(t, err)
	assert.True(t, res.NewQuantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, itemQuantity(t, store).Equal(decimal.NewFromInt(6)))
}

// adjust asevera un valor absoluto; la entrada registra la magnitud movida.
func TestGateway_Apply_AdjustFijaValorAbsoluto(t *testing.T) {
	store, gw, _ := newFixture(t, 10)

	res, err := gw.Apply(context.Background(), stock.ApplyInput{
		ItemID:   testItemID,
		Kind:     entity.MovementAdjust,
		Quantity: decimal.NewFromInt(3),
		ActorID:  testActorID,
		Note:     "conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, res.NewQuantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, itemQuantity(t, store).Equal(decimal.NewFromInt(3)))
	// La magnitud movida es |3 - 10| = 7.
	assert.True(t, res.Entry.Quantity.Equal(decimal.NewFromInt(7)))
	assert.True(t, res.Entry.SignedDelta().Equal(decimal.NewFromInt(-7)))
}

func TestGateway_Apply_AdjustACero(t *testing.T) {
	store, gw, _ := newFixture(t, 10)

	res, err := gw.Apply(context.Background(), stock.ApplyInput{
		ItemID:   testItemID,
		Kind:     entity.MovementAdjust,
		Quantity: decimal.Zero,
		ActorID:  testActorID,
	})
	require.NoError(t, err)
	assert.True(t, res.NewQuantity.IsZero())
	assert.True(t, itemQuantity(t, store).IsZero())
}

// Un adjust que no cambia nada no genera entrada: sería ruido en el ledger.
func TestGateway_Apply_AdjustSinCambioRechazado(t *testing.T) {
	store, gw, _ := newFixture(t, 10)

	_, err := gw.Apply(context.Background(), stock.ApplyInput{
		ItemID:   testItemID,
		Kind:     entity.MovementAdjust,
		Quantity: decimal.NewFromInt(10),
		ActorID:  testActorID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, store.LedgerLen())
}

// El encadenamiento before/after: cada entrada arranca donde terminó la
// anterior, sin huecos.
func TestGateway_Apply_EncadenaBeforeAfter(t *testing.T) {
	store, gw, _ := newFixture(t, 0)
	ctx := context.Background()

	steps := []struct {
		kind entity.MovementKind
		qty  int64
	}{
		{entity.MovementAdd, 10},
		{entity.MovementRemove, 3},
		{entity.MovementAdjust, 20},
		{entity.MovementRemove, 5},
	}
	var results []*stock.ApplyResult
	for _, s := range steps {
		res, err := gw.Apply(ctx, stock.ApplyInput{
			ItemID:   testItemID,
			Kind:     s.kind,
			Quantity: decimal.NewFromInt(s.qty),
			ActorID:  testActorID,
		})
		require.NoError(t, err)
		results = append(results, res)
	}

	assert.True(t, itemQuantity(t, store).Equal(decimal.NewFromInt(15)))
	for i := 1; i < len(results); i++ {
		assert.True(t, results[i].Entry.QuantityBefore.Equal(results[i-1].Entry.QuantityAfter),
			"la entrada %d debe arrancar donde terminó la %d", i, i-1)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante quantity >= 0
// ──────────────────────────────────────────────────────────────────────────────

func TestGateway_Apply_StockInsuficienteNoTocaNada(t *testing.T) {
	store, gw, rec := newFixture(t, 3)

	_, err := gw.Apply(context.Background(), stock.ApplyInput{
		ItemID:   testItemID,
		Kind:     entity.MovementRemove,
		Quantity: decimal.NewFromInt(4),
		ActorID:  testActorID,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ni cantidad ni ledger ni notificación.
	assert.True(t, itemQuantity(t, store).Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 0, store.LedgerLen())
	assert.Equal(t, 0, rec.count())
}

func TestGateway_Apply_RemoveExactoHastaCero(t *testing.T) {
	store, gw, _ := newFixture(t, 3)

	res, err := gw.Apply(context.Background(), stock.ApplyInput{
		ItemID:   testItemID,
		Kind:     entity.MovementRemove,
		Quantity: decimal.NewFromInt(3),
		ActorID:  testActorID,
	})
	require.NoError(t, err)
	assert.True(t, res.NewQuantity.IsZero())
	assert.True(t, itemQuantity(t, store).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestGateway_Apply_EntradasInvalidas(t *testing.T) {
	_, gw, _ := newFixture(t, 10)
	ctx := context.Background()
	loc := "loc-1"

	cases := []struct {
		name string
		in   stock.ApplyInput
		want error
	}{
		{"sin item", stock.ApplyInput{Kind: entity.MovementAdd, Quantity: decimal.NewFromInt(1), ActorID: testActorID}, domain.ErrInvalidInput},
		{"sin actor", stock.ApplyInput{ItemID: testItemID, Kind: entity.MovementAdd, Quantity: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"kind desconocido", stock.ApplyInput{ItemID: testItemID, Kind: "donate", Quantity: decimal.NewFromInt(1), ActorID: testActorID}, domain.ErrInvalidInput},
		{"add con cero", stock.ApplyInput{ItemID: testItemID, Kind: entity.MovementAdd, Quantity: decimal.Zero, ActorID: testActorID}, domain.ErrInvalidInput},
		{"remove negativo", stock.ApplyInput{ItemID: testItemID, Kind: entity.MovementRemove, Quantity: decimal.NewFromInt(-2), ActorID: testActorID}, domain.ErrInvalidInput},
		{"adjust negativo", stock.ApplyInput{ItemID: testItemID, Kind: entity.MovementAdjust, Quantity: decimal.NewFromInt(-1), ActorID: testActorID}, domain.ErrInvalidInput},
		{"in sin sede", stock.ApplyInput{ItemID: testItemID, Kind: entity.MovementIn, Quantity: decimal.NewFromInt(1), ActorID: testActorID}, domain.ErrInvalidInput},
		{"out sin sede", stock.ApplyInput{ItemID: testItemID, Kind: entity.MovementOut, Quantity: decimal.NewFromInt(1), ActorID: testActorID}, domain.ErrInvalidInput},
		{"out con cero", stock.ApplyInput{ItemID: testItemID, Kind: entity.MovementOut, Quantity: decimal.Zero, ActorID: testActorID, LocationID: &loc}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gw.Apply(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGateway_Apply_ItemInexistente(t *testing.T) {
	_, gw, _ := newFixture(t, 10)

	_, err := gw.Apply(context.Background(), stock.ApplyInput{
		ItemID:   "99999999-9999-9999-9999-999999999999",
		Kind:     entity.MovementAdd,
		Quantity: decimal.NewFromInt(1),
		ActorID:  testActorID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// N retiros concurrentes sobre stock limitado: exactamente los que caben
// confirman, el resto falla con stock insuficiente y el saldo jamás baja de
// cero.
func TestGateway_Apply_RetirosConcurrentes(t *testing.T) {
	const (
		initial    = 5
		goroutines = 12
	)
	store, gw, rec := newFixture(t, initial)

	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gw.Apply(context.Background(), stock.ApplyInput{
				ItemID:   testItemID,
				Kind:     entity.MovementRemove,
				Quantity: decimal.NewFromInt(1),
				ActorID:  testActorID,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok, insufficient := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, initial, ok, "deben confirmar exactamente %d retiros", initial)
	assert.Equal(t, goroutines-initial, insufficient)
	assert.True(t, itemQuantity(t, store).IsZero())
	assert.Equal(t, initial, store.LedgerLen(), "una entrada de ledger por retiro confirmado")
	assert.Equal(t, initial, rec.count())
}

// Si el append al ledger falla, la cantidad también se revierte: no existe
// mutación confirmada sin entrada.
func TestGateway_Apply_FalloDeLedgerRevierteCantidad(t *testing.T) {
	store, gw, rec := newFixture(t, 10)
	store.FailAppend = func(*entity.StockTransaction) error { return domain.ErrStorage }

	_, err := gw.Apply(context.Background(), stock.ApplyInput{
		ItemID:   testItemID,
		Kind:     entity.MovementAdd,
		Quantity: decimal.NewFromInt(5),
		ActorID:  testActorID,
	})
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.True(t, itemQuantity(t, store).Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 0, store.LedgerLen())
	assert.Equal(t, 0, rec.count())
}
