package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/usecase"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/infrastructure/memory"
	apphttp "github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/interfaces/http"
)

const movementItemID = "11111111-1111-1111-1111-111111111111"

// buildStockApp monta el endpoint de movimientos sobre un store en memoria,
// con un middleware que fija la identidad del actor.
func buildStockApp(t *testing.T, quantity int64) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.PutItem(entity.Item{
		ID:       movementItemID,
		Name:     "Laptop",
		SKU:      "LT-001",
		Quantity: decimal.NewFromInt(quantity),
		IsActive: true,
	})
	gw := stock.NewGateway(store, nil)
	ledgerUC := usecase.NewLedgerUseCase(store.Ledger(), store.Items(), store.Locations())
	handler := apphttp.NewStockHandler(gw, ledgerUC)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, testUserID)
		c.Locals(apphttp.LocalRole, "admin")
		return c.Next()
	})
	app.Post("/api/items/:id/movements", handler.RegisterMovement)
	app.Get("/api/items/:id/transactions", handler.ListItemTransactions)
	return app, store
}

func postMovement(t *testing.T, app *fiber.App, itemID string, body map[string]any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/items/"+itemID+"/movements", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRegisterMovement_AddDevuelve201(t *testing.T) {
	app, store := buildStockApp(t, 10)

	resp := postMovement(t, app, movementItemID, map[string]any{
		"kind": "add", "quantity": "5", "note": "compra",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "15", body["new_quantity"])
	assert.NotEmpty(t, body["ledger_entry_id"])
	assert.Equal(t, 1, store.LedgerLen())
}

func TestRegisterMovement_SinStockDevuelve409(t *testing.T) {
	app, store := buildStockApp(t, 3)

	resp := postMovement(t, app, movementItemID, map[string]any{
		"kind": "remove", "quantity": "5",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, 0, store.LedgerLen())
}

func TestRegisterMovement_ItemInexistenteDevuelve404(t *testing.T) {
	app, _ := buildStockApp(t, 3)

	resp := postMovement(t, app, "no-existe", map[string]any{
		"kind": "add", "quantity": "1",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Los kinds de traslado no entran por el endpoint de movimientos directos:
// una pata in/out suelta rompería el pareo de traslados.
func TestRegisterMovement_KindDeTrasladoRechazado(t *testing.T) {
	app, _ := buildStockApp(t, 10)

	for _, kind := range []string{"in", "out", "donate", ""} {
		resp := postMovement(t, app, movementItemID, map[string]any{
			"kind": kind, "quantity": "1",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "kind %q debe rechazarse", kind)
	}
}

func TestListItemTransactions(t *testing.T) {
	app, _ := buildStockApp(t, 10)

	for _, q := range []string{"2", "3"} {
		resp := postMovement(t, app, movementItemID, map[string]any{"kind": "add", "quantity": q})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/items/"+movementItemID+"/transactions", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["total"])

	// Filtro de fecha inválido → 400.
	req = httptest.NewRequest(http.MethodGet, "/api/items/"+movementItemID+"/transactions?from=ayer", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
