package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tectle/backend/internal/application/dashboard"
	"github.com/tectle/backend/internal/application/importing"
	"github.com/tectle/backend/internal/infrastructure/config"
	"github.com/tectle/backend/internal/infrastructure/importers"
	"github.com/tectle/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "tectle-backend"
	cfg.App.Env = "testing"
	cfg.HTTP.MaxBodySize = 1 << 20

	service := importing.NewService(zap.NewNop(),
		importers.NewEtsyImporter(),
		importers.NewShopifyImporter(),
	)
	state := dashboard.NewState()

	return New(cfg, zap.NewNop(), Handlers{
		System: handler.NewSystemHandler(cfg.App.Name),
		Orders: handler.NewOrdersHandler(service, state),
	})
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

const importBody = `{
	"batches": {
		"etsy": [
			{
				"receipt_id": "123",
				"creation_tsz": 1700000000,
				"status": "open",
				"transactions": [
					{"listing_id": "L-1", "title": "Engine Print", "quantity": 2, "price": "12.50"}
				]
			},
			{"status": "open"}
		],
		"shopify": [
			{
				"id": 456,
				"created_at": "2023-11-15T10:00:00Z",
				"financial_status": "paid",
				"line_items": [
					{"sku": "SKU-7", "title": "Compiler Mug", "quantity": 3, "price": "4.00"}
				]
			}
		]
	}
}`

func TestHealth(t *testing.T) {
	engine := newTestEngine(t)

	w, body := doJSON(t, engine, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestImportOrders(t *testing.T) {
	t.Run("imports mixed batches and reports failures", func(t *testing.T) {
		engine := newTestEngine(t)

		w, body := doJSON(t, engine, http.MethodPost, "/api/orders/import", importBody)
		require.Equal(t, http.StatusOK, w.Code)

		data := body["data"].(map[string]any)
		assert.Equal(t, float64(2), data["imported"])
		assert.Equal(t, float64(1), data["failed"])
		assert.NotEmpty(t, data["run_id"])

		failures := data["failures"].([]any)
		require.Len(t, failures, 1)
		failure := failures[0].(map[string]any)
		assert.Equal(t, "etsy", failure["platform"])
		assert.Equal(t, float64(1), failure["index"])
		assert.NotEmpty(t, failure["reason"])
	})

	t.Run("unknown platform yields 422 and imports nothing", func(t *testing.T) {
		engine := newTestEngine(t)

		w, body := doJSON(t, engine, http.MethodPost, "/api/orders/import",
			`{"batches": {"ebay": [{"id": "1"}]}}`)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "ERR_UNKNOWN_PLATFORM", errInfo["code"])
		assert.Contains(t, errInfo["message"], "ebay")

		_, listBody := doJSON(t, engine, http.MethodGet, "/api/orders", "")
		assert.Equal(t, float64(0), listBody["meta"].(map[string]any)["total"])
	})

	t.Run("malformed json yields 400", func(t *testing.T) {
		engine := newTestEngine(t)

		w, body := doJSON(t, engine, http.MethodPost, "/api/orders/import", `{"batches": `)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_INVALID_JSON", body["error"].(map[string]any)["code"])
	})

	t.Run("reimporting the same batch does not duplicate orders", func(t *testing.T) {
		engine := newTestEngine(t)

		doJSON(t, engine, http.MethodPost, "/api/orders/import", importBody)
		doJSON(t, engine, http.MethodPost, "/api/orders/import", importBody)

		_, body := doJSON(t, engine, http.MethodGet, "/api/orders", "")
		assert.Equal(t, float64(2), body["meta"].(map[string]any)["total"])
	})
}

func TestListOrders(t *testing.T) {
	engine := newTestEngine(t)
	doJSON(t, engine, http.MethodPost, "/api/orders/import", importBody)

	t.Run("lists all orders newest first", func(t *testing.T) {
		w, body := doJSON(t, engine, http.MethodGet, "/api/orders", "")
		require.Equal(t, http.StatusOK, w.Code)

		data := body["data"].([]any)
		require.Len(t, data, 2)
		first := data[0].(map[string]any)
		assert.Equal(t, "shopify", first["platform"])
		assert.Equal(t, "12.00", first["total"])
	})

	t.Run("filters by status", func(t *testing.T) {
		_, body := doJSON(t, engine, http.MethodGet, "/api/orders?status=paid", "")
		data := body["data"].([]any)
		require.Len(t, data, 1)
		assert.Equal(t, "shopify", data[0].(map[string]any)["platform"])
	})

	t.Run("filters by platform", func(t *testing.T) {
		_, body := doJSON(t, engine, http.MethodGet, "/api/orders?platform=etsy", "")
		require.Len(t, body["data"].([]any), 1)
	})

	t.Run("rejects an invalid status filter", func(t *testing.T) {
		w, body := doJSON(t, engine, http.MethodGet, "/api/orders?status=bogus", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_VALIDATION", body["error"].(map[string]any)["code"])
	})

	t.Run("sorts oldest first on demand", func(t *testing.T) {
		_, body := doJSON(t, engine, http.MethodGet, "/api/orders?sort=asc", "")
		data := body["data"].([]any)
		require.Len(t, data, 2)
		assert.Equal(t, "etsy", data[0].(map[string]any)["platform"])
	})
}

func TestReport(t *testing.T) {
	engine := newTestEngine(t)
	doJSON(t, engine, http.MethodPost, "/api/orders/import", importBody)

	w, body := doJSON(t, engine, http.MethodGet, "/api/report", "")
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(2), data["total_orders"])
	assert.Equal(t, float64(2), data["open_orders"])
	assert.Equal(t, float64(5), data["total_items"])

	revenue := data["revenue_by_currency"].(map[string]any)
	assert.Equal(t, "37.00", revenue["USD"])

	byStatus := data["orders_by_status"].(map[string]any)
	assert.Equal(t, float64(1), byStatus["pending"])
	assert.Equal(t, float64(1), byStatus["paid"])
}
