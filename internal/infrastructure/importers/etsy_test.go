package importers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tectle/backend/internal/domain/orders"
)

func etsyPayload() orders.RawPayload {
	return orders.RawPayload{
		"receipt_id":    "123",
		"creation_tsz":  float64(1700000000),
		"status":        "open",
		"currency_code": "USD",
		"buyer": map[string]any{
			"name":  "Ada Lovelace",
			"email": "ada@example.com",
		},
		"transactions": []any{
			map[string]any{
				"listing_id": "L-1",
				"title":      "Engine Print",
				"quantity":   float64(2),
				"price":      "12.50",
			},
		},
	}
}

func TestEtsyImporter_ParseOrder(t *testing.T) {
	imp := NewEtsyImporter()
	assert.Equal(t, "etsy", imp.Platform())

	t.Run("parses a complete receipt", func(t *testing.T) {
		order, err := imp.ParseOrder(etsyPayload())
		require.NoError(t, err)

		assert.Equal(t, "etsy", order.Platform)
		assert.Equal(t, "123", order.ExternalID)
		assert.Equal(t, int64(1700000000), order.CreatedAt.Unix())
		assert.Equal(t, orders.StatusPending, order.Status)
		assert.Equal(t, "open", order.PlatformStatus)
		assert.Equal(t, "USD", order.Currency)
		assert.Equal(t, "Ada Lovelace", order.BuyerName)
		assert.Equal(t, "ada@example.com", order.BuyerEmail)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "L-1", order.Items[0].SKU)
		assert.Equal(t, 2, order.Items[0].Quantity)
		assert.True(t, order.Total().Equal(decimal.RequireFromString("25.00")))
	})

	t.Run("stringifies a numeric receipt id", func(t *testing.T) {
		payload := etsyPayload()
		payload["receipt_id"] = float64(123)

		order, err := imp.ParseOrder(payload)
		require.NoError(t, err)
		assert.Equal(t, "123", order.ExternalID)
	})

	t.Run("missing receipt id is malformed", func(t *testing.T) {
		payload := etsyPayload()
		delete(payload, "receipt_id")

		_, err := imp.ParseOrder(payload)
		require.Error(t, err)
		assert.ErrorIs(t, err, orders.ErrMalformedPayload)

		var malformed *orders.MalformedPayloadError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "etsy", malformed.Platform)
		assert.Equal(t, "receipt_id", malformed.Field)
	})

	t.Run("unmapped status becomes unknown and is retained verbatim", func(t *testing.T) {
		payload := etsyPayload()
		payload["status"] = "Processing Backorder"

		order, err := imp.ParseOrder(payload)
		require.NoError(t, err)
		assert.Equal(t, orders.StatusUnknown, order.Status)
		assert.Equal(t, "Processing Backorder", order.PlatformStatus)
	})

	t.Run("status table is case insensitive", func(t *testing.T) {
		payload := etsyPayload()
		payload["status"] = "Fully Refunded"

		order, err := imp.ParseOrder(payload)
		require.NoError(t, err)
		assert.Equal(t, orders.StatusRefunded, order.Status)
	})

	t.Run("absent status defaults to open", func(t *testing.T) {
		payload := etsyPayload()
		delete(payload, "status")

		order, err := imp.ParseOrder(payload)
		require.NoError(t, err)
		assert.Equal(t, orders.StatusPending, order.Status)
		assert.Equal(t, "open", order.PlatformStatus)
	})

	t.Run("buyer name falls back to username", func(t *testing.T) {
		payload := etsyPayload()
		payload["buyer"] = map[string]any{"username": "ada1815"}

		order, err := imp.ParseOrder(payload)
		require.NoError(t, err)
		assert.Equal(t, "ada1815", order.BuyerName)
	})

	t.Run("transaction sku falls back to product id", func(t *testing.T) {
		payload := etsyPayload()
		payload["transactions"] = []any{
			map[string]any{
				"product_id": float64(9001),
				"title":      "Engine Print",
				"quantity":   float64(1),
				"price":      "8.00",
			},
		}

		order, err := imp.ParseOrder(payload)
		require.NoError(t, err)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "9001", order.Items[0].SKU)
	})

	t.Run("malformed transaction aborts the whole payload", func(t *testing.T) {
		payload := etsyPayload()
		payload["transactions"] = []any{
			map[string]any{"title": "No price", "quantity": float64(1)},
		}

		_, err := imp.ParseOrder(payload)
		assert.ErrorIs(t, err, orders.ErrMalformedPayload)
	})

	t.Run("raw payload is retained", func(t *testing.T) {
		payload := etsyPayload()
		order, err := imp.ParseOrder(payload)
		require.NoError(t, err)
		assert.Equal(t, payload, order.RawPayload)
	})
}
