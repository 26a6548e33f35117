package orders

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOrder(t *testing.T, platform, externalID string, status OrderStatus, currency string, createdAt time.Time, items ...OrderItem) *Order {
	t.Helper()
	o, err := NewOrder(Order{
		Platform:   platform,
		ExternalID: externalID,
		CreatedAt:  createdAt,
		Status:     status,
		Currency:   currency,
		Items:      items,
	})
	require.NoError(t, err)
	return o
}

func TestGroupByStatus_PartitionsOrders(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	list := []*Order{
		mustOrder(t, "etsy", "1", StatusPending, "USD", base),
		mustOrder(t, "shopify", "2", StatusPaid, "USD", base.Add(time.Hour)),
		mustOrder(t, "etsy", "3", StatusPending, "EUR", base.Add(2*time.Hour)),
		mustOrder(t, "shopify", "4", StatusUnknown, "USD", base.Add(3*time.Hour)),
	}

	grouped := GroupByStatus(list)

	// Partition property: every order appears exactly once across groups.
	var total int
	seen := make(map[OrderKey]bool)
	for status, group := range grouped {
		for _, o := range group {
			assert.Equal(t, status, o.Status)
			assert.False(t, seen[o.Key()], "order %v appeared twice", o.Key())
			seen[o.Key()] = true
			total++
		}
	}
	assert.Equal(t, len(list), total)

	// Relative order inside a group matches source order.
	require.Len(t, grouped[StatusPending], 2)
	assert.Equal(t, "1", grouped[StatusPending][0].ExternalID)
	assert.Equal(t, "3", grouped[StatusPending][1].ExternalID)
}

func TestGroupByPlatform(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	list := []*Order{
		mustOrder(t, "etsy", "1", StatusPending, "USD", base),
		mustOrder(t, "shopify", "2", StatusPaid, "USD", base),
		mustOrder(t, "etsy", "3", StatusPaid, "USD", base),
	}

	grouped := GroupByPlatform(list)
	require.Len(t, grouped, 2)
	assert.Len(t, grouped["etsy"], 2)
	assert.Len(t, grouped["shopify"], 1)
}

func TestGroupByFulfillment(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	shipped := mustOrder(t, "etsy", "1", StatusPaid, "USD", base)
	shipped.Fulfillment = "Shipped"
	pending := mustOrder(t, "etsy", "2", StatusPending, "USD", base)

	grouped := GroupByFulfillment([]*Order{shipped, pending})
	require.Len(t, grouped, 2)
	assert.Len(t, grouped["shipped"], 1)
	assert.Len(t, grouped[FulfillmentNone], 1)
}

func TestSortByCreatedAt(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	oldest := mustOrder(t, "etsy", "1", StatusPending, "USD", base)
	middle := mustOrder(t, "etsy", "2", StatusPending, "USD", base.Add(time.Hour))
	newest := mustOrder(t, "etsy", "3", StatusPending, "USD", base.Add(2*time.Hour))
	input := []*Order{middle, newest, oldest}

	t.Run("Ascending", func(t *testing.T) {
		sorted := SortByCreatedAt(input, false)
		assert.Equal(t, []*Order{oldest, middle, newest}, sorted)
	})

	t.Run("Descending", func(t *testing.T) {
		sorted := SortByCreatedAt(input, true)
		assert.Equal(t, []*Order{newest, middle, oldest}, sorted)
	})

	t.Run("Input is not mutated", func(t *testing.T) {
		_ = SortByCreatedAt(input, true)
		assert.Equal(t, []*Order{middle, newest, oldest}, input)
	})
}

func TestBuildReport(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	usdItem, _ := NewOrderItem("SKU-1", "Notebook", 2, decimal.RequireFromString("12.50"))
	eurItem, _ := NewOrderItem("SKU-2", "Planner", 1, decimal.RequireFromString("18.00"))

	list := []*Order{
		mustOrder(t, "etsy", "1", StatusPending, "USD", base, usdItem),
		mustOrder(t, "shopify", "2", StatusPaid, "USD", base, usdItem),
		mustOrder(t, "etsy", "3", StatusCompleted, "EUR", base, eurItem),
	}

	report := BuildReport(list)

	assert.Equal(t, 3, report.TotalOrders)
	assert.Equal(t, 2, report.OpenOrders)
	assert.Equal(t, 5, report.TotalItems)
	assert.Equal(t, 1, report.OrdersByStatus[StatusPending])
	assert.Equal(t, 1, report.OrdersByStatus[StatusPaid])
	assert.Equal(t, 1, report.OrdersByStatus[StatusCompleted])

	// Currency segregation: USD totals add up, EUR stays separate.
	require.Len(t, report.RevenueByCurrency, 2)
	assert.True(t, report.RevenueByCurrency["USD"].Equal(decimal.RequireFromString("50.00")))
	assert.True(t, report.RevenueByCurrency["EUR"].Equal(decimal.RequireFromString("18.00")))
}

func TestBuildReport_EmptyInput(t *testing.T) {
	report := BuildReport(nil)
	assert.Equal(t, 0, report.TotalOrders)
	assert.Empty(t, report.RevenueByCurrency)
	assert.Empty(t, report.OrdersByStatus)
}

func TestBuildReport_SingleCurrencyMatchesOrderTotals(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	item, _ := NewOrderItem("SKU-1", "Notebook", 3, decimal.RequireFromString("4.00"))
	list := []*Order{
		mustOrder(t, "etsy", "1", StatusPending, "USD", base, item),
		mustOrder(t, "etsy", "2", StatusPaid, "USD", base, item),
	}

	report := BuildReport(list)

	sum := decimal.Zero
	for _, o := range list {
		sum = sum.Add(o.Total())
	}
	require.Len(t, report.RevenueByCurrency, 1)
	assert.True(t, report.RevenueByCurrency["USD"].Equal(sum))
}
