package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawPayload is the loosely typed shape of one decoded JSON order document:
// string keys over strings, numbers, nested maps and slices. Importers
// extract fields from it defensively instead of assuming a static shape.
type RawPayload map[string]any

// ---------------------------------------------------------------------------
// OrderItem
// ---------------------------------------------------------------------------

// OrderItem is a single line item within an order. The SKU is unique
// within its order, not globally.
type OrderItem struct {
	// SKU is the purchased item identifier
	SKU string
	// Title is the display name
	Title string
	// Quantity is the ordered quantity, always >= 1
	Quantity int
	// UnitPrice is the per-unit amount in the order's currency, never negative
	UnitPrice decimal.Decimal
}

// NewOrderItem validates and creates an order item. It fails with an
// ErrInvalidItem wrap when the quantity is below one, the unit price is
// negative, or SKU/title is empty.
func NewOrderItem(sku, title string, quantity int, unitPrice decimal.Decimal) (OrderItem, error) {
	if strings.TrimSpace(sku) == "" {
		return OrderItem{}, fmt.Errorf("%w: sku is required", ErrInvalidItem)
	}
	if strings.TrimSpace(title) == "" {
		return OrderItem{}, fmt.Errorf("%w: title is required", ErrInvalidItem)
	}
	if quantity < 1 {
		return OrderItem{}, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidItem, quantity)
	}
	if unitPrice.IsNegative() {
		return OrderItem{}, fmt.Errorf("%w: unit price cannot be negative, got %s", ErrInvalidItem, unitPrice)
	}
	return OrderItem{
		SKU:       sku,
		Title:     title,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}, nil
}

// LineTotal returns quantity * unit price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ---------------------------------------------------------------------------
// Order
// ---------------------------------------------------------------------------

// OrderKey identifies an order by its source platform and platform-native
// identifier. The pair is unique within one import batch; the import
// service itself never deduplicates on it.
type OrderKey struct {
	Platform   string `json:"platform"`
	ExternalID string `json:"external_id"`
}

// Order is the canonical, platform-agnostic order representation.
// Orders are constructed exclusively by an importer's parse step and are
// immutable afterwards: the service and organizer only read them.
type Order struct {
	// Platform is the source system identifier (lowercase)
	Platform string
	// ExternalID is the platform-native order identifier; numeric IDs
	// are normalized to string form
	ExternalID string
	// CreatedAt is the creation instant, normalized from the platform's
	// encoding (epoch seconds, ISO-8601)
	CreatedAt time.Time
	// Status is the normalized status from the platform's vocabulary table
	Status OrderStatus
	// PlatformStatus is the original platform status string, retained
	// verbatim so unknown statuses stay visible
	PlatformStatus string
	// Fulfillment is the platform's fulfilment state, passed through when
	// present (empty when the platform does not report one)
	Fulfillment string
	// Currency is the ISO currency code, passed through unchanged
	Currency string
	// BuyerName is the normalized buyer name; split first/last names are
	// joined with a single space
	BuyerName string
	// BuyerEmail is the buyer's email address
	BuyerEmail string
	// Items are the line items in source payload order; may be empty
	Items []OrderItem
	// RawPayload is the original untransformed payload, kept for audit
	RawPayload RawPayload
}

// NewOrder validates o and returns it as a canonical order. It fails with
// an ErrInvalidOrder wrap when platform or external ID is empty, the
// timestamp was not normalized, the currency is empty, or the status is
// outside the shared enumeration.
func NewOrder(o Order) (*Order, error) {
	if strings.TrimSpace(o.Platform) == "" {
		return nil, fmt.Errorf("%w: platform is required", ErrInvalidOrder)
	}
	if strings.TrimSpace(o.ExternalID) == "" {
		return nil, fmt.Errorf("%w: external id is required", ErrInvalidOrder)
	}
	if o.CreatedAt.IsZero() {
		return nil, fmt.Errorf("%w: created-at timestamp is required", ErrInvalidOrder)
	}
	if strings.TrimSpace(o.Currency) == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrInvalidOrder)
	}
	if o.Status == "" {
		o.Status = StatusUnknown
	}
	if !o.Status.IsValid() {
		return nil, fmt.Errorf("%w: status %q is not a normalized status", ErrInvalidOrder, o.Status)
	}
	o.Platform = strings.ToLower(o.Platform)
	// Detach the items slice from the caller so later mutation of the
	// input cannot reach into the stored order.
	if len(o.Items) > 0 {
		items := make([]OrderItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return &o, nil
}

// Key returns the (platform, external id) identity of the order.
func (o *Order) Key() OrderKey {
	return OrderKey{Platform: o.Platform, ExternalID: o.ExternalID}
}

// Total returns the sum of all line totals. An order without items has a
// zero total.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// TotalQuantity returns the total quantity across all line items.
func (o *Order) TotalQuantity() int {
	var n int
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
