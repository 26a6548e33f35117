package importers

import (
	"strings"

	"github.com/tectle/backend/internal/domain/orders"
)

// PlatformShopify is the registry identity of the Shopify importer.
const PlatformShopify = "shopify"

// shopifyStatusTable maps Shopify financial statuses onto the shared
// enumeration.
var shopifyStatusTable = orders.StatusTable{
	"pending":            orders.StatusPending,
	"authorized":         orders.StatusPending,
	"partially_paid":     orders.StatusPending,
	"paid":               orders.StatusPaid,
	"partially_refunded": orders.StatusRefunded,
	"refunded":           orders.StatusRefunded,
	"voided":             orders.StatusCanceled,
}

// ShopifyImporter converts Shopify order payloads into canonical orders.
type ShopifyImporter struct{}

// NewShopifyImporter creates a Shopify importer.
func NewShopifyImporter() *ShopifyImporter {
	return &ShopifyImporter{}
}

// Platform returns the registry identity of this importer.
func (i *ShopifyImporter) Platform() string {
	return PlatformShopify
}

// ParseOrder converts one Shopify order into a canonical order. Shopify
// ships the order id as an integer, the creation instant as an ISO-8601
// created_at string, and line items under line_items.
func (i *ShopifyImporter) ParseOrder(payload orders.RawPayload) (*orders.Order, error) {
	externalID, err := requireStringID(PlatformShopify, payload, "id")
	if err != nil {
		return nil, err
	}

	createdAt, err := isoTime(PlatformShopify, payload, "created_at")
	if err != nil {
		return nil, err
	}

	// Orders that never reached checkout carry no financial_status; the
	// fulfilment state is the next best signal, then "open".
	rawStatus := optionalString(payload, "financial_status")
	if rawStatus == "" {
		rawStatus = optionalString(payload, "fulfillment_status")
	}
	if rawStatus == "" {
		rawStatus = "open"
	}

	currency := optionalString(payload, "currency")
	if currency == "" {
		currency = "USD"
	}

	customer := optionalMap(payload, "customer")
	buyerName := joinName(optionalString(customer, "first_name"), optionalString(customer, "last_name"))
	if buyerName == "" {
		// Some stores ship a single pre-joined name field instead.
		buyerName = optionalString(customer, "name")
	}
	buyerEmail := optionalString(customer, "email")
	if buyerEmail == "" {
		buyerEmail = optionalString(payload, "email")
	}

	lineItems, err := listField(PlatformShopify, payload, "line_items")
	if err != nil {
		return nil, err
	}
	items := make([]orders.OrderItem, 0, len(lineItems))
	for idx, entry := range lineItems {
		li, err := entryMap(PlatformShopify, "line_items", idx, entry)
		if err != nil {
			return nil, err
		}
		item, err := i.parseLineItem(li)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return orders.NewOrder(orders.Order{
		Platform:       PlatformShopify,
		ExternalID:     externalID,
		CreatedAt:      createdAt,
		Status:         shopifyStatusTable.Normalize(rawStatus),
		PlatformStatus: rawStatus,
		Fulfillment:    optionalString(payload, "fulfillment_status"),
		Currency:       currency,
		BuyerName:      buyerName,
		BuyerEmail:     buyerEmail,
		Items:          items,
		RawPayload:     payload,
	})
}

// parseLineItem converts one Shopify line item into an order item.
func (i *ShopifyImporter) parseLineItem(li map[string]any) (orders.OrderItem, error) {
	sku, err := requireString(PlatformShopify, li, "sku")
	if err != nil {
		// Variant-only products have no merchant SKU; the variant id
		// still identifies the line.
		var fallbackErr error
		if sku, fallbackErr = requireStringID(PlatformShopify, li, "variant_id"); fallbackErr != nil {
			return orders.OrderItem{}, err
		}
	}

	title, err := requireString(PlatformShopify, li, "title")
	if err != nil {
		return orders.OrderItem{}, err
	}

	quantity, err := requireInt(PlatformShopify, li, "quantity")
	if err != nil {
		return orders.OrderItem{}, err
	}

	price, err := requireDecimal(PlatformShopify, li, "price")
	if err != nil {
		return orders.OrderItem{}, err
	}

	return orders.NewOrderItem(sku, title, quantity, price)
}

// joinName concatenates split first/last names with a single space.
func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// Ensure ShopifyImporter implements the Importer port
var _ orders.Importer = (*ShopifyImporter)(nil)
