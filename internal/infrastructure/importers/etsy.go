package importers

import (
	"github.com/tectle/backend/internal/domain/orders"
)

// PlatformEtsy is the registry identity of the Etsy importer.
const PlatformEtsy = "etsy"

// etsyStatusTable maps Etsy receipt statuses onto the shared enumeration.
// Anything else passes through as unknown.
var etsyStatusTable = orders.StatusTable{
	"open":           orders.StatusPending,
	"unpaid":         orders.StatusPending,
	"paid":           orders.StatusPaid,
	"completed":      orders.StatusCompleted,
	"canceled":       orders.StatusCanceled,
	"cancelled":      orders.StatusCanceled,
	"fully refunded": orders.StatusRefunded,
}

// EtsyImporter converts Etsy receipt payloads into canonical orders.
type EtsyImporter struct{}

// NewEtsyImporter creates an Etsy importer.
func NewEtsyImporter() *EtsyImporter {
	return &EtsyImporter{}
}

// Platform returns the registry identity of this importer.
func (i *EtsyImporter) Platform() string {
	return PlatformEtsy
}

// ParseOrder converts one Etsy receipt into a canonical order. Receipts
// carry the order id as receipt_id (numeric or string), the creation
// instant as epoch seconds in creation_tsz, and line items under
// transactions.
func (i *EtsyImporter) ParseOrder(payload orders.RawPayload) (*orders.Order, error) {
	externalID, err := requireStringID(PlatformEtsy, payload, "receipt_id")
	if err != nil {
		return nil, err
	}

	createdAt, err := epochSeconds(PlatformEtsy, payload, "creation_tsz")
	if err != nil {
		return nil, err
	}

	// Etsy omits the status on some exports; those receipts are open.
	rawStatus := optionalString(payload, "status")
	if rawStatus == "" {
		rawStatus = "open"
	}

	currency := optionalString(payload, "currency_code")
	if currency == "" {
		currency = "USD"
	}

	var buyerName, buyerEmail string
	if buyer := optionalMap(payload, "buyer"); buyer != nil {
		buyerName = optionalString(buyer, "name")
		if buyerName == "" {
			buyerName = optionalString(buyer, "username")
		}
		buyerEmail = optionalString(buyer, "email")
	}

	transactions, err := listField(PlatformEtsy, payload, "transactions")
	if err != nil {
		return nil, err
	}
	items := make([]orders.OrderItem, 0, len(transactions))
	for idx, entry := range transactions {
		tx, err := entryMap(PlatformEtsy, "transactions", idx, entry)
		if err != nil {
			return nil, err
		}
		item, err := i.parseTransaction(tx)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return orders.NewOrder(orders.Order{
		Platform:       PlatformEtsy,
		ExternalID:     externalID,
		CreatedAt:      createdAt,
		Status:         etsyStatusTable.Normalize(rawStatus),
		PlatformStatus: rawStatus,
		Fulfillment:    optionalString(payload, "fulfillment_status"),
		Currency:       currency,
		BuyerName:      buyerName,
		BuyerEmail:     buyerEmail,
		Items:          items,
		RawPayload:     payload,
	})
}

// parseTransaction converts one Etsy transaction into an order item.
func (i *EtsyImporter) parseTransaction(tx map[string]any) (orders.OrderItem, error) {
	sku, err := requireStringID(PlatformEtsy, tx, "listing_id")
	if err != nil {
		// Older exports ship product_id instead of listing_id.
		var fallbackErr error
		if sku, fallbackErr = requireStringID(PlatformEtsy, tx, "product_id"); fallbackErr != nil {
			return orders.OrderItem{}, err
		}
	}

	title, err := requireString(PlatformEtsy, tx, "title")
	if err != nil {
		return orders.OrderItem{}, err
	}

	quantity, err := requireInt(PlatformEtsy, tx, "quantity")
	if err != nil {
		return orders.OrderItem{}, err
	}

	price, err := requireDecimal(PlatformEtsy, tx, "price")
	if err != nil {
		return orders.OrderItem{}, err
	}

	return orders.NewOrderItem(sku, title, quantity, price)
}

// Ensure EtsyImporter implements the Importer port
var _ orders.Importer = (*EtsyImporter)(nil)
