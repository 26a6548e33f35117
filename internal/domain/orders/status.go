package orders

import "strings"

// ---------------------------------------------------------------------------
// OrderStatus
// ---------------------------------------------------------------------------

// OrderStatus is the normalized fulfilment/financial status shared by all
// platforms. Platform-native vocabularies are mapped onto it through a
// per-platform StatusTable.
type OrderStatus string

const (
	// StatusPending indicates the order is awaiting payment or processing
	StatusPending OrderStatus = "pending"
	// StatusPaid indicates payment has been received
	StatusPaid OrderStatus = "paid"
	// StatusShipped indicates the order has been shipped
	StatusShipped OrderStatus = "shipped"
	// StatusCompleted indicates the order is fully settled and delivered
	StatusCompleted OrderStatus = "completed"
	// StatusCanceled indicates the order was canceled
	StatusCanceled OrderStatus = "canceled"
	// StatusRefunded indicates the order was refunded
	StatusRefunded OrderStatus = "refunded"
	// StatusUnknown is assigned to platform statuses absent from the
	// platform's vocabulary table. The original string is kept on the
	// order's PlatformStatus field for visibility.
	StatusUnknown OrderStatus = "unknown"
)

// IsValid returns true if the status is one of the shared enumeration
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCompleted,
		StatusCanceled, StatusRefunded, StatusUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsOpen reports whether the order still requires seller action.
func (s OrderStatus) IsOpen() bool {
	return s == StatusPending || s == StatusPaid
}

// ---------------------------------------------------------------------------
// StatusTable
// ---------------------------------------------------------------------------

// StatusTable maps one platform's native status vocabulary to the shared
// enumeration. Keys are lowercase. New platforms supply their own table
// instead of adding branches elsewhere.
type StatusTable map[string]OrderStatus

// Normalize looks up a platform-native status string. Values absent from
// the table map to StatusUnknown; an unmapped status is a reporting
// concern, never an ingestion failure.
func (t StatusTable) Normalize(raw string) OrderStatus {
	if s, ok := t[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusUnknown
}
