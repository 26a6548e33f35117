package dto

import (
	"time"

	"github.com/tectle/backend/internal/application/importing"
	"github.com/tectle/backend/internal/domain/orders"
)

// ImportRequest carries raw order payloads grouped by platform key.
type ImportRequest struct {
	Batches map[string][]orders.RawPayload `json:"batches" binding:"required"`
}

// ListOrdersRequest holds the query filters of the order list endpoint.
type ListOrdersRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending paid shipped completed canceled refunded unknown"`
	Platform string `form:"platform"`
	Sort     string `form:"sort" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse is the transport shape of one order line.
type OrderItemResponse struct {
	SKU       string `json:"sku"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// OrderResponse is the transport shape of one canonical order. Monetary
// amounts are rendered as fixed two decimal strings.
type OrderResponse struct {
	Platform       string              `json:"platform"`
	ExternalID     string              `json:"external_id"`
	CreatedAt      time.Time           `json:"created_at"`
	Status         string              `json:"status"`
	PlatformStatus string              `json:"platform_status,omitempty"`
	Fulfillment    string              `json:"fulfillment,omitempty"`
	Currency       string              `json:"currency"`
	BuyerName      string              `json:"buyer_name,omitempty"`
	BuyerEmail     string              `json:"buyer_email,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	Total          string              `json:"total"`
}

// FailureResponse reports one payload rejected during an import run.
type FailureResponse struct {
	Platform string `json:"platform"`
	Index    int    `json:"index"`
	Reason   string `json:"reason"`
}

// ImportResponse is the outcome of one import call.
type ImportResponse struct {
	RunID    string            `json:"run_id"`
	Imported int               `json:"imported"`
	Failed   int               `json:"failed"`
	Orders   []OrderResponse   `json:"orders"`
	Failures []FailureResponse `json:"failures"`
}

// ReportResponse is the transport shape of the aggregate order report.
type ReportResponse struct {
	TotalOrders       int               `json:"total_orders"`
	OpenOrders        int               `json:"open_orders"`
	TotalItems        int               `json:"total_items"`
	RevenueByCurrency map[string]string `json:"revenue_by_currency"`
	OrdersByStatus    map[string]int    `json:"orders_by_status"`
}

// FromOrder converts a canonical order into its transport shape.
func FromOrder(o *orders.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			SKU:       item.SKU,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			LineTotal: item.LineTotal().StringFixed(2),
		})
	}
	return OrderResponse{
		Platform:       o.Platform,
		ExternalID:     o.ExternalID,
		CreatedAt:      o.CreatedAt,
		Status:         o.Status.String(),
		PlatformStatus: o.PlatformStatus,
		Fulfillment:    o.Fulfillment,
		Currency:       o.Currency,
		BuyerName:      o.BuyerName,
		BuyerEmail:     o.BuyerEmail,
		Items:          items,
		Total:          o.Total().StringFixed(2),
	}
}

// FromOrders converts a slice of canonical orders.
func FromOrders(list []*orders.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, FromOrder(o))
	}
	return out
}

// FromImportResult converts an import run outcome.
func FromImportResult(result *importing.Result) ImportResponse {
	failures := make([]FailureResponse, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, FailureResponse{
			Platform: f.Platform,
			Index:    f.Index,
			Reason:   f.Reason(),
		})
	}
	return ImportResponse{
		RunID:    result.RunID.String(),
		Imported: len(result.Orders),
		Failed:   len(result.Failures),
		Orders:   FromOrders(result.Orders),
		Failures: failures,
	}
}

// FromReport converts the aggregate report into its transport shape.
func FromReport(r *orders.Report) ReportResponse {
	revenue := make(map[string]string, len(r.RevenueByCurrency))
	for currency, amount := range r.RevenueByCurrency {
		revenue[currency] = amount.StringFixed(2)
	}
	byStatus := make(map[string]int, len(r.OrdersByStatus))
	for status, count := range r.OrdersByStatus {
		byStatus[status.String()] = count
	}
	return ReportResponse{
		TotalOrders:       r.TotalOrders,
		OpenOrders:        r.OpenOrders,
		TotalItems:        r.TotalItems,
		RevenueByCurrency: revenue,
		OrdersByStatus:    byStatus,
	}
}
