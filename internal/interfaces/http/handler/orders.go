package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tectle/backend/internal/application/dashboard"
	"github.com/tectle/backend/internal/application/importing"
	"github.com/tectle/backend/internal/domain/orders"
	"github.com/tectle/backend/internal/infrastructure/logger"
	"github.com/tectle/backend/internal/interfaces/http/dto"
)

// OrdersHandler serves the order dashboard endpoints: listing imported
// orders, running imports, and the aggregate report.
type OrdersHandler struct {
	BaseHandler
	service *importing.Service
	state   *dashboard.State
}

// NewOrdersHandler creates an orders handler backed by the given import
// service and order view.
func NewOrdersHandler(service *importing.Service, state *dashboard.State) *OrdersHandler {
	return &OrdersHandler{
		service: service,
		state:   state,
	}
}

// List handles GET /api/orders. Orders can be filtered by normalized
// status and platform. They come back newest first unless sort=asc
// requests oldest first.
func (h *OrdersHandler) List(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ErrorWithCode(c, dto.ErrCodeValidation, err.Error())
		return
	}

	list := h.state.Snapshot(dashboard.Filter{
		Status:   orders.OrderStatus(req.Status),
		Platform: req.Platform,
	})
	if req.Sort == "asc" {
		list = orders.SortByCreatedAt(list, false)
	}

	h.SuccessWithMeta(c, dto.FromOrders(list), len(list))
}

// Import handles POST /api/orders/import. The request carries raw payloads
// grouped by platform; parsed orders are merged into the order view and the
// full run outcome is returned.
func (h *OrdersHandler) Import(c *gin.Context) {
	var req dto.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ErrorWithCode(c, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	result, err := h.service.ImportAll(c.Request.Context(), req.Batches)
	if err != nil {
		var unknown *importing.UnknownPlatformError
		if errors.As(err, &unknown) {
			h.ErrorWithCode(c, dto.ErrCodeUnknownPlatform, unknown.Error())
			return
		}
		logger.GetGinLogger(c).Error("import run failed", zap.Error(err))
		h.InternalError(c, "import failed")
		return
	}

	h.state.Upsert(result.Orders)
	h.Success(c, dto.FromImportResult(result))
}

// Report handles GET /api/report, summarizing every stored order.
func (h *OrdersHandler) Report(c *gin.Context) {
	h.Success(c, dto.FromReport(h.state.Report()))
}
