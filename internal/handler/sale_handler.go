package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/store"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

type SaleHandler struct {
	sales *store.SaleStore
}

func NewSaleHandler(sales *store.SaleStore) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// Create records a sale and decrements the stock at the given location
func (h *SaleHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	var req store.SaleInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	sale, err := h.sales.Record(tid, req)
	if err != nil {
		log.Warn("Sale rejected",
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
		return respondStoreError(c, log, err)
	}
	prometheus.SalesRecordedCounter.Inc()

	log.Info("Sale recorded",
		zap.Uint("sale_id", sale.ID),
		zap.Uint("product_id", sale.ProductID),
		zap.Int64("quantity", sale.Quantity))
	return c.JSON(http.StatusCreated, sale)
}

// List retrieves the tenant's sales, newest first
func (h *SaleHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	pageNum, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	defer prometheus.TrackDBOperation("query")(time.Now())

	page, err := h.sales.List(tid, pageNum, limit)
	if err != nil {
		return respondStoreError(c, log, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"sales": page.Items,
		"pagination": echo.Map{
			"current_page": page.Page,
			"limit":        page.PageSize,
			"total":        page.Total,
			"total_pages":  page.TotalPages,
		},
	})
}
