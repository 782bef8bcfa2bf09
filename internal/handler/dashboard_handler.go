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

type DashboardHandler struct {
	stats *store.StatsStore
}

func NewDashboardHandler(stats *store.StatsStore) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// Stats returns the tenant-wide dashboard snapshot
func (h *DashboardHandler) Stats(c echo.Context) error {
	log := logger.FromEcho(c)

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	stats, err := h.stats.Dashboard(tid, time.Now())
	if err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Dashboard stats computed",
		zap.Int64("total_products", stats.TotalProducts),
		zap.Int64("low_stock", stats.LowStock),
		zap.Int64("out_of_stock", stats.OutOfStock))
	return c.JSON(http.StatusOK, stats)
}

// TopProducts ranks products by quantity sold
func (h *DashboardHandler) TopProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	n, _ := strconv.Atoi(c.QueryParam("limit"))

	defer prometheus.TrackDBOperation("query")(time.Now())

	rows, err := h.stats.TopProducts(tid, n)
	if err != nil {
		return respondStoreError(c, log, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// CategoryStats reports product count and inventory value for one category
func (h *DashboardHandler) CategoryStats(c echo.Context) error {
	log := logger.FromEcho(c)

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	categoryID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	stats, err := h.stats.ForCategory(tid, categoryID)
	if err != nil {
		return respondStoreError(c, log, err)
	}
	return c.JSON(http.StatusOK, stats)
}
