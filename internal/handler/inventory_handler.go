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

// InventoryRequest creates a stock record.
type InventoryRequest struct {
	ProductID uint   `json:"product_id"`
	Location  string `json:"location"`
	Quantity  int64  `json:"quantity"`
	Capacity  *int64 `json:"capacity"`
}

// MutationRequest applies one quantity mutation. Operation defaults to "set"
// to match the create/replace semantics of a plain PUT.
type MutationRequest struct {
	Quantity  *int64 `json:"quantity"`
	Operation string `json:"operation"`
	Capacity  *int64 `json:"capacity"`
}

type InventoryHandler struct {
	ledger            *store.InventoryStore
	lowStockThreshold int64
}

func NewInventoryHandler(ledger *store.InventoryStore, lowStockThreshold int64) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, lowStockThreshold: lowStockThreshold}
}

// List retrieves the tenant's stock records with product details
func (h *InventoryHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	filter := store.InventoryFilter{
		Search:   c.QueryParam("search"),
		Location: c.QueryParam("location"),
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.PageSize, _ = strconv.Atoi(c.QueryParam("limit"))

	defer prometheus.TrackDBOperation("query")(time.Now())

	page, err := h.ledger.List(tid, filter)
	if err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Inventory retrieved",
		zap.Int("count", len(page.Items)),
		zap.Int64("total", page.Total))
	return c.JSON(http.StatusOK, echo.Map{
		"inventory": page.Items,
		"pagination": echo.Map{
			"current_page": page.Page,
			"limit":        page.PageSize,
			"total":        page.Total,
			"total_pages":  page.TotalPages,
		},
	})
}

// ListByProduct retrieves stock across all locations for one product
func (h *InventoryHandler) ListByProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	rows, err := h.ledger.ListByProduct(tid, productID)
	if err != nil {
		return respondStoreError(c, log, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Create adds a stock record for a product at a location
func (h *InventoryHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	var req InventoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	record, err := h.ledger.CreateRecord(tid, req.ProductID, req.Location, req.Quantity, req.Capacity)
	if err != nil {
		log.Warn("Inventory creation rejected",
			zap.Uint("product_id", req.ProductID),
			zap.String("location", req.Location),
			zap.Error(err))
		return respondStoreError(c, log, err)
	}

	log.Info("Inventory record created",
		zap.Uint("product_id", record.ProductID),
		zap.String("location", record.Location),
		zap.Int64("quantity", record.Quantity))
	return c.JSON(http.StatusCreated, record)
}

// Mutate applies a set/add/subtract quantity mutation to one stock key
func (h *InventoryHandler) Mutate(c echo.Context) error {
	log := logger.FromEcho(c)

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}
	location := c.Param("location")

	var req MutationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Quantity == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity is required"})
	}

	op := store.MutationOp(req.Operation)
	if req.Operation == "" {
		op = store.OpSet
	}
	prometheus.RecordStockMutation(string(op))

	defer prometheus.TrackDBOperation("update")(time.Now())

	record, err := h.ledger.MutateQuantity(tid, productID, location, op, *req.Quantity, req.Capacity)
	if err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Stock mutated",
		zap.Uint("product_id", productID),
		zap.String("location", location),
		zap.String("operation", string(op)),
		zap.Int64("operand", *req.Quantity),
		zap.Int64("quantity", record.Quantity))
	return c.JSON(http.StatusOK, record)
}

// Delete removes one stock record
func (h *InventoryHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}
	location := c.Param("location")

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.ledger.DeleteRecord(tid, productID, location); err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Inventory record deleted",
		zap.Uint("product_id", productID),
		zap.String("location", location))
	return c.JSON(http.StatusOK, echo.Map{"message": "inventory record deleted successfully"})
}

// LowStock lists records under the threshold, most depleted first
func (h *InventoryHandler) LowStock(c echo.Context) error {
	log := logger.FromEcho(c)

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	threshold := h.lowStockThreshold
	if raw := c.QueryParam("threshold"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid threshold"})
		}
		threshold = parsed
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	rows, err := h.ledger.LowStock(tid, threshold)
	if err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Low stock alerts retrieved",
		zap.Int("count", len(rows)),
		zap.Int64("threshold", threshold))
	return c.JSON(http.StatusOK, echo.Map{
		"data":      rows,
		"count":     len(rows),
		"threshold": threshold,
	})
}
