package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/store"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

type SupplierHandler struct {
	catalog *store.CatalogStore
}

func NewSupplierHandler(catalog *store.CatalogStore) *SupplierHandler {
	return &SupplierHandler{catalog: catalog}
}

// List retrieves all suppliers for the current tenant
func (h *SupplierHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("supplier", "list")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	suppliers, err := h.catalog.ListSuppliers(tid)
	if err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Suppliers retrieved", zap.Int("count", len(suppliers)))
	return c.JSON(http.StatusOK, suppliers)
}

// Get retrieves a supplier by ID for the current tenant
func (h *SupplierHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("supplier", "get")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier ID"})
	}

	supplier, err := h.catalog.GetSupplier(tid, id)
	if err != nil {
		return respondStoreError(c, log, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// Create adds a new supplier for the current tenant
func (h *SupplierHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("supplier", "create")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	var req store.SupplierInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	supplier, err := h.catalog.CreateSupplier(tid, req)
	if err != nil {
		log.Warn("Supplier creation rejected", zap.String("name", req.Name), zap.Error(err))
		return respondStoreError(c, log, err)
	}

	log.Info("Supplier created",
		zap.Uint("supplier_id", supplier.ID),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusCreated, supplier)
}

// Update updates an existing supplier
func (h *SupplierHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("supplier", "update")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier ID"})
	}

	var req store.SupplierInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	supplier, err := h.catalog.UpdateSupplier(tid, id, req)
	if err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Supplier updated",
		zap.Uint("supplier_id", supplier.ID),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusOK, supplier)
}

// Delete removes a supplier unless products still reference it
func (h *SupplierHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("supplier", "delete")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.catalog.DeleteSupplier(tid, id); err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Supplier deleted", zap.Uint("supplier_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "supplier deleted successfully"})
}
