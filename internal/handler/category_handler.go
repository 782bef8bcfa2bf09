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

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryHandler struct {
	catalog *store.CatalogStore
}

func NewCategoryHandler(catalog *store.CatalogStore) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// List retrieves all categories for the current tenant
func (h *CategoryHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("category", "list")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	categories, err := h.catalog.ListCategories(tid)
	if err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Categories retrieved", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// Get retrieves a specific category by ID
func (h *CategoryHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("category", "get")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category ID"})
	}

	category, err := h.catalog.GetCategory(tid, id)
	if err != nil {
		return respondStoreError(c, log, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Create adds a new category for the current tenant
func (h *CategoryHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("category", "create")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	category, err := h.catalog.CreateCategory(tid, req.Name, req.Description)
	if err != nil {
		log.Warn("Category creation rejected", zap.String("name", req.Name), zap.Error(err))
		return respondStoreError(c, log, err)
	}

	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// Update updates an existing category
func (h *CategoryHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("category", "update")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category ID"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	category, err := h.catalog.UpdateCategory(tid, id, req.Name, req.Description)
	if err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Category updated",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// Delete removes a category unless products still reference it
func (h *CategoryHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("category", "delete")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.catalog.DeleteCategory(tid, id); err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Category deleted", zap.Uint("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted successfully"})
}
