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

type ProductHandler struct {
	catalog *store.CatalogStore
}

func NewProductHandler(catalog *store.CatalogStore) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List retrieves the tenant's products with search, category filter and
// pagination
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("product", "list")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	filter := store.ProductFilter{Search: c.QueryParam("search")}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.PageSize, _ = strconv.Atoi(c.QueryParam("limit"))
	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
		}
		cid := uint(id)
		filter.CategoryID = &cid
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	page, err := h.catalog.ListProducts(tid, filter)
	if err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Products retrieved",
		zap.Int("count", len(page.Items)),
		zap.Int64("total", page.Total))
	return c.JSON(http.StatusOK, echo.Map{
		"products": page.Items,
		"pagination": echo.Map{
			"current_page": page.Page,
			"limit":        page.PageSize,
			"total":        page.Total,
			"total_pages":  page.TotalPages,
		},
	})
}

// Get retrieves a single product by ID
func (h *ProductHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("product", "get")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	product, err := h.catalog.GetProduct(tid, id)
	if err != nil {
		return respondStoreError(c, log, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a new product for the current tenant
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("product", "create")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	var req store.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	product, err := h.catalog.CreateProduct(tid, req)
	if err != nil {
		log.Warn("Product creation rejected", zap.String("name", req.Name), zap.Error(err))
		return respondStoreError(c, log, err)
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("brand", product.Brand))
	return c.JSON(http.StatusCreated, product)
}

// Update updates an existing product
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("product", "update")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	var req store.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	product, err := h.catalog.UpdateProduct(tid, id, req)
	if err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Product updated",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// Delete removes a product unless inventory records still exist for it
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordCatalogOperation("product", "delete")

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.catalog.DeleteProduct(tid, id); err != nil {
		return respondStoreError(c, log, err)
	}

	log.Info("Product deleted", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}
