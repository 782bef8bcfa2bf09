package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/store"
)

// tenantID reads the validated tenant id set by the tenant middleware.
func tenantID(c echo.Context) (uint, bool) {
	id, ok := c.Get("tenant_id").(uint)
	return id, ok
}

func missingTenant(c echo.Context, log *zap.Logger) error {
	log.Warn("Missing tenant_id in context")
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant context is required"})
}

// respondStoreError is the single place error kinds become status codes. The
// stores never see transport concerns; handlers never inspect storage errors.
func respondStoreError(c echo.Context, log *zap.Logger, err error) error {
	var inUse *store.InUseError
	switch {
	case errors.As(err, &inUse):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":      "record is still referenced and cannot be deleted",
			"references": inUse.Count,
		})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	case errors.Is(err, store.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicateName), errors.Is(err, store.ErrDuplicateKey):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, store.ErrTenantInactive):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "tenant account is inactive"})
	case errors.Is(err, store.ErrTransient):
		log.Warn("Transient storage failure", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage temporarily unavailable, retry later"})
	default:
		log.Error("Unexpected store error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}
