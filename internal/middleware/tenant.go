package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/model"
	"inventory-service/internal/store"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

// TenantMiddleware resolves the tenant token from the URL segment (or the
// X-Tenant-ID header as a fallback) through the tenant registry, and stores
// the validated tenant in the request context. Every route below it runs
// with exactly one tenant; handlers read the id and never re-derive it from
// transport data.
func TenantMiddleware(tenants *store.TenantStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			token := c.Param("tenantId")
			if token == "" {
				token = c.Request().Header.Get("X-Tenant-ID")
			}
			if token == "" {
				log.Warn("Missing tenant identifier")
				prometheus.TenantContextMissingCounter.Inc()
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error": "tenant ID is required in URL path or X-Tenant-ID header",
				})
			}

			tenant, err := tenants.Resolve(token)
			switch {
			case errors.Is(err, store.ErrNotFound):
				log.Warn("Tenant not found", zap.String("token", token))
				return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
			case errors.Is(err, store.ErrTenantInactive):
				log.Warn("Inactive tenant rejected", zap.String("token", token))
				prometheus.InactiveTenantCounter.Inc()
				return c.JSON(http.StatusForbidden, echo.Map{"error": "tenant account is inactive"})
			case err != nil:
				log.Error("Failed to resolve tenant", zap.String("token", token), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify tenant"})
			}

			c.Set("tenant", tenant)
			c.Set("tenant_id", tenant.ID)
			c.Set("logger", log.With(zap.Uint("tenant_id", tenant.ID)))

			return next(c)
		}
	}
}

// TenantFromContext retrieves the validated tenant set by TenantMiddleware.
func TenantFromContext(c echo.Context) (*model.Tenant, bool) {
	tenant, ok := c.Get("tenant").(*model.Tenant)
	return tenant, ok
}
