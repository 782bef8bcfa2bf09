package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"inventory-service/internal/store"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

type UserHandler struct {
	users *store.UserStore
}

func NewUserHandler(users *store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// List retrieves the tenant's members
func (h *UserHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)

	tid, ok := tenantID(c)
	if !ok {
		return missingTenant(c, log)
	}

	pageNum, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	defer prometheus.TrackDBOperation("query")(time.Now())

	page, err := h.users.List(tid, pageNum, limit)
	if err != nil {
		return respondStoreError(c, log, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users": page.Items,
		"pagination": echo.Map{
			"current_page": page.Page,
			"limit":        page.PageSize,
			"total":        page.Total,
			"total_pages":  page.TotalPages,
		},
	})
}
