package handler

import (
	"net/http"

	"merchant-registry/internal/merchant"
	"merchant-registry/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EstablishmentHandler exposes the read-only establishment surface.
type EstablishmentHandler struct {
	service merchant.Service
}

// NewEstablishmentHandler creates the establishment handler
func NewEstablishmentHandler(service merchant.Service) *EstablishmentHandler {
	return &EstablishmentHandler{service: service}
}

// List returns all establishments with their owning merchant
func (h *EstablishmentHandler) List(c echo.Context) error {
	establishments, err := h.service.ListEstablishments(c.Request().Context())
	if err != nil {
		logger.FromContext(c).Error("Failed to list establishments", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list establishments"})
	}

	return c.JSON(http.StatusOK, echo.Map{"data": establishments})
}
