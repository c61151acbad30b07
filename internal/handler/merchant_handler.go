package handler

import (
	"errors"
	"net/http"
	"strconv"

	"merchant-registry/internal/merchant"
	"merchant-registry/pkg/jwtutil"
	"merchant-registry/pkg/logger"
	"merchant-registry/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// MerchantHandler shapes HTTP requests and responses around the merchant
// service: envelopes, status codes and guard-aware error mapping.
type MerchantHandler struct {
	service merchant.Service
}

// NewMerchantHandler creates the merchant handler
func NewMerchantHandler(service merchant.Service) *MerchantHandler {
	return &MerchantHandler{service: service}
}

func currentUser(c echo.Context) (*jwtutil.UserClaims, bool) {
	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	return claims, ok
}

func (h *MerchantHandler) merchantError(c echo.Context, err error, fallback string) error {
	log := logger.FromContext(c)
	switch {
	case errors.Is(err, merchant.ErrMerchantNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, merchant.ErrNotAdministrator):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	default:
		log.Error(fallback, zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
	}
}

func merchantID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// List returns a filtered, paginated merchant page with its meta envelope
func (h *MerchantHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.ListMerchantsCounter.Inc()

	var query merchant.ListQuery
	if err := c.Bind(&query); err != nil {
		log.Error("Failed to parse listing query", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query"})
	}
	if err := c.Validate(&query); err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), query)
	if err != nil {
		return h.merchantError(c, err, "failed to list merchants")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": result.Data,
		"meta": result.Meta,
	})
}

// GetCities returns the distinct municipalities among active merchants
func (h *MerchantHandler) GetCities(c echo.Context) error {
	cities, err := h.service.GetCities(c.Request().Context())
	if err != nil {
		return h.merchantError(c, err, "failed to load cities")
	}

	return c.JSON(http.StatusOK, echo.Map{"data": cities})
}

// Get returns a single merchant with its relations
func (h *MerchantHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.GetMerchantCounter.Inc()

	id, err := merchantID(c)
	if err != nil {
		log.Error("Invalid merchant ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid merchant ID"})
	}

	m, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return h.merchantError(c, err, "failed to load merchant")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{"merchant": m},
	})
}

// Create registers a new merchant, optionally with a companion establishment
func (h *MerchantHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.CreateMerchantCounter.Inc()

	claims, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req merchant.CreateMerchantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse merchant creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := h.service.Create(c.Request().Context(), req, claims.UserID)
	if err != nil {
		return h.merchantError(c, err, "merchant creation failed")
	}

	log.Info("Merchant created",
		zap.String("name", m.Name),
		zap.Uint("id", m.ID),
		zap.Uint("registered_by", claims.UserID))

	return c.JSON(http.StatusCreated, echo.Map{"data": m})
}

// Update mutates merchant fields and reconciles its establishments
func (h *MerchantHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.UpdateMerchantCounter.Inc()

	claims, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := merchantID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid merchant ID"})
	}

	var req merchant.UpdateMerchantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse merchant update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := h.service.Update(c.Request().Context(), id, req, claims.UserID)
	if err != nil {
		return h.merchantError(c, err, "merchant update failed")
	}

	log.Info("Merchant updated", zap.Uint("id", m.ID), zap.Uint("updated_by", claims.UserID))

	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{"merchant": m},
	})
}

// UpdateStatus toggles a merchant between ACTIVE and INACTIVE
func (h *MerchantHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.UpdateStatusCounter.Inc()

	claims, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := merchantID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid merchant ID"})
	}

	var req merchant.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse status update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := h.service.UpdateStatus(c.Request().Context(), id, req, claims.UserID)
	if err != nil {
		return h.merchantError(c, err, "status update failed")
	}

	log.Info("Merchant status updated",
		zap.Uint("id", m.ID),
		zap.String("status", string(m.Status)))

	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{"merchant": m},
	})
}

// Delete removes a merchant and its establishments; administrators only
func (h *MerchantHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.DeleteMerchantCounter.Inc()

	claims, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := merchantID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid merchant ID"})
	}

	if err := h.service.Remove(c.Request().Context(), id, claims.UserID); err != nil {
		return h.merchantError(c, err, "merchant deletion failed")
	}

	log.Info("Merchant deleted", zap.Uint("id", id), zap.Uint("deleted_by", claims.UserID))

	return c.JSON(http.StatusOK, echo.Map{"message": "Merchant deleted successfully"})
}

// ExportCSV streams the tab-separated merchant report as an attachment;
// administrators only
func (h *MerchantHandler) ExportCSV(c echo.Context) error {
	prometheus.ExportCounter.Inc()

	claims, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	data, err := h.service.ExportTSV(c.Request().Context(), claims.UserID)
	if err != nil {
		return h.merchantError(c, err, "export failed")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=merchants.tsv")
	return c.Blob(http.StatusOK, "text/tab-separated-values; charset=utf-8", []byte(data))
}
