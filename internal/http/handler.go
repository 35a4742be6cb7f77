package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/estate-offers/internal/model"
	"github.com/nurpe/estate-offers/internal/service"
)

type Handler struct {
	offers *service.OfferService
	log    zerolog.Logger
}

func NewHandler(offers *service.OfferService, log zerolog.Logger) *Handler {
	return &Handler{offers: offers, log: log}
}

func (h *Handler) Register(router *gin.Engine) {
	router.POST("/offers/export/pdf", h.exportPDF)
	router.POST("/offers/export/xlsx", h.exportXLSX)
	router.POST("/offers/share", h.createShareLink)
	router.GET("/offers/shared/:token", h.getSharedOffer)
}

type overrideRequest struct {
	BuildingID    string   `json:"building_id" binding:"required"`
	RentPrice     *float64 `json:"rent_price"`
	ServiceCharge *float64 `json:"service_charge"`
}

type exportOfferRequest struct {
	DealID      string            `json:"deal_id" binding:"required"`
	BuildingIDs []string          `json:"building_ids"`
	Overrides   []overrideRequest `json:"overrides"`
}

func (h *Handler) exportPDF(c *gin.Context) {
	input, ok := h.bindOfferInput(c)
	if !ok {
		return
	}

	result, err := h.offers.GenerateOffer(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) exportXLSX(c *gin.Context) {
	input, ok := h.bindOfferInput(c)
	if !ok {
		return
	}

	result, err := h.offers.GenerateSummary(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) createShareLink(c *gin.Context) {
	input, ok := h.bindOfferInput(c)
	if !ok {
		return
	}

	result, err := h.offers.CreateShareLink(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":     result.Token,
		"file_name": result.FileName,
	})
}

func (h *Handler) getSharedOffer(c *gin.Context) {
	result, err := h.offers.GetSharedOffer(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) bindOfferInput(c *gin.Context) (service.GenerateOfferInput, bool) {
	var req exportOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.GenerateOfferInput{}, false
	}

	dealID, err := uuid.Parse(strings.TrimSpace(req.DealID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deal_id"})
		return service.GenerateOfferInput{}, false
	}

	buildingIDs := make([]uuid.UUID, 0, len(req.BuildingIDs))
	for _, raw := range req.BuildingIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
			return service.GenerateOfferInput{}, false
		}
		buildingIDs = append(buildingIDs, id)
	}

	overrides := make([]model.PriceOverride, 0, len(req.Overrides))
	for _, raw := range req.Overrides {
		id, err := uuid.Parse(strings.TrimSpace(raw.BuildingID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid override building id"})
			return service.GenerateOfferInput{}, false
		}
		overrides = append(overrides, model.PriceOverride{
			BuildingID:    id,
			RentPrice:     raw.RentPrice,
			ServiceCharge: raw.ServiceCharge,
		})
	}

	return service.GenerateOfferInput{
		DealID:      dealID,
		BuildingIDs: buildingIDs,
		Overrides:   overrides,
	}, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("generate offer failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
