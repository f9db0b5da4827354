package controller

import (
	"net/http"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/service"
	apperrors "github.com/emra/admin-console/internal/errors"
	"github.com/emra/admin-console/internal/middleware"
	"github.com/gin-gonic/gin"
)

type PromoCodeController struct {
	promoCodeService service.PromoCodeService
}

func NewPromoCodeController(promoCodeService service.PromoCodeService) *PromoCodeController {
	return &PromoCodeController{
		promoCodeService: promoCodeService,
	}
}

func promoCodeListResponse(codes []model.PromoCode) gin.H {
	return gin.H{
		"promoCodes": codes,
		"count":      len(codes),
	}
}

// ListPromoCodes returns all promo codes
// GET /promo-codes
func (ctrl *PromoCodeController) ListPromoCodes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	codes, err := ctrl.promoCodeService.List(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch promo codes", nil)
		return
	}
	c.JSON(http.StatusOK, promoCodeListResponse(codes))
}

func (ctrl *PromoCodeController) save(c *gin.Context, id string) {
	log := middleware.GetLoggerFromContext(c)

	var input service.PromoCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid promo code request", map[string]interface{}{
			"promo_code_id": id,
			"error":         err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Некорректные данные формы")
		return
	}

	codes, err := ctrl.promoCodeService.Save(c.Request.Context(), currentSession(c), id, input)
	if err != nil {
		respondError(c, log, err, apperrors.ActionSave, "Failed to save promo code", map[string]interface{}{
			"promo_code_id": id,
		})
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	c.JSON(status, promoCodeListResponse(codes))
}

// CreatePromoCode creates a promo code
// POST /promo-codes
func (ctrl *PromoCodeController) CreatePromoCode(c *gin.Context) {
	ctrl.save(c, "")
}

// UpdatePromoCode replaces a promo code
// PUT /promo-codes/:id
func (ctrl *PromoCodeController) UpdatePromoCode(c *gin.Context) {
	ctrl.save(c, c.Param("id"))
}

// DeletePromoCode deletes a promo code once confirmed
// DELETE /promo-codes/:id?confirm=true
func (ctrl *PromoCodeController) DeletePromoCode(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	codes, err := ctrl.promoCodeService.Delete(c.Request.Context(), currentSession(c), id, isConfirmed(c))
	if err != nil {
		respondError(c, log, err, apperrors.ActionDelete, "Failed to delete promo code", map[string]interface{}{
			"promo_code_id": id,
		})
		return
	}
	c.JSON(http.StatusOK, promoCodeListResponse(codes))
}
