package controller

import (
	"context"
	"net/http"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/service"
	apperrors "github.com/emra/admin-console/internal/errors"
	"github.com/emra/admin-console/internal/middleware"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/gin-gonic/gin"
)

type BannerController struct {
	bannerService service.BannerService
	editors       *service.BannerEditorRegistry
}

func NewBannerController(bannerService service.BannerService, editors *service.BannerEditorRegistry) *BannerController {
	return &BannerController{
		bannerService: bannerService,
		editors:       editors,
	}
}

type AttachProductRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type MoveProductRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func bannerListResponse(banners []model.Banner) gin.H {
	return gin.H{
		"banners":  banners,
		"counters": service.CountBanners(banners),
	}
}

// ListBanners returns banners in server order with counters
// GET /banners
func (ctrl *BannerController) ListBanners(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	banners, err := ctrl.bannerService.List(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch banners", nil)
		return
	}
	c.JSON(http.StatusOK, bannerListResponse(banners))
}

// GetBanner returns one banner for the edit form
// GET /banners/:id
func (ctrl *BannerController) GetBanner(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	banner, err := ctrl.bannerService.Get(c.Request.Context(), currentSession(c), id)
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch banner", map[string]interface{}{
			"banner_id": id,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"banner": banner,
	})
}

func (ctrl *BannerController) save(c *gin.Context, id string) {
	log := middleware.GetLoggerFromContext(c)

	var input service.BannerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid banner request", map[string]interface{}{
			"banner_id": id,
			"error":     err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Некорректные данные формы")
		return
	}

	saved, banners, err := ctrl.bannerService.Save(c.Request.Context(), currentSession(c), id, input)
	if err != nil {
		respondError(c, log, err, apperrors.ActionSave, "Failed to save banner", map[string]interface{}{
			"banner_id": id,
			"title":     input.Title,
		})
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	resp := bannerListResponse(banners)
	resp["banner"] = saved
	c.JSON(status, resp)
}

// CreateBanner creates a banner. Products can be attached once it has an id.
// POST /banners
func (ctrl *BannerController) CreateBanner(c *gin.Context) {
	ctrl.save(c, "")
}

// UpdateBanner replaces a banner
// PUT /banners/:id
func (ctrl *BannerController) UpdateBanner(c *gin.Context) {
	ctrl.save(c, c.Param("id"))
}

// ToggleBanner flips the active flag
// PATCH /banners/:id/toggle
func (ctrl *BannerController) ToggleBanner(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	banners, err := ctrl.bannerService.Toggle(c.Request.Context(), currentSession(c), id)
	if err != nil {
		respondError(c, log, err, apperrors.ActionUpdate, "Failed to toggle banner", map[string]interface{}{
			"banner_id": id,
		})
		return
	}
	c.JSON(http.StatusOK, bannerListResponse(banners))
}

// DeleteBanner deletes a banner once confirmed
// DELETE /banners/:id?confirm=true
func (ctrl *BannerController) DeleteBanner(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")
	sess := currentSession(c)

	banners, err := ctrl.bannerService.Delete(c.Request.Context(), sess, id, isConfirmed(c))
	if err != nil {
		respondError(c, log, err, apperrors.ActionDelete, "Failed to delete banner", map[string]interface{}{
			"banner_id": id,
		})
		return
	}
	ctrl.editors.Close(sess.ID(), id)
	c.JSON(http.StatusOK, bannerListResponse(banners))
}

// MoveBannerUp swaps a banner with the one above it
// POST /banners/:id/move-up?confirm=true
func (ctrl *BannerController) MoveBannerUp(c *gin.Context) {
	ctrl.move(c, ctrl.bannerService.MoveUp, "up")
}

// MoveBannerDown swaps a banner with the one below it
// POST /banners/:id/move-down?confirm=true
func (ctrl *BannerController) MoveBannerDown(c *gin.Context) {
	ctrl.move(c, ctrl.bannerService.MoveDown, "down")
}

type bannerMove func(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Banner, error)

func (ctrl *BannerController) move(c *gin.Context, move bannerMove, direction string) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	banners, err := move(c.Request.Context(), currentSession(c), id, isConfirmed(c))
	if err != nil {
		respondError(c, log, err, apperrors.ActionUpdate, "Failed to move banner", map[string]interface{}{
			"banner_id": id,
			"direction": direction,
		})
		return
	}
	c.JSON(http.StatusOK, bannerListResponse(banners))
}

func editorResponse(editor *service.BannerProductsEditor, query string) gin.H {
	return gin.H{
		"bannerId":   editor.BannerID(),
		"products":   editor.Products(),
		"candidates": editor.Candidates(query),
	}
}

// OpenEditor starts editing the products attached to a saved banner
// POST /banners/:id/editor
func (ctrl *BannerController) OpenEditor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	editor, err := ctrl.editors.Open(c.Request.Context(), currentSession(c), id)
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to open banner editor", map[string]interface{}{
			"banner_id": id,
		})
		return
	}
	c.JSON(http.StatusOK, editorResponse(editor, ""))
}

func (ctrl *BannerController) editor(c *gin.Context) (*service.BannerProductsEditor, bool) {
	editor, err := ctrl.editors.Get(currentSession(c).ID(), c.Param("id"))
	if err != nil {
		respondError(c, middleware.GetLoggerFromContext(c), err, apperrors.ActionLoad, "Banner editor not open", map[string]interface{}{
			"banner_id": c.Param("id"),
		})
		return nil, false
	}
	return editor, true
}

// GetEditor returns the attached products and candidates matching ?q=
// GET /banners/:id/editor
func (ctrl *BannerController) GetEditor(c *gin.Context) {
	editor, ok := ctrl.editor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, editorResponse(editor, c.Query("q")))
}

// AttachProduct adds a catalog product to the banner
// POST /banners/:id/editor/products
func (ctrl *BannerController) AttachProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	editor, ok := ctrl.editor(c)
	if !ok {
		return
	}

	var req AttachProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Выберите товар")
		return
	}
	product, found := editor.CatalogProduct(req.ProductID)
	if !found {
		respondError(c, log, service.ErrProductNotFound, apperrors.ActionSave, "Product not in catalog", map[string]interface{}{
			"banner_id":  editor.BannerID(),
			"product_id": req.ProductID,
		})
		return
	}

	if err := editor.AddProduct(c.Request.Context(), currentSession(c), product); err != nil {
		respondError(c, log, err, apperrors.ActionSave, "Failed to attach product", map[string]interface{}{
			"banner_id":  editor.BannerID(),
			"product_id": req.ProductID,
		})
		return
	}
	c.JSON(http.StatusOK, editorResponse(editor, ""))
}

// DetachProduct removes a product from the banner once confirmed
// DELETE /banners/:id/editor/products/:productId?confirm=true
func (ctrl *BannerController) DetachProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	editor, ok := ctrl.editor(c)
	if !ok {
		return
	}
	productID := c.Param("productId")

	if err := editor.RemoveProduct(c.Request.Context(), currentSession(c), productID, isConfirmed(c)); err != nil {
		respondError(c, log, err, apperrors.ActionDelete, "Failed to detach product", map[string]interface{}{
			"banner_id":  editor.BannerID(),
			"product_id": productID,
		})
		return
	}
	c.JSON(http.StatusOK, editorResponse(editor, ""))
}

// MoveAttachedProduct shifts an attached product by delta places
// POST /banners/:id/editor/products/:productId/move?confirm=true
func (ctrl *BannerController) MoveAttachedProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	editor, ok := ctrl.editor(c)
	if !ok {
		return
	}
	productID := c.Param("productId")

	var req MoveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Укажите направление")
		return
	}

	if err := editor.MoveProduct(c.Request.Context(), currentSession(c), productID, req.Delta, isConfirmed(c)); err != nil {
		respondError(c, log, err, apperrors.ActionUpdate, "Failed to reorder banner products", map[string]interface{}{
			"banner_id":  editor.BannerID(),
			"product_id": productID,
			"delta":      req.Delta,
		})
		return
	}
	c.JSON(http.StatusOK, editorResponse(editor, ""))
}

// CloseEditor discards the editor without confirmation
// DELETE /banners/:id/editor
func (ctrl *BannerController) CloseEditor(c *gin.Context) {
	ctrl.editors.Close(currentSession(c).ID(), c.Param("id"))
	c.Status(http.StatusNoContent)
}
