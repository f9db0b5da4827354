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

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

func categoryListResponse(categories []model.Category) gin.H {
	return gin.H{
		"categories": categories,
		"count":      len(categories),
	}
}

// ListCategories returns categories in server order
// GET /categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.List(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch categories", nil)
		return
	}
	c.JSON(http.StatusOK, categoryListResponse(categories))
}

// SuggestSlug derives the slug the form fills in for ?name=
// GET /categories/slug
func (ctrl *CategoryController) SuggestSlug(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"slug": service.DeriveSlug(c.Query("name")),
	})
}

func (ctrl *CategoryController) save(c *gin.Context, id string) {
	log := middleware.GetLoggerFromContext(c)

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid category request", map[string]interface{}{
			"category_id": id,
			"error":       err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Некорректные данные формы")
		return
	}

	categories, err := ctrl.categoryService.Save(c.Request.Context(), currentSession(c), id, input)
	if err != nil {
		respondError(c, log, err, apperrors.ActionSave, "Failed to save category", map[string]interface{}{
			"category_id": id,
			"name":        input.Name,
		})
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	c.JSON(status, categoryListResponse(categories))
}

// CreateCategory creates a category; an empty slug is derived from the name
// POST /categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	ctrl.save(c, "")
}

// UpdateCategory replaces a category
// PUT /categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	ctrl.save(c, c.Param("id"))
}

// ToggleCategory flips the active flag with a partial update
// PATCH /categories/:id/toggle
func (ctrl *CategoryController) ToggleCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	categories, err := ctrl.categoryService.Toggle(c.Request.Context(), currentSession(c), id)
	if err != nil {
		respondError(c, log, err, apperrors.ActionUpdate, "Failed to toggle category", map[string]interface{}{
			"category_id": id,
		})
		return
	}
	c.JSON(http.StatusOK, categoryListResponse(categories))
}

// DeleteCategory deletes an empty category once confirmed
// DELETE /categories/:id?confirm=true
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	categories, err := ctrl.categoryService.Delete(c.Request.Context(), currentSession(c), id, isConfirmed(c))
	if err != nil {
		respondError(c, log, err, apperrors.ActionDelete, "Failed to delete category", map[string]interface{}{
			"category_id": id,
		})
		return
	}
	c.JSON(http.StatusOK, categoryListResponse(categories))
}

// MoveCategoryUp swaps a category with the one above it
// POST /categories/:id/move-up?confirm=true
func (ctrl *CategoryController) MoveCategoryUp(c *gin.Context) {
	ctrl.move(c, ctrl.categoryService.MoveUp, "up")
}

// MoveCategoryDown swaps a category with the one below it
// POST /categories/:id/move-down?confirm=true
func (ctrl *CategoryController) MoveCategoryDown(c *gin.Context) {
	ctrl.move(c, ctrl.categoryService.MoveDown, "down")
}

type categoryMove func(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Category, error)

func (ctrl *CategoryController) move(c *gin.Context, move categoryMove, direction string) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	categories, err := move(c.Request.Context(), currentSession(c), id, isConfirmed(c))
	if err != nil {
		respondError(c, log, err, apperrors.ActionUpdate, "Failed to move category", map[string]interface{}{
			"category_id": id,
			"direction":   direction,
		})
		return
	}
	c.JSON(http.StatusOK, categoryListResponse(categories))
}
