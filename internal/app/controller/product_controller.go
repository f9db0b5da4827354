package controller

import (
	"net/http"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/service"
	apperrors "github.com/emra/admin-console/internal/errors"
	"github.com/emra/admin-console/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService  service.ProductService
	categoryService service.CategoryService
}

func NewProductController(productService service.ProductService, categoryService service.CategoryService) *ProductController {
	return &ProductController{
		productService:  productService,
		categoryService: categoryService,
	}
}

type UpdateStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

func productListResponse(products []model.Product, filter service.ProductFilter) gin.H {
	filtered := service.FilterProducts(products, filter)
	return gin.H{
		"products": filtered,
		"count":    len(filtered),
		"counters": service.CountProducts(products),
	}
}

// ListProducts returns the catalog, narrowed by ?search= and ?categoryId=
// GET /products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sess := currentSession(c)

	products, err := ctrl.productService.List(c.Request.Context(), sess, model.ProductQuery{})
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch products", nil)
		return
	}

	// category names for the filter and the form select
	categories, err := ctrl.categoryService.List(c.Request.Context(), sess)
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch categories", nil)
		return
	}

	resp := productListResponse(products, service.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: c.Query("categoryId"),
	})
	resp["categories"] = categories
	c.JSON(http.StatusOK, resp)
}

// GetProduct returns one product for the edit form
// GET /products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	product, err := ctrl.productService.Get(c.Request.Context(), currentSession(c), id)
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch product", map[string]interface{}{
			"product_id": id,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"images":  product.AllImages(),
	})
}

func (ctrl *ProductController) save(c *gin.Context, id string) {
	log := middleware.GetLoggerFromContext(c)

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid product request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Некорректные данные формы")
		return
	}

	products, err := ctrl.productService.Save(c.Request.Context(), currentSession(c), id, input)
	if err != nil {
		respondError(c, log, err, apperrors.ActionSave, "Failed to save product", map[string]interface{}{
			"product_id": id,
			"sku":        input.SKU,
		})
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	resp := productListResponse(products, service.ProductFilter{})
	resp["message"] = "Товар сохранён"
	c.JSON(status, resp)
}

// CreateProduct creates a product
// POST /products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	ctrl.save(c, "")
}

// UpdateProduct replaces a product
// PUT /products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	ctrl.save(c, c.Param("id"))
}

// DeleteProduct deletes a product once confirmed
// DELETE /products/:id?confirm=true
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	products, err := ctrl.productService.Delete(c.Request.Context(), currentSession(c), id, isConfirmed(c))
	if err != nil {
		respondError(c, log, err, apperrors.ActionDelete, "Failed to delete product", map[string]interface{}{
			"product_id": id,
		})
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	c.JSON(http.StatusOK, productListResponse(products, service.ProductFilter{}))
}

// UpdateStock sets the stock of a product
// PATCH /products/:id/stock
func (ctrl *ProductController) UpdateStock(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Введите количество")
		return
	}

	products, err := ctrl.productService.UpdateStock(c.Request.Context(), currentSession(c), id, *req.Stock)
	if err != nil {
		respondError(c, log, err, apperrors.ActionSave, "Failed to update stock", map[string]interface{}{
			"product_id": id,
			"stock":      *req.Stock,
		})
		return
	}
	c.JSON(http.StatusOK, productListResponse(products, service.ProductFilter{}))
}

// ToggleProduct flips the active flag
// PATCH /products/:id/toggle
func (ctrl *ProductController) ToggleProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	products, err := ctrl.productService.Toggle(c.Request.Context(), currentSession(c), id)
	if err != nil {
		respondError(c, log, err, apperrors.ActionUpdate, "Failed to toggle product", map[string]interface{}{
			"product_id": id,
		})
		return
	}
	c.JSON(http.StatusOK, productListResponse(products, service.ProductFilter{}))
}
