package controller

import (
	"context"
	"io"
	"net/http"

	"github.com/emra/admin-console/internal/app/service"
	apperrors "github.com/emra/admin-console/internal/errors"
	"github.com/emra/admin-console/internal/middleware"
	"github.com/emra/admin-console/internal/storage"
	"github.com/gin-gonic/gin"
)

// Presigner hands out direct upload URLs; only available with S3 storage
type Presigner interface {
	GeneratePresignedURL(ctx context.Context, folder, filename, contentType string) (*storage.PresignedURLResponse, error)
}

type UploadController struct {
	imageService service.ImageService
	presigner    Presigner
}

// NewUploadController serves image intake; presigner may be nil
func NewUploadController(imageService service.ImageService, presigner Presigner) *UploadController {
	return &UploadController{
		imageService: imageService,
		presigner:    presigner,
	}
}

type ImageURLRequest struct {
	URL string `json:"url"`
}

type GeneratePresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	Folder      string `json:"folder"` // defaults to "uploads"
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadImage turns a multipart "file" into an image reference for a form
// POST /uploads/image
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Выберите файл")
		return
	}
	folder := c.DefaultPostForm("folder", "products")

	file, err := header.Open()
	if err != nil {
		respondError(c, log, err, apperrors.ActionUpload, "Failed to open uploaded file", nil)
		return
	}
	defer file.Close()

	// one byte past the limit is enough to reject oversized files
	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		respondError(c, log, err, apperrors.ActionUpload, "Failed to read uploaded file", nil)
		return
	}

	imageURL, err := ctrl.imageService.Intake(c.Request.Context(), folder, header.Filename, data)
	if err != nil {
		respondError(c, log, err, apperrors.ActionUpload, "Image rejected", map[string]interface{}{
			"filename": header.Filename,
			"size":     header.Size,
		})
		return
	}

	log.Info("Image accepted", map[string]interface{}{
		"filename": header.Filename,
		"folder":   folder,
		"size":     len(data),
	})
	c.JSON(http.StatusOK, gin.H{
		"url": imageURL,
	})
}

// AddImageURL validates an operator typed image URL
// POST /uploads/image-url
func (ctrl *UploadController) AddImageURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ImageURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Введите URL изображения")
		return
	}

	imageURL, err := ctrl.imageService.FromURL(req.URL)
	if err != nil {
		respondError(c, log, err, apperrors.ActionUpload, "Image URL rejected", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url": imageURL,
	})
}

// GeneratePresignedURL returns a direct S3 upload URL
// POST /uploads/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if ctrl.presigner == nil {
		apperrors.NotFound(c, apperrors.UploadFailed, "Прямая загрузка не настроена")
		return
	}

	var req GeneratePresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Некорректный запрос")
		return
	}
	if !allowedContentTypes[req.ContentType] {
		log.Warn("Invalid content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		apperrors.RespondWithAPIError(c, service.ErrUnsupportedImage, apperrors.ActionUpload)
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = "uploads"
	}

	response, err := ctrl.presigner.GeneratePresignedURL(c.Request.Context(), folder, req.Filename, req.ContentType)
	if err != nil {
		respondError(c, log, err, apperrors.ActionUpload, "Failed to generate presigned URL", map[string]interface{}{
			"filename": req.Filename,
			"folder":   folder,
		})
		return
	}

	log.Info("Presigned URL generated", map[string]interface{}{
		"key": response.Key,
	})
	c.JSON(http.StatusOK, response)
}
