package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/emra/admin-console/pkg/logger"
)

// MaxImageSize is the largest accepted upload in bytes
const MaxImageSize = 5 << 20

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageUploader stores an image and returns its public URL
type ImageUploader interface {
	Put(ctx context.Context, folder, filename, contentType string, body []byte) (string, error)
}

type ImageService interface {
	// Intake turns an uploaded file into an image reference for a form
	Intake(ctx context.Context, folder, filename string, data []byte) (string, error)
	// FromURL accepts an operator typed image URL
	FromURL(raw string) (string, error)
}

type imageService struct {
	uploader ImageUploader
}

// NewImageService uploads through uploader; a nil uploader inlines images as data URLs
func NewImageService(uploader ImageUploader) ImageService {
	return &imageService{uploader: uploader}
}

func detectImageType(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := imageTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, ext)
	}
	if sniffed := http.DetectContentType(data); !strings.HasPrefix(sniffed, "image/") {
		return "", fmt.Errorf("%w: content is %s", ErrUnsupportedImage, sniffed)
	}
	return contentType, nil
}

func (s *imageService) Intake(ctx context.Context, folder, filename string, data []byte) (string, error) {
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(data))
	}
	contentType, err := detectImageType(filename, data)
	if err != nil {
		return "", err
	}

	if s.uploader == nil {
		return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
	}

	fileURL, err := s.uploader.Put(ctx, folder, filename, contentType, data)
	if err != nil {
		logger.Error("Failed to upload image", err, map[string]interface{}{
			"filename": filename,
			"folder":   folder,
		})
		return "", err
	}
	return fileURL, nil
}

func (s *imageService) FromURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid("image", "Введите URL изображения")
	}
	if strings.HasPrefix(raw, "data:image/") {
		return raw, nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", invalid("image", "Некорректный URL изображения")
	}
	return raw, nil
}
