package service

import (
	"errors"
	"fmt"
)

var (
	// ErrConfirmationRequired is returned for a destructive action the operator has not confirmed
	ErrConfirmationRequired = errors.New("confirmation required")
	// ErrSubmitInProgress rejects a second overlapping submit of the same form
	ErrSubmitInProgress = errors.New("submit already in progress")
	ErrIndexOutOfRange  = errors.New("index out of range")

	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryHasProducts = errors.New("category has products")

	ErrBannerNotFound         = errors.New("banner not found")
	ErrBannerNotPersisted     = errors.New("banner is not saved yet")
	ErrProductAlreadyAttached = errors.New("product already attached to banner")
	ErrProductNotAttached     = errors.New("product is not attached to banner")
	ErrEditorNotFound         = errors.New("banner editor is not open")

	ErrOrderNotFound = errors.New("order not found")
	ErrNoTransition  = errors.New("no status transition available")

	ErrProductNotFound = errors.New("product not found")

	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")

	ErrValidation = errors.New("validation failed")
)

// ValidationError is a form field rejected before any request is sent.
// Message is operator facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// CategoryInUseError carries the blocking details of a guarded delete
type CategoryInUseError struct {
	Name         string
	ProductCount int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category %q has %d products", e.Name, e.ProductCount)
}

func (e *CategoryInUseError) Is(target error) bool {
	return target == ErrCategoryHasProducts
}

// Message is the operator facing reason the delete was not offered
func (e *CategoryInUseError) Message() string {
	return fmt.Sprintf("Нельзя удалить — в категории «%s» есть %d товаров", e.Name, e.ProductCount)
}
