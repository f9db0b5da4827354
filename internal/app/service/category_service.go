package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/repository"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
)

// CategoryInput is the category form as submitted
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Position    int    `json:"position"`
	IsActive    *bool  `json:"isActive"`
}

type CategoryService interface {
	List(ctx context.Context, sess *adminapi.Session) ([]model.Category, error)
	// Save creates when id is empty, otherwise updates. Returns the refetched list.
	Save(ctx context.Context, sess *adminapi.Session, id string, input CategoryInput) ([]model.Category, error)
	Toggle(ctx context.Context, sess *adminapi.Session, id string) ([]model.Category, error)
	Delete(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Category, error)
	MoveUp(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Category, error)
	MoveDown(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Category, error)
}

type categoryService struct {
	repo      repository.CategoryRepository
	guard     *SubmitGuard
	reorderer *Reorderer[model.Category]
}

func NewCategoryService(repo repository.CategoryRepository, guard *SubmitGuard) CategoryService {
	return &categoryService{
		repo:      repo,
		guard:     guard,
		reorderer: NewReorderer[model.Category]("category", categoryPositions{repo: repo}),
	}
}

// categoryPositions adapts the repository to the reorder protocol
type categoryPositions struct {
	repo repository.CategoryRepository
}

func (p categoryPositions) SetPosition(ctx context.Context, sess *adminapi.Session, id string, position int) error {
	return p.repo.Patch(ctx, sess, id, model.CategoryPatch{Position: &position})
}

func (p categoryPositions) List(ctx context.Context, sess *adminapi.Session) ([]model.Category, error) {
	return p.repo.List(ctx, sess)
}

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugSpaces       = regexp.MustCompile(`\s+`)
	slugDashes       = regexp.MustCompile(`-+`)
)

// DeriveSlug builds a slug from a category name. Letters outside latin a-z are dropped,
// so a Cyrillic name derives an empty slug that the operator must fill in.
func DeriveSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func (s *categoryService) List(ctx context.Context, sess *adminapi.Session) ([]model.Category, error) {
	return s.repo.List(ctx, sess)
}

func buildCategory(id string, input CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name", "Введите название")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" && id == "" {
		slug = DeriveSlug(name)
	}
	if !model.SlugPattern.MatchString(slug) {
		return nil, invalid("slug", "Только строчные латинские буквы, цифры и дефисы")
	}
	if input.Position < 0 {
		return nil, invalid("position", "Позиция не может быть отрицательной")
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	return &model.Category{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
		Position:    input.Position,
		IsActive:    active,
	}, nil
}

func (s *categoryService) Save(ctx context.Context, sess *adminapi.Session, id string, input CategoryInput) ([]model.Category, error) {
	category, err := buildCategory(id, input)
	if err != nil {
		return nil, err
	}

	release, err := s.guard.Acquire(submitKey(sess.ID(), "category", id))
	if err != nil {
		return nil, err
	}
	defer release()

	if id == "" {
		_, err = s.repo.Create(ctx, sess, category)
	} else {
		_, err = s.repo.Update(ctx, sess, id, category)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Category saved", map[string]interface{}{
		"category_id": id,
		"slug":        category.Slug,
		"created":     id == "",
	})
	return s.repo.List(ctx, sess)
}

func (s *categoryService) find(ctx context.Context, sess *adminapi.Session, id string) ([]model.Category, int, error) {
	categories, err := s.repo.List(ctx, sess)
	if err != nil {
		return nil, -1, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return categories, i, nil
		}
	}
	return categories, -1, ErrCategoryNotFound
}

// Toggle flips isActive with a partial update
func (s *categoryService) Toggle(ctx context.Context, sess *adminapi.Session, id string) ([]model.Category, error) {
	categories, index, err := s.find(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	active := !categories[index].IsActive
	if err := s.repo.Patch(ctx, sess, id, model.CategoryPatch{IsActive: &active}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, sess)
}

// Delete refuses categories that still have products before asking for confirmation
func (s *categoryService) Delete(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Category, error) {
	categories, index, err := s.find(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	category := categories[index]
	if count := category.ProductCount(); count > 0 {
		logger.Warn("Category delete blocked", map[string]interface{}{
			"category_id":   id,
			"product_count": count,
		})
		return categories, &CategoryInUseError{Name: category.Name, ProductCount: count}
	}
	if !confirmed {
		return categories, ErrConfirmationRequired
	}

	if err := s.repo.Delete(ctx, sess, id); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, sess)
}

func (s *categoryService) MoveUp(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Category, error) {
	categories, index, err := s.find(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return s.reorderer.MoveUp(ctx, sess, categories, index, confirmed)
}

func (s *categoryService) MoveDown(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Category, error) {
	categories, index, err := s.find(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return s.reorderer.MoveDown(ctx, sess, categories, index, confirmed)
}
