package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/repository"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
	"github.com/shopspring/decimal"
)

// ProductInput is the product form as submitted
type ProductInput struct {
	SKU             string    `json:"sku"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           FormValue `json:"price"`
	OldPrice        FormValue `json:"oldPrice"`
	DiscountPercent FormValue `json:"discountPercent"`
	Stock           FormValue `json:"stock"`
	CategoryID      string    `json:"categoryId"`
	Variants        string    `json:"variants"` // comma separated
	Tag             string    `json:"tag"`
	Images          []string  `json:"images"`
	Ingredients     string    `json:"ingredients"`
	Usage           string    `json:"usage"`
	Safety          string    `json:"safety"`
	IsFeatured      bool      `json:"isFeatured"`
	IsActive        *bool     `json:"isActive"`
}

type ProductFilter struct {
	Search     string
	CategoryID string
}

type ProductCounters struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type ProductService interface {
	List(ctx context.Context, sess *adminapi.Session, query model.ProductQuery) ([]model.Product, error)
	Get(ctx context.Context, sess *adminapi.Session, id string) (*model.Product, error)
	// Save creates when id is empty, otherwise updates. Returns the refetched list.
	Save(ctx context.Context, sess *adminapi.Session, id string, input ProductInput) ([]model.Product, error)
	Delete(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Product, error)
	UpdateStock(ctx context.Context, sess *adminapi.Session, id string, stock int) ([]model.Product, error)
	Toggle(ctx context.Context, sess *adminapi.Session, id string) ([]model.Product, error)
}

type productService struct {
	repo  repository.ProductRepository
	guard *SubmitGuard
}

func NewProductService(repo repository.ProductRepository, guard *SubmitGuard) ProductService {
	return &productService{repo: repo, guard: guard}
}

func parseMoney(v FormValue) (model.Money, bool) {
	s := strings.ReplaceAll(v.Trimmed(), ",", ".")
	m, err := decimal.NewFromString(s)
	if err != nil || m.IsNegative() {
		return model.Money{}, false
	}
	return m, true
}

// NormalizeProduct trims and parses the form and validates it before any request
func NormalizeProduct(input ProductInput) (*model.Product, error) {
	p := &model.Product{
		SKU:         strings.TrimSpace(input.SKU),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		CategoryID:  strings.TrimSpace(input.CategoryID),
		Variants:    []string{},
		Tag:         optionalString(input.Tag),
		Ingredients: optionalString(input.Ingredients),
		Usage:       optionalString(input.Usage),
		Safety:      optionalString(input.Safety),
		IsFeatured:  input.IsFeatured,
		IsActive:    true,
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}

	if p.SKU == "" {
		return nil, invalid("sku", "Введите артикул")
	}
	if p.Name == "" {
		return nil, invalid("name", "Введите название")
	}
	if p.Description == "" {
		return nil, invalid("description", "Введите описание")
	}

	price, ok := parseMoney(input.Price)
	if !ok {
		return nil, invalid("price", "Цена должна быть неотрицательным числом")
	}
	p.Price = price

	if input.OldPrice.Trimmed() != "" {
		oldPrice, ok := parseMoney(input.OldPrice)
		if !ok {
			return nil, invalid("oldPrice", "Старая цена должна быть неотрицательным числом")
		}
		p.OldPrice = &oldPrice
	}

	if raw := input.DiscountPercent.Trimmed(); raw != "" {
		discount, err := strconv.Atoi(raw)
		if err != nil || discount < 0 || discount > 100 {
			return nil, invalid("discountPercent", "Скидка должна быть от 0 до 100")
		}
		p.DiscountPercent = &discount
	}

	stock, err := strconv.Atoi(input.Stock.Trimmed())
	if err != nil || stock < 0 {
		return nil, invalid("stock", "Остаток должен быть целым неотрицательным числом")
	}
	p.Stock = stock

	if p.CategoryID == "" {
		return nil, invalid("categoryId", "Выберите категорию")
	}

	for _, v := range strings.Split(input.Variants, ",") {
		if v = strings.TrimSpace(v); v != "" {
			p.Variants = append(p.Variants, v)
		}
	}

	images := make([]string, 0, len(input.Images))
	for _, img := range input.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	if len(images) > model.MaxProductImages {
		return nil, invalid("images", "Не более 5 изображений")
	}
	p.SetImages(images)

	return p, nil
}

func (s *productService) List(ctx context.Context, sess *adminapi.Session, query model.ProductQuery) ([]model.Product, error) {
	return s.repo.List(ctx, sess, query)
}

func (s *productService) Get(ctx context.Context, sess *adminapi.Session, id string) (*model.Product, error) {
	return s.repo.Get(ctx, sess, id)
}

func (s *productService) Save(ctx context.Context, sess *adminapi.Session, id string, input ProductInput) ([]model.Product, error) {
	product, err := NormalizeProduct(input)
	if err != nil {
		return nil, err
	}

	release, err := s.guard.Acquire(submitKey(sess.ID(), "product", id))
	if err != nil {
		return nil, err
	}
	defer release()

	if id == "" {
		_, err = s.repo.Create(ctx, sess, product)
	} else {
		_, err = s.repo.Update(ctx, sess, id, product)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Product saved", map[string]interface{}{
		"product_id": id,
		"sku":        product.SKU,
		"created":    id == "",
	})
	return s.repo.List(ctx, sess, model.ProductQuery{})
}

func (s *productService) Delete(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.Product, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}
	if err := s.repo.Delete(ctx, sess, id); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, sess, model.ProductQuery{})
}

func (s *productService) UpdateStock(ctx context.Context, sess *adminapi.Session, id string, stock int) ([]model.Product, error) {
	if stock < 0 {
		return nil, invalid("stock", "Остаток должен быть целым неотрицательным числом")
	}
	if err := s.repo.UpdateStock(ctx, sess, id, stock); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, sess, model.ProductQuery{})
}

func (s *productService) Toggle(ctx context.Context, sess *adminapi.Session, id string) ([]model.Product, error) {
	if err := s.repo.Toggle(ctx, sess, id); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, sess, model.ProductQuery{})
}

// FilterProducts matches name or SKU case-insensitively and the category exactly
func FilterProducts(products []model.Product, filter ProductFilter) []model.Product {
	q := strings.ToLower(filter.Search)
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.SKU), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func CountProducts(products []model.Product) ProductCounters {
	c := ProductCounters{Total: len(products)}
	for _, p := range products {
		if p.IsActive {
			c.Active++
		}
	}
	return c
}
