package service

import (
	"context"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/stretchr/testify/mock"
)

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) List(ctx context.Context, sess *adminapi.Session) ([]model.Category, error) {
	args := m.Called(ctx, sess)
	categories, _ := args.Get(0).([]model.Category)
	return categories, args.Error(1)
}

func (m *mockCategoryRepository) Create(ctx context.Context, sess *adminapi.Session, category *model.Category) (*model.Category, error) {
	args := m.Called(ctx, sess, category)
	created, _ := args.Get(0).(*model.Category)
	return created, args.Error(1)
}

func (m *mockCategoryRepository) Update(ctx context.Context, sess *adminapi.Session, id string, category *model.Category) (*model.Category, error) {
	args := m.Called(ctx, sess, id, category)
	updated, _ := args.Get(0).(*model.Category)
	return updated, args.Error(1)
}

func (m *mockCategoryRepository) Patch(ctx context.Context, sess *adminapi.Session, id string, patch model.CategoryPatch) error {
	return m.Called(ctx, sess, id, patch).Error(0)
}

func (m *mockCategoryRepository) Delete(ctx context.Context, sess *adminapi.Session, id string) error {
	return m.Called(ctx, sess, id).Error(0)
}

type mockBannerRepository struct {
	mock.Mock
}

func (m *mockBannerRepository) List(ctx context.Context, sess *adminapi.Session) ([]model.Banner, error) {
	args := m.Called(ctx, sess)
	banners, _ := args.Get(0).([]model.Banner)
	return banners, args.Error(1)
}

func (m *mockBannerRepository) Create(ctx context.Context, sess *adminapi.Session, banner *model.Banner) (*model.Banner, error) {
	args := m.Called(ctx, sess, banner)
	created, _ := args.Get(0).(*model.Banner)
	return created, args.Error(1)
}

func (m *mockBannerRepository) Update(ctx context.Context, sess *adminapi.Session, id string, banner *model.Banner) (*model.Banner, error) {
	args := m.Called(ctx, sess, id, banner)
	updated, _ := args.Get(0).(*model.Banner)
	return updated, args.Error(1)
}

func (m *mockBannerRepository) Patch(ctx context.Context, sess *adminapi.Session, id string, patch model.BannerPatch) error {
	return m.Called(ctx, sess, id, patch).Error(0)
}

func (m *mockBannerRepository) Delete(ctx context.Context, sess *adminapi.Session, id string) error {
	return m.Called(ctx, sess, id).Error(0)
}

func (m *mockBannerRepository) AddProducts(ctx context.Context, sess *adminapi.Session, id string, productIDs []string) error {
	return m.Called(ctx, sess, id, productIDs).Error(0)
}

func (m *mockBannerRepository) RemoveProduct(ctx context.Context, sess *adminapi.Session, id, productID string) error {
	return m.Called(ctx, sess, id, productID).Error(0)
}

func (m *mockBannerRepository) ReorderProducts(ctx context.Context, sess *adminapi.Session, id string, productIDs []string) error {
	return m.Called(ctx, sess, id, productIDs).Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) List(ctx context.Context, sess *adminapi.Session, query model.OrderQuery) ([]model.Order, error) {
	args := m.Called(ctx, sess, query)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *mockOrderRepository) Get(ctx context.Context, sess *adminapi.Session, id string) (*model.Order, error) {
	args := m.Called(ctx, sess, id)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, sess *adminapi.Session, id string, status model.OrderStatus) error {
	return m.Called(ctx, sess, id, status).Error(0)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) List(ctx context.Context, sess *adminapi.Session, query model.ProductQuery) ([]model.Product, error) {
	args := m.Called(ctx, sess, query)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *mockProductRepository) Get(ctx context.Context, sess *adminapi.Session, id string) (*model.Product, error) {
	args := m.Called(ctx, sess, id)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *mockProductRepository) Create(ctx context.Context, sess *adminapi.Session, product *model.Product) (*model.Product, error) {
	args := m.Called(ctx, sess, product)
	created, _ := args.Get(0).(*model.Product)
	return created, args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, sess *adminapi.Session, id string, product *model.Product) (*model.Product, error) {
	args := m.Called(ctx, sess, id, product)
	updated, _ := args.Get(0).(*model.Product)
	return updated, args.Error(1)
}

func (m *mockProductRepository) Delete(ctx context.Context, sess *adminapi.Session, id string) error {
	return m.Called(ctx, sess, id).Error(0)
}

func (m *mockProductRepository) UpdateStock(ctx context.Context, sess *adminapi.Session, id string, stock int) error {
	return m.Called(ctx, sess, id, stock).Error(0)
}

func (m *mockProductRepository) Toggle(ctx context.Context, sess *adminapi.Session, id string) error {
	return m.Called(ctx, sess, id).Error(0)
}

type mockAuthRepository struct {
	mock.Mock
}

func (m *mockAuthRepository) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	args := m.Called(ctx, creds)
	result, _ := args.Get(0).(*model.LoginResult)
	return result, args.Error(1)
}

func (m *mockAuthRepository) Me(ctx context.Context, sess *adminapi.Session) (*model.Admin, error) {
	args := m.Called(ctx, sess)
	admin, _ := args.Get(0).(*model.Admin)
	return admin, args.Error(1)
}

type mockPromoCodeRepository struct {
	mock.Mock
}

func (m *mockPromoCodeRepository) List(ctx context.Context, sess *adminapi.Session) ([]model.PromoCode, error) {
	args := m.Called(ctx, sess)
	promos, _ := args.Get(0).([]model.PromoCode)
	return promos, args.Error(1)
}

func (m *mockPromoCodeRepository) Create(ctx context.Context, sess *adminapi.Session, promo *model.PromoCode) (*model.PromoCode, error) {
	args := m.Called(ctx, sess, promo)
	created, _ := args.Get(0).(*model.PromoCode)
	return created, args.Error(1)
}

func (m *mockPromoCodeRepository) Update(ctx context.Context, sess *adminapi.Session, id string, promo *model.PromoCode) (*model.PromoCode, error) {
	args := m.Called(ctx, sess, id, promo)
	updated, _ := args.Get(0).(*model.PromoCode)
	return updated, args.Error(1)
}

func (m *mockPromoCodeRepository) Delete(ctx context.Context, sess *adminapi.Session, id string) error {
	return m.Called(ctx, sess, id).Error(0)
}
