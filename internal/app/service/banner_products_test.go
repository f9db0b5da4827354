package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var bannerSession = adminapi.NewSession("s1", "tok")

func bannerWithProducts(id string, productIDs ...string) model.Banner {
	b := model.Banner{ID: id, Title: "Баннер"}
	for _, pid := range productIDs {
		b.Products = append(b.Products, model.Product{ID: pid, Name: "Product " + pid})
	}
	return b
}

func TestEditor_AddProductAlreadyAttached(t *testing.T) {
	repo := new(mockBannerRepository)
	editor := NewBannerProductsEditor(repo, bannerWithProducts("b1", "p1"), nil)

	err := editor.AddProduct(context.Background(), bannerSession, model.Product{ID: "p1"})

	assert.ErrorIs(t, err, ErrProductAlreadyAttached)
	assert.Len(t, editor.Products(), 1)
	repo.AssertNotCalled(t, "AddProducts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEditor_UnsavedBannerRejectsEverything(t *testing.T) {
	repo := new(mockBannerRepository)
	editor := NewBannerProductsEditor(repo, model.Banner{Title: "Draft"}, nil)

	assert.ErrorIs(t, editor.AddProduct(context.Background(), bannerSession, model.Product{ID: "p1"}), ErrBannerNotPersisted)
	assert.ErrorIs(t, editor.RemoveProduct(context.Background(), bannerSession, "p1", true), ErrBannerNotPersisted)
	assert.ErrorIs(t, editor.MoveProduct(context.Background(), bannerSession, "p1", 1, true), ErrBannerNotPersisted)
	assert.Empty(t, repo.Calls)
}

func TestEditor_AddProductAppendsAfterSuccess(t *testing.T) {
	repo := new(mockBannerRepository)
	repo.On("AddProducts", mock.Anything, bannerSession, "b1", []string{"p2"}).Return(nil).Once()
	editor := NewBannerProductsEditor(repo, bannerWithProducts("b1", "p1"), nil)

	require.NoError(t, editor.AddProduct(context.Background(), bannerSession, model.Product{ID: "p2"}))

	products := editor.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "p2", products[1].ID)
	repo.AssertExpectations(t)
}

func TestEditor_FailureLeavesStateUntouched(t *testing.T) {
	repo := new(mockBannerRepository)
	repo.On("AddProducts", mock.Anything, bannerSession, "b1", []string{"p2"}).Return(errBoom).Once()
	repo.On("RemoveProduct", mock.Anything, bannerSession, "b1", "p1").Return(errBoom).Once()
	editor := NewBannerProductsEditor(repo, bannerWithProducts("b1", "p1"), nil)

	assert.ErrorIs(t, editor.AddProduct(context.Background(), bannerSession, model.Product{ID: "p2"}), errBoom)
	assert.ErrorIs(t, editor.RemoveProduct(context.Background(), bannerSession, "p1", true), errBoom)

	products := editor.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestEditor_RemoveProduct(t *testing.T) {
	repo := new(mockBannerRepository)
	repo.On("RemoveProduct", mock.Anything, bannerSession, "b1", "p1").Return(nil).Once()
	editor := NewBannerProductsEditor(repo, bannerWithProducts("b1", "p1", "p2"), nil)

	assert.ErrorIs(t, editor.RemoveProduct(context.Background(), bannerSession, "p1", false), ErrConfirmationRequired)
	require.NoError(t, editor.RemoveProduct(context.Background(), bannerSession, "p1", true))

	products := editor.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "p2", products[0].ID)
	repo.AssertExpectations(t)
}

func TestEditor_MoveProduct(t *testing.T) {
	repo := new(mockBannerRepository)
	repo.On("ReorderProducts", mock.Anything, bannerSession, "b1", []string{"p1", "p3", "p2"}).Return(nil).Once()
	editor := NewBannerProductsEditor(repo, bannerWithProducts("b1", "p1", "p2", "p3"), nil)

	require.NoError(t, editor.MoveProduct(context.Background(), bannerSession, "p3", -1, true))
	require.NoError(t, editor.MoveProduct(context.Background(), bannerSession, "p1", -1, true))

	ids := []string{}
	for _, p := range editor.Products() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p1", "p3", "p2"}, ids)
	assert.ErrorIs(t, editor.MoveProduct(context.Background(), bannerSession, "p9", 1, true), ErrProductNotAttached)
	repo.AssertExpectations(t)
}

func TestEditor_Candidates(t *testing.T) {
	catalog := []model.Product{{ID: "p1", Name: "Vitamin C"}, {ID: "p2", Name: "vitamin D3"}, {ID: "p3", Name: "Zinc"}}
	for i := 0; i < 40; i++ {
		catalog = append(catalog, model.Product{ID: fmt.Sprintf("x%d", i), Name: fmt.Sprintf("Vitamin X%d", i)})
	}
	editor := NewBannerProductsEditor(new(mockBannerRepository), bannerWithProducts("b1", "p1"), catalog)

	got := editor.Candidates("VITAMIN")
	require.Len(t, got, CandidateLimit)
	assert.Equal(t, "p2", got[0].ID)
	for _, p := range got {
		assert.NotEqual(t, "p1", p.ID)
	}

	zinc := editor.Candidates("zin")
	require.Len(t, zinc, 1)
	assert.Equal(t, "p3", zinc[0].ID)
}

func TestRegistry_OpenAndSweep(t *testing.T) {
	banners := new(mockBannerRepository)
	products := new(mockProductRepository)
	banners.On("List", mock.Anything, bannerSession).Return([]model.Banner{bannerWithProducts("b1", "p1")}, nil)
	products.On("List", mock.Anything, bannerSession, model.ProductQuery{}).Return([]model.Product{{ID: "p1"}, {ID: "p2"}}, nil)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	registry := NewBannerEditorRegistry(banners, products, 30*time.Minute)
	registry.now = func() time.Time { return now }

	editor, err := registry.Open(context.Background(), bannerSession, "b1")
	require.NoError(t, err)
	assert.Len(t, editor.Candidates(""), 1)

	got, err := registry.Get("s1", "b1")
	require.NoError(t, err)
	assert.Same(t, editor, got)

	now = now.Add(10 * time.Minute)
	assert.Zero(t, registry.Sweep())

	now = now.Add(31 * time.Minute)
	assert.Equal(t, 1, registry.Sweep())
	_, err = registry.Get("s1", "b1")
	assert.ErrorIs(t, err, ErrEditorNotFound)
}

func TestRegistry_OpenRejectsUnsavedBanner(t *testing.T) {
	banners := new(mockBannerRepository)
	registry := NewBannerEditorRegistry(banners, new(mockProductRepository), time.Minute)

	_, err := registry.Open(context.Background(), bannerSession, "")
	assert.ErrorIs(t, err, ErrBannerNotPersisted)
	assert.Empty(t, banners.Calls)
}

func TestRegistry_CloseSession(t *testing.T) {
	banners := new(mockBannerRepository)
	products := new(mockProductRepository)
	banners.On("List", mock.Anything, bannerSession).Return([]model.Banner{{ID: "b1"}, {ID: "b2"}}, nil)
	products.On("List", mock.Anything, bannerSession, model.ProductQuery{}).Return([]model.Product{}, nil)
	registry := NewBannerEditorRegistry(banners, products, time.Minute)

	_, err := registry.Open(context.Background(), bannerSession, "b1")
	require.NoError(t, err)
	_, err = registry.Open(context.Background(), bannerSession, "b2")
	require.NoError(t, err)
	assert.Equal(t, 2, registry.Len())

	registry.CloseSession("s1")
	assert.Zero(t, registry.Len())
}

func TestRegistry_SlowRequestDoesNotBlockOtherSessions(t *testing.T) {
	banners := new(mockBannerRepository)
	products := new(mockProductRepository)
	banners.On("List", mock.Anything, mock.Anything).Return([]model.Banner{{ID: "b1"}, {ID: "b9"}}, nil)
	products.On("List", mock.Anything, mock.Anything, model.ProductQuery{}).Return([]model.Product{}, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	banners.On("AddProducts", mock.Anything, bannerSession, "b1", []string{"p1"}).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil).Once()

	registry := NewBannerEditorRegistry(banners, products, time.Hour)
	other := adminapi.NewSession("s2", "tok")

	slow, err := registry.Open(context.Background(), bannerSession, "b1")
	require.NoError(t, err)
	_, err = registry.Open(context.Background(), other, "b9")
	require.NoError(t, err)

	addDone := make(chan error, 1)
	go func() {
		addDone <- slow.AddProduct(context.Background(), bannerSession, model.Product{ID: "p1"})
	}()
	<-started

	swept := make(chan int, 1)
	go func() { swept <- registry.Sweep() }()

	select {
	case n := <-swept:
		assert.Zero(t, n)
	case <-time.After(time.Second):
		t.Fatal("sweep waited for an in-flight association request")
	}

	got := make(chan error, 1)
	go func() {
		_, err := registry.Get("s2", "b9")
		got <- err
	}()
	select {
	case err := <-got:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("registry lookup waited for an in-flight association request")
	}

	close(release)
	require.NoError(t, <-addDone)
	assert.Len(t, slow.Products(), 1)
}
