package controller

import (
	"net/http"
	"testing"

	"github.com/emra/admin-console/internal/app/repository"
	"github.com/emra/admin-console/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsFixture = `{"data":{"items":[
	{"id":"p1","sku":"OM-3","name":"Omega 3","price":4500,"stock":10,"categoryId":"c1","isActive":true},
	{"id":"p2","sku":"VC-1","name":"Vitamin C","price":1500,"stock":0,"categoryId":"c1","isActive":false},
	{"id":"p3","sku":"CR-9","name":"Night Cream","price":9900,"stock":3,"categoryId":"c2","isActive":true}
]}}`

func setupProductControllerTest(t *testing.T) *testEnv {
	env := setupControllerTest(t)
	guard := service.NewSubmitGuard()
	ctrl := NewProductController(
		service.NewProductService(repository.NewProductRepository(env.client), guard),
		service.NewCategoryService(repository.NewCategoryRepository(env.client), guard),
	)

	env.router.GET("/products", ctrl.ListProducts)
	env.router.GET("/products/:id", ctrl.GetProduct)
	env.router.POST("/products", ctrl.CreateProduct)
	env.router.PATCH("/products/:id/stock", ctrl.UpdateStock)
	env.router.DELETE("/products/:id", ctrl.DeleteProduct)

	env.api.handle("GET /api/admin/products", http.StatusOK, productsFixture)
	env.api.handle("GET /api/admin/categories", http.StatusOK, categoriesFixture)
	return env
}

func TestProductController_ListFilters(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(http.MethodGet, "/products?search=vita", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	products := body["products"].([]interface{})
	require.Len(t, products, 1)
	assert.Equal(t, "p2", products[0].(map[string]interface{})["id"])
	assert.Equal(t, map[string]interface{}{"total": float64(3), "active": float64(2)}, body["counters"])
	assert.Len(t, body["categories"], 2)

	w = env.do(http.MethodGet, "/products?categoryId=c2", "")
	assert.Len(t, decodeBody(t, w)["products"], 1)
}

func TestProductController_CreateValidationSendsNothing(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(http.MethodPost, "/products", `{"sku":"OM-4","name":"Omega","description":"Omega 3 1000 mg","price":"abc","stock":1,"categoryId":"c1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "price", decodeBody(t, w)["field"])
	assert.Empty(t, env.api.calls())
}

func TestProductController_CreateRefetches(t *testing.T) {
	env := setupProductControllerTest(t)
	env.api.handle("POST /api/admin/products", http.StatusCreated, `{"data":{"id":"p4"}}`)

	w := env.do(http.MethodPost, "/products", `{"sku":"OM-4","name":"Omega","description":"Omega 3 1000 mg","price":"1200,50","stock":"5","categoryId":"c1","images":["https://cdn/a.png","https://cdn/b.png"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, []string{"POST /api/admin/products", "GET /api/admin/products"}, env.api.calls())
	sent := env.api.bodies("POST /api/admin/products")[0]
	assert.Equal(t, 1200.5, sent["price"])
	assert.Equal(t, "https://cdn/a.png", sent["image"])
	assert.Equal(t, []interface{}{"https://cdn/b.png"}, sent["images"])
}

func TestProductController_ServerMessageIsVerbatim(t *testing.T) {
	env := setupProductControllerTest(t)
	env.api.handle("POST /api/admin/products", http.StatusConflict, `{"message":"Товар с таким SKU уже существует"}`)

	w := env.do(http.MethodPost, "/products", `{"sku":"OM-3","name":"Omega","description":"Omega 3 1000 mg","price":100,"stock":1,"categoryId":"c1"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Товар с таким SKU уже существует", decodeBody(t, w)["message"])
}

func TestProductController_UpdateStock(t *testing.T) {
	env := setupProductControllerTest(t)
	env.api.handle("PATCH /api/admin/products/p2/stock", http.StatusOK, `{"success":true}`)

	w := env.do(http.MethodPatch, "/products/p2/stock", `{"stock":7}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []map[string]interface{}{{"stock": float64(7)}}, env.api.bodies("PATCH /api/admin/products/p2/stock"))

	w = env.do(http.MethodPatch, "/products/p2/stock", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_DeleteRequiresConfirmation(t *testing.T) {
	env := setupProductControllerTest(t)

	w := env.do(http.MethodDelete, "/products/p1", "")
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.Empty(t, env.api.calls())
}
