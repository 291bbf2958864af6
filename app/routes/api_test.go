package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/app/routes"
	"github.com/shashiranjanraj/crafthaven/pkg/router"
	"github.com/shashiranjanraj/crafthaven/pkg/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func newAPI(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:api%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SellerProfile{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
	))

	r := router.New()
	hub := ws.NewHub()
	go hub.Run()
	routes.RegisterAPI(r, db, hub)
	return r.Handler()
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func register(t *testing.T, h http.Handler, name, email string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["token"].(string)
}

// becomeSeller flips the account to SELLER and returns the fresh token.
func becomeSeller(t *testing.T, h http.Handler, token string) string {
	t.Helper()
	rec := do(t, h, http.MethodPut, "/api/user/role", token, map[string]string{"role": "SELLER"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode(t, rec)["token"].(string)
}

// createListing returns the new product's id (as a path segment) and slug.
func createListing(t *testing.T, h http.Handler, token, name string) (string, string) {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/seller/products", token, map[string]any{
		"name":        name,
		"description": "A handcrafted piece made in a small studio.",
		"price":       2800,
		"category":    "pottery",
		"images":      []string{"https://cdn.example.test/mug.jpg"},
		"stock":       5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode(t, rec)["product"].(map[string]any)
	return fmt.Sprintf("%v", product["id"]), product["slug"].(string)
}

func TestRegisterLoginFlow(t *testing.T) {
	h := newAPI(t)

	rec := do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Sam", "email": "sam@example.test", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "BUYER", user["role"])
	assert.NotContains(t, user, "password")

	rec = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "sam@example.test", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "sam@example.test", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSellerDashboardRequiresRole(t *testing.T) {
	h := newAPI(t)
	buyerToken := register(t, h, "Sam", "sam@example.test")

	rec := do(t, h, http.MethodGet, "/api/seller/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/seller/products", buyerToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sellerToken := becomeSeller(t, h, buyerToken)
	rec = do(t, h, http.MethodGet, "/api/seller/products", sellerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestListingLifecycle(t *testing.T) {
	h := newAPI(t)
	token := becomeSeller(t, h, register(t, h, "Maya", "maya@example.test"))
	id, slug := createListing(t, h, token, "Speckled Mug")

	// Public catalog picks it up.
	rec := do(t, h, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decode(t, rec)["products"].([]any)
	require.Len(t, products, 1)

	// Product page carries the rating aggregate.
	rec = do(t, h, http.MethodGet, "/api/products/"+slug, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 0, body["averageRating"])
	assert.EqualValues(t, 0, body["totalReviews"])

	// Hide it with a partial update; the public page now 404s but the
	// owner still sees it.
	rec = do(t, h, http.MethodPut, "/api/seller/products/"+id, token, map[string]any{
		"isActive": false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/products/"+slug, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/products/"+slug, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Delete it for good.
	rec = do(t, h, http.MethodDelete, "/api/seller/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/products", "", nil)
	products = decode(t, rec)["products"].([]any)
	assert.Empty(t, products)
}

func TestReviewRules(t *testing.T) {
	h := newAPI(t)
	sellerToken := becomeSeller(t, h, register(t, h, "Maya", "maya@example.test"))
	_, slug := createListing(t, h, sellerToken, "Speckled Mug")
	buyerToken := register(t, h, "Sam", "sam@example.test")

	// Anonymous posting is rejected.
	rec := do(t, h, http.MethodPost, "/api/products/"+slug+"/reviews", "", map[string]any{"rating": 5})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Sellers cannot review their own work.
	rec = do(t, h, http.MethodPost, "/api/products/"+slug+"/reviews", sellerToken, map[string]any{"rating": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A buyer can, once.
	rec = do(t, h, http.MethodPost, "/api/products/"+slug+"/reviews", buyerToken, map[string]any{
		"rating": 4, "comment": "Lovely glaze.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/products/"+slug+"/reviews", buyerToken, map[string]any{"rating": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Out-of-range ratings fail validation.
	rec = do(t, h, http.MethodPost, "/api/products/"+slug+"/reviews", buyerToken, map[string]any{"rating": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The aggregate shows up on the product page.
	rec = do(t, h, http.MethodGet, "/api/products/"+slug, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 4, body["averageRating"])
	assert.EqualValues(t, 1, body["totalReviews"])

	// Review listing never leaks the reviewer's email.
	rec = do(t, h, http.MethodGet, "/api/products/"+slug+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sam@example.test")
}

func TestRoleTransitionHidesListings(t *testing.T) {
	h := newAPI(t)
	token := becomeSeller(t, h, register(t, h, "Maya", "maya@example.test"))
	createListing(t, h, token, "Speckled Mug")

	rec := do(t, h, http.MethodPut, "/api/user/role", token, map[string]string{"role": "BUYER"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/products", "", nil)
	products := decode(t, rec)["products"].([]any)
	assert.Empty(t, products)
}

func TestInvalidRoleRejected(t *testing.T) {
	h := newAPI(t)
	token := register(t, h, "Sam", "sam@example.test")

	rec := do(t, h, http.MethodPut, "/api/user/role", token, map[string]string{"role": "WIZARD"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSellerProfileEndpoints(t *testing.T) {
	h := newAPI(t)
	token := becomeSeller(t, h, register(t, h, "Maya", "maya@example.test"))

	rec := do(t, h, http.MethodGet, "/api/seller/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode(t, rec)["profile"].(map[string]any)
	assert.Equal(t, "Maya's Shop", profile["shopName"])

	rec = do(t, h, http.MethodPut, "/api/seller/profile", token, map[string]string{
		"shopName": "Maya's Clayworks",
		"bio":      "Hand-thrown pottery.",
		"location": "Asheville, NC",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile = decode(t, rec)["profile"].(map[string]any)
	assert.Equal(t, "Maya's Clayworks", profile["shopName"])

	// The public seller page reflects the update.
	id := fmt.Sprintf("%v", profile["id"])
	rec = do(t, h, http.MethodGet, "/api/sellers/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	seller := decode(t, rec)["seller"].(map[string]any)
	assert.Equal(t, "Maya's Clayworks", seller["shopName"])
}

func TestCatalogFilters(t *testing.T) {
	h := newAPI(t)
	token := becomeSeller(t, h, register(t, h, "Maya", "maya@example.test"))
	createListing(t, h, token, "Speckled Mug")
	createListing(t, h, token, "Walnut Tray")

	rec := do(t, h, http.MethodGet, "/api/products?q=walnut", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decode(t, rec)["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Walnut Tray", products[0].(map[string]any)["name"])

	// Both listings cost $28; a tighter band excludes them.
	rec = do(t, h, http.MethodGet, "/api/products?minPrice=50", "", nil)
	products = decode(t, rec)["products"].([]any)
	assert.Empty(t, products)
}

func TestPartialUpdateRejectsEmptyValues(t *testing.T) {
	h := newAPI(t)
	token := becomeSeller(t, h, register(t, h, "Maya", "maya@example.test"))
	id, _ := createListing(t, h, token, "Speckled Mug")

	// Explicitly sending an empty value is not the same as omitting the
	// field; the bounds still apply.
	rec := do(t, h, http.MethodPut, "/api/seller/products/"+id, token, map[string]any{
		"images": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/seller/products/"+id, token, map[string]any{
		"description": "",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/seller/products/"+id, token, map[string]any{
		"name": "",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The listing came through untouched.
	rec = do(t, h, http.MethodGet, "/api/seller/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	product := decode(t, rec)["product"].(map[string]any)
	assert.Len(t, product["images"], 1)
	assert.Equal(t, "Speckled Mug", product["name"])
}

func TestSellerProductsNotVisibleAcrossShops(t *testing.T) {
	h := newAPI(t)
	mayaToken := becomeSeller(t, h, register(t, h, "Maya", "maya@example.test"))
	id, _ := createListing(t, h, mayaToken, "Speckled Mug")
	finnToken := becomeSeller(t, h, register(t, h, "Finn", "finn@example.test"))

	// Another seller probing the id cannot tell it apart from a missing
	// record.
	rec := do(t, h, http.MethodGet, "/api/seller/products/"+id, finnToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/seller/products/"+id, finnToken, map[string]any{"price": 100})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/seller/products/"+id, finnToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The owner still sees it.
	rec = do(t, h, http.MethodGet, "/api/seller/products/"+id, mayaToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCategoriesEndpoint(t *testing.T) {
	h := newAPI(t)
	token := becomeSeller(t, h, register(t, h, "Maya", "maya@example.test"))
	createListing(t, h, token, "Speckled Mug") // upserts "pottery"

	rec := do(t, h, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	categories := decode(t, rec)["categories"].([]any)
	require.Len(t, categories, 1)
	assert.Equal(t, "pottery", categories[0].(map[string]any)["slug"])
}

func TestSellerDirectory(t *testing.T) {
	h := newAPI(t)
	mayaToken := becomeSeller(t, h, register(t, h, "Maya", "maya@example.test"))
	createListing(t, h, mayaToken, "Speckled Mug")
	hiddenID, _ := createListing(t, h, mayaToken, "Walnut Tray")
	becomeSeller(t, h, register(t, h, "Finn", "finn@example.test"))

	rec := do(t, h, http.MethodPut, "/api/seller/products/"+hiddenID, mayaToken, map[string]any{
		"isActive": false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/sellers", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sellers := decode(t, rec)["sellers"].([]any)
	require.Len(t, sellers, 2)

	// Alphabetical by shop name, counting only visible listings.
	first := sellers[0].(map[string]any)
	second := sellers[1].(map[string]any)
	assert.Equal(t, "Finn's Shop", first["shopName"])
	assert.EqualValues(t, 0, first["productCount"])
	assert.Equal(t, "Maya's Shop", second["shopName"])
	assert.EqualValues(t, 1, second["productCount"])
}

func TestAccountLifecycle(t *testing.T) {
	h := newAPI(t)
	token := register(t, h, "Sam", "sam@example.test")

	rec := do(t, h, http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/user/profile", token, map[string]string{"name": "Sam O."})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decode(t, rec)["user"].(map[string]any)
	assert.Equal(t, "Sam O.", user["name"])

	rec = do(t, h, http.MethodDelete, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/user/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
