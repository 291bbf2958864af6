package services_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/app/repositories"
	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseCatalogFilters(t *testing.T) {
	f := services.ParseCatalogFilters(url.Values{
		"q":        {"  mug "},
		"category": {"pottery"},
		"minPrice": {"24.99"},
		"maxPrice": {"60"},
		"sort":     {"price-asc"},
	})

	assert.Equal(t, "mug", f.Query)
	assert.Equal(t, "pottery", f.Category)
	require.NotNil(t, f.MinPrice)
	assert.EqualValues(t, 2499, *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.EqualValues(t, 6000, *f.MaxPrice)
	assert.Equal(t, "price-asc", f.Sort)
}

func TestParseCatalogFiltersIgnoresBadPrices(t *testing.T) {
	f := services.ParseCatalogFilters(url.Values{
		"minPrice": {"cheap"},
		"maxPrice": {""},
	})
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
}

// catalogFixture seeds two sellers and four products with staggered
// creation times so ordering assertions are deterministic.
func catalogFixture(t *testing.T) (*gorm.DB, *services.CatalogService) {
	t.Helper()
	db := testDB(t)

	_, maya := createSeller(t, db, "Maya", "maya@example.test")
	_, finn := createSeller(t, db, "Finn", "finn@example.test")
	pottery := createCategory(t, db, "pottery", "Pottery & Ceramics")
	woodwork := createCategory(t, db, "woodwork", "Woodwork & Furniture")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	createProduct(t, db, maya.ID, pottery.ID, "Speckled Mug", "speckled-mug-1", 2800, true, base)
	createProduct(t, db, maya.ID, pottery.ID, "Serving Bowl", "serving-bowl-1", 6400, true, base.Add(time.Hour))
	createProduct(t, db, finn.ID, woodwork.ID, "Walnut Tray", "walnut-tray-1", 9200, true, base.Add(2*time.Hour))
	createProduct(t, db, finn.ID, woodwork.ID, "Hidden Stool", "hidden-stool-1", 4100, false, base.Add(3*time.Hour))

	return db, services.NewCatalogService(db)
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestListHidesInactive(t *testing.T) {
	_, svc := catalogFixture(t)

	products, err := svc.List(repositories.CatalogFilters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Walnut Tray", "Serving Bowl", "Speckled Mug"}, names(products))
}

func TestListTextSearchMatchesNameAndDescription(t *testing.T) {
	_, svc := catalogFixture(t)

	products, err := svc.List(repositories.CatalogFilters{Query: "MUG"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Speckled Mug"}, names(products))

	// Every seeded product shares this description text.
	products, err = svc.List(repositories.CatalogFilters{Query: "handcrafted"})
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestListFiltersByCategory(t *testing.T) {
	_, svc := catalogFixture(t)

	products, err := svc.List(repositories.CatalogFilters{Category: "pottery"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Serving Bowl", "Speckled Mug"}, names(products))
}

func TestListPriceBounds(t *testing.T) {
	_, svc := catalogFixture(t)

	min, max := int64(3000), int64(7000)
	products, err := svc.List(repositories.CatalogFilters{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Equal(t, []string{"Serving Bowl"}, names(products))
}

func TestListSortOrders(t *testing.T) {
	_, svc := catalogFixture(t)

	products, err := svc.List(repositories.CatalogFilters{Sort: "price-asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Speckled Mug", "Serving Bowl", "Walnut Tray"}, names(products))

	products, err = svc.List(repositories.CatalogFilters{Sort: "name-desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Walnut Tray", "Speckled Mug", "Serving Bowl"}, names(products))

	products, err = svc.List(repositories.CatalogFilters{Sort: "oldest"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Speckled Mug", "Serving Bowl", "Walnut Tray"}, names(products))

	// Unknown sort keys fall back to newest.
	products, err = svc.List(repositories.CatalogFilters{Sort: "sideways"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Walnut Tray", "Serving Bowl", "Speckled Mug"}, names(products))
}

func TestGetHidesInactiveFromStrangers(t *testing.T) {
	db, svc := catalogFixture(t)

	// Anonymous viewers and other users get a 404-shaped error.
	_, err := svc.Get("hidden-stool-1", 0)
	assert.ErrorIs(t, err, services.ErrNotFound)

	var maya models.User
	require.NoError(t, db.Where("email = ?", "maya@example.test").First(&maya).Error)
	_, err = svc.Get("hidden-stool-1", maya.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// The owner still sees it.
	var finn models.User
	require.NoError(t, db.Where("email = ?", "finn@example.test").First(&finn).Error)
	product, err := svc.Get("hidden-stool-1", finn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hidden Stool", product.Name)
}

func TestSellerPageShowsOnlyActiveListings(t *testing.T) {
	db, svc := catalogFixture(t)

	var profile models.SellerProfile
	require.NoError(t, db.Where("shop_name = ?", "Finn's Shop").First(&profile).Error)

	got, products, err := svc.SellerPage(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Finn's Shop", got.ShopName)
	assert.Equal(t, []string{"Walnut Tray"}, names(products))
}

func TestSellerPageUnknownSeller(t *testing.T) {
	_, svc := catalogFixture(t)

	_, _, err := svc.SellerPage(9999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
