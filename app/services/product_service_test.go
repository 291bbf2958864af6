package services_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/shashiranjanraj/crafthaven/app/models"
	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	slug := services.Slugify("Hand-Carved Bowl!!")
	assert.Regexp(t, regexp.MustCompile(`^hand-carved-bowl-\d+$`), slug)

	// Two listings with the same name never share a slug.
	assert.NotEqual(t, services.Slugify("Mug"), services.Slugify("Mug"))
}

func productInput() services.ProductInput {
	return services.ProductInput{
		Name:        "Speckled Mug",
		Description: "A 12oz mug glazed in matte white.",
		Price:       2800,
		Category:    "pottery",
		Images:      []string{"https://cdn.example.test/mug.jpg"},
		Stock:       5,
	}
}

func TestCreateRequiresShop(t *testing.T) {
	db := testDB(t)
	buyer := createUser(t, db, "Sam", "sam@example.test", models.RoleBuyer)

	_, err := services.NewProductService(db).Create(buyer.ID, productInput())
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestCreateListing(t *testing.T) {
	db := testDB(t)
	user, profile := createSeller(t, db, "Maya", "maya@example.test")

	product, err := services.NewProductService(db).Create(user.ID, productInput())
	require.NoError(t, err)

	assert.Equal(t, profile.ID, product.SellerID)
	assert.True(t, product.IsActive)
	assert.Regexp(t, regexp.MustCompile(`^speckled-mug-\d+$`), product.Slug)
	require.NotNil(t, product.Category)
	assert.Equal(t, "Pottery & Ceramics", product.Category.Name) // standard slug gets the standard name
}

func TestCreateListingWithNewCategory(t *testing.T) {
	db := testDB(t)
	user, _ := createSeller(t, db, "Maya", "maya@example.test")

	in := productInput()
	in.Category = "macrame-wall-art"
	product, err := services.NewProductService(db).Create(user.ID, in)
	require.NoError(t, err)

	require.NotNil(t, product.Category)
	assert.Equal(t, "macrame-wall-art", product.Category.Slug)
	assert.Equal(t, "Macrame Wall Art", product.Category.Name)

	// A second listing reuses the category instead of duplicating it.
	in.Name = "Another Piece"
	_, err = services.NewProductService(db).Create(user.ID, in)
	require.NoError(t, err)

	var count int64
	db.Model(&models.Category{}).Where("slug = ?", "macrame-wall-art").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUpdateIsPartial(t *testing.T) {
	db := testDB(t)
	user, _ := createSeller(t, db, "Maya", "maya@example.test")
	svc := services.NewProductService(db)

	product, err := svc.Create(user.ID, productInput())
	require.NoError(t, err)

	// Only the price changes; everything else, slug included, stays.
	price := int64(3200)
	updated, err := svc.Update(user.ID, product.ID, services.ProductUpdateInput{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, product.Slug, updated.Slug)
	assert.Equal(t, product.Name, updated.Name)
	assert.EqualValues(t, 3200, updated.Price)
}

func TestUpdateRegeneratesSlugOnRename(t *testing.T) {
	db := testDB(t)
	user, _ := createSeller(t, db, "Maya", "maya@example.test")
	svc := services.NewProductService(db)

	product, err := svc.Create(user.ID, productInput())
	require.NoError(t, err)

	name := "Speckled Mug v2"
	updated, err := svc.Update(user.ID, product.ID, services.ProductUpdateInput{Name: &name})
	require.NoError(t, err)

	assert.NotEqual(t, product.Slug, updated.Slug)
	assert.Regexp(t, regexp.MustCompile(`^speckled-mug-v2-\d+$`), updated.Slug)

	// Re-sending the same name leaves the slug alone.
	again, err := svc.Update(user.ID, product.ID, services.ProductUpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, updated.Slug, again.Slug)
}

func TestListingsAreOwnerScoped(t *testing.T) {
	db := testDB(t)
	maya, _ := createSeller(t, db, "Maya", "maya@example.test")
	finn, _ := createSeller(t, db, "Finn", "finn@example.test")
	svc := services.NewProductService(db)

	product, err := svc.Create(maya.ID, productInput())
	require.NoError(t, err)

	_, err = svc.GetMine(finn.ID, product.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	stock := 9
	_, err = svc.Update(finn.ID, product.ID, services.ProductUpdateInput{Stock: &stock})
	assert.ErrorIs(t, err, services.ErrForbidden)

	err = svc.Delete(finn.ID, product.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestListMineIncludesHiddenListings(t *testing.T) {
	db := testDB(t)
	user, profile := createSeller(t, db, "Maya", "maya@example.test")
	category := createCategory(t, db, "pottery", "Pottery & Ceramics")
	now := time.Now()
	createProduct(t, db, profile.ID, category.ID, "Visible", "visible-1", 2800, true, now)
	createProduct(t, db, profile.ID, category.ID, "Hidden", "hidden-1", 2800, false, now)

	products, err := services.NewProductService(db).ListMine(user.ID)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestDeleteListing(t *testing.T) {
	db := testDB(t)
	user, _ := createSeller(t, db, "Maya", "maya@example.test")
	buyer := createUser(t, db, "Sam", "sam@example.test", models.RoleBuyer)
	svc := services.NewProductService(db)

	product, err := svc.Create(user.ID, productInput())
	require.NoError(t, err)
	createReview(t, db, product.ID, buyer.ID, 5)

	require.NoError(t, svc.Delete(user.ID, product.ID))

	_, err = svc.GetMine(user.ID, product.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// The listing's reviews go with it.
	var count int64
	db.Model(&models.Review{}).Where("product_id = ?", product.ID).Count(&count)
	assert.Zero(t, count)
}
