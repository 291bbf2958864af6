package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/crafthaven/app/resources"
	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/shashiranjanraj/crafthaven/pkg/ctx"
	"gorm.io/gorm"
)

// SellerProductController serves the seller dashboard's listing CRUD.
// All routes require the SELLER or ADMIN role.
type SellerProductController struct {
	products *services.ProductService
}

func NewSellerProductController(db *gorm.DB) *SellerProductController {
	return &SellerProductController{products: services.NewProductService(db)}
}

// Index lists the caller's products, hidden ones included.
// GET /api/seller/products
func (sc *SellerProductController) Index(c *ctx.Context) {
	products, err := sc.products.ListMine(c.UserID())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ctx.M{"products": resources.NewProductViews(products)})
}

// Create adds a listing to the caller's shop.
// POST /api/seller/products
func (sc *SellerProductController) Create(c *ctx.Context) {
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	product, err := sc.products.Create(c.UserID(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ctx.M{"product": resources.NewProductView(product)})
}

// productID parses the {id} path parameter.
func productID(c *ctx.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.NotFound()
		return 0, false
	}
	return uint(id), true
}

// Show returns one of the caller's listings.
// GET /api/seller/products/{id}
func (sc *SellerProductController) Show(c *ctx.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := sc.products.GetMine(c.UserID(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ctx.M{"product": resources.NewProductView(product)})
}

// Update edits one of the caller's listings; absent fields keep their
// current value.
// PUT /api/seller/products/{id}
func (sc *SellerProductController) Update(c *ctx.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var in services.ProductUpdateInput
	if !c.BindJSON(&in) {
		return
	}

	product, err := sc.products.Update(c.UserID(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ctx.M{"product": resources.NewProductView(product)})
}

// Delete removes one of the caller's listings and its reviews.
// DELETE /api/seller/products/{id}
func (sc *SellerProductController) Delete(c *ctx.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := sc.products.Delete(c.UserID(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ctx.M{"message": "Product deleted"})
}
