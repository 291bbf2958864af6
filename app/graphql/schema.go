// Package graphql exposes a read-only catalogue query surface mirroring
// GET /api/products, for clients that prefer a single typed endpoint.
//
//	{ products(category: "pottery", sort: "price-asc") { name slug price } }
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/crafthaven/app/repositories"
	"github.com/shashiranjanraj/crafthaven/app/resources"
	"github.com/shashiranjanraj/crafthaven/app/services"
	"gorm.io/gorm"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"slug":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Int},
		"images":      &graphql.Field{Type: graphql.NewList(graphql.String)},
		"stock":       &graphql.Field{Type: graphql.Int},
		"sellerName": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if view, ok := p.Source.(resources.ProductView); ok && view.Seller != nil {
					return view.Seller.ShopName, nil
				}
				return "", nil
			},
		},
		"categorySlug": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if view, ok := p.Source.(resources.ProductView); ok && view.Category != nil {
					return view.Category.Slug, nil
				}
				return "", nil
			},
		},
	},
})

// NewSchema builds the catalogue schema over the given database handle.
func NewSchema(db *gorm.DB) (graphql.Schema, error) {
	catalog := services.NewCatalogService(db)

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"q":        &graphql.ArgumentConfig{Type: graphql.String},
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"sort":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var filters repositories.CatalogFilters
					if q, ok := p.Args["q"].(string); ok {
						filters.Query = q
					}
					if cat, ok := p.Args["category"].(string); ok {
						filters.Category = cat
					}
					if sort, ok := p.Args["sort"].(string); ok {
						filters.Sort = sort
					}

					products, err := catalog.List(filters)
					if err != nil {
						return nil, err
					}
					return resources.NewProductViews(products), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}

// Handler returns the POST /graphql endpoint.
func Handler(schema graphql.Schema) http.HandlerFunc {
	type request struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}
