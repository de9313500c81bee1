package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shopcart/apierr"
	"go-shopcart/store"
)

// ProductController serves the read-only product catalog.
type ProductController struct {
	products store.ProductStore
	log      zerolog.Logger
}

// NewProductController creates a ProductController.
func NewProductController(products store.ProductStore, log zerolog.Logger) *ProductController {
	return &ProductController{products: products, log: log}
}

// GetProducts lists the whole catalog.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := pc.products.FindAll(r.Context())
	if err != nil {
		writeError(w, pc.log, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProductByID returns a single product.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, pc.log, apierr.NotFound("Product not found"))
		return
	}
	product, err := pc.products.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNoProduct) {
		writeError(w, pc.log, apierr.NotFound("Product not found"))
		return
	}
	if err != nil {
		writeError(w, pc.log, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
