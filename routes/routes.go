package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-shopcart/controllers"
	"go-shopcart/middleware"
	"go-shopcart/store"
)

// RegisterRoutes sets up all the routes for the application under /v1.
func RegisterRoutes(router *mux.Router, users store.UserStore, authController *controllers.AuthController, userController *controllers.UserController, productController *controllers.ProductController, cartController *controllers.CartController, healthz http.HandlerFunc) {
	v1 := router.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authController.Register).Methods("POST")
	v1.HandleFunc("/auth/login", authController.Login).Methods("POST")
	v1.HandleFunc("/products", productController.GetProducts).Methods("GET")
	v1.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")

	// Protected routes
	protected := v1.PathPrefix("/").Subrouter()
	protected.Use(middleware.Auth(users))
	protected.HandleFunc("/users/{id}", userController.GetUser).Methods("GET")
	protected.HandleFunc("/users/{id}", userController.SetAddress).Methods("PUT")
	protected.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	protected.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	protected.HandleFunc("/cart", cartController.UpdateInCart).Methods("PUT")
	protected.HandleFunc("/cart/checkout", cartController.Checkout).Methods("PUT")
	protected.HandleFunc("/cart/{productId}", cartController.DeleteFromCart).Methods("DELETE")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/healthz", healthz).Methods("GET")
}
