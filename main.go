package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"go-shopcart/config"
	"go-shopcart/controllers"
	"go-shopcart/middleware"
	"go-shopcart/routes"
	"go-shopcart/services"
	"go-shopcart/store"
	"go-shopcart/utils"
)

func main() {
	// Load environment variables from .env file if present; otherwise
	// proceed with the process environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := utils.NewLogger("shopcart", "info")
		bootLog.Fatal().Err(err).Msg("config load failed")
	}

	log := utils.NewLogger("shopcart", cfg.LogLevel)

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JWTSecret)

	// Connect to MongoDB
	client, err := store.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	db := client.Database(cfg.MongoDB)

	// Stores
	userStore := store.NewMongoUserStore(db)
	productStore := store.NewMongoProductStore(db)
	cartStore := store.NewMongoCartStore(db)

	// Services
	userService := services.NewUserService(userStore, cfg.DefaultWalletMoney, cfg.DefaultAddress, cfg.MinAddressLength, log)
	authService := services.NewAuthService(userStore)
	cartService := services.NewCartService(cartStore, productStore, userService, log)
	emailService := utils.NewEmailService(cfg.SendgridAPIKey, cfg.EmailSender, log)

	// Controllers
	jwtExpiry := time.Duration(cfg.JWTAccessExpiryMins) * time.Minute
	authController := controllers.NewAuthController(userService, authService, jwtExpiry, log)
	userController := controllers.NewUserController(userService, log)
	productController := controllers.NewProductController(productStore, log)
	cartController := controllers.NewCartController(cartService, userStore, emailService, log)

	healthz := func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			http.Error(w, "mongodb unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.Logging(log))
	router.Use(middleware.Metrics("shopcart"))
	routes.RegisterRoutes(router, userStore, authController, userController, productController, cartController, healthz)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("server starting")
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
