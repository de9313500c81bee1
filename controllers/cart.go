package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"go-shopcart/apierr"
	"go-shopcart/middleware"
	"go-shopcart/services"
	"go-shopcart/store"
	"go-shopcart/utils"
)

// CartController handles the cart endpoints. All of them operate on the
// authenticated user resolved by the auth middleware.
type CartController struct {
	cart     *services.CartService
	users    store.UserStore
	email    *utils.EmailService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewCartController creates a CartController.
func NewCartController(cart *services.CartService, users store.UserStore, email *utils.EmailService, log zerolog.Logger) *CartController {
	return &CartController{
		cart:     cart,
		users:    users,
		email:    email,
		validate: newValidator(),
		log:      log,
	}
}

type cartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// GetCart returns the user's cart.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, cc.log, apierr.Unauthorized("Please authenticate"))
		return
	}
	cart, err := cc.cart.GetCartByUser(r.Context(), user)
	if err != nil {
		writeError(w, cc.log, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddToCart adds a product to the user's cart.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, cc.log, apierr.Unauthorized("Please authenticate"))
		return
	}
	req, err := cc.decodeItem(r)
	if err != nil {
		writeError(w, cc.log, err)
		return
	}
	cart, err := cc.cart.AddProductToCart(r.Context(), user, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, cc.log, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// UpdateInCart sets a new quantity for a product already in the cart.
func (cc *CartController) UpdateInCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, cc.log, apierr.Unauthorized("Please authenticate"))
		return
	}
	req, err := cc.decodeItem(r)
	if err != nil {
		writeError(w, cc.log, err)
		return
	}
	cart, err := cc.cart.UpdateProductInCart(r.Context(), user, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, cc.log, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// DeleteFromCart removes a product from the cart.
func (cc *CartController) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, cc.log, apierr.Unauthorized("Please authenticate"))
		return
	}
	if _, err := cc.cart.DeleteProductFromCart(r.Context(), user, mux.Vars(r)["productId"]); err != nil {
		writeError(w, cc.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Checkout converts the cart into a wallet deduction. The wallet decrement
// happens in memory inside the cart service; persisting the new balance is
// done here, after the service reports success.
func (cc *CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, cc.log, apierr.Unauthorized("Please authenticate"))
		return
	}

	before := user.WalletMoney
	if _, err := cc.cart.Checkout(r.Context(), &user); err != nil {
		writeError(w, cc.log, err)
		return
	}

	if err := cc.users.SetWalletMoney(r.Context(), user.ID, user.WalletMoney); err != nil {
		writeError(w, cc.log, err)
		return
	}

	total := before - user.WalletMoney
	if err := cc.email.SendCheckoutConfirmation(user, total); err != nil {
		cc.log.Warn().Err(err).Str("email", user.Email).Msg("checkout confirmation email failed")
	}

	w.WriteHeader(http.StatusNoContent)
}

func (cc *CartController) decodeItem(r *http.Request) (cartItemRequest, error) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return cartItemRequest{}, apierr.BadRequest("Invalid input")
	}
	if err := cc.validate.Struct(req); err != nil {
		return cartItemRequest{}, apierr.BadRequest(err.Error())
	}
	return req, nil
}
