package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shopcart/apierr"
	"go-shopcart/models"
	"go-shopcart/store"
)

// AddressChecker reports whether a user has replaced the default address
// sentinel with a real shipping address. Implemented by UserService.
type AddressChecker interface {
	HasNonDefaultAddress(user models.User) bool
}

// CartService implements the cart lifecycle: lazy creation on first add,
// add/update/delete of items, and checkout. Cart items carry a product
// snapshot taken at add/update time; checkout charges the snapshotted cost,
// never the live catalog price.
type CartService struct {
	carts    store.CartStore
	products store.ProductStore
	identity AddressChecker
	log      zerolog.Logger
}

// NewCartService creates a CartService.
func NewCartService(carts store.CartStore, products store.ProductStore, identity AddressChecker, log zerolog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		identity: identity,
		log:      log,
	}
}

// GetCartByUser returns the user's cart, or a 404 error if the user has
// never added anything.
func (s *CartService) GetCartByUser(ctx context.Context, user models.User) (models.Cart, error) {
	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if errors.Is(err, store.ErrNoCart) {
		return models.Cart{}, apierr.NotFound("User does not have a cart")
	}
	if err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// AddProductToCart appends a new item to the user's cart, creating the cart
// if it does not exist yet. Add is not an upsert: a product already in the
// cart is rejected, quantity untouched.
func (s *CartService) AddProductToCart(ctx context.Context, user models.User, productID string, quantity int) (models.Cart, error) {
	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if errors.Is(err, store.ErrNoCart) {
		cart, err = s.carts.Create(ctx, user.Email)
		if err != nil {
			s.log.Error().Err(err).Str("email", user.Email).Msg("cart creation failed")
			return models.Cart{}, apierr.Internal("Internal Server Error")
		}
	} else if err != nil {
		return models.Cart{}, err
	}

	for _, item := range cart.CartItems {
		if item.Product.ID.Hex() == productID {
			return models.Cart{}, apierr.BadRequest("Product already in cart. Use the cart sidebar to update or remove product from cart")
		}
	}

	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return models.Cart{}, err
	}

	cart.CartItems = append(cart.CartItems, models.CartItem{Product: product, Quantity: quantity})
	return s.carts.Save(ctx, cart)
}

// UpdateProductInCart sets a new quantity for a product already in the
// cart. The stored product snapshot is refreshed from the catalog as a side
// effect, so later checkouts charge the cost current at update time.
func (s *CartService) UpdateProductInCart(ctx context.Context, user models.User, productID string, quantity int) (models.Cart, error) {
	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if errors.Is(err, store.ErrNoCart) {
		return models.Cart{}, apierr.BadRequest("User does not have a cart. Use POST to create cart and add a product")
	}
	if err != nil {
		return models.Cart{}, err
	}

	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return models.Cart{}, err
	}

	kept := removeProduct(cart.CartItems, productID)
	if len(kept) == len(cart.CartItems) {
		return models.Cart{}, apierr.BadRequest("Product not in cart")
	}
	cart.CartItems = append(kept, models.CartItem{Product: product, Quantity: quantity})
	return s.carts.Save(ctx, cart)
}

// DeleteProductFromCart removes a product from the cart. The cart document
// survives with an empty item list when the last product is removed.
func (s *CartService) DeleteProductFromCart(ctx context.Context, user models.User, productID string) (models.Cart, error) {
	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if errors.Is(err, store.ErrNoCart) {
		return models.Cart{}, apierr.BadRequest("User does not have a cart")
	}
	if err != nil {
		return models.Cart{}, err
	}

	kept := removeProduct(cart.CartItems, productID)
	if len(kept) == len(cart.CartItems) {
		return models.Cart{}, apierr.BadRequest("Product not in cart")
	}
	cart.CartItems = kept
	return s.carts.ReplaceByID(ctx, cart.ID, cart)
}

// Checkout converts the cart into a wallet deduction and an emptied cart.
// All preconditions are checked and the total computed before anything is
// mutated; a failure leaves both the cart and the wallet untouched. The
// wallet decrement happens on the passed-in user only; persisting it is the
// caller's responsibility.
func (s *CartService) Checkout(ctx context.Context, user *models.User) (models.Cart, error) {
	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if errors.Is(err, store.ErrNoCart) {
		return models.Cart{}, apierr.NotFound("User does not have a cart")
	}
	if err != nil {
		return models.Cart{}, err
	}
	if len(cart.CartItems) == 0 {
		return models.Cart{}, apierr.BadRequest("No product found")
	}
	if !s.identity.HasNonDefaultAddress(*user) {
		return models.Cart{}, apierr.BadRequest("No address found")
	}

	var total float64
	for _, item := range cart.CartItems {
		total += float64(item.Quantity) * item.Product.Cost
	}
	if total > user.WalletMoney {
		return models.Cart{}, apierr.BadRequest("Insufficient balance")
	}

	user.WalletMoney -= total
	cart.CartItems = []models.CartItem{}
	saved, err := s.carts.Save(ctx, cart)
	if err != nil {
		return models.Cart{}, err
	}
	s.log.Info().Str("email", user.Email).Float64("total", total).Msg("checkout complete")
	return saved, nil
}

func (s *CartService) lookupProduct(ctx context.Context, productID string) (models.Product, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return models.Product{}, apierr.BadRequest("Product doesn't exist in database")
	}
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNoProduct) {
		return models.Product{}, apierr.BadRequest("Product doesn't exist in database")
	}
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// removeProduct returns the items whose product id does not match
// productID. Matching is by explicit id equality, at most one item can
// match because duplicates are never stored.
func removeProduct(items []models.CartItem, productID string) []models.CartItem {
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product.ID.Hex() != productID {
			kept = append(kept, item)
		}
	}
	return kept
}
