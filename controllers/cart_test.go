package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shopcart/middleware"
	"go-shopcart/models"
	"go-shopcart/services"
	"go-shopcart/store"
	"go-shopcart/utils"
)

type memCartStore struct {
	carts map[string]models.Cart
}

func (m *memCartStore) FindByEmail(_ context.Context, email string) (models.Cart, error) {
	cart, ok := m.carts[email]
	if !ok {
		return models.Cart{}, store.ErrNoCart
	}
	return cart, nil
}

func (m *memCartStore) Create(_ context.Context, email string) (models.Cart, error) {
	cart := models.Cart{ID: primitive.NewObjectID(), Email: email, CartItems: []models.CartItem{}}
	m.carts[email] = cart
	return cart, nil
}

func (m *memCartStore) Save(_ context.Context, cart models.Cart) (models.Cart, error) {
	m.carts[cart.Email] = cart
	return cart, nil
}

func (m *memCartStore) ReplaceByID(_ context.Context, id primitive.ObjectID, cart models.Cart) (models.Cart, error) {
	cart.ID = id
	m.carts[cart.Email] = cart
	return cart, nil
}

type memProductStore struct {
	products map[primitive.ObjectID]models.Product
}

func (m *memProductStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return models.Product{}, store.ErrNoProduct
	}
	return product, nil
}

func (m *memProductStore) FindAll(_ context.Context) ([]models.Product, error) {
	all := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		all = append(all, p)
	}
	return all, nil
}

type memUserStore struct {
	users map[string]models.User
}

func (m *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, store.ErrNoUser
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := m.users[email]
	if !ok {
		return models.User{}, store.ErrNoUser
	}
	return user, nil
}

func (m *memUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}

func (m *memUserStore) Create(_ context.Context, user models.User) (models.User, error) {
	user.ID = primitive.NewObjectID()
	m.users[user.Email] = user
	return user, nil
}

func (m *memUserStore) SetAddress(_ context.Context, id primitive.ObjectID, address string) error {
	for email, user := range m.users {
		if user.ID == id {
			user.Address = address
			m.users[email] = user
			return nil
		}
	}
	return store.ErrNoUser
}

func (m *memUserStore) SetWalletMoney(_ context.Context, id primitive.ObjectID, amount float64) error {
	for email, user := range m.users {
		if user.ID == id {
			user.WalletMoney = amount
			m.users[email] = user
			return nil
		}
	}
	return store.ErrNoUser
}

type cartFixture struct {
	router  *mux.Router
	user    models.User
	product models.Product
	carts   *memCartStore
	users   *memUserStore
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	log := zerolog.Nop()

	product := models.Product{ID: primitive.NewObjectID(), Name: "Keyboard", Category: "Electronics", Cost: 10}
	user := models.User{
		ID:          primitive.NewObjectID(),
		Name:        "Rita",
		Email:       "rita@example.com",
		WalletMoney: 30,
		Address:     "221B Baker Street, London NW1",
	}

	carts := &memCartStore{carts: map[string]models.Cart{}}
	products := &memProductStore{products: map[primitive.ObjectID]models.Product{product.ID: product}}
	users := &memUserStore{users: map[string]models.User{user.Email: user}}

	userSvc := services.NewUserService(users, 500, "ADDRESS_NOT_SET", 20, log)
	cartSvc := services.NewCartService(carts, products, userSvc, log)
	email := utils.NewEmailService("", "", log)
	controller := NewCartController(cartSvc, users, email, log)

	router := mux.NewRouter()
	router.HandleFunc("/v1/cart", controller.GetCart).Methods("GET")
	router.HandleFunc("/v1/cart", controller.AddToCart).Methods("POST")
	router.HandleFunc("/v1/cart", controller.UpdateInCart).Methods("PUT")
	router.HandleFunc("/v1/cart/checkout", controller.Checkout).Methods("PUT")
	router.HandleFunc("/v1/cart/{productId}", controller.DeleteFromCart).Methods("DELETE")

	return &cartFixture{router: router, user: user, product: product, carts: carts, users: users}
}

func (f *cartFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(middleware.WithUser(req.Context(), f.user))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func itemBody(productID string, quantity int) map[string]interface{} {
	return map[string]interface{}{"productId": productID, "quantity": quantity}
}

func TestCartRoutes(t *testing.T) {
	t.Run("get without cart is 404", func(t *testing.T) {
		f := newCartFixture(t)
		rec := f.do("GET", "/v1/cart", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("add then get", func(t *testing.T) {
		f := newCartFixture(t)
		rec := f.do("POST", "/v1/cart", itemBody(f.product.ID.Hex(), 2))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = f.do("GET", "/v1/cart", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var cart models.Cart
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
		require.Len(t, cart.CartItems, 1)
		require.Equal(t, 2, cart.CartItems[0].Quantity)
	})

	t.Run("duplicate add returns the error payload", func(t *testing.T) {
		f := newCartFixture(t)
		f.do("POST", "/v1/cart", itemBody(f.product.ID.Hex(), 2))

		rec := f.do("POST", "/v1/cart", itemBody(f.product.ID.Hex(), 2))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var payload struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		require.Equal(t, http.StatusBadRequest, payload.Code)
		require.Equal(t, "Product already in cart. Use the cart sidebar to update or remove product from cart", payload.Message)
	})

	t.Run("invalid quantity rejected before the service runs", func(t *testing.T) {
		f := newCartFixture(t)
		rec := f.do("POST", "/v1/cart", itemBody(f.product.ID.Hex(), 0))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotContains(t, f.carts.carts, f.user.Email)
	})

	t.Run("update and delete", func(t *testing.T) {
		f := newCartFixture(t)
		f.do("POST", "/v1/cart", itemBody(f.product.ID.Hex(), 2))

		rec := f.do("PUT", "/v1/cart", itemBody(f.product.ID.Hex(), 5))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 5, f.carts.carts[f.user.Email].CartItems[0].Quantity)

		rec = f.do("DELETE", fmt.Sprintf("/v1/cart/%s", f.product.ID.Hex()), nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, f.carts.carts[f.user.Email].CartItems)
	})

	t.Run("checkout empties the cart and persists the wallet", func(t *testing.T) {
		f := newCartFixture(t)
		f.do("POST", "/v1/cart", itemBody(f.product.ID.Hex(), 2))

		rec := f.do("PUT", "/v1/cart/checkout", nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, f.carts.carts[f.user.Email].CartItems)
		require.Equal(t, 10.0, f.users.users[f.user.Email].WalletMoney)
	})

	t.Run("checkout with insufficient balance leaves the wallet alone", func(t *testing.T) {
		f := newCartFixture(t)
		f.do("POST", "/v1/cart", itemBody(f.product.ID.Hex(), 5))

		rec := f.do("PUT", "/v1/cart/checkout", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, 30.0, f.users.users[f.user.Email].WalletMoney)
		require.Len(t, f.carts.carts[f.user.Email].CartItems, 1)
	})
}
