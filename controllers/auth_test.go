package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"go-shopcart/models"
	"go-shopcart/services"
	"go-shopcart/utils"
)

func newAuthRouter(t *testing.T) (*mux.Router, *memUserStore) {
	t.Helper()
	utils.JwtKey = []byte("test-secret")
	log := zerolog.Nop()

	users := &memUserStore{users: map[string]models.User{}}
	userSvc := services.NewUserService(users, 500, "ADDRESS_NOT_SET", 20, log)
	authSvc := services.NewAuthService(users)
	controller := NewAuthController(userSvc, authSvc, 30*time.Minute, log)

	router := mux.NewRouter()
	router.HandleFunc("/v1/auth/register", controller.Register).Methods("POST")
	router.HandleFunc("/v1/auth/login", controller.Login).Methods("POST")
	return router, users
}

func postJSON(router *mux.Router, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest("POST", path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterRoute(t *testing.T) {
	t.Run("creates a user and returns tokens", func(t *testing.T) {
		router, users := newAuthRouter(t)
		rec := postJSON(router, "/v1/auth/register", map[string]string{
			"name":     "Rita",
			"email":    "rita@example.com",
			"password": "password1",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			User struct {
				Email       string  `json:"email"`
				WalletMoney float64 `json:"walletMoney"`
			} `json:"user"`
			Tokens struct {
				Access struct {
					Token   string    `json:"token"`
					Expires time.Time `json:"expires"`
				} `json:"access"`
			} `json:"tokens"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "rita@example.com", resp.User.Email)
		require.Equal(t, 500.0, resp.User.WalletMoney)
		require.NotEmpty(t, resp.Tokens.Access.Token)
		require.NotContains(t, rec.Body.String(), "password1")
		require.Contains(t, users.users, "rita@example.com")
	})

	t.Run("rejects a password without digits", func(t *testing.T) {
		router, _ := newAuthRouter(t)
		rec := postJSON(router, "/v1/auth/register", map[string]string{
			"name":     "Rita",
			"email":    "rita@example.com",
			"password": "passwords",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		router, _ := newAuthRouter(t)
		rec := postJSON(router, "/v1/auth/register", map[string]string{
			"name":     "Rita",
			"email":    "rita@example.com",
			"password": "pass1",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginRoute(t *testing.T) {
	router, _ := newAuthRouter(t)
	rec := postJSON(router, "/v1/auth/register", map[string]string{
		"name":     "Rita",
		"email":    "rita@example.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("valid credentials", func(t *testing.T) {
		rec := postJSON(router, "/v1/auth/login", map[string]string{
			"email":    "rita@example.com",
			"password": "password1",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(router, "/v1/auth/login", map[string]string{
			"email":    "rita@example.com",
			"password": "password2",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var payload struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		require.Equal(t, "Incorrect email or password", payload.Message)
	})
}
