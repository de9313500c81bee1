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
)

// UserController serves user profiles. Users can only read and modify
// themselves.
type UserController struct {
	users    *services.UserService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewUserController creates a UserController.
func NewUserController(users *services.UserService, log zerolog.Logger) *UserController {
	return &UserController{
		users:    users,
		validate: newValidator(),
		log:      log,
	}
}

type setAddressRequest struct {
	Address string `json:"address" validate:"required"`
}

// GetUser returns the authenticated user's profile. With ?q=address only
// the address field is returned.
func (uc *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, uc.log, apierr.Unauthorized("Please authenticate"))
		return
	}
	if mux.Vars(r)["id"] != caller.ID.Hex() {
		writeError(w, uc.log, apierr.Forbidden("Forbidden"))
		return
	}

	user, err := uc.users.GetUserByID(r.Context(), caller.ID.Hex())
	if err != nil {
		writeError(w, uc.log, err)
		return
	}

	if r.URL.Query().Get("q") == "address" {
		writeJSON(w, http.StatusOK, map[string]string{"address": user.Address})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// SetAddress updates the authenticated user's shipping address.
func (uc *UserController) SetAddress(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, uc.log, apierr.Unauthorized("Please authenticate"))
		return
	}
	if mux.Vars(r)["id"] != caller.ID.Hex() {
		writeError(w, uc.log, apierr.Forbidden("Forbidden"))
		return
	}

	var req setAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, uc.log, apierr.BadRequest("Invalid input"))
		return
	}
	if err := uc.validate.Struct(req); err != nil {
		writeError(w, uc.log, apierr.BadRequest(err.Error()))
		return
	}

	address, err := uc.users.SetAddress(r.Context(), caller, req.Address)
	if err != nil {
		writeError(w, uc.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"address": address})
}
