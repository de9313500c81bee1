package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"go-shopcart/apierr"
	"go-shopcart/models"
	"go-shopcart/services"
	"go-shopcart/utils"
)

// AuthController handles registration and login.
type AuthController struct {
	users     *services.UserService
	auth      *services.AuthService
	jwtExpiry time.Duration
	validate  *validator.Validate
	log       zerolog.Logger
}

// NewAuthController creates an AuthController.
func NewAuthController(users *services.UserService, auth *services.AuthService, jwtExpiry time.Duration, log zerolog.Logger) *AuthController {
	return &AuthController{
		users:     users,
		auth:      auth,
		jwtExpiry: jwtExpiry,
		validate:  newValidator(),
		log:       log,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,userpassword"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type accessToken struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authTokens struct {
	Access accessToken `json:"access"`
}

type authResponse struct {
	User   models.User `json:"user"`
	Tokens authTokens  `json:"tokens"`
}

// Register creates a user and returns it with a fresh access token.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ac.log, apierr.BadRequest("Invalid input"))
		return
	}
	if err := ac.validate.Struct(req); err != nil {
		writeError(w, ac.log, apierr.BadRequest(err.Error()))
		return
	}

	user, err := ac.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, ac.log, err)
		return
	}

	ac.respondWithTokens(w, http.StatusCreated, user)
}

// Login authenticates a user and returns it with a fresh access token.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ac.log, apierr.BadRequest("Invalid input"))
		return
	}
	if err := ac.validate.Struct(req); err != nil {
		writeError(w, ac.log, apierr.BadRequest(err.Error()))
		return
	}

	user, err := ac.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, ac.log, err)
		return
	}

	ac.respondWithTokens(w, http.StatusOK, user)
}

func (ac *AuthController) respondWithTokens(w http.ResponseWriter, status int, user models.User) {
	token, expires, err := utils.GenerateJWT(user.ID.Hex(), user.Email, ac.jwtExpiry)
	if err != nil {
		writeError(w, ac.log, err)
		return
	}
	writeJSON(w, status, authResponse{
		User:   user,
		Tokens: authTokens{Access: accessToken{Token: token, Expires: expires}},
	})
}
