package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devlinkr/devlinkr-be/internal/auth"
	"github.com/devlinkr/devlinkr-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for registration and authentication.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

var registerMessages = map[string]string{
	"name":     "Name is required",
	"email":    "Enter valid email",
	"password": "Enter Password with 6 or more characters",
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"email":    "Enter valid email",
	"password": "Password is required",
}

// Register handles new user registration and returns a session token.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondErrors(w, []errorItem{{Msg: "Invalid request body", Location: "body"}})
		return
	}
	if err := validate.Struct(payload); err != nil {
		respondErrors(w, validationErrors(err, registerMessages))
		return
	}

	user, err := h.service.RegisterUser(payload.Name, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			respondErrors(w, []errorItem{{Msg: "User already exists"}})
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		respondServerError(w)
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		respondServerError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Login handles user authentication and JWT generation.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondErrors(w, []errorItem{{Msg: "Invalid request body", Location: "body"}})
		return
	}
	if err := validate.Struct(payload); err != nil {
		respondErrors(w, validationErrors(err, loginMessages))
		return
	}

	user, err := h.service.AuthenticateUser(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			respondErrors(w, []errorItem{{Msg: "Invalid Credentials"}})
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to authenticate user")
		respondServerError(w)
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		respondServerError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetMe retrieves the currently authenticated user from the token.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondServerError(w)
		return
	}

	user, err := h.service.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondMsg(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to load user from token")
		respondServerError(w)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
