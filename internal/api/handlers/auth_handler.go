package handlers

import (
	"net/http"

	"github.com/avelar/taskhub-be/internal/api/respond"
	"github.com/avelar/taskhub-be/internal/apperr"
	"github.com/avelar/taskhub-be/internal/auth"
	"github.com/avelar/taskhub-be/internal/services"
	"github.com/avelar/taskhub-be/internal/validation"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles signup, login and profile requests.
type AuthHandler struct {
	users  services.UserServiceProvider
	tokens *auth.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Signup handles new user registration and issues the first token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(r)
	if !ok {
		respond.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	norm, violations := validation.Signup.Apply(payload)
	if violations != nil {
		respond.Err(w, apperr.Validation(violations))
		return
	}

	email, _ := strField(norm, "email")
	password, _ := strField(norm, "password")
	name, _ := strField(norm, "name")

	user, err := h.users.Signup(r.Context(), email, password, name)
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Failed to register user")
		respond.Err(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		respond.Err(w, apperr.Internal("Error creating user", err))
		return
	}

	respond.SuccessMsg(w, http.StatusCreated, "User registered successfully", map[string]any{
		"user":  user,
		"token": token,
	})
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(r)
	if !ok {
		respond.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	norm, violations := validation.Login.Apply(payload)
	if violations != nil {
		respond.Err(w, apperr.Validation(violations))
		return
	}

	email, _ := strField(norm, "email")
	password, _ := strField(norm, "password")

	user, err := h.users.Authenticate(r.Context(), email, password)
	if err != nil {
		log.Warn().Str("email", email).Msg("Failed authentication attempt")
		respond.Err(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		respond.Err(w, apperr.Internal("Error during login", err))
		return
	}

	respond.SuccessMsg(w, http.StatusOK, "Login successful", map[string]any{
		"user":  user,
		"token": token,
	})
}

// Me returns the profile of the authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from request context")
		respond.Err(w, apperr.Internal("Error fetching user profile", nil))
		return
	}

	respond.Success(w, http.StatusOK, map[string]any{"user": user})
}
