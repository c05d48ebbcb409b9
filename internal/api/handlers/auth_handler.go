package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ChristianBello1/hosting/internal/auth"
	"github.com/ChristianBello1/hosting/internal/models"
	"github.com/ChristianBello1/hosting/internal/services"
)

// AuthHandler handles admin registration and login.
type AuthHandler struct {
	adminSvc services.AdminServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(adminSvc services.AdminServiceProvider) *AuthHandler {
	return &AuthHandler{adminSvc: adminSvc}
}

// RegisterPayload defines the structure for admin registration requests.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new admin account. The very first admin is created as
// superadmin without authentication; after that only an authenticated
// superadmin may register further admins.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	count, err := h.adminSvc.CountAdmins()
	if err != nil {
		log.Error().Err(err).Msg("Failed to count admins")
		respondError(w, http.StatusInternalServerError, "Failed to register admin", err)
		return
	}

	role := models.RoleSuperadmin
	if count > 0 {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			// No middleware on this route; validate the bearer token directly.
			claims = bearerClaims(r)
		}
		if claims == nil {
			respondError(w, http.StatusUnauthorized, "Only existing admins can register new admins", nil)
			return
		}
		if claims.Role != models.RoleSuperadmin {
			respondError(w, http.StatusUnauthorized, "Only superadmins can register new admins", nil)
			return
		}
		role = models.RoleAdmin
	}

	admin, err := h.adminSvc.CreateAdmin(payload.Name, payload.Email, payload.Password, role)
	if err != nil {
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register admin")
		respondError(w, http.StatusInternalServerError, "Failed to register admin", err)
		return
	}

	respondJSON(w, http.StatusCreated, admin)
}

// bearerClaims extracts and validates claims from the Authorization header,
// returning nil when absent or invalid.
func bearerClaims(r *http.Request) *auth.Claims {
	header := r.Header.Get("Authorization")
	if len(header) <= len("Bearer ") || header[:len("Bearer ")] != "Bearer " {
		return nil
	}
	claims, err := auth.ValidateJWT(header[len("Bearer "):])
	if err != nil {
		return nil
	}
	return claims
}

// Login handles admin authentication and JWT generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	admin, err := h.adminSvc.AuthenticateAdmin(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		respondError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := auth.GenerateJWT(admin)
	if err != nil {
		log.Error().Err(err).Str("admin_id", admin.ID).Msg("Failed to generate JWT")
		respondError(w, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   !DevMode,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"admin": admin,
	})
}

// GetMe retrieves the currently authenticated admin from the token.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve admin claims from context")
		respondError(w, http.StatusInternalServerError, "Could not retrieve admin from token", nil)
		return
	}

	admin, err := h.adminSvc.GetAdminByID(claims.AdminID)
	if err != nil {
		log.Error().Err(err).Str("admin_id", claims.AdminID).Msg("Admin from token not found in DB")
		respondError(w, http.StatusNotFound, "Admin not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, admin)
}
