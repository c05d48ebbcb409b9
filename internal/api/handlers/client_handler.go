package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ChristianBello1/hosting/internal/plan"
	"github.com/ChristianBello1/hosting/internal/services"
)

// ClientHandler handles HTTP requests for client site management.
type ClientHandler struct {
	service services.ClientServiceProvider
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(service services.ClientServiceProvider) *ClientHandler {
	return &ClientHandler{service: service}
}

// CreateClientPayload defines the structure for client creation requests.
type CreateClientPayload struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Domain      string `json:"domain"`
	Plan        string `json:"plan"`
}

// Create registers a new client site.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateClientPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if payload.CompanyName == "" || payload.Email == "" || payload.Domain == "" {
		respondError(w, http.StatusBadRequest, "companyName, email and domain are required", nil)
		return
	}
	if payload.Plan == "" {
		payload.Plan = string(plan.TierStandard)
	}

	client, err := h.service.CreateClient(payload.CompanyName, payload.Email, payload.Domain, plan.Tier(payload.Plan))
	if err != nil {
		if errors.Is(err, plan.ErrUnknownTier) {
			respondError(w, http.StatusBadRequest, "Invalid plan", nil)
			return
		}
		log.Error().Err(err).Str("domain", payload.Domain).Msg("Failed to create client")
		respondError(w, http.StatusInternalServerError, "Failed to create client", err)
		return
	}

	respondJSON(w, http.StatusCreated, client)
}

// GetAll returns every client.
func (h *ClientHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.GetAllClients()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve clients")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve clients", err)
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

// Get returns a single client by ID.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	client, err := h.service.GetClientByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Client not found", nil)
			return
		}
		log.Error().Err(err).Str("client_id", id).Msg("Failed to get client")
		respondError(w, http.StatusInternalServerError, "Failed to get client", err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// UpdatePlan changes a client's subscription tier.
func (h *ClientHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload struct {
		Plan string `json:"plan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	client, err := h.service.UpdateClientPlan(id, plan.Tier(payload.Plan))
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrUnknownTier):
			respondError(w, http.StatusBadRequest, "Invalid plan", nil)
		case errors.Is(err, services.ErrNotFound):
			respondError(w, http.StatusNotFound, "Client not found", nil)
		default:
			log.Error().Err(err).Str("client_id", id).Msg("Failed to update client plan")
			respondError(w, http.StatusInternalServerError, "Failed to update client plan", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// UpdateStatus changes a client's site status.
func (h *ClientHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload struct {
		SiteStatus string `json:"siteStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	client, err := h.service.UpdateClientStatus(id, payload.SiteStatus)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(w, http.StatusNotFound, "Client not found", nil)
		default:
			log.Warn().Err(err).Str("client_id", id).Msg("Failed to update client status")
			respondError(w, http.StatusBadRequest, "Invalid site status", nil)
		}
		return
	}
	respondJSON(w, http.StatusOK, client)
}
