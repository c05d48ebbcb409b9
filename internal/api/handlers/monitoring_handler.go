package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ChristianBello1/hosting/internal/models"
	"github.com/ChristianBello1/hosting/internal/monitoring"
	"github.com/ChristianBello1/hosting/internal/services"
)

// MonitoringHandler exposes the resource-monitoring and alerting endpoints.
type MonitoringHandler struct {
	monitorSvc *monitoring.Service
	alertSvc   services.AlertServiceProvider
	clientSvc  services.ClientServiceProvider
}

// NewMonitoringHandler creates a new MonitoringHandler.
func NewMonitoringHandler(monitorSvc *monitoring.Service, alertSvc services.AlertServiceProvider, clientSvc services.ClientServiceProvider) *MonitoringHandler {
	return &MonitoringHandler{monitorSvc: monitorSvc, alertSvc: alertSvc, clientSvc: clientSvc}
}

// GetResources returns a fresh resource snapshot for a client. Fetching is a
// side-effecting read: any metric over its plan threshold also materializes
// an alert record.
func (h *MonitoringHandler) GetResources(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientId")

	client, err := h.clientSvc.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Client not found", nil)
			return
		}
		log.Error().Err(err).Str("client_id", clientID).Msg("Failed to load client for monitoring")
		respondError(w, http.StatusInternalServerError, "Failed to get system resources", err)
		return
	}

	metrics, _, err := h.monitorSvc.GetSystemResources(client.ID, client.Plan)
	if err != nil {
		log.Error().Err(err).Str("client_id", clientID).Msg("Failed to get system resources")
		respondError(w, http.StatusInternalServerError, "Failed to get system resources", err)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// GetAlerts returns unacknowledged alerts across all clients.
func (h *MonitoringHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alertSvc.GetActiveAlerts()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list active alerts")
		respondError(w, http.StatusInternalServerError, "Failed to list alerts", err)
		return
	}
	if alerts == nil {
		alerts = []models.ResourceAlert{}
	}
	respondJSON(w, http.StatusOK, alerts)
}

// GetClientAlerts returns unacknowledged alerts for one client.
func (h *MonitoringHandler) GetClientAlerts(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")

	alerts, err := h.alertSvc.GetClientAlerts(clientID)
	if err != nil {
		log.Error().Err(err).Str("client_id", clientID).Msg("Failed to list client alerts")
		respondError(w, http.StatusInternalServerError, "Failed to list alerts", err)
		return
	}
	if alerts == nil {
		alerts = []models.ResourceAlert{}
	}
	respondJSON(w, http.StatusOK, alerts)
}

// AcknowledgeAlert marks an alert as seen and returns the updated record.
func (h *MonitoringHandler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	alertID := chi.URLParam(r, "id")

	alert, err := h.alertSvc.AcknowledgeAlert(alertID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Alert not found", nil)
			return
		}
		log.Error().Err(err).Str("alert_id", alertID).Msg("Failed to acknowledge alert")
		respondError(w, http.StatusInternalServerError, "Failed to acknowledge alert", err)
		return
	}

	respondJSON(w, http.StatusOK, alert)
}
