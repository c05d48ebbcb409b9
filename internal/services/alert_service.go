package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ChristianBello1/hosting/internal/models"
)

// Listing caps for active-alert queries.
const (
	globalAlertLimit = 50
	clientAlertLimit = 20
)

// AlertServiceProvider defines the interface for the alert store.
type AlertServiceProvider interface {
	CreateAlert(alert *models.ResourceAlert) error
	GetActiveAlerts() ([]models.ResourceAlert, error)
	GetClientAlerts(clientID string) ([]models.ResourceAlert, error)
	AcknowledgeAlert(alertID string) (models.ResourceAlert, error)
}

// AlertService persists and queries resource alerts. Alert rows are
// append-only; the only permitted update is flipping the acknowledged flag.
type AlertService struct {
	db *sql.DB
}

// NewAlertService creates a new AlertService.
func NewAlertService(db *sql.DB) *AlertService {
	return &AlertService{db: db}
}

// severityRank orders severities in SQL; timestamps tie-break on it.
const severityRank = `CASE severity WHEN 'critical' THEN 3 WHEN 'high' THEN 2 WHEN 'medium' THEN 1 ELSE 0 END`

// CreateAlert inserts a new alert record. ID and timestamp are assigned when
// the caller leaves them empty.
func (s *AlertService) CreateAlert(alert *models.ResourceAlert) error {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	if alert.Timestamp.IsZero() {
		alert.Timestamp = time.Now().UTC()
	}

	var metadataJSON sql.NullString
	if len(alert.Metadata) > 0 {
		raw, err := json.Marshal(alert.Metadata)
		if err != nil {
			return fmt.Errorf("encode alert metadata: %w", err)
		}
		metadataJSON = sql.NullString{String: string(raw), Valid: true}
	}

	stmt, err := s.db.Prepare(`INSERT INTO resource_alerts
		(id, client_id, type, severity, value, threshold, message, timestamp, acknowledged, metadata_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(alert.ID, alert.ClientID, string(alert.Type), string(alert.Severity),
		alert.Value, alert.Threshold, alert.Message, formatTime(alert.Timestamp), alert.Acknowledged, metadataJSON)
	return err
}

// GetActiveAlerts returns unacknowledged alerts across all clients, newest
// first (severity breaks timestamp ties), capped at 50, with the owning
// client's company name joined in at read time.
func (s *AlertService) GetActiveAlerts() ([]models.ResourceAlert, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.client_id, c.company_name, a.type, a.severity, a.value, a.threshold,
		       a.message, a.timestamp, a.acknowledged, a.metadata_json
		FROM resource_alerts a
		JOIN clients c ON c.id = a.client_id
		WHERE a.acknowledged = 0
		ORDER BY a.timestamp DESC, `+severityRank+` DESC
		LIMIT ?`, globalAlertLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows, true)
}

// GetClientAlerts returns unacknowledged alerts for one client, newest first,
// capped at 20.
func (s *AlertService) GetClientAlerts(clientID string) ([]models.ResourceAlert, error) {
	rows, err := s.db.Query(`
		SELECT id, client_id, type, severity, value, threshold, message, timestamp, acknowledged, metadata_json
		FROM resource_alerts
		WHERE client_id = ? AND acknowledged = 0
		ORDER BY timestamp DESC, `+severityRank+` DESC
		LIMIT ?`, clientID, clientAlertLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows, false)
}

// AcknowledgeAlert flips the acknowledged flag and returns the updated
// record. Re-acknowledging is a no-op; an unknown id yields ErrNotFound.
func (s *AlertService) AcknowledgeAlert(alertID string) (models.ResourceAlert, error) {
	res, err := s.db.Exec("UPDATE resource_alerts SET acknowledged = 1 WHERE id = ?", alertID)
	if err != nil {
		return models.ResourceAlert{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.ResourceAlert{}, err
	}
	if affected == 0 {
		return models.ResourceAlert{}, fmt.Errorf("alert %s: %w", alertID, ErrNotFound)
	}

	row := s.db.QueryRow(`
		SELECT id, client_id, type, severity, value, threshold, message, timestamp, acknowledged, metadata_json
		FROM resource_alerts WHERE id = ?`, alertID)
	return scanAlert(row, false)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner, withCompany bool) (models.ResourceAlert, error) {
	var (
		alert        models.ResourceAlert
		alertType    string
		severity     string
		timestamp    string
		metadataJSON sql.NullString
	)

	dest := []any{&alert.ID, &alert.ClientID}
	if withCompany {
		dest = append(dest, &alert.CompanyName)
	}
	dest = append(dest, &alertType, &severity, &alert.Value, &alert.Threshold,
		&alert.Message, &timestamp, &alert.Acknowledged, &metadataJSON)

	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return models.ResourceAlert{}, ErrNotFound
		}
		return models.ResourceAlert{}, err
	}

	alert.Type = models.MetricType(alertType)
	alert.Severity = models.Severity(severity)

	ts, err := parseTime(timestamp)
	if err != nil {
		return models.ResourceAlert{}, fmt.Errorf("parse alert timestamp: %w", err)
	}
	alert.Timestamp = ts

	if metadataJSON.Valid {
		if err := json.Unmarshal([]byte(metadataJSON.String), &alert.Metadata); err != nil {
			return models.ResourceAlert{}, fmt.Errorf("decode alert metadata: %w", err)
		}
	}
	return alert, nil
}

func scanAlerts(rows *sql.Rows, withCompany bool) ([]models.ResourceAlert, error) {
	var alerts []models.ResourceAlert
	for rows.Next() {
		alert, err := scanAlert(rows, withCompany)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}
