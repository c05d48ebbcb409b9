package services

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ChristianBello1/hosting/internal/models"
	"github.com/ChristianBello1/hosting/internal/plan"
)

// ClientServiceProvider defines the interface for client services.
type ClientServiceProvider interface {
	CreateClient(companyName, email, domain string, tier plan.Tier) (models.Client, error)
	GetAllClients() ([]models.Client, error)
	GetClientByID(id string) (models.Client, error)
	UpdateClientPlan(id string, tier plan.Tier) (models.Client, error)
	UpdateClientStatus(id, status string) (models.Client, error)
}

// ClientService provides business logic for client (site) management.
type ClientService struct {
	db       *sql.DB
	catalog  *plan.Catalog
	sitesDir string
}

// NewClientService creates a new ClientService.
func NewClientService(db *sql.DB, catalog *plan.Catalog, sitesDir string) *ClientService {
	return &ClientService{db: db, catalog: catalog, sitesDir: sitesDir}
}

// CreateClient registers a new client site and scaffolds its site directory
// with a placeholder page. The site lands in "active" status, or
// "deployment_failed" when the scaffold could not be written.
func (s *ClientService) CreateClient(companyName, email, domain string, tier plan.Tier) (models.Client, error) {
	if !s.catalog.Has(tier) {
		return models.Client{}, fmt.Errorf("%w: %q", plan.ErrUnknownTier, tier)
	}

	now := time.Now().UTC()
	client := models.Client{
		ID:          uuid.New().String(),
		CompanyName: companyName,
		Email:       email,
		Domain:      domain,
		SiteStatus:  models.SiteStatusCreating,
		Plan:        tier,
		CreatedAt:   now,
		LastUpdate:  now,
	}

	stmt, err := s.db.Prepare(`INSERT INTO clients
		(id, company_name, email, domain, site_status, plan, created_at, last_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Client{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(client.ID, client.CompanyName, client.Email, client.Domain,
		client.SiteStatus, string(client.Plan), formatTime(client.CreatedAt), formatTime(client.LastUpdate))
	if err != nil {
		return models.Client{}, err
	}

	status := models.SiteStatusActive
	if err := s.scaffoldSite(client); err != nil {
		log.Error().Err(err).Str("client_id", client.ID).Str("domain", client.Domain).Msg("Failed to scaffold site directory")
		status = models.SiteStatusDeploymentFailed
	}
	return s.UpdateClientStatus(client.ID, status)
}

// scaffoldSite creates the client's site directory with a starter index page.
func (s *ClientService) scaffoldSite(client models.Client) error {
	clientDir := filepath.Join(s.sitesDir, client.ID)
	if err := os.MkdirAll(clientDir, 0755); err != nil {
		return err
	}

	index := fmt.Sprintf(`<!DOCTYPE html>
<html>
  <head>
    <title>%s</title>
    <meta charset="utf-8">
  </head>
  <body>
    <h1>%s</h1>
    <p>This site is under construction.</p>
  </body>
</html>
`, client.CompanyName, client.CompanyName)

	return os.WriteFile(filepath.Join(clientDir, "index.html"), []byte(index), 0644)
}

// GetAllClients retrieves every client, newest first.
func (s *ClientService) GetAllClients() ([]models.Client, error) {
	rows, err := s.db.Query(`
		SELECT id, company_name, email, domain, site_status, plan, created_at, last_update
		FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

// GetClientByID retrieves a single client by its ID.
func (s *ClientService) GetClientByID(id string) (models.Client, error) {
	row := s.db.QueryRow(`
		SELECT id, company_name, email, domain, site_status, plan, created_at, last_update
		FROM clients WHERE id = ?`, id)
	client, err := scanClient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Client{}, fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		return models.Client{}, err
	}
	return client, nil
}

// UpdateClientPlan changes a client's subscription tier.
func (s *ClientService) UpdateClientPlan(id string, tier plan.Tier) (models.Client, error) {
	if !s.catalog.Has(tier) {
		return models.Client{}, fmt.Errorf("%w: %q", plan.ErrUnknownTier, tier)
	}
	return s.updateField(id, "plan", string(tier))
}

// UpdateClientStatus changes a client's site status.
func (s *ClientService) UpdateClientStatus(id, status string) (models.Client, error) {
	if !models.ValidSiteStatus(status) {
		return models.Client{}, fmt.Errorf("invalid site status %q", status)
	}
	return s.updateField(id, "site_status", status)
}

func (s *ClientService) updateField(id, column, value string) (models.Client, error) {
	res, err := s.db.Exec("UPDATE clients SET "+column+" = ?, last_update = ? WHERE id = ?",
		value, formatTime(time.Now()), id)
	if err != nil {
		return models.Client{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Client{}, err
	}
	if affected == 0 {
		return models.Client{}, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	return s.GetClientByID(id)
}

func scanClient(row rowScanner) (models.Client, error) {
	var (
		client    models.Client
		tier      string
		createdAt string
		updatedAt string
	)
	err := row.Scan(&client.ID, &client.CompanyName, &client.Email, &client.Domain,
		&client.SiteStatus, &tier, &createdAt, &updatedAt)
	if err != nil {
		return models.Client{}, err
	}

	client.Plan = plan.Tier(tier)
	if client.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Client{}, fmt.Errorf("parse client created_at: %w", err)
	}
	if client.LastUpdate, err = parseTime(updatedAt); err != nil {
		return models.Client{}, fmt.Errorf("parse client last_update: %w", err)
	}
	return client, nil
}
