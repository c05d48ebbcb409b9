package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianBello1/hosting/internal/models"
	"github.com/ChristianBello1/hosting/internal/plan"
)

func TestCreateClientScaffoldsSite(t *testing.T) {
	db := newTestDB(t)
	sitesDir := t.TempDir()
	svc := NewClientService(db, plan.DefaultCatalog(), sitesDir)

	client, err := svc.CreateClient("Acme Corp", "ops@acme.test", "acme.test", plan.TierPro)
	require.NoError(t, err)

	assert.NotEmpty(t, client.ID)
	assert.Equal(t, "Acme Corp", client.CompanyName)
	assert.Equal(t, plan.TierPro, client.Plan)
	assert.Equal(t, models.SiteStatusActive, client.SiteStatus)
	assert.False(t, client.CreatedAt.IsZero())

	index, err := os.ReadFile(filepath.Join(sitesDir, client.ID, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "Acme Corp")
}

func TestCreateClientUnknownTier(t *testing.T) {
	db := newTestDB(t)
	svc := newTestClientService(t, db)

	_, err := svc.CreateClient("Acme Corp", "ops@acme.test", "acme.test", "enterprise")
	assert.ErrorIs(t, err, plan.ErrUnknownTier)
}

func TestCreateClientScaffoldFailureMarksDeploymentFailed(t *testing.T) {
	db := newTestDB(t)
	sitesDir := filepath.Join(t.TempDir(), "blocked")
	// A regular file where the sites root should be makes MkdirAll fail.
	require.NoError(t, os.WriteFile(sitesDir, []byte("not a directory"), 0644))
	svc := NewClientService(db, plan.DefaultCatalog(), sitesDir)

	client, err := svc.CreateClient("Acme Corp", "ops@acme.test", "acme.test", plan.TierStandard)
	require.NoError(t, err)
	assert.Equal(t, models.SiteStatusDeploymentFailed, client.SiteStatus)
}

func TestGetAllClientsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newTestClientService(t, db)

	first := seedClient(t, svc, "Acme Corp", "ops@acme.test", "acme.test", plan.TierStandard)
	second := seedClient(t, svc, "Globex", "ops@globex.test", "globex.test", plan.TierPro)

	clients, err := svc.GetAllClients()
	require.NoError(t, err)
	require.Len(t, clients, 2)

	ids := []string{clients[0].ID, clients[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestGetClientByID(t *testing.T) {
	db := newTestDB(t)
	svc := newTestClientService(t, db)
	created := seedClient(t, svc, "Acme Corp", "ops@acme.test", "acme.test", plan.TierStandard)

	found, err := svc.GetClientByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "acme.test", found.Domain)

	_, err = svc.GetClientByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateClientPlan(t *testing.T) {
	db := newTestDB(t)
	svc := newTestClientService(t, db)
	created := seedClient(t, svc, "Acme Corp", "ops@acme.test", "acme.test", plan.TierStandard)

	updated, err := svc.UpdateClientPlan(created.ID, plan.TierProPlus)
	require.NoError(t, err)
	assert.Equal(t, plan.TierProPlus, updated.Plan)

	_, err = svc.UpdateClientPlan(created.ID, "enterprise")
	assert.ErrorIs(t, err, plan.ErrUnknownTier)

	_, err = svc.UpdateClientPlan("missing", plan.TierPro)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateClientStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newTestClientService(t, db)
	created := seedClient(t, svc, "Acme Corp", "ops@acme.test", "acme.test", plan.TierStandard)

	updated, err := svc.UpdateClientStatus(created.ID, models.SiteStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, models.SiteStatusSuspended, updated.SiteStatus)

	_, err = svc.UpdateClientStatus(created.ID, "exploded")
	require.Error(t, err)

	_, err = svc.UpdateClientStatus("missing", models.SiteStatusActive)
	assert.ErrorIs(t, err, ErrNotFound)
}
