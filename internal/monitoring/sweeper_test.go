package monitoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianBello1/hosting/internal/models"
	"github.com/ChristianBello1/hosting/internal/plan"
)

type fakeClientStore struct {
	clients []models.Client
	err     error
}

func (f *fakeClientStore) CreateClient(companyName, email, domain string, tier plan.Tier) (models.Client, error) {
	return models.Client{}, nil
}

func (f *fakeClientStore) GetAllClients() ([]models.Client, error) { return f.clients, f.err }

func (f *fakeClientStore) GetClientByID(id string) (models.Client, error) {
	return models.Client{}, nil
}

func (f *fakeClientStore) UpdateClientPlan(id string, tier plan.Tier) (models.Client, error) {
	return models.Client{}, nil
}

func (f *fakeClientStore) UpdateClientStatus(id, status string) (models.Client, error) {
	return models.Client{}, nil
}

func TestNewSweeperRejectsBadSchedule(t *testing.T) {
	_, err := NewSweeper(nil, nil, "not a schedule")
	assert.Error(t, err)

	_, err = NewSweeper(nil, nil, "@every 5m")
	assert.NoError(t, err)

	_, err = NewSweeper(nil, nil, "*/5 * * * *")
	assert.NoError(t, err)
}

// Only active sites get a monitoring pass.
func TestSweepSkipsInactiveClients(t *testing.T) {
	store := &fakeAlertStore{}
	svc := newTestService(stressedSnapshot(), store, nil)

	clients := &fakeClientStore{clients: []models.Client{
		{ID: "active-1", SiteStatus: models.SiteStatusActive, Plan: plan.TierStandard},
		{ID: "suspended-1", SiteStatus: models.SiteStatusSuspended, Plan: plan.TierStandard},
		{ID: "failed-1", SiteStatus: models.SiteStatusDeploymentFailed, Plan: plan.TierStandard},
	}}

	sweeper, err := NewSweeper(svc, clients, "@every 1m")
	require.NoError(t, err)
	sweeper.sweep()

	// The stressed snapshot fires cpu and ram for the one active client.
	require.Len(t, store.created, 2)
	for _, alert := range store.created {
		assert.Equal(t, "active-1", alert.ClientID)
	}
}

func TestSweepToleratesClientQueryFailure(t *testing.T) {
	store := &fakeAlertStore{}
	svc := newTestService(stressedSnapshot(), store, nil)
	clients := &fakeClientStore{err: errors.New("database is locked")}

	sweeper, err := NewSweeper(svc, clients, "@every 1m")
	require.NoError(t, err)
	sweeper.sweep()

	assert.Empty(t, store.created)
}
