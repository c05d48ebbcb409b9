package monitoring

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianBello1/hosting/internal/models"
	"github.com/ChristianBello1/hosting/internal/plan"
)

// stubSnapshotter returns a canned snapshot instead of a synthesized one.
type stubSnapshotter struct {
	snapshot models.ResourceSnapshot
	err      error
}

func (s *stubSnapshotter) Snapshot(clientID string, tier plan.Tier) (models.ResourceSnapshot, error) {
	return s.snapshot, s.err
}

// fakeAlertStore records created alerts in memory and can be told to fail
// writes for specific metrics.
type fakeAlertStore struct {
	created []models.ResourceAlert
	failOn  map[models.MetricType]error
}

func (f *fakeAlertStore) CreateAlert(alert *models.ResourceAlert) error {
	if err := f.failOn[alert.Type]; err != nil {
		return err
	}
	alert.ID = uuid.NewString()
	f.created = append(f.created, *alert)
	return nil
}

func (f *fakeAlertStore) GetActiveAlerts() ([]models.ResourceAlert, error) { return nil, nil }

func (f *fakeAlertStore) GetClientAlerts(clientID string) ([]models.ResourceAlert, error) {
	return nil, nil
}

func (f *fakeAlertStore) AcknowledgeAlert(alertID string) (models.ResourceAlert, error) {
	return models.ResourceAlert{}, nil
}

type recordingNotifier struct {
	alerts []models.ResourceAlert
}

func (r *recordingNotifier) NotifyAlert(alert models.ResourceAlert) {
	r.alerts = append(r.alerts, alert)
}

func calmSnapshot() models.ResourceSnapshot {
	return models.ResourceSnapshot{
		CPU:  models.CPUReading{Usage: 35, Cores: 8},
		RAM:  models.GaugeReading{Used: 400, Total: 1024}, // ~39%
		Disk: models.GaugeReading{Used: 4, Total: 10},     // 40%
	}
}

func stressedSnapshot() models.ResourceSnapshot {
	return models.ResourceSnapshot{
		CPU:  models.CPUReading{Usage: 92, Cores: 8},       // critical on standard
		RAM:  models.GaugeReading{Used: 900, Total: 1024}, // ~87.9%, high
		Disk: models.GaugeReading{Used: 4, Total: 10},      // within bounds
	}
}

func newTestService(snap models.ResourceSnapshot, store *fakeAlertStore, notifier AlertNotifier) *Service {
	return NewService(&stubSnapshotter{snapshot: snap}, newEvaluator(), store, notifier)
}

func TestGetSystemResourcesNoAlertsWhenHealthy(t *testing.T) {
	store := &fakeAlertStore{}
	svc := newTestService(calmSnapshot(), store, nil)

	snapshot, created, err := svc.GetSystemResources("acme", plan.TierStandard)
	require.NoError(t, err)
	assert.Equal(t, calmSnapshot(), snapshot)
	assert.Nil(t, created)
	assert.Empty(t, store.created)
}

func TestGetSystemResourcesCreatesAlertsOverThreshold(t *testing.T) {
	store := &fakeAlertStore{}
	notifier := &recordingNotifier{}
	svc := newTestService(stressedSnapshot(), store, notifier)

	snapshot, created, err := svc.GetSystemResources("acme", plan.TierStandard)
	require.NoError(t, err)
	assert.Equal(t, stressedSnapshot(), snapshot)

	require.Len(t, created, 2)
	cpu, ram := created[0], created[1]

	assert.Equal(t, models.MetricCPU, cpu.Type)
	assert.Equal(t, models.SeverityCritical, cpu.Severity)
	assert.Equal(t, 92.0, cpu.Value)
	assert.Equal(t, 80.0, cpu.Threshold)
	assert.Equal(t, "acme", cpu.ClientID)
	assert.NotEmpty(t, cpu.ID)

	assert.Equal(t, models.MetricRAM, ram.Type)
	assert.Equal(t, models.SeverityHigh, ram.Severity)
	assert.Equal(t, 85.0, ram.Threshold)
	assert.InDelta(t, 87.9, ram.Value, 0.1)

	assert.Equal(t, created, store.created)
	assert.Equal(t, created, notifier.alerts)
}

// A higher tier sees no alerts at the same load.
func TestGetSystemResourcesRespectsTier(t *testing.T) {
	store := &fakeAlertStore{}
	svc := newTestService(models.ResourceSnapshot{
		CPU:  models.CPUReading{Usage: 85, Cores: 8},
		RAM:  models.GaugeReading{Used: 900, Total: 1024},
		Disk: models.GaugeReading{Used: 4, Total: 10},
	}, store, nil)

	_, created, err := svc.GetSystemResources("acme", plan.TierProPlus)
	require.NoError(t, err)
	assert.Nil(t, created)
	assert.Empty(t, store.created)
}

// One failed write must not block the remaining metrics.
func TestGetSystemResourcesPartialPersistFailure(t *testing.T) {
	store := &fakeAlertStore{failOn: map[models.MetricType]error{
		models.MetricCPU: errors.New("disk full"),
	}}
	svc := newTestService(stressedSnapshot(), store, nil)

	_, created, err := svc.GetSystemResources("acme", plan.TierStandard)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, models.MetricRAM, created[0].Type)
}

// Every write failing means the store is unreachable.
func TestGetSystemResourcesTotalPersistFailure(t *testing.T) {
	boom := errors.New("database is locked")
	store := &fakeAlertStore{failOn: map[models.MetricType]error{
		models.MetricCPU: boom,
		models.MetricRAM: boom,
	}}
	svc := newTestService(stressedSnapshot(), store, nil)

	_, _, err := svc.GetSystemResources("acme", plan.TierStandard)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestGetSystemResourcesSnapshotError(t *testing.T) {
	svc := NewService(&stubSnapshotter{err: plan.ErrUnknownTier}, newEvaluator(), &fakeAlertStore{}, nil)

	_, _, err := svc.GetSystemResources("acme", "enterprise")
	assert.ErrorIs(t, err, plan.ErrUnknownTier)
}
