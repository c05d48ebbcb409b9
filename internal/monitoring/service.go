package monitoring

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ChristianBello1/hosting/internal/models"
	"github.com/ChristianBello1/hosting/internal/plan"
	"github.com/ChristianBello1/hosting/internal/services"
)

// AlertNotifier pushes newly created alerts to connected dashboards.
type AlertNotifier interface {
	NotifyAlert(alert models.ResourceAlert)
}

// Service orchestrates snapshot generation, threshold evaluation and alert
// persistence for the monitoring API.
type Service struct {
	snapshots Snapshotter
	evaluator *Evaluator
	alertSvc  services.AlertServiceProvider
	notifier  AlertNotifier // optional
}

// NewService creates a monitoring Service. notifier may be nil.
func NewService(snapshots Snapshotter, evaluator *Evaluator, alertSvc services.AlertServiceProvider, notifier AlertNotifier) *Service {
	return &Service{
		snapshots: snapshots,
		evaluator: evaluator,
		alertSvc:  alertSvc,
		notifier:  notifier,
	}
}

// GetSystemResources generates a fresh snapshot for the client and persists
// an alert for every metric over its plan threshold. It returns the raw
// snapshot and the newly created alerts (nil when none fired).
//
// This is a side-effecting read: calling it both fetches current readings
// and may create alert rows, so it is not idempotent. Repeated calls while a
// metric stays over threshold create a new alert each time; there is no
// suppression window.
func (s *Service) GetSystemResources(clientID string, tier plan.Tier) (models.ResourceSnapshot, []models.ResourceAlert, error) {
	snapshot, err := s.snapshots.Snapshot(clientID, tier)
	if err != nil {
		return models.ResourceSnapshot{}, nil, err
	}

	// Evaluation order is fixed: cpu, ram, disk.
	checks := []struct {
		metric models.MetricType
		value  float64
	}{
		{models.MetricCPU, float64(snapshot.CPU.Usage)},
		{models.MetricRAM, snapshot.RAM.UsedPercent()},
		{models.MetricDisk, snapshot.Disk.UsedPercent()},
	}

	var (
		created    []models.ResourceAlert
		fired      int
		persistErr error
	)
	for _, check := range checks {
		verdict, err := s.evaluator.Evaluate(check.metric, check.value, tier)
		if err != nil {
			return models.ResourceSnapshot{}, nil, err
		}
		if verdict == nil {
			continue
		}
		fired++

		alert := models.ResourceAlert{
			ClientID:  clientID,
			Type:      check.metric,
			Severity:  verdict.Severity,
			Value:     check.value,
			Threshold: verdict.Threshold,
			Message:   verdict.Message,
		}

		// Each metric's alert is an independent unit of work: one failed
		// write must not block the remaining metrics.
		if err := s.alertSvc.CreateAlert(&alert); err != nil {
			log.Error().Err(err).Str("client_id", clientID).Str("metric", string(check.metric)).Msg("Failed to persist resource alert")
			persistErr = err
			continue
		}
		created = append(created, alert)

		if s.notifier != nil {
			s.notifier.NotifyAlert(alert)
		}
	}

	// All writes failing means the store is unreachable; surface that.
	if fired > 0 && len(created) == 0 && persistErr != nil {
		return models.ResourceSnapshot{}, nil, fmt.Errorf("persist resource alerts: %w", persistErr)
	}
	return snapshot, created, nil
}
