package monitoring

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/ChristianBello1/hosting/internal/models"
	"github.com/ChristianBello1/hosting/internal/services"
)

// Sweeper periodically runs the monitoring service over every active client
// so alerts keep accruing even when no dashboard is polling.
type Sweeper struct {
	monitorSvc *Service
	clientSvc  services.ClientServiceProvider
	schedule   cron.Schedule
	done       chan bool
}

// NewSweeper creates a sweeper firing on the given cron expression
// (descriptors like "@every 5m" are accepted).
func NewSweeper(monitorSvc *Service, clientSvc services.ClientServiceProvider, expr string) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", expr, err)
	}
	return &Sweeper{
		monitorSvc: monitorSvc,
		clientSvc:  clientSvc,
		schedule:   schedule,
		done:       make(chan bool),
	}, nil
}

// Run starts the sweep loop.
func (s *Sweeper) Run() {
	log.Info().Msg("Starting background monitoring sweeper...")
	for {
		timer := time.NewTimer(time.Until(s.schedule.Next(time.Now())))
		select {
		case <-s.done:
			timer.Stop()
			log.Info().Msg("Stopping background monitoring sweeper.")
			return
		case <-timer.C:
			s.sweep()
		}
	}
}

// Stop halts the sweep loop.
func (s *Sweeper) Stop() {
	s.done <- true
}

// sweep runs one monitoring pass over all active clients.
func (s *Sweeper) sweep() {
	clients, err := s.clientSvc.GetAllClients()
	if err != nil {
		log.Error().Err(err).Msg("Sweeper: failed to query clients")
		return
	}

	for _, client := range clients {
		if client.SiteStatus != models.SiteStatusActive {
			continue
		}
		_, alerts, err := s.monitorSvc.GetSystemResources(client.ID, client.Plan)
		if err != nil {
			log.Error().Err(err).Str("client_id", client.ID).Msg("Sweeper: monitoring pass failed")
			continue
		}
		if len(alerts) > 0 {
			log.Info().Str("client_id", client.ID).Int("alerts", len(alerts)).Msg("Sweeper: created resource alerts")
		}
	}
}
