package status

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"legaldraft/drafter/internal/generation"
	"legaldraft/drafter/internal/metrics"
	"legaldraft/drafter/internal/models"
)

// how long a single health probe may take
const checkTimeout = 10 * time.Second

// Upstream is the last known state of the generation service
type Upstream struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	CheckedAt time.Time `json:"checked_at,omitempty"`
}

func (u Upstream) Online() bool {
	return u.Status == models.UpstreamOnline
}

// Monitor probes GET /health on a cron schedule
type Monitor struct {
	client   generation.Client
	schedule string
	logger   *zap.Logger
	cron     *cron.Cron

	mu       sync.RWMutex
	upstream Upstream
}

// NewMonitor creates a monitor; an empty schedule leaves it disabled
func NewMonitor(client generation.Client, schedule string, logger *zap.Logger) *Monitor {
	return &Monitor{
		client:   client,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(),
		upstream: Upstream{Status: models.UpstreamUnknown},
	}
}

func (m *Monitor) Enabled() bool {
	return m.schedule != ""
}

// Start runs one check immediately and then schedules the rest
func (m *Monitor) Start() error {
	if !m.Enabled() {
		m.logger.Info("Upstream status monitor disabled")
		return nil
	}

	_, err := m.cron.AddFunc(m.schedule, func() {
		m.RunCheck(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule status check: %w", err)
	}

	go m.RunCheck(context.Background())
	m.cron.Start()
	m.logger.Info("Upstream status monitor started", zap.String("schedule", m.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running check to finish
func (m *Monitor) Stop() {
	if m.cron != nil {
		<-m.cron.Stop().Done()
	}
}

// RunCheck performs a single health probe and records the outcome
func (m *Monitor) RunCheck(ctx context.Context) Upstream {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	next := Upstream{CheckedAt: time.Now()}
	health, err := m.client.Health(ctx)
	switch {
	case err != nil:
		next.Status = models.UpstreamOffline
		next.Reason = err.Error()
	case health.Status != "healthy":
		next.Status = models.UpstreamOffline
		next.Reason = "service reported status " + health.Status
		next.Version = health.Version
	default:
		next.Status = models.UpstreamOnline
		next.Version = health.Version
	}

	m.mu.Lock()
	previous := m.upstream
	m.upstream = next
	m.mu.Unlock()

	metrics.SetUpstreamUp(next.Online())
	if previous.Status != next.Status {
		m.logger.Info("Generation service status changed",
			zap.String("from", previous.Status),
			zap.String("to", next.Status),
			zap.String("reason", next.Reason))
	}
	return next
}

// Status returns the last recorded upstream state
func (m *Monitor) Status() Upstream {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.upstream
}
