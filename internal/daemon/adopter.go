package daemon

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/1broseidon/spotlightd/internal/platform"
	"github.com/1broseidon/spotlightd/internal/spotlight"
)

// AdopterConfig holds configuration for the window adopter.
type AdopterConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Adopter periodically scans the screen for configured spotlight windows
// that have appeared since the last pass and registers them with the
// manager. Registration is idempotent, so a window adopted on an earlier
// pass stays untouched.
type Adopter struct {
	interval time.Duration
	manager  *spotlight.Manager
	toolkit  platform.Toolkit
	labels   []string
	logger   *slog.Logger
}

// NewAdopter creates an adopter that watches for the given labels.
func NewAdopter(cfg AdopterConfig, manager *spotlight.Manager, toolkit platform.Toolkit, labels []string) *Adopter {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &Adopter{
		interval: interval,
		manager:  manager,
		toolkit:  toolkit,
		labels:   labels,
		logger:   cfg.Logger,
	}
}

// Run starts the adoption loop. Blocks until context is cancelled.
func (a *Adopter) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.logger.Info("window adopter started", "interval", a.interval, "labels", a.labels)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("window adopter stopped")
			return
		case <-ticker.C:
			a.adopt()
		}
	}
}

// AdoptNow triggers an immediate adoption pass.
func (a *Adopter) AdoptNow() {
	a.adopt()
}

// adopt performs a single adoption pass.
func (a *Adopter) adopt() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			a.logger.Error("adopter panic recovered", "error", err)
		}
	}()

	registered := make(map[string]bool)
	for _, label := range a.manager.Labels() {
		registered[label] = true
	}

	for _, label := range a.labels {
		if registered[label] {
			continue
		}

		win, err := a.toolkit.Window(label)
		if err != nil {
			if errors.Is(err, platform.ErrWindowNotFound) {
				continue
			}
			a.logger.Error("adopter: window lookup failed", "label", label, "error", err)
			continue
		}

		if err := a.manager.Init(win); err != nil {
			a.logger.Error("adopter: failed to register window", "label", label, "error", err)
			continue
		}
		a.logger.Info("adopted spotlight window", "label", label)
	}
}
