// Package notify runs the background notification poll that keeps the
// unread badge current while a user is signed in.
package notify

import (
	"context"
	"time"

	"finboard/internal/log"
)

// Source is the slice of the notification controller the poller drives.
type Source interface {
	RefreshCount(ctx context.Context) error
	Count() int
}

// Gate reports whether polling should happen at all. The session store
// satisfies it; polling while signed out would only produce 401s.
type Gate interface {
	IsAuthenticated() bool
}

// Poller refreshes the unread count on a fixed interval. One refresh fires
// immediately on Run so the badge is never blank while the first tick is
// pending.
type Poller struct {
	source   Source
	gate     Gate
	interval time.Duration
	logger   *log.Logger
}

func NewPoller(source Source, gate Gate, interval time.Duration, logger *log.Logger) *Poller {
	return &Poller{
		source:   source,
		gate:     gate,
		interval: interval,
		logger:   logger.WithComponent(log.ComponentPoller),
	}
}

// Run polls until ctx is cancelled. Refresh failures are logged and the
// loop keeps going; a dead server should not kill the badge forever.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("notification polling stopped", log.FieldOperation, log.OpShutdown)
			return ctx.Err()
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if !p.gate.IsAuthenticated() {
		return
	}
	if err := p.source.RefreshCount(ctx); err != nil {
		p.logger.Warn("notification refresh failed", log.FieldError, err)
		return
	}
	p.logger.Debug("unread count refreshed", log.FieldUnread, p.source.Count())
}
