package controller

import (
	"context"
	"sync"

	"finboard/internal/core"
	"finboard/internal/log"
)

// SyncState describes how the local notification view relates to the
// server. PendingAck means an optimistic mark-read has not been confirmed;
// the divergence lasts at most until the next poll.
type SyncState int

const (
	Synced SyncState = iota
	PendingAck
)

func (s SyncState) String() string {
	if s == PendingAck {
		return "pending-ack"
	}
	return "synced"
}

// Notifications maintains the unread list and badge count. Mark-read
// operations apply locally first and are sent to the server afterwards; a
// failed acknowledgement is not rolled back, the next poll reconciles.
type Notifications struct {
	api    NotificationsAPI
	logger *log.Logger

	mu     sync.Mutex
	seq    uint64
	unread []core.Notification
	count  int
	sync   SyncState
}

func NewNotifications(a NotificationsAPI, logger *log.Logger) *Notifications {
	return &Notifications{
		api:    a,
		logger: logger.WithComponent(log.ComponentNotifications),
	}
}

// RefreshCount updates the badge from the server. Stale responses from
// overlapping refreshes are discarded.
func (c *Notifications) RefreshCount(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	ticket := c.seq
	c.mu.Unlock()

	count, err := c.api.UnreadCount(ctx)
	if err != nil {
		c.logger.Warn("refresh unread count", log.FieldError, err)
		return err
	}
	if discard(ctx) {
		return ctx.Err()
	}

	c.mu.Lock()
	if ticket == c.seq {
		c.count = count
		c.sync = Synced
	}
	c.mu.Unlock()
	return nil
}

// LoadUnread replaces the dropdown list with the server's view.
func (c *Notifications) LoadUnread(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	ticket := c.seq
	c.mu.Unlock()

	unread, err := c.api.UnreadNotifications(ctx)
	if err != nil {
		c.logger.Error("load unread notifications", log.FieldOperation, log.OpLoad, log.FieldError, err)
		return err
	}
	if discard(ctx) {
		return ctx.Err()
	}

	c.mu.Lock()
	if ticket == c.seq {
		c.unread = unread
		c.count = len(unread)
		c.sync = Synced
	}
	c.mu.Unlock()
	return nil
}

// MarkRead removes a notification locally, then acknowledges it. The local
// removal stands even if the acknowledgement fails.
func (c *Notifications) MarkRead(ctx context.Context, id int64) error {
	c.mu.Lock()
	removed := false
	kept := c.unread[:0:0]
	for _, n := range c.unread {
		if n.ID == id {
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	hadList := len(c.unread) > 0
	c.unread = kept
	// When only the badge is loaded there is no list to remove from; trust
	// the caller. With a loaded list, an id not present (a double ack) must
	// not drag the count below the server's view.
	if (removed || !hadList) && c.count > 0 {
		c.count--
	}
	c.sync = PendingAck
	c.mu.Unlock()

	if err := c.api.MarkRead(ctx, id); err != nil {
		c.logger.Warn("acknowledge notification", log.FieldOperation, log.OpAck, log.FieldEntityID, id, log.FieldError, err)
		return err
	}

	c.mu.Lock()
	c.sync = Synced
	c.mu.Unlock()
	return nil
}

// MarkAllRead clears the local list and badge, then acknowledges.
func (c *Notifications) MarkAllRead(ctx context.Context) error {
	c.mu.Lock()
	c.unread = nil
	c.count = 0
	c.sync = PendingAck
	c.mu.Unlock()

	if err := c.api.MarkAllRead(ctx); err != nil {
		c.logger.Warn("acknowledge all notifications", log.FieldOperation, log.OpAck, log.FieldError, err)
		return err
	}

	c.mu.Lock()
	c.sync = Synced
	c.mu.Unlock()
	return nil
}

// Reset drops all local notification state. Called on logout.
func (c *Notifications) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.unread = nil
	c.count = 0
	c.sync = Synced
}

func (c *Notifications) Unread() []core.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Notification, len(c.unread))
	copy(out, c.unread)
	return out
}

func (c *Notifications) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func (c *Notifications) SyncState() SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sync
}
