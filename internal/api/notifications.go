package api

import (
	"context"
	"fmt"

	"finboard/internal/core"
)

func (c *Client) ListNotifications(ctx context.Context) ([]core.Notification, error) {
	var notifications []core.Notification
	if err := c.get(ctx, "/notifications", nil, &notifications); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (c *Client) UnreadNotifications(ctx context.Context) ([]core.Notification, error) {
	var notifications []core.Notification
	if err := c.get(ctx, "/notifications/unread", nil, &notifications); err != nil {
		return nil, fmt.Errorf("unread notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns the badge number for the navigation chrome.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/notifications/count", nil, &resp); err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return resp.Count, nil
}

// MarkRead acknowledges one notification.
func (c *Client) MarkRead(ctx context.Context, id int64) error {
	if err := c.patch(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, nil); err != nil {
		return fmt.Errorf("mark notification %d read: %w", id, err)
	}
	return nil
}

// MarkAllRead acknowledges every unread notification.
func (c *Client) MarkAllRead(ctx context.Context) error {
	if err := c.patch(ctx, "/notifications/read-all", nil, nil); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
