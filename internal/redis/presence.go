package redis

import (
	"context"
	"fmt"
)

const activeUsersKey = "active_users"

// MarkActive records username as signed in
func (c *Client) MarkActive(ctx context.Context, username string) error {
	if err := c.SAdd(ctx, activeUsersKey, username).Err(); err != nil {
		return fmt.Errorf("failed to add to active users: %w", err)
	}
	return nil
}

// MarkInactive removes username from the signed-in set
func (c *Client) MarkInactive(ctx context.Context, username string) error {
	if err := c.SRem(ctx, activeUsersKey, username).Err(); err != nil {
		return fmt.Errorf("failed to remove from active users: %w", err)
	}
	return nil
}

// ActiveCount returns the number of signed-in users
func (c *Client) ActiveCount(ctx context.Context) (int64, error) {
	count, err := c.SCard(ctx, activeUsersKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get active users count: %w", err)
	}
	return count, nil
}
