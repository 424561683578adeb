package redis

import (
	"context"
	"fmt"

	"github.com/shire-forum/shire/internal/models"
)

const leaderboardPostsKey = "leaderboard:posts"

// RecordPost increments the post tally for username
func (c *Client) RecordPost(ctx context.Context, username string) error {
	if err := c.ZIncrBy(ctx, leaderboardPostsKey, 1, username).Err(); err != nil {
		return fmt.Errorf("failed to record post: %w", err)
	}
	return nil
}

// TopPosters returns the top N users by number of posts, highest first
func (c *Client) TopPosters(ctx context.Context, limit int64) ([]models.PosterRank, error) {
	if limit <= 0 {
		return nil, nil
	}
	entries, err := c.ZRevRangeWithScores(ctx, leaderboardPostsKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get top posters: %w", err)
	}

	ranks := make([]models.PosterRank, 0, len(entries))
	for i, z := range entries {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		ranks = append(ranks, models.PosterRank{
			Username: member,
			Posts:    int64(z.Score),
			Rank:     int64(i) + 1,
		})
	}
	return ranks, nil
}
