package store

import (
	"context"
	"fmt"

	"github.com/shire-forum/shire/internal/database"
	"github.com/shire-forum/shire/internal/models"
)

// ListQuests returns every quest with its number of posts
func (s *Store) ListQuests(ctx context.Context) ([]models.Quest, error) {
	quests := []models.Quest{}
	err := s.db.QueryAll(ctx, func(row database.Scanner) error {
		var q models.Quest
		if err := row.Scan(&q.ID, &q.Title, &q.PostCount); err != nil {
			return err
		}
		quests = append(quests, q)
		return nil
	}, `SELECT q.quest_id, q.title, count(p.post_id) AS post_count
		FROM quest q
		LEFT JOIN post p ON p.quest_id = q.quest_id
		GROUP BY q.quest_id, q.title
		ORDER BY q.quest_id`)
	if err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}
	return quests, nil
}

// GetQuest returns a single quest with its post count
func (s *Store) GetQuest(ctx context.Context, questID int64) (models.Quest, bool, error) {
	var q models.Quest
	found, err := s.db.QueryOne(ctx, func(row database.Scanner) error {
		return row.Scan(&q.ID, &q.Title, &q.PostCount)
	}, `SELECT q.quest_id, q.title, count(p.post_id)
		FROM quest q
		LEFT JOIN post p ON p.quest_id = q.quest_id
		WHERE q.quest_id = ?
		GROUP BY q.quest_id, q.title`, questID)
	if err != nil {
		return models.Quest{}, false, fmt.Errorf("get quest %d: %w", questID, err)
	}
	return q, found, nil
}

// CreateQuest inserts a quest. Duplicate titles are allowed.
func (s *Store) CreateQuest(ctx context.Context, title string) (models.Quest, error) {
	q := models.Quest{Title: title}
	_, err := s.db.QueryOne(ctx, func(row database.Scanner) error {
		return row.Scan(&q.ID)
	}, `INSERT INTO quest (title) VALUES (?) RETURNING quest_id`, title)
	if err != nil {
		return models.Quest{}, fmt.Errorf("create quest: %w", err)
	}
	return q, nil
}
