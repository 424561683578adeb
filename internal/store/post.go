package store

import (
	"context"
	"fmt"

	"github.com/shire-forum/shire/internal/database"
	"github.com/shire-forum/shire/internal/models"
)

// ListPosts returns the posts of a quest, oldest first, with author names
func (s *Store) ListPosts(ctx context.Context, questID int64) ([]models.Post, error) {
	posts := []models.Post{}
	err := s.db.QueryAll(ctx, func(row database.Scanner) error {
		var p models.Post
		if err := row.Scan(&p.ID, &p.AuthorID, &p.QuestID, &p.Text, &p.AuthorName); err != nil {
			return err
		}
		posts = append(posts, p)
		return nil
	}, `SELECT p.post_id, p.author_id, p.quest_id, p.text, u.username
		FROM post p
		JOIN "user" u ON p.author_id = u.user_id
		WHERE p.quest_id = ?
		ORDER BY p.post_id`, questID)
	if err != nil {
		return nil, fmt.Errorf("list posts for quest %d: %w", questID, err)
	}
	return posts, nil
}

// CreatePost appends a post by authorID to questID
func (s *Store) CreatePost(ctx context.Context, authorID, questID int64, text string) (models.Post, error) {
	p := models.Post{AuthorID: authorID, QuestID: questID, Text: text}
	_, err := s.db.QueryOne(ctx, func(row database.Scanner) error {
		return row.Scan(&p.ID)
	}, `INSERT INTO post (author_id, quest_id, text) VALUES (?, ?, ?) RETURNING post_id`,
		authorID, questID, text)
	if err != nil {
		return models.Post{}, fmt.Errorf("create post in quest %d: %w", questID, err)
	}
	return p, nil
}
