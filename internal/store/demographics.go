package store

import (
	"context"
	"fmt"

	"github.com/shire-forum/shire/internal/database"
	"github.com/shire-forum/shire/internal/models"
)

// CountDemographics counts users in total and per race, class and gender.
// Each call returns freshly allocated maps.
func (s *Store) CountDemographics(ctx context.Context) (models.Demographics, error) {
	d := models.Demographics{}

	if _, err := s.db.QueryOne(ctx, func(row database.Scanner) error {
		return row.Scan(&d.Total)
	}, `SELECT count(*) FROM "user"`); err != nil {
		return d, fmt.Errorf("count users: %w", err)
	}

	var err error
	if d.Races, err = s.countBy(ctx, "race"); err != nil {
		return d, err
	}
	if d.Classes, err = s.countBy(ctx, "class"); err != nil {
		return d, err
	}
	if d.Genders, err = s.countBy(ctx, "gender"); err != nil {
		return d, err
	}
	return d, nil
}

// countBy groups users by column, which must be one of the fixed trait columns
func (s *Store) countBy(ctx context.Context, column string) (map[string]int, error) {
	switch column {
	case "race", "class", "gender":
	default:
		return nil, fmt.Errorf("cannot group users by %q", column)
	}

	counts := make(map[string]int)
	err := s.db.QueryAll(ctx, func(row database.Scanner) error {
		var (
			value string
			n     int
		)
		if err := row.Scan(&value, &n); err != nil {
			return err
		}
		counts[value] = n
		return nil
	}, `SELECT `+column+`, count(*) FROM "user" GROUP BY `+column)
	if err != nil {
		return nil, fmt.Errorf("count users by %s: %w", column, err)
	}
	return counts, nil
}
