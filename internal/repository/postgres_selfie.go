package repository

import (
	"context"
	"fmt"

	"github.com/glowtrack/glowtrack/internal/model"
)

// CreateSelfie records metadata for an uploaded selfie.
func (p *Postgres) CreateSelfie(ctx context.Context, selfie *model.Selfie) error {
	query := `
		INSERT INTO selfies (id, user_id, filename, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := p.pool.Exec(ctx, query,
		selfie.ID,
		selfie.UserID,
		selfie.Filename,
		selfie.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create selfie: %w", err)
	}

	return nil
}

// ListSelfies returns a user's selfies, newest first.
func (p *Postgres) ListSelfies(ctx context.Context, userID string) ([]*model.Selfie, error) {
	query := `
		SELECT id, user_id, filename, created_at
		FROM selfies
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list selfies: %w", err)
	}
	defer rows.Close()

	var selfies []*model.Selfie
	for rows.Next() {
		var selfie model.Selfie
		if err := rows.Scan(&selfie.ID, &selfie.UserID, &selfie.Filename, &selfie.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan selfie: %w", err)
		}
		selfies = append(selfies, &selfie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read selfies: %w", err)
	}

	return selfies, nil
}
