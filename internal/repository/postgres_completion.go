package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/glowtrack/glowtrack/internal/model"
)

// InsertCompletion records a completion for a calendar day.
// The (user_id, completed_date) unique constraint makes this idempotent:
// a duplicate insert is silently ignored.
func (p *Postgres) InsertCompletion(ctx context.Context, completion *model.Completion) error {
	query := `
		INSERT INTO daily_completions (id, user_id, completed_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, completed_date) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		completion.ID,
		completion.UserID,
		Day(completion.CompletedDate),
	)

	if err != nil {
		return fmt.Errorf("failed to insert completion: %w", err)
	}

	return nil
}

// ListCompletionDates returns a user's distinct completion days ascending.
func (p *Postgres) ListCompletionDates(ctx context.Context, userID string) ([]time.Time, error) {
	query := `
		SELECT completed_date
		FROM daily_completions
		WHERE user_id = $1
		ORDER BY completed_date
	`

	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completion dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan completion date: %w", err)
		}
		dates = append(dates, Day(d))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read completion dates: %w", err)
	}

	return dates, nil
}
