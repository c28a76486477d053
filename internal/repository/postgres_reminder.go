package repository

import (
	"context"
	"fmt"

	"github.com/glowtrack/glowtrack/internal/model"
)

// CreateReminder inserts a reminder. The time string is stored verbatim.
func (p *Postgres) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	query := `
		INSERT INTO reminders (id, user_id, reminder_time, enabled)
		VALUES ($1, $2, $3, $4)
	`

	_, err := p.pool.Exec(ctx, query,
		reminder.ID,
		reminder.UserID,
		reminder.ReminderTime,
		reminder.Enabled,
	)

	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}

	return nil
}

// ListReminders returns a user's reminders ordered by the stored time
// string. The sort is lexical because the format is unvalidated.
func (p *Postgres) ListReminders(ctx context.Context, userID string) ([]*model.Reminder, error) {
	query := `
		SELECT id, user_id, reminder_time, enabled
		FROM reminders
		WHERE user_id = $1
		ORDER BY reminder_time
	`

	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*model.Reminder
	for rows.Next() {
		var reminder model.Reminder
		if err := rows.Scan(&reminder.ID, &reminder.UserID, &reminder.ReminderTime, &reminder.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, &reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reminders: %w", err)
	}

	return reminders, nil
}

// DeleteReminder deletes a reminder only if it belongs to the user.
// Deleting a nonexistent or foreign reminder is a silent no-op.
func (p *Postgres) DeleteReminder(ctx context.Context, userID, reminderID string) error {
	query := `
		DELETE FROM reminders
		WHERE id = $1 AND user_id = $2
	`

	if _, err := p.pool.Exec(ctx, query, reminderID, userID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	return nil
}
