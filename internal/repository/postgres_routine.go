package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/glowtrack/glowtrack/internal/model"
)

// CreateRoutineStep inserts a routine step. The caller assigns StepOrder
// from NextStepOrder.
func (p *Postgres) CreateRoutineStep(ctx context.Context, step *model.RoutineStep) error {
	query := `
		INSERT INTO routine_steps (id, user_id, step_name, step_order)
		VALUES ($1, $2, $3, $4)
	`

	_, err := p.pool.Exec(ctx, query,
		step.ID,
		step.UserID,
		step.StepName,
		step.StepOrder,
	)

	if err != nil {
		return fmt.Errorf("failed to create routine step: %w", err)
	}

	return nil
}

// NextStepOrder increments and returns the user's step-order sequence.
// The sequence only ever moves forward, so orders left by deleted steps
// are never reused.
func (p *Postgres) NextStepOrder(ctx context.Context, userID string) (int, error) {
	query := `
		UPDATE users
		SET step_order_seq = step_order_seq + 1
		WHERE id = $1
		RETURNING step_order_seq
	`

	var order int
	if err := p.pool.QueryRow(ctx, query, userID).Scan(&order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to advance step order sequence: %w", err)
	}

	return order, nil
}

// ListRoutineSteps returns a user's steps ordered by step order ascending.
func (p *Postgres) ListRoutineSteps(ctx context.Context, userID string) ([]*model.RoutineStep, error) {
	query := `
		SELECT id, user_id, step_name, step_order
		FROM routine_steps
		WHERE user_id = $1
		ORDER BY step_order
	`

	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list routine steps: %w", err)
	}
	defer rows.Close()

	var steps []*model.RoutineStep
	for rows.Next() {
		var step model.RoutineStep
		if err := rows.Scan(&step.ID, &step.UserID, &step.StepName, &step.StepOrder); err != nil {
			return nil, fmt.Errorf("failed to scan routine step: %w", err)
		}
		steps = append(steps, &step)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read routine steps: %w", err)
	}

	return steps, nil
}

// CountRoutineSteps returns the number of steps in a user's routine.
func (p *Postgres) CountRoutineSteps(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM routine_steps
		WHERE user_id = $1
	`

	var count int
	if err := p.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count routine steps: %w", err)
	}

	return count, nil
}

// DeleteRoutineStep deletes a step only if it belongs to the user.
// Deleting a nonexistent or foreign step is a silent no-op.
func (p *Postgres) DeleteRoutineStep(ctx context.Context, userID, stepID string) error {
	query := `
		DELETE FROM routine_steps
		WHERE id = $1 AND user_id = $2
	`

	if _, err := p.pool.Exec(ctx, query, stepID, userID); err != nil {
		return fmt.Errorf("failed to delete routine step: %w", err)
	}

	return nil
}
