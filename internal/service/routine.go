package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/glowtrack/glowtrack/internal/metrics"
	"github.com/glowtrack/glowtrack/internal/model"
	"github.com/glowtrack/glowtrack/internal/repository"
)

// RoutineService manages a user's ordered routine steps.
type RoutineService struct {
	store   repository.Store
	metrics metrics.Recorder
}

// NewRoutineService creates a new RoutineService.
func NewRoutineService(store repository.Store, recorder metrics.Recorder) *RoutineService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RoutineService{store: store, metrics: recorder}
}

// AddStep appends a step with the next number from the user's order
// sequence. A name that is empty after trimming is a silent no-op; the
// returned bool reports whether a step was added. Orders are never
// resequenced, so a deleted step's order is never reused.
func (s *RoutineService) AddStep(ctx context.Context, userID, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	order, err := s.store.NextStepOrder(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("next step order: %w", err)
	}

	step := &model.RoutineStep{
		ID:        model.NewID(),
		UserID:    userID,
		StepName:  name,
		StepOrder: order,
	}

	if err := s.store.CreateRoutineStep(ctx, step); err != nil {
		return false, fmt.Errorf("create step: %w", err)
	}

	s.metrics.IncStepAdded()
	return true, nil
}

// ListSteps returns the user's steps ordered by step order ascending.
func (s *RoutineService) ListSteps(ctx context.Context, userID string) ([]*model.RoutineStep, error) {
	steps, err := s.store.ListRoutineSteps(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	return steps, nil
}

// DeleteStep removes a step if it belongs to the user. Nonexistent and
// foreign steps are silently ignored; the caller sees the same confirmation
// either way.
func (s *RoutineService) DeleteStep(ctx context.Context, userID, stepID string) error {
	if err := s.store.DeleteRoutineStep(ctx, userID, stepID); err != nil {
		return fmt.Errorf("delete step: %w", err)
	}
	s.metrics.IncStepDeleted()
	return nil
}
