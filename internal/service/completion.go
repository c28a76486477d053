package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/glowtrack/glowtrack/internal/metrics"
	"github.com/glowtrack/glowtrack/internal/model"
	"github.com/glowtrack/glowtrack/internal/repository"
)

// CompletionService records daily completions and derives streak and
// insight statistics from them.
type CompletionService struct {
	store   repository.Store
	metrics metrics.Recorder
}

// NewCompletionService creates a new CompletionService.
func NewCompletionService(store repository.Store, recorder metrics.Recorder) *CompletionService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CompletionService{store: store, metrics: recorder}
}

// Insights aggregates a user's completion history as of a reference day.
type Insights struct {
	Streak           int
	TotalDays        int
	ThisWeek         int
	ThisMonth        int
	RoutineStepCount int
	Dates            []time.Time
}

// MarkDone records a completion for the given day. Calling it again on the
// same day has no additional effect.
func (s *CompletionService) MarkDone(ctx context.Context, userID string, day time.Time) error {
	completion := &model.Completion{
		ID:            model.NewID(),
		UserID:        userID,
		CompletedDate: repository.Day(day),
	}

	if err := s.store.InsertCompletion(ctx, completion); err != nil {
		return fmt.Errorf("insert completion: %w", err)
	}

	s.metrics.IncCompletionMarked()
	return nil
}

// Streak returns the current consecutive-day streak ending at asOf, plus
// the completion dates newest first for the view.
func (s *CompletionService) Streak(ctx context.Context, userID string, asOf time.Time) (int, []time.Time, error) {
	dates, err := s.store.ListCompletionDates(ctx, userID)
	if err != nil {
		return 0, nil, fmt.Errorf("list completions: %w", err)
	}

	streak := ComputeStreak(dates, asOf)

	desc := make([]time.Time, len(dates))
	copy(desc, dates)
	sort.Slice(desc, func(i, j int) bool { return desc[i].After(desc[j]) })

	return streak, desc, nil
}

// ComputeInsights returns the streak plus rolling 7- and 30-day counts and
// the routine step count, all as of the given day.
func (s *CompletionService) ComputeInsights(ctx context.Context, userID string, asOf time.Time) (*Insights, error) {
	dates, err := s.store.ListCompletionDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	stepCount, err := s.store.CountRoutineSteps(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count routine steps: %w", err)
	}

	return &Insights{
		Streak:           ComputeStreak(dates, asOf),
		TotalDays:        len(dates),
		ThisWeek:         CountWithin(dates, asOf, 7),
		ThisMonth:        CountWithin(dates, asOf, 30),
		RoutineStepCount: stepCount,
		Dates:            dates,
	}, nil
}
