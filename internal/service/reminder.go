package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/glowtrack/glowtrack/internal/metrics"
	"github.com/glowtrack/glowtrack/internal/model"
	"github.com/glowtrack/glowtrack/internal/repository"
)

// ReminderService manages a user's reminder times.
type ReminderService struct {
	store   repository.Store
	metrics metrics.Recorder
}

// NewReminderService creates a new ReminderService.
func NewReminderService(store repository.Store, recorder metrics.Recorder) *ReminderService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ReminderService{store: store, metrics: recorder}
}

// AddReminder stores a reminder time verbatim; the format is deliberately
// unvalidated. An empty string after trimming is a silent no-op; the
// returned bool reports whether a reminder was added.
func (s *ReminderService) AddReminder(ctx context.Context, userID, timeString string) (bool, error) {
	timeString = strings.TrimSpace(timeString)
	if timeString == "" {
		return false, nil
	}

	reminder := &model.Reminder{
		ID:           model.NewID(),
		UserID:       userID,
		ReminderTime: timeString,
		Enabled:      true,
	}

	if err := s.store.CreateReminder(ctx, reminder); err != nil {
		return false, fmt.Errorf("create reminder: %w", err)
	}

	s.metrics.IncReminderAdded()
	return true, nil
}

// ListReminders returns the user's reminders ordered by the stored time
// string (a lexical sort, since the format is free-form).
func (s *ReminderService) ListReminders(ctx context.Context, userID string) ([]*model.Reminder, error) {
	reminders, err := s.store.ListReminders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

// DeleteReminder removes a reminder if it belongs to the user; otherwise a
// silent no-op.
func (s *ReminderService) DeleteReminder(ctx context.Context, userID, reminderID string) error {
	if err := s.store.DeleteReminder(ctx, userID, reminderID); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}
