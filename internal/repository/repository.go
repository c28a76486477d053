// Package repository provides the storage port and its adapters.
//
// Every read or delete of a user-owned entity takes the owner's user ID and
// filters on it, so cross-user access is impossible below this boundary no
// matter what a handler does.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/glowtrack/glowtrack/internal/model"
)

// Common errors for store operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already exists")
)

// Store is the storage port. Postgres and Memory are the two adapters;
// everything above this interface is backend-agnostic.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// Routine steps (owner-scoped). NextStepOrder draws from a strictly
	// increasing per-user sequence, so an order is never reused even after
	// the highest-ordered step is deleted.
	CreateRoutineStep(ctx context.Context, step *model.RoutineStep) error
	NextStepOrder(ctx context.Context, userID string) (int, error)
	ListRoutineSteps(ctx context.Context, userID string) ([]*model.RoutineStep, error)
	CountRoutineSteps(ctx context.Context, userID string) (int, error)
	DeleteRoutineStep(ctx context.Context, userID, stepID string) error

	// Daily completions. InsertCompletion is insert-or-ignore on
	// (user, completed_date). ListCompletionDates returns distinct days
	// ascending.
	InsertCompletion(ctx context.Context, completion *model.Completion) error
	ListCompletionDates(ctx context.Context, userID string) ([]time.Time, error)

	// Reminders (owner-scoped). ListReminders orders by the stored time
	// string, which sorts lexically since the format is unvalidated.
	CreateReminder(ctx context.Context, reminder *model.Reminder) error
	ListReminders(ctx context.Context, userID string) ([]*model.Reminder, error)
	DeleteReminder(ctx context.Context, userID, reminderID string) error

	// Selfies
	CreateSelfie(ctx context.Context, selfie *model.Selfie) error
	ListSelfies(ctx context.Context, userID string) ([]*model.Selfie, error)

	// Ping checks store connectivity.
	Ping(ctx context.Context) error
	// Close releases the store's resources.
	Close()
}

// NormalizeEmail lowercases and trims an email address.
// Emails are compared and stored case-normalized.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Day truncates a time to its calendar day in UTC.
// Completion dates carry no time component.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
