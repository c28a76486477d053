package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/glowtrack/glowtrack/internal/model"
)

// Memory is a map-backed Store adapter. It mirrors the Postgres adapter's
// constraints (unique username/email, idempotent completion insert) and is
// used by tests and database-free local runs.
type Memory struct {
	mu           sync.RWMutex
	users        map[string]*model.User
	steps        map[string]*model.RoutineStep
	stepOrderSeq map[string]int
	completions  map[string]*model.Completion
	reminders    map[string]*model.Reminder
	selfies      map[string]*model.Selfie
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:        make(map[string]*model.User),
		steps:        make(map[string]*model.RoutineStep),
		stepOrderSeq: make(map[string]int),
		completions:  make(map[string]*model.Completion),
		reminders:    make(map[string]*model.Reminder),
		selfies:      make(map[string]*model.Selfie),
	}
}

// CreateUser inserts a new user, enforcing username and email uniqueness.
func (m *Memory) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == NormalizeEmail(user.Email) {
			return ErrUserExists
		}
	}

	clone := *user
	clone.Email = NormalizeEmail(user.Email)
	m.users[user.ID] = &clone
	return nil
}

// GetUserByID retrieves a user by ID.
func (m *Memory) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// GetUserByEmail retrieves a user by case-normalized email.
func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	normalized := NormalizeEmail(email)
	for _, user := range m.users {
		if user.Email == normalized {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

// CreateRoutineStep inserts a routine step.
func (m *Memory) CreateRoutineStep(ctx context.Context, step *model.RoutineStep) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *step
	m.steps[step.ID] = &clone
	return nil
}

// NextStepOrder increments and returns the user's step-order sequence.
// The counter survives deletes, so orders are never reused.
func (m *Memory) NextStepOrder(ctx context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stepOrderSeq[userID]++
	return m.stepOrderSeq[userID], nil
}

// ListRoutineSteps returns a user's steps ordered by step order ascending.
func (m *Memory) ListRoutineSteps(ctx context.Context, userID string) ([]*model.RoutineStep, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var steps []*model.RoutineStep
	for _, step := range m.steps {
		if step.UserID == userID {
			clone := *step
			steps = append(steps, &clone)
		}
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].StepOrder < steps[j].StepOrder })
	return steps, nil
}

// CountRoutineSteps returns the number of steps in a user's routine.
func (m *Memory) CountRoutineSteps(ctx context.Context, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, step := range m.steps {
		if step.UserID == userID {
			count++
		}
	}
	return count, nil
}

// DeleteRoutineStep deletes a step only if it belongs to the user.
func (m *Memory) DeleteRoutineStep(ctx context.Context, userID, stepID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if step, ok := m.steps[stepID]; ok && step.UserID == userID {
		delete(m.steps, stepID)
	}
	return nil
}

// InsertCompletion records a completion day, ignoring duplicates.
func (m *Memory) InsertCompletion(ctx context.Context, completion *model.Completion) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	day := Day(completion.CompletedDate)
	for _, existing := range m.completions {
		if existing.UserID == completion.UserID && existing.CompletedDate.Equal(day) {
			return nil
		}
	}

	clone := *completion
	clone.CompletedDate = day
	m.completions[completion.ID] = &clone
	return nil
}

// ListCompletionDates returns a user's distinct completion days ascending.
func (m *Memory) ListCompletionDates(ctx context.Context, userID string) ([]time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var dates []time.Time
	for _, completion := range m.completions {
		if completion.UserID == userID {
			dates = append(dates, completion.CompletedDate)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// CreateReminder inserts a reminder.
func (m *Memory) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *reminder
	m.reminders[reminder.ID] = &clone
	return nil
}

// ListReminders returns a user's reminders in lexical time-string order.
func (m *Memory) ListReminders(ctx context.Context, userID string) ([]*model.Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var reminders []*model.Reminder
	for _, reminder := range m.reminders {
		if reminder.UserID == userID {
			clone := *reminder
			reminders = append(reminders, &clone)
		}
	}
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].ReminderTime < reminders[j].ReminderTime
	})
	return reminders, nil
}

// DeleteReminder deletes a reminder only if it belongs to the user.
func (m *Memory) DeleteReminder(ctx context.Context, userID, reminderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reminder, ok := m.reminders[reminderID]; ok && reminder.UserID == userID {
		delete(m.reminders, reminderID)
	}
	return nil
}

// CreateSelfie records selfie metadata.
func (m *Memory) CreateSelfie(ctx context.Context, selfie *model.Selfie) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *selfie
	m.selfies[selfie.ID] = &clone
	return nil
}

// ListSelfies returns a user's selfies, newest first.
func (m *Memory) ListSelfies(ctx context.Context, userID string) ([]*model.Selfie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var selfies []*model.Selfie
	for _, selfie := range m.selfies {
		if selfie.UserID == userID {
			clone := *selfie
			selfies = append(selfies, &clone)
		}
	}
	sort.Slice(selfies, func(i, j int) bool {
		return selfies[i].CreatedAt.After(selfies[j].CreatedAt)
	})
	return selfies, nil
}

// Ping always succeeds for the in-memory store.
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() {}
