package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glowtrack/glowtrack/internal/model"
)

func newUser(username, email string) *model.User {
	return &model.User{
		ID:           model.NewID(),
		Username:     username,
		Email:        NormalizeEmail(email),
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestMemory_CreateUser_UniqueEmail(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if err := store.CreateUser(ctx, newUser("ada", "Ada@Example.com")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// Same email, different case: must conflict.
	err := store.CreateUser(ctx, newUser("grace", "ada@example.COM"))
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	// Same username: must conflict too.
	err = store.CreateUser(ctx, newUser("ada", "other@example.com"))
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestMemory_GetUserByEmail_CaseInsensitive(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	user := newUser("ada", "foo@x.com")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := store.GetUserByEmail(ctx, "Foo@X.com")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, got.ID)
	}

	if _, err := store.GetUserByEmail(ctx, "nobody@x.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemory_InsertCompletion_Idempotent(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		completion := &model.Completion{
			ID:            model.NewID(),
			UserID:        "u1",
			CompletedDate: day,
		}
		if err := store.InsertCompletion(ctx, completion); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	dates, err := store.ListCompletionDates(ctx, "u1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(dates) != 1 {
		t.Fatalf("expected exactly 1 completion row, got %d", len(dates))
	}
	if !dates[0].Equal(Day(day)) {
		t.Errorf("expected date %v, got %v", Day(day), dates[0])
	}
}

func TestMemory_ListCompletionDates_Sorted(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	days := []time.Time{
		time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}
	for _, day := range days {
		err := store.InsertCompletion(ctx, &model.Completion{
			ID: model.NewID(), UserID: "u1", CompletedDate: day,
		})
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	dates, err := store.ListCompletionDates(ctx, "u1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			t.Errorf("dates not ascending: %v", dates)
		}
	}
}

func TestMemory_DeleteRoutineStep_OwnerScoped(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	step := &model.RoutineStep{ID: model.NewID(), UserID: "owner", StepName: "Cleanser", StepOrder: 1}
	if err := store.CreateRoutineStep(ctx, step); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Foreign delete: no error, step intact.
	if err := store.DeleteRoutineStep(ctx, "intruder", step.ID); err != nil {
		t.Fatalf("foreign delete errored: %v", err)
	}
	steps, err := store.ListRoutineSteps(ctx, "owner")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(steps) != 1 {
		t.Fatalf("foreign delete removed the step")
	}

	// Owner delete removes it; a second delete is a silent no-op.
	if err := store.DeleteRoutineStep(ctx, "owner", step.ID); err != nil {
		t.Fatalf("owner delete errored: %v", err)
	}
	if err := store.DeleteRoutineStep(ctx, "owner", step.ID); err != nil {
		t.Fatalf("repeat delete errored: %v", err)
	}
	steps, _ = store.ListRoutineSteps(ctx, "owner")
	if len(steps) != 0 {
		t.Fatalf("expected no steps, got %d", len(steps))
	}
}

func TestMemory_NextStepOrder_NeverReused(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	order, err := store.NextStepOrder(ctx, "u1")
	if err != nil {
		t.Fatalf("NextStepOrder() error = %v", err)
	}
	if order != 1 {
		t.Fatalf("first order = %d, want 1", order)
	}

	step := &model.RoutineStep{ID: model.NewID(), UserID: "u1", StepName: "Cleanser", StepOrder: order}
	if err := store.CreateRoutineStep(ctx, step); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Deleting the highest-ordered step must not roll the sequence back.
	if err := store.DeleteRoutineStep(ctx, "u1", step.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	order, err = store.NextStepOrder(ctx, "u1")
	if err != nil {
		t.Fatalf("NextStepOrder() error = %v", err)
	}
	if order != 2 {
		t.Errorf("order after delete = %d, want 2", order)
	}

	// Sequences are per user.
	order, err = store.NextStepOrder(ctx, "u2")
	if err != nil {
		t.Fatalf("NextStepOrder() error = %v", err)
	}
	if order != 1 {
		t.Errorf("other user's first order = %d, want 1", order)
	}
}

func TestMemory_ListReminders_LexicalOrder(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	// "9:00" sorts after "22:00" lexically; that is the documented behavior.
	for _, ts := range []string{"9:00", "08:30", "22:00"} {
		err := store.CreateReminder(ctx, &model.Reminder{
			ID: model.NewID(), UserID: "u1", ReminderTime: ts, Enabled: true,
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	reminders, err := store.ListReminders(ctx, "u1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := []string{"08:30", "22:00", "9:00"}
	for i, reminder := range reminders {
		if reminder.ReminderTime != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], reminder.ReminderTime)
		}
	}
}

func TestDay(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 6, 1, 23, 59, 58, 123, time.UTC)
	got := Day(in)
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
