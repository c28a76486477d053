package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/glowtrack/glowtrack/internal/model"
	"github.com/glowtrack/glowtrack/internal/testutil"
)

// newTestPostgres connects to TEST_DATABASE_URL (skipping when unset), runs
// migrations, serializes against other DB tests, and starts from empty tables.
func newTestPostgres(t *testing.T) *Postgres {
	t.Helper()

	databaseURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")
	ctx := t.Context()

	store, err := NewPostgres(ctx, databaseURL)
	if err != nil {
		t.Fatalf("NewPostgres() error = %v", err)
	}
	t.Cleanup(store.Close)

	unlock, err := testutil.AcquireDBLock(ctx, store.pool)
	if err != nil {
		t.Fatalf("AcquireDBLock() error = %v", err)
	}
	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Errorf("release DB lock: %v", err)
		}
	})

	if err := testutil.TruncateAll(ctx, store.pool); err != nil {
		t.Fatalf("TruncateAll() error = %v", err)
	}
	return store
}

func TestPostgres_CreateUser_DuplicateEmail(t *testing.T) {
	store := newTestPostgres(t)
	ctx := t.Context()

	user := testutil.NewTestUser(t, "amy")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	dup := testutil.NewTestUser(t, "amy2")
	dup.Email = user.Email
	if err := store.CreateUser(ctx, dup); !errors.Is(err, ErrUserExists) {
		t.Errorf("CreateUser(duplicate email) error = %v, want ErrUserExists", err)
	}

	got, err := store.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("GetUserByEmail() ID = %s, want %s", got.ID, user.ID)
	}
}

func TestPostgres_InsertCompletion_Idempotent(t *testing.T) {
	store := newTestPostgres(t)
	ctx := t.Context()

	user := testutil.NewTestUser(t, "amy")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	day := Day(time.Now())
	for i := 0; i < 3; i++ {
		if err := store.InsertCompletion(ctx, testutil.NewTestCompletion(t, user.ID, day)); err != nil {
			t.Fatalf("InsertCompletion() #%d error = %v", i+1, err)
		}
	}

	dates, err := store.ListCompletionDates(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListCompletionDates() error = %v", err)
	}
	if len(dates) != 1 {
		t.Errorf("completion rows = %d, want 1", len(dates))
	}
}

func TestPostgres_NextStepOrder_NeverReused(t *testing.T) {
	store := newTestPostgres(t)
	ctx := t.Context()

	user := testutil.NewTestUser(t, "amy")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	order, err := store.NextStepOrder(ctx, user.ID)
	if err != nil {
		t.Fatalf("NextStepOrder() error = %v", err)
	}
	if order != 1 {
		t.Fatalf("first order = %d, want 1", order)
	}

	step := testutil.NewTestStep(t, user.ID, "Cleanser", order)
	if err := store.CreateRoutineStep(ctx, step); err != nil {
		t.Fatalf("CreateRoutineStep() error = %v", err)
	}

	// Deleting the highest-ordered step must not roll the sequence back.
	if err := store.DeleteRoutineStep(ctx, user.ID, step.ID); err != nil {
		t.Fatalf("DeleteRoutineStep() error = %v", err)
	}
	order, err = store.NextStepOrder(ctx, user.ID)
	if err != nil {
		t.Fatalf("NextStepOrder() error = %v", err)
	}
	if order != 2 {
		t.Errorf("order after delete = %d, want 2", order)
	}

	if _, err := store.NextStepOrder(ctx, "no-such-user"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("NextStepOrder(unknown user) error = %v, want ErrUserNotFound", err)
	}
}

func TestPostgres_DeleteRoutineStep_OwnerScoped(t *testing.T) {
	store := newTestPostgres(t)
	ctx := t.Context()

	amy := testutil.NewTestUser(t, "amy")
	bo := testutil.NewTestUser(t, "bo")
	for _, u := range []*model.User{amy, bo} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser(%s) error = %v", u.Username, err)
		}
	}

	step := testutil.NewTestStep(t, bo.ID, "Cleanser", 1)
	if err := store.CreateRoutineStep(ctx, step); err != nil {
		t.Fatalf("CreateRoutineStep() error = %v", err)
	}

	// Deleting someone else's step is a silent no-op.
	if err := store.DeleteRoutineStep(ctx, amy.ID, step.ID); err != nil {
		t.Fatalf("DeleteRoutineStep(foreign) error = %v", err)
	}

	steps, err := store.ListRoutineSteps(ctx, bo.ID)
	if err != nil {
		t.Fatalf("ListRoutineSteps() error = %v", err)
	}
	if len(steps) != 1 {
		t.Fatalf("bo's steps = %d, want 1", len(steps))
	}
}
