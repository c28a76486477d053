package model

// RoutineStep is one named step in a user's ordered skincare routine.
// StepOrder is a per-user monotonic sequence starting at 1; gaps left by
// deletions are never resequenced.
type RoutineStep struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	StepName  string `json:"step_name"`
	StepOrder int    `json:"step_order"`
}
