package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncSignIn is a no-op.
func (n *NoopRecorder) IncSignIn(status string) {}

// IncStepAdded is a no-op.
func (n *NoopRecorder) IncStepAdded() {}

// IncStepDeleted is a no-op.
func (n *NoopRecorder) IncStepDeleted() {}

// IncCompletionMarked is a no-op.
func (n *NoopRecorder) IncCompletionMarked() {}

// IncReminderAdded is a no-op.
func (n *NoopRecorder) IncReminderAdded() {}

// IncSelfieUploaded is a no-op.
func (n *NoopRecorder) IncSelfieUploaded() {}

// IncSelfieRejected is a no-op.
func (n *NoopRecorder) IncSelfieRejected() {}
