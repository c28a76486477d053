// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	IncUserRegistered()
	IncSignIn(status string) // status: "success" or "failure"
	IncStepAdded()
	IncStepDeleted()
	IncCompletionMarked()
	IncReminderAdded()
	IncSelfieUploaded()
	IncSelfieRejected()
}
