package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
// Example usage:
//
//	scheduler := NewScheduler(apodService, objectRepo, resolver)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
