package driving

import (
	"context"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// EnqueueResult reports the outcome of an intake: accepted tasks and the
// files rejected at the door, with reasons. Rejects are reported, never
// silently dropped.
type EnqueueResult struct {
	// Accepted are the created tasks, in intake order.
	Accepted []domain.UploadTask

	// Rejected maps each refused file path to the refusal reason.
	Rejected map[string]error
}

// UploadService coordinates the four per-level upload buckets. Each bucket
// owns its ordered task list; buckets progress concurrently and
// independently, and a failure in one never blocks or rolls back another.
type UploadService interface {
	// Enqueue creates one task per file in the bucket, snapshotting the
	// broker's current scope clamped to the bucket's level. Non-document
	// files are filtered at intake and reported in the result.
	Enqueue(bucket domain.Level, paths []string) (EnqueueResult, error)

	// Tasks returns a copy of the bucket's task list, in enqueue order.
	Tasks(bucket domain.Level) []domain.UploadTask

	// Send performs the authenticated transfer of one queued task.
	// The task moves queued → sending, then to succeeded or failed with
	// the server's error detail attached.
	Send(ctx context.Context, taskID string) error

	// SendAll sends every queued task in the bucket.
	SendAll(ctx context.Context, bucket domain.Level) error

	// Retry re-runs a failed task. It is only valid from the failed state.
	Retry(ctx context.Context, taskID string) error

	// Dismiss removes a succeeded or failed task from the visible queue.
	Dismiss(taskID string) error
}
