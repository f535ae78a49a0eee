package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
	"github.com/civita-labs/urbanista-cli/internal/logger"
)

// Ensure UploadCoordinator implements the interface.
var _ driving.UploadService = (*UploadCoordinator)(nil)

// UploadCoordinator manages one independent task queue per hierarchy
// level. The only shared input between buckets is the scope snapshot
// taken at enqueue time; a task's target scope is never re-derived, so a
// scope change mid-upload cannot retroactively mistag an in-flight file.
type UploadCoordinator struct {
	broker  driving.ScopeBroker
	session driving.SessionService
	api     driven.IngestionAPI

	mu      sync.Mutex
	buckets map[domain.Level][]*domain.UploadTask
}

// NewUploadCoordinator creates a coordinator with one empty bucket per
// hierarchy level.
func NewUploadCoordinator(
	broker driving.ScopeBroker,
	session driving.SessionService,
	api driven.IngestionAPI,
) *UploadCoordinator {
	buckets := make(map[domain.Level][]*domain.UploadTask, len(domain.Levels()))
	for _, level := range domain.Levels() {
		buckets[level] = nil
	}
	return &UploadCoordinator{
		broker:  broker,
		session: session,
		api:     api,
		buckets: buckets,
	}
}

// Enqueue creates one task per accepted file. The target scope is the
// broker's current value clamped to the bucket's level, snapshotted now.
// Non-document files are rejected at intake and reported to the caller.
func (c *UploadCoordinator) Enqueue(bucket domain.Level, paths []string) (driving.EnqueueResult, error) {
	if _, err := domain.ParseLevel(string(bucket)); err != nil {
		return driving.EnqueueResult{}, err
	}

	snapshot := c.broker.Current().ClampTo(bucket)

	result := driving.EnqueueResult{
		Rejected: make(map[string]error),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, path := range paths {
		name := filepath.Base(path)
		if !domain.IsDocumentFile(name) {
			result.Rejected[path] = fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, name)
			continue
		}

		task := &domain.UploadTask{
			ID:          uuid.NewString(),
			Path:        path,
			Name:        name,
			TargetScope: snapshot,
			Status:      domain.UploadQueued,
			EnqueuedAt:  time.Now(),
		}
		c.buckets[bucket] = append(c.buckets[bucket], task)
		result.Accepted = append(result.Accepted, *task)

		logger.Debug("Enqueued %s into %s bucket, scope %s", name, bucket, snapshot.Describe())
	}

	return result, nil
}

// Tasks returns a copy of the bucket's task list, in enqueue order.
func (c *UploadCoordinator) Tasks(bucket domain.Level) []domain.UploadTask {
	c.mu.Lock()
	defer c.mu.Unlock()

	tasks := make([]domain.UploadTask, 0, len(c.buckets[bucket]))
	for _, t := range c.buckets[bucket] {
		tasks = append(tasks, *t)
	}
	return tasks
}

// Send performs the authenticated transfer of one queued task. On
// completion the task is marked succeeded, or failed with the server's
// error detail attached to that task alone.
func (c *UploadCoordinator) Send(ctx context.Context, taskID string) error {
	return c.send(ctx, taskID, domain.UploadQueued)
}

// Retry re-runs a failed task. Any other starting state is rejected: a
// task never becomes succeeded except through a fresh transfer.
func (c *UploadCoordinator) Retry(ctx context.Context, taskID string) error {
	return c.send(ctx, taskID, domain.UploadFailed)
}

// send transitions the task from the expected state to sending, performs
// the transfer outside the lock, and records the terminal state.
func (c *UploadCoordinator) send(ctx context.Context, taskID string, from domain.UploadStatus) error {
	token, err := c.session.Token()
	if err != nil {
		return err
	}

	c.mu.Lock()
	task := c.find(taskID)
	if task == nil {
		c.mu.Unlock()
		return fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
	}
	if task.Status != from {
		c.mu.Unlock()
		return fmt.Errorf("task %s is %s: %w", taskID, task.Status, domain.ErrInvalidTransition)
	}
	task.Status = domain.UploadSending
	task.ErrorDetail = ""
	path := task.Path
	scope := task.TargetScope
	c.mu.Unlock()

	receipt, sendErr := c.api.Upload(ctx, token, path, scope)

	c.mu.Lock()
	defer c.mu.Unlock()

	if sendErr != nil {
		task.Status = domain.UploadFailed
		task.ErrorDetail = sendErr.Error()
		logger.Warn("Upload of %s failed: %v", task.Name, sendErr)
		return fmt.Errorf("upload %s: %w", task.Name, sendErr)
	}

	task.Status = domain.UploadSucceeded
	logger.Info("Uploaded %s (%d chunks indexed)", receipt.Filename, receipt.Chunks)
	return nil
}

// SendAll sends every queued task in the bucket, in order, continuing
// past individual failures: each failure stays attached to its own task
// and never blocks the rest of the bucket or any other bucket.
func (c *UploadCoordinator) SendAll(ctx context.Context, bucket domain.Level) error {
	c.mu.Lock()
	var queued []string
	for _, t := range c.buckets[bucket] {
		if t.Status == domain.UploadQueued {
			queued = append(queued, t.ID)
		}
	}
	c.mu.Unlock()

	for _, id := range queued {
		if err := c.Send(ctx, id); err != nil {
			// Abort only when nothing can succeed without a login.
			if errors.Is(err, domain.ErrAuthRequired) {
				return err
			}
		}
	}
	return nil
}

// Dismiss removes a task from the visible queue. In-flight tasks cannot
// be dismissed; there is no cancellation of a running transfer.
func (c *UploadCoordinator) Dismiss(taskID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for bucket, tasks := range c.buckets {
		for i, t := range tasks {
			if t.ID != taskID {
				continue
			}
			if t.Status == domain.UploadSending {
				return fmt.Errorf("task %s is in flight: %w", taskID, domain.ErrInvalidTransition)
			}
			c.buckets[bucket] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
}

// find locates a task by id across buckets. Caller must hold the lock.
func (c *UploadCoordinator) find(taskID string) *domain.UploadTask {
	for _, tasks := range c.buckets {
		for _, t := range tasks {
			if t.ID == taskID {
				return t
			}
		}
	}
	return nil
}
