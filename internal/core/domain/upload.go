package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// UploadStatus is the state of an upload task. Transitions are
// one-directional (queued → sending → succeeded|failed) except for the
// manual failed → queued reset performed by a retry.
type UploadStatus string

const (
	// UploadQueued means the task is waiting to be sent.
	UploadQueued UploadStatus = "queued"

	// UploadSending means the transfer is in flight.
	UploadSending UploadStatus = "sending"

	// UploadSucceeded means the ingestion backend accepted the file.
	UploadSucceeded UploadStatus = "succeeded"

	// UploadFailed means the transfer failed; ErrorDetail carries the reason.
	UploadFailed UploadStatus = "failed"
)

// UploadTask is one file transfer owned by the bucket it was enqueued
// into. TargetScope is snapshotted at enqueue time and never re-derived,
// so changing the current scope mid-upload cannot mistag the file.
type UploadTask struct {
	// ID uniquely identifies the task.
	ID string

	// Path is the local path of the file to transfer.
	Path string

	// Name is the base file name shown to the user.
	Name string

	// TargetScope is the scope snapshot the file will be tagged with.
	TargetScope Scope

	// Status is the current transfer state.
	Status UploadStatus

	// ErrorDetail carries the server's rejection reason when Status is
	// UploadFailed, empty otherwise.
	ErrorDetail string

	// EnqueuedAt records when the task entered the bucket.
	EnqueuedAt time.Time
}

// documentExtensions are the file types the ingestion backend accepts.
var documentExtensions = map[string]bool{
	".pdf":  true,
	".html": true,
	".htm":  true,
	".txt":  true,
}

// IsDocumentFile reports whether the file name has an accepted regulatory
// document extension. Filtering happens at intake; rejects are reported to
// the caller, never silently dropped.
func IsDocumentFile(name string) bool {
	return documentExtensions[strings.ToLower(filepath.Ext(name))]
}

// IngestReceipt is the per-file acceptance returned by the ingestion
// backend for a successful upload.
type IngestReceipt struct {
	// Filename is the name the backend stored the file under.
	Filename string

	// Chunks is the number of indexed chunks the file produced.
	Chunks int
}
