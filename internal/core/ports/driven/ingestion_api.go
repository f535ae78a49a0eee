package driven

import (
	"context"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// IngestionAPI transfers regulatory documents to the backend and lists
// previously ingested files.
type IngestionAPI interface {
	// Upload submits one local file as an authenticated multipart request,
	// tagged with the scope's territorial fields and level. A structured
	// per-file rejection is returned as an error wrapping
	// domain.ErrTransferRejected with the server's reason.
	Upload(ctx context.Context, token, path string, scope domain.Scope) (domain.IngestReceipt, error)

	// ListFiles returns the backend's record of ingested documents,
	// most recent first.
	ListFiles(ctx context.Context, token string) ([]domain.RemoteFile, error)
}
