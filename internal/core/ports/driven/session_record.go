package driven

import "github.com/civita-labs/urbanista-cli/internal/core/domain"

// SessionRecordStore persists the session record durably so a restart can
// restore the last known session without a network round trip.
//
// The record is one atomic unit: implementations must write token and
// identity together and must treat a corrupt or partially written record
// as absent (fail safe to logged out), never as an error that crashes
// rehydration.
type SessionRecordStore interface {
	// Load reads the persisted record. A missing, corrupt, or partial
	// record yields a zero session and a nil error.
	Load() (domain.Session, error)

	// Save persists the record synchronously.
	Save(session domain.Session) error

	// Clear purges the persisted record.
	Clear() error
}
