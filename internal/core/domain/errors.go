package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Scope errors.

	// ErrScopeInconsistent indicates a scope write whose fields do not form
	// a valid chain in the territorial hierarchy. The write is rejected
	// locally and the canonical scope is left untouched.
	ErrScopeInconsistent = errors.New("scope inconsistent with territorial hierarchy")

	// ErrHierarchyUnavailable indicates the territorial dataset could not
	// be loaded from either the network or the local cache.
	ErrHierarchyUnavailable = errors.New("territorial hierarchy unavailable")

	// Authentication errors.

	// ErrAuthRequired indicates an operation needs a session but none is
	// present. Surfaces redirect to login rather than showing it inline.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidCredentials indicates the auth backend rejected the
	// submitted username and password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrServiceUnavailable indicates the backend could not be reached or
	// answered with a server error.
	ErrServiceUnavailable = errors.New("service unavailable")

	// Upload errors.

	// ErrTransferRejected indicates the ingestion backend rejected a file.
	// It is always recorded on the specific task, never aggregated.
	ErrTransferRejected = errors.New("transfer rejected")

	// ErrUnsupportedFile indicates a file is not an accepted document type.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrInvalidTransition indicates an upload task state change that the
	// one-directional status machine does not allow.
	ErrInvalidTransition = errors.New("invalid task transition")

	// Chat errors.

	// ErrQueryFailed indicates the chat backend failed to answer. The
	// session converts it into a visible assistant message and stays usable.
	ErrQueryFailed = errors.New("query failed")

	// ErrSendInFlight indicates a chat send was attempted while a prior
	// send is still outstanding.
	ErrSendInFlight = errors.New("a message is already in flight")
)
