package tui

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrMissingHierarchyService is returned when the hierarchy service is not provided.
var ErrMissingHierarchyService = errors.New("tui: hierarchy service is required")

// ErrMissingScopeBroker is returned when the scope broker is not provided.
var ErrMissingScopeBroker = errors.New("tui: scope broker is required")

// ErrMissingScopeSelector is returned when the scope selector is not provided.
var ErrMissingScopeSelector = errors.New("tui: scope selector is required")

// ErrMissingUploadService is returned when the upload service is not provided.
var ErrMissingUploadService = errors.New("tui: upload service is required")

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("tui: chat service is required")
