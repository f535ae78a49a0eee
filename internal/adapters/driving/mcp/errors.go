// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Urbanista. It lets AI assistants ask scoped questions about Italian
// urban-planning regulation and browse the territorial hierarchy.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")

// ErrMissingHierarchyService is returned when the hierarchy service is not provided.
var ErrMissingHierarchyService = errors.New("mcp: hierarchy service is required")
