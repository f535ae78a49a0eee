// Package api provides driven adapters backed by the assistant's HTTP
// backend: credential login, scope-qualified chat, document ingestion,
// and the territorial reference dataset. All adapters share one Client
// so the rate limit and timeout apply across the whole surface.
package api
