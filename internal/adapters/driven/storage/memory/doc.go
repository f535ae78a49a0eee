// Package memory provides in-memory implementations of the driven storage
// ports, used in tests and as fallbacks when durable storage is not
// configured.
package memory
