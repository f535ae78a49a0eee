// Package file provides TOML-backed persistence under the urbanista
// config directory: application configuration and the durable session
// record.
package file
