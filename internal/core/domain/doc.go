// Package domain contains the core business entities and rules for
// urbanista: territorial scopes, the territorial hierarchy, authenticated
// sessions, upload tasks, and chat messages.
//
// The domain layer has no dependencies on adapters or infrastructure.
package domain
