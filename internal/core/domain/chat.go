package domain

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	// RoleUser is a message typed by the signed-in user.
	RoleUser Role = "user"

	// RoleAssistant is a message produced by the assistant, including the
	// synthetic greeting, scope acknowledgments, and failure notices.
	RoleAssistant Role = "assistant"
)

// SourceRef is one document citation attached to an assistant answer.
type SourceRef struct {
	// Filename is the cited document's file name.
	Filename string

	// Page is the page number the excerpt was taken from.
	Page int

	// Level is the normative level the document was ingested under.
	Level string

	// Excerpt is a short preview of the cited passage.
	Excerpt string
}

// ChatMessage is one entry of a session's append-only history.
// Messages are never mutated after creation.
type ChatMessage struct {
	// ID uniquely identifies the message.
	ID string

	// Role is the message author.
	Role Role

	// Text is the message content.
	Text string

	// Sources is the ordered citation list, empty for user messages and
	// for answers without citations.
	Sources []SourceRef

	// CreatedAt records when the message was appended.
	CreatedAt time.Time
}

// ChatQuery is an authenticated, scope-qualified question for the chat
// backend, carrying the full prior history.
type ChatQuery struct {
	// Message is the new user message.
	Message string

	// History is the prior conversation, oldest first.
	History []ChatMessage

	// Scope qualifies the question territorially.
	Scope Scope
}

// ChatAnswer is the backend's reply to a ChatQuery.
type ChatAnswer struct {
	// Text is the assistant's response.
	Text string

	// Sources is the ordered, possibly empty citation list.
	Sources []SourceRef
}
