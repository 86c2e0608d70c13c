package models

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is a single message in a chat session. Sources is only set
// on assistant turns whose answer was grounded in scraped pages, and lists
// exactly the URLs that were successfully scraped.
type ConversationTurn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Sources   []string  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
