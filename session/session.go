package session

import (
	"time"

	"github.com/mohammad-safakhou/webchat/models"
)

// Store interface for chat session management. Implementations live in the
// inmemory and redis subpackages; the serving layer picks one.
type Store interface {
	// EnsureSession returns the session with the given id, refreshing its
	// TTL, or creates a fresh one when id is empty or unknown.
	EnsureSession(id string, ttl time.Duration) (Session, error)
	// GetSession returns nil, nil when the session does not exist.
	GetSession(id string) (Session, error)
}

// Session is an append-only conversation history. History is best-effort
// in-process state: no durability is promised across restarts unless the
// backing store provides it.
type Session interface {
	ID() string
	Expire(ttl time.Duration)
	Append(turn models.ConversationTurn) error
	Turns() []models.ConversationTurn
}

type StoreType string

const (
	InMemoryStore StoreType = "inmemory"
	RedisStore    StoreType = "redis"
)
