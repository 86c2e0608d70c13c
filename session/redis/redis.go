package redis_session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mohammad-safakhou/webchat/models"
	"github.com/mohammad-safakhou/webchat/session"
)

// Store keeps chat histories in Redis so sessions survive process restarts.
type Store struct {
	client *redis.Client
}

func NewRedisSessionStore(addr, password string, db int) session.Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Store{client: rdb}
}

func metaKey(id string) string  { return fmt.Sprintf("chat:%s:meta", id) }
func turnsKey(id string) string { return fmt.Sprintf("chat:%s:turns", id) }

func (store *Store) EnsureSession(id string, ttl time.Duration) (session.Session, error) {
	ctx := context.Background()
	if id != "" {
		exists, err := store.client.Exists(ctx, metaKey(id)).Result()
		if err == nil && exists == 1 {
			sess := &Session{client: store.client, id: id, ttl: ttl}
			_ = store.client.Expire(ctx, metaKey(id), ttl).Err()
			_ = store.client.Expire(ctx, turnsKey(id), ttl).Err()
			return sess, nil
		}
	}

	newID := uuid.NewString()
	if err := store.client.Set(ctx, metaKey(newID), "{}", ttl).Err(); err != nil {
		return nil, err
	}
	return &Session{client: store.client, id: newID, ttl: ttl}, nil
}

func (store *Store) GetSession(id string) (session.Session, error) {
	ctx := context.Background()
	exists, err := store.client.Exists(ctx, metaKey(id)).Result()
	if err != nil || exists == 0 {
		return nil, nil
	}
	return &Session{client: store.client, id: id}, nil
}

type Session struct {
	client *redis.Client
	id     string
	ttl    time.Duration
}

func (s *Session) ID() string { return s.id }

func (s *Session) Expire(ttl time.Duration) {
	ctx := context.Background()
	s.ttl = ttl
	_ = s.client.Expire(ctx, metaKey(s.id), ttl).Err()
	_ = s.client.Expire(ctx, turnsKey(s.id), ttl).Err()
}

func (s *Session) Append(turn models.ConversationTurn) error {
	ctx := context.Background()
	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}
	if err := s.client.RPush(ctx, turnsKey(s.id), data).Err(); err != nil {
		return err
	}
	if s.ttl > 0 {
		_ = s.client.Expire(ctx, turnsKey(s.id), s.ttl).Err()
	}
	return nil
}

func (s *Session) Turns() []models.ConversationTurn {
	ctx := context.Background()
	vals, err := s.client.LRange(ctx, turnsKey(s.id), 0, -1).Result()
	if err != nil {
		return nil
	}
	out := make([]models.ConversationTurn, 0, len(vals))
	for _, v := range vals {
		var turn models.ConversationTurn
		if err := json.Unmarshal([]byte(v), &turn); err != nil {
			continue
		}
		out = append(out, turn)
	}
	return out
}
