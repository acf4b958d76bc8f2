package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"boekhoud_backend/internal/chat/intent"
	"boekhoud_backend/platform/apperr"
)

const (
	draftKeyPrefix = "chat:draft:"
	convKeyPrefix  = "chat:conv:"

	// Terminal drafts stay resolvable by conversation ID for a short
	// while so a late cancel or status request gets a sensible answer.
	terminalRetention = time.Hour
)

// Store keeps active drafts in Redis, keyed by (userID, intent) with a
// secondary key per conversation ID. Drafts older than the configured
// TTL are treated as abandoned: Get cancels them instead of resuming,
// and a scheduled sweep removes them in the background. The Redis keys
// also carry a native expiry at twice the TTL as a backstop.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func draftKey(userID string, it intent.Intent) string {
	return draftKeyPrefix + userID + ":" + string(it)
}

func convKey(conversationID string) string {
	return convKeyPrefix + conversationID
}

// Get loads the active draft for a (user, intent) pair. A draft whose
// last update is older than the TTL is deleted and reported as not
// found, so the caller starts a fresh conversation.
func (s *Store) Get(ctx context.Context, userID string, it intent.Intent) (*Draft, error) {
	d, err := s.load(ctx, draftKey(userID, it))
	if err != nil {
		return nil, err
	}

	if time.Since(d.LastUpdated) > s.ttl {
		if err := s.Delete(ctx, d); err != nil {
			return nil, err
		}
		return nil, apperr.NotFound("draft expired")
	}

	return d, nil
}

// GetByConversation loads a draft by its conversation ID, including
// recently finished ones.
func (s *Store) GetByConversation(ctx context.Context, conversationID string) (*Draft, error) {
	return s.load(ctx, convKey(conversationID))
}

func (s *Store) load(ctx context.Context, key string) (*Draft, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.NotFound("draft not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

// Save persists the draft under both its (user, intent) key and its
// conversation key.
func (s *Store) Save(ctx context.Context, d *Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, draftKey(d.UserID, d.Intent), data, 2*s.ttl)
	pipe.Set(ctx, convKey(d.ConversationID), data, 2*s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Finish moves the draft to a terminal status. The active (user, intent)
// slot is freed immediately; the conversation key keeps the terminal
// record for a short retention window.
func (s *Store) Finish(ctx context.Context, d *Draft, status Status) error {
	d.Status = status
	d.LastUpdated = time.Now()

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, draftKey(d.UserID, d.Intent))
	pipe.Set(ctx, convKey(d.ConversationID), data, terminalRetention)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("finish draft: %w", err)
	}
	return nil
}

// Delete removes the draft and its conversation key entirely.
func (s *Store) Delete(ctx context.Context, d *Draft) error {
	if err := s.rdb.Del(ctx, draftKey(d.UserID, d.Intent), convKey(d.ConversationID)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// ExpireStale scans for active drafts past their TTL and cancels them,
// returning the cancelled drafts so the caller can emit audit events.
func (s *Store) ExpireStale(ctx context.Context) ([]*Draft, error) {
	var expired []*Draft

	iter := s.rdb.Scan(ctx, 0, draftKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if !strings.HasPrefix(key, draftKeyPrefix) {
			continue
		}

		d, err := s.load(ctx, key)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				continue
			}
			return expired, err
		}

		if time.Since(d.LastUpdated) > s.ttl {
			if err := s.Finish(ctx, d, StatusCancelled); err != nil {
				return expired, err
			}
			expired = append(expired, d)
		}
	}
	if err := iter.Err(); err != nil {
		return expired, fmt.Errorf("scan drafts: %w", err)
	}

	return expired, nil
}
