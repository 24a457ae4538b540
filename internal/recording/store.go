package recording

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/eleven-am/insight-backend/internal/shared"
	"github.com/redis/go-redis/v9"
)

const (
	indexKey      = "recordings"
	maxTxAttempts = 8
	listChunkSize = 200
)

type Store struct {
	redis  *redis.Client
	ttl    time.Duration
	locks  *keyedMutex
	now    func() time.Time
	logger *slog.Logger
}

// NewStore returns a redis backed store. A zero ttl keeps records forever.
func NewStore(redisClient *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		redis:  redisClient,
		ttl:    ttl,
		locks:  newKeyedMutex(),
		now:    time.Now,
		logger: logger,
	}
}

// Ingest applies a batch to the session it names. Writers for the same session
// are serialized in process, and the read-modify-write runs under WATCH so
// concurrent replicas cannot overwrite each other.
func (s *Store) Ingest(ctx context.Context, b Batch, defaults Defaults) (*Session, int, error) {
	if b.SessionID == "" {
		return nil, 0, fmt.Errorf("%w: sessionId is required", shared.ErrValidation)
	}

	unlock := s.locks.Lock(b.SessionID)
	defer unlock()

	key := RedisKey(b.SessionID)
	var (
		result   *Session
		appended int
	)

	txf := func(tx *redis.Tx) error {
		existing, err := s.load(ctx, tx, key)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		next, n := Apply(existing, b, defaults, s.now())
		data, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			pipe.SAdd(ctx, indexKey, next.ID)
			return nil
		})
		if err != nil {
			return err
		}

		result, appended = next, n
		return nil
	}

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := s.redis.Watch(ctx, txf, key)
		if err == nil {
			return result, appended, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, 0, fmt.Errorf("ingest %s: %w", b.SessionID, err)
	}
	return nil, 0, fmt.Errorf("ingest %s: %w", b.SessionID, redis.TxFailedErr)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *Store) load(ctx context.Context, cmd getter, key string) (*Session, error) {
	data, err := cmd.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &sess, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	return s.load(ctx, s.redis, RedisKey(id))
}

// List returns every stored session, newest first.
func (s *Store) List(ctx context.Context) ([]*Session, error) {
	ids, err := s.redis.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*Session, 0, len(ids))
	var stale []any

	for start := 0; start < len(ids); start += listChunkSize {
		end := start + listChunkSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		keys := make([]string, len(chunk))
		for i, id := range chunk {
			keys[i] = RedisKey(id)
		}

		values, err := s.redis.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, err
		}

		for i, v := range values {
			raw, ok := v.(string)
			if !ok {
				stale = append(stale, chunk[i])
				continue
			}
			var sess Session
			if err := json.Unmarshal([]byte(raw), &sess); err != nil {
				s.logger.Warn("skipping undecodable session", "error", err, "session_id", chunk[i])
				continue
			}
			sessions = append(sessions, &sess)
		}
	}

	if len(stale) > 0 {
		if err := s.redis.SRem(ctx, indexKey, stale...).Err(); err != nil {
			s.logger.Warn("failed to prune expired sessions from index", "error", err, "session_ids", stale)
		} else {
			s.logger.Debug("pruned expired sessions from index", "count", len(stale))
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].StartedAt.Equal(sessions[j].StartedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	return sessions, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.redis.SCard(ctx, indexKey).Result()
}
