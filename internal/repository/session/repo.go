// Package session keeps chat sessions, their query log and the rolling
// conversation window in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/campusbot/internal/domain"
	"github.com/kailas-cloud/campusbot/internal/domain/chat"
)

// store is the consumer interface for session bookkeeping (ISP).
//
//nolint:interfacebloat // sessions span hashes, lists and the activity index
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, val int64) (int64, error)
	Del(ctx context.Context, keys ...string) error
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LTrim(ctx context.Context, key string, start, stop int64) error
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRangeByScore(ctx context.Context, key string, minScore, maxScore float64) ([]string, error)
	ZRem(ctx context.Context, key string, members ...string) error
}

const (
	keyPrefix  = "campusbot:"
	activeKey  = keyPrefix + "sessions"
	fieldUser  = "user_id"
	fieldCount = "query_count"
	fieldStart = "created_at"
	fieldSeen  = "last_active"
)

func sessionKey(id string) string { return keyPrefix + "session:" + id }
func historyKey(id string) string { return keyPrefix + "session:" + id + ":history" }
func queriesKey(id string) string { return keyPrefix + "session:" + id + ":queries" }
func queryKey(id string) string   { return keyPrefix + "query:" + id }
func userKey(id string) string    { return keyPrefix + "user:" + id }

// Repo implements session storage on top of db.Store.
type Repo struct {
	store  store
	window int
	now    func() time.Time
}

// New creates a session repository keeping window turns of history.
func New(s store, window int) *Repo {
	if window <= 0 {
		window = chat.DefaultHistoryWindow
	}
	return &Repo{store: s, window: window, now: time.Now}
}

// Create starts a session. An empty userID creates a new anonymous user.
func (r *Repo) Create(ctx context.Context, userID string) (chat.Session, error) {
	now := r.now().UTC()
	if userID == "" {
		userID = uuid.NewString()
	}
	sess := chat.Session{ID: uuid.NewString(), UserID: userID, CreatedAt: now, LastActive: now}

	if err := r.store.HSet(ctx, userKey(userID), map[string]string{
		"id":       userID,
		fieldStart: formatTime(now),
	}); err != nil {
		return chat.Session{}, fmt.Errorf("create user %s: %w", userID, err)
	}
	if err := r.store.HSet(ctx, sessionKey(sess.ID), map[string]string{
		fieldUser:  userID,
		fieldStart: formatTime(now),
		fieldSeen:  formatTime(now),
		fieldCount: "0",
	}); err != nil {
		return chat.Session{}, fmt.Errorf("create session %s: %w", sess.ID, err)
	}
	if err := r.store.ZAdd(ctx, activeKey, float64(now.Unix()), sess.ID); err != nil {
		return chat.Session{}, fmt.Errorf("index session %s: %w", sess.ID, err)
	}
	return sess, nil
}

// Get returns a session or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (chat.Session, error) {
	m, err := r.store.HGetAll(ctx, sessionKey(id))
	if err != nil {
		return chat.Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	if len(m) == 0 {
		return chat.Session{}, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}

	count, _ := strconv.ParseInt(m[fieldCount], 10, 64)
	return chat.Session{
		ID:         id,
		UserID:     m[fieldUser],
		CreatedAt:  parseTime(m[fieldStart]),
		LastActive: parseTime(m[fieldSeen]),
		QueryCount: count,
	}, nil
}

// History returns the last turns of a session, oldest first.
func (r *Repo) History(ctx context.Context, id string) ([]chat.Turn, error) {
	raw, err := r.store.LRange(ctx, historyKey(id), -int64(r.window), -1)
	if err != nil {
		return nil, fmt.Errorf("get history %s: %w", id, err)
	}
	turns := make([]chat.Turn, 0, len(raw))
	for _, item := range raw {
		var t chat.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// Record stores the query, appends the turn to the history window and bumps the
// session counters. Every step runs even when an earlier one fails.
func (r *Repo) Record(ctx context.Context, rec chat.QueryRecord) error {
	if rec.SessionID == "" {
		return nil
	}
	now := r.now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}

	var errs []error

	if err := r.store.HSet(ctx, queryKey(rec.ID), map[string]string{
		"id":               rec.ID,
		"session_id":       rec.SessionID,
		"text":             rec.Text,
		"answer":           rec.Answer,
		"source":           string(rec.Source),
		"response_time_ms": strconv.FormatInt(rec.ResponseTime.Milliseconds(), 10),
		fieldStart:         formatTime(rec.CreatedAt),
	}); err != nil {
		errs = append(errs, fmt.Errorf("store query: %w", err))
	}
	if err := r.store.RPush(ctx, queriesKey(rec.SessionID), rec.ID); err != nil {
		errs = append(errs, fmt.Errorf("link query: %w", err))
	}

	if err := r.appendTurn(ctx, rec); err != nil {
		errs = append(errs, err)
	}

	count, err := r.store.HIncrBy(ctx, sessionKey(rec.SessionID), fieldCount, 1)
	if err != nil {
		errs = append(errs, fmt.Errorf("count query: %w", err))
	}
	touch := map[string]string{fieldSeen: formatTime(now)}
	if count == 1 {
		// first query on a session nobody created: upsert
		touch[fieldStart] = formatTime(now)
	}
	if err := r.store.HSet(ctx, sessionKey(rec.SessionID), touch); err != nil {
		errs = append(errs, fmt.Errorf("touch session: %w", err))
	}
	if err := r.store.ZAdd(ctx, activeKey, float64(now.Unix()), rec.SessionID); err != nil {
		errs = append(errs, fmt.Errorf("index session: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("record query %s: %w", rec.ID, errors.Join(errs...))
	}
	return nil
}

func (r *Repo) appendTurn(ctx context.Context, rec chat.QueryRecord) error {
	data, err := json.Marshal(chat.Turn{Question: rec.Text, Answer: rec.Answer})
	if err != nil {
		return fmt.Errorf("encode turn: %w", err)
	}
	key := historyKey(rec.SessionID)
	if err := r.store.RPush(ctx, key, string(data)); err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	if err := r.store.LTrim(ctx, key, -int64(r.window), -1); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// IdleSince lists sessions whose last activity is at or before t.
func (r *Repo) IdleSince(ctx context.Context, t time.Time) ([]string, error) {
	ids, err := r.store.ZRangeByScore(ctx, activeKey, 0, float64(t.Unix()))
	if err != nil {
		return nil, fmt.Errorf("list idle sessions: %w", err)
	}
	return ids, nil
}

// Delete removes a session with its queries, history and user row.
func (r *Repo) Delete(ctx context.Context, id string) error {
	m, err := r.store.HGetAll(ctx, sessionKey(id))
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	queryIDs, err := r.store.LRange(ctx, queriesKey(id), 0, -1)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}

	keys := make([]string, 0, len(queryIDs)+4)
	keys = append(keys, sessionKey(id), historyKey(id), queriesKey(id))
	for _, q := range queryIDs {
		keys = append(keys, queryKey(q))
	}
	if u := m[fieldUser]; u != "" {
		keys = append(keys, userKey(u))
	}

	if err := r.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if err := r.store.ZRem(ctx, activeKey, id); err != nil {
		return fmt.Errorf("unindex session %s: %w", id, err)
	}
	return nil
}

func formatTime(t time.Time) string { return t.Format(time.RFC3339Nano) }

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
