package session

import (
	"context"
	"sort"
	"strconv"
	"testing"
	"time"
)

// memStore is an in-memory implementation of the consumer interface.
type memStore struct {
	hashes map[string]map[string]string
	lists  map[string][]string
	zsets  map[string]map[string]float64

	failOn map[string]error
	calls  []string
}

func newMemStore() *memStore {
	return &memStore{
		hashes: map[string]map[string]string{},
		lists:  map[string][]string{},
		zsets:  map[string]map[string]float64{},
		failOn: map[string]error{},
	}
}

func (m *memStore) hit(op string) error {
	m.calls = append(m.calls, op)
	return m.failOn[op]
}

func (m *memStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if err := m.hit("HSET"); err != nil {
		return err
	}
	h := m.hashes[key]
	if h == nil {
		h = map[string]string{}
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *memStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if err := m.hit("HGETALL"); err != nil {
		return nil, err
	}
	out := map[string]string{}
	for k, v := range m.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) HIncrBy(_ context.Context, key, field string, val int64) (int64, error) {
	if err := m.hit("HINCRBY"); err != nil {
		return 0, err
	}
	h := m.hashes[key]
	if h == nil {
		h = map[string]string{}
		m.hashes[key] = h
	}
	cur, _ := strconv.ParseInt(h[field], 10, 64)
	cur += val
	h[field] = strconv.FormatInt(cur, 10)
	return cur, nil
}

func (m *memStore) Del(_ context.Context, keys ...string) error {
	if err := m.hit("DEL"); err != nil {
		return err
	}
	for _, k := range keys {
		delete(m.hashes, k)
		delete(m.lists, k)
		delete(m.zsets, k)
	}
	return nil
}

func (m *memStore) RPush(_ context.Context, key string, values ...string) error {
	if err := m.hit("RPUSH"); err != nil {
		return err
	}
	m.lists[key] = append(m.lists[key], values...)
	return nil
}

func (m *memStore) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	if err := m.hit("LRANGE"); err != nil {
		return nil, err
	}
	l := m.lists[key]
	lo, hi := bounds(len(l), start, stop)
	if lo > hi {
		return []string{}, nil
	}
	return append([]string(nil), l[lo:hi+1]...), nil
}

func (m *memStore) LTrim(_ context.Context, key string, start, stop int64) error {
	if err := m.hit("LTRIM"); err != nil {
		return err
	}
	l := m.lists[key]
	lo, hi := bounds(len(l), start, stop)
	if lo > hi {
		m.lists[key] = nil
		return nil
	}
	m.lists[key] = append([]string(nil), l[lo:hi+1]...)
	return nil
}

// bounds resolves Redis-style inclusive list indexes.
func bounds(n int, start, stop int64) (int, int) {
	if start < 0 {
		start += int64(n)
	}
	if stop < 0 {
		stop += int64(n)
	}
	if start < 0 {
		start = 0
	}
	if stop >= int64(n) {
		stop = int64(n) - 1
	}
	return int(start), int(stop)
}

func (m *memStore) ZAdd(_ context.Context, key string, score float64, member string) error {
	if err := m.hit("ZADD"); err != nil {
		return err
	}
	z := m.zsets[key]
	if z == nil {
		z = map[string]float64{}
		m.zsets[key] = z
	}
	z[member] = score
	return nil
}

func (m *memStore) ZRangeByScore(_ context.Context, key string, minScore, maxScore float64) ([]string, error) {
	if err := m.hit("ZRANGEBYSCORE"); err != nil {
		return nil, err
	}
	var out []string
	for member, s := range m.zsets[key] {
		if s >= minScore && s <= maxScore {
			out = append(out, member)
		}
	}
	sort.Slice(out, func(i, j int) bool { return m.zsets[key][out[i]] < m.zsets[key][out[j]] })
	return out, nil
}

func (m *memStore) ZRem(_ context.Context, key string, members ...string) error {
	if err := m.hit("ZREM"); err != nil {
		return err
	}
	for _, mem := range members {
		delete(m.zsets[key], mem)
	}
	return nil
}

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T, window int) (*Repo, *memStore) {
	t.Helper()
	s := newMemStore()
	r := New(s, window)
	r.now = func() time.Time { return testNow }
	return r, s
}
