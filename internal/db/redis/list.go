package redis

import (
	"context"

	"github.com/kailas-cloud/campusbot/internal/db"
)

// RPush appends values to a list.
func (s *Store) RPush(ctx context.Context, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	cmd := s.b().Rpush().Key(key).Element(values...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpRPush, Err: err}
	}
	return nil
}

// LRange returns list elements between start and stop, inclusive. Negative
// indexes count from the tail.
func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	cmd := s.b().Lrange().Key(key).Start(start).Stop(stop).Build()
	out, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}
	return out, nil
}

// LTrim keeps only the elements between start and stop.
func (s *Store) LTrim(ctx context.Context, key string, start, stop int64) error {
	cmd := s.b().Ltrim().Key(key).Start(start).Stop(stop).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpLTrim, Err: err}
	}
	return nil
}
