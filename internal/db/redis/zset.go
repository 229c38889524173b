package redis

import (
	"context"
	"strconv"

	"github.com/kailas-cloud/campusbot/internal/db"
)

// ZAdd sets member's score, adding it when absent.
func (s *Store) ZAdd(ctx context.Context, key string, score float64, member string) error {
	cmd := s.b().Zadd().Key(key).ScoreMember().ScoreMember(score, member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}

// ZRangeByScore returns members with minScore <= score <= maxScore, lowest first.
func (s *Store) ZRangeByScore(ctx context.Context, key string, minScore, maxScore float64) ([]string, error) {
	cmd := s.b().Zrangebyscore().Key(key).
		Min(formatScore(minScore)).
		Max(formatScore(maxScore)).
		Build()
	out, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRangeByScore, Err: err}
	}
	return out, nil
}

// ZRem removes members.
func (s *Store) ZRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	cmd := s.b().Zrem().Key(key).Member(members...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZRem, Err: err}
	}
	return nil
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
