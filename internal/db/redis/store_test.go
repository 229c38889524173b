package redis

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/campusbot/internal/db"
)

func isDBError(err error) bool {
	var de *db.Error
	return errors.As(err, &de)
}

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreWithClient(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreWithClient(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

// --- hash.go tests ---

func TestHSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET" && cmd[1] == "campusbot:session:s-1" && len(cmd) == 6
		})).
		Return(mock.Result(mock.RedisInt64(2)))

	s := NewStoreWithClient(c)
	err := s.HSet(context.Background(), "campusbot:session:s-1", map[string]string{"user_id": "u-1", "query_count": "0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSet_EmptyIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	s := NewStoreWithClient(c)
	if err := s.HSet(context.Background(), "k", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "HSET" })).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreWithClient(c)
	err := s.HSet(context.Background(), "k", map[string]string{"f": "v"})
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

func TestHGetAll_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "k")).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
			"user_id":     mock.RedisString("u-1"),
			"query_count": mock.RedisString("3"),
		})))

	s := NewStoreWithClient(c)
	m, err := s.HGetAll(context.Background(), "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m["user_id"] != "u-1" || m["query_count"] != "3" {
		t.Errorf("unexpected map: %v", m)
	}
}

func TestHIncrBy(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HINCRBY", "k", "query_count", "1")).
		Return(mock.Result(mock.RedisInt64(4)))

	s := NewStoreWithClient(c)
	n, err := s.HIncrBy(context.Background(), "k", "query_count", 1)
	if err != nil || n != 4 {
		t.Fatalf("HIncrBy = %d, %v", n, err)
	}
}

func TestDel_MultipleKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "a", "b")).
		Return(mock.Result(mock.RedisInt64(2)))

	s := NewStoreWithClient(c)
	if err := s.Del(context.Background(), "a", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Del(context.Background()); err != nil {
		t.Fatalf("empty Del should be a no-op: %v", err)
	}
}

// --- list.go tests ---

func TestRPushAndTrim(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.Match("RPUSH", "h", `{"question":"q"}`)).
			Return(mock.Result(mock.RedisInt64(7))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("LTRIM", "h", "-6", "-1")).
			Return(mock.Result(mock.RedisString("OK"))),
	)

	s := NewStoreWithClient(c)
	if err := s.RPush(context.Background(), "h", `{"question":"q"}`); err != nil {
		t.Fatalf("RPush: %v", err)
	}
	if err := s.LTrim(context.Background(), "h", -6, -1); err != nil {
		t.Fatalf("LTrim: %v", err)
	}
}

func TestLRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("LRANGE", "h", "0", "-1")).
		Return(mock.Result(mock.RedisArray(mock.RedisString("a"), mock.RedisString("b"))))

	s := NewStoreWithClient(c)
	got, err := s.LRange(context.Background(), "h", 0, -1)
	if err != nil || !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("LRange = %v, %v", got, err)
	}
}

func TestLRange_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("LRANGE", "h", "0", "-1")).
		Return(mock.ErrorResult(errors.New("conn reset")))

	s := NewStoreWithClient(c)
	if _, err := s.LRange(context.Background(), "h", 0, -1); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

// --- zset.go tests ---

func TestZAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("ZADD", "sessions", "1700000000", "s-1")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreWithClient(c)
	if err := s.ZAdd(context.Background(), "sessions", 1700000000, "s-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestZRangeByScore(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("ZRANGEBYSCORE", "sessions", "0", "1700000000")).
		Return(mock.Result(mock.RedisArray(mock.RedisString("s-1"))))

	s := NewStoreWithClient(c)
	got, err := s.ZRangeByScore(context.Background(), "sessions", 0, 1700000000)
	if err != nil || !slices.Equal(got, []string{"s-1"}) {
		t.Fatalf("ZRangeByScore = %v, %v", got, err)
	}
}

func TestZRem(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("ZREM", "sessions", "s-1", "s-2")).
		Return(mock.Result(mock.RedisInt64(2)))

	s := NewStoreWithClient(c)
	if err := s.ZRem(context.Background(), "sessions", "s-1", "s-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
