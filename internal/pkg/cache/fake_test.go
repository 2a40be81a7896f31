package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeCmdable struct {
	data     map[string]string
	ttls     map[string]time.Duration
	mgetErr  error
	pingErr  error
	setCalls int
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if f.pingErr != nil {
		cmd.SetErr(f.pingErr)
		return cmd
	}
	cmd.SetVal("PONG")
	return cmd
}

func (f *fakeCmdable) MGet(ctx context.Context, keys ...string) *redis.SliceCmd {
	cmd := redis.NewSliceCmd(ctx)
	if f.mgetErr != nil {
		cmd.SetErr(f.mgetErr)
		return cmd
	}
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := f.data[k]; ok {
			out[i] = v
		}
	}
	cmd.SetVal(out)
	return cmd
}

func (f *fakeCmdable) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.setCalls++
	switch v := value.(type) {
	case string:
		f.data[key] = v
	case []byte:
		f.data[key] = string(v)
	}
	f.ttls[key] = ttl
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(n)
	return cmd
}
