package cache

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

var cacheLookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "bucketlist_cache_lookups_total", Help: "Read-through cache lookups"},
	[]string{"result"}, // hit | miss | bypass
)

func init() { prometheus.MustRegister(cacheLookups) }

// Cache 读穿缓存；nil 或未配置 RDB 时直接回源
type Cache struct {
	RDB    *redis.Client
	Prefix string
	sf     singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewWithClient(rdb *redis.Client) *Cache {
	return &Cache{RDB: rdb, Prefix: "bucketlist:"}
}

func (c *Cache) Enabled() bool { return c != nil && c.RDB != nil }

func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Close()
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if !c.Enabled() {
		cacheLookups.WithLabelValues("bypass").Inc()
		return load(ctx)
	}
	key = c.Prefix + key
	// 先读缓存；redis 故障时降级回源
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		cacheLookups.WithLabelValues("hit").Inc()
		return b, nil
	}
	cacheLookups.WithLabelValues("miss").Inc()
	// single flight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, key, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// InvalidatePrefix 删除 prefix 下所有 key（种子数据重灌后调用）
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) (int, error) {
	if !c.Enabled() {
		return 0, nil
	}
	var (
		cursor uint64
		n      int
	)
	for {
		keys, next, err := c.RDB.Scan(ctx, cursor, c.Prefix+prefix+"*", 200).Result()
		if err != nil {
			return n, err
		}
		if len(keys) > 0 {
			if err := c.RDB.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, redis.Nil) {
				return n, err
			}
			n += len(keys)
		}
		cursor = next
		if cursor == 0 {
			return n, nil
		}
	}
}
