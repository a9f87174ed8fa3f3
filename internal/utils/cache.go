package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

// Cache 进程内缓存（热搜、留言统计等小数据）
var Cache = cache.New(5*time.Minute, 10*time.Minute)

// InitCache 重建缓存，默认过期 5 分钟，清理间隔 10 分钟
func InitCache() {
	Cache = cache.New(5*time.Minute, 10*time.Minute)
}

// CacheDelete 删除缓存
func CacheDelete(key string) {
	Cache.Delete(key)
}

// GetOrLoad 命中直接返回，否则调用 load 并写入缓存；load 出错不缓存
func GetOrLoad[T any](key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if cached, found := Cache.Get(key); found {
		if v, ok := cached.(T); ok {
			return v, nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	Cache.Set(key, v, ttl)
	return v, nil
}

// CacheItem 缓存值及过期时间
type CacheItem[T any] struct {
	Value     T
	ExpiredAt time.Time
}

// SearchCache 带 TTL 的 LRU 缓存，用于搜索结果
type SearchCache[T any] struct {
	storage *lru.Cache[string, CacheItem[T]]
	ttl     time.Duration
	now     func() time.Time
}

// NewSearchCache size 为最大条数，ttl 为有效期
func NewSearchCache[T any](size int, ttl time.Duration) *SearchCache[T] {
	if size <= 0 {
		size = 1
	}
	// lru.Cache 自带锁
	c, _ := lru.New[string, CacheItem[T]](size)
	return &SearchCache[T]{
		storage: c,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Set 写入或更新
func (c *SearchCache[T]) Set(key string, value T) {
	c.storage.Add(key, CacheItem[T]{
		Value:     value,
		ExpiredAt: c.now().Add(c.ttl),
	})
}

// Get 读取，过期条目顺带删除
func (c *SearchCache[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}
	if c.now().After(item.ExpiredAt) {
		c.storage.Remove(key)
		return zero, false
	}
	return item.Value, true
}
