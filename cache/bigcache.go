package cache

import (
	"context"
	"time"

	"github.com/allegro/bigcache/v3"
)

const (
	quoteShards       = 64
	maxQuoteEntrySize = 256 // bytes, a json price quote
)

type BigCache struct {
	Cache *bigcache.BigCache
}

// NewBigCache builds a cache sized for small entries such as price quotes.
func NewBigCache(allKeysExpTime time.Duration) (*BigCache, error) {
	conf := bigcache.DefaultConfig(allKeysExpTime)
	conf.Shards = quoteShards
	conf.MaxEntrySize = maxQuoteEntrySize
	conf.CleanWindow = allKeysExpTime
	cache, err := bigcache.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &BigCache{Cache: cache}, nil
}

func (s *BigCache) Set(key string, entry []byte) error {
	return s.Cache.Set(key, entry)
}

func (s *BigCache) Get(key string) ([]byte, error) {
	return s.Cache.Get(key)
}

// Reset drops every entry, used after prices or suffixes change.
func (s *BigCache) Reset() error {
	return s.Cache.Reset()
}
