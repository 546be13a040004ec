package cache

import (
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"
)

type Cache struct {
	Cache ICache
}

type ICache interface {
	Set(key string, entry []byte) error

	Get(key string) ([]byte, error)

	// Reset drops every entry
	Reset() error
}

func NewLocalCache(allKeysExpTime time.Duration) (*Cache, error) {
	cache, err := NewBigCache(allKeysExpTime)
	if err != nil {
		return nil, err
	}
	return &Cache{Cache: cache}, nil
}

func IsMiss(err error) bool {
	return errors.Is(err, bigcache.ErrEntryNotFound)
}
