package config

import (
	"sync"
	"time"

	"github.com/everFinance/names/common"
	"github.com/everFinance/names/config/schema"
	"github.com/go-co-op/gocron"
)

var log = common.NewLog("config")

// Config holds runtime tunables kept in the config db and refreshed in the background.
type Config struct {
	wdb       *Wdb
	scheduler *gocron.Scheduler

	mu          sync.RWMutex
	param       schema.Param
	ipWhiteList map[string]struct{}
}

func New(mysqlDsn, sqliteDir string, useSqlite bool) *Config {
	var wdb *Wdb
	if useSqlite {
		wdb = NewSqliteDb(sqliteDir)
	} else {
		wdb = NewMysqlDb(mysqlDsn)
	}
	if err := wdb.Migrate(); err != nil {
		panic(err)
	}
	return NewWithWdb(wdb)
}

func NewWithWdb(wdb *Wdb) *Config {
	c := &Config{
		wdb:         wdb,
		scheduler:   gocron.NewScheduler(time.UTC),
		param:       schema.DefaultParam(),
		ipWhiteList: make(map[string]struct{}),
	}
	c.updateParam()
	c.updateIPWhiteList()
	return c
}

func (c *Config) GetParam() schema.Param {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.param
}

// IsWhitelisted reports whether the origin or ip is excluded from rate limiting.
func (c *Config) IsWhitelisted(originOrIP string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.ipWhiteList[originOrIP]
	return ok
}

func (c *Config) Run() {
	go c.runJobs()
}

func (c *Config) Close() {
	c.scheduler.Stop()
	c.wdb.Close()
}
