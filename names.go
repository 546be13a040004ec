package names

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/everFinance/names/cache"
	"github.com/everFinance/names/common"
	"github.com/everFinance/names/config"
	configSchema "github.com/everFinance/names/config/schema"
	"github.com/everFinance/names/schema"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
)

const (
	defaultQuoteCacheTTL = 30 * time.Second
)

type Names struct {
	self schema.Name // operator account, also receives every deposit

	store     *Store
	wdb       *Wdb
	engine    *gin.Engine
	scheduler *gocron.Scheduler
	config    *config.Config
	quotes    *cache.Cache
	kWriters  map[string]EventWriter

	accounts AccountCreator
	tokens   TokenTransfer

	txLocker sync.RWMutex
	now      func() time.Time
}

func New(cfg schema.Config) *Names {
	self := schema.Name(cfg.Self)
	if err := self.Validate(); err != nil {
		panic(err)
	}

	var (
		store *Store
		err   error
	)
	switch {
	case cfg.S3KV.UseS3:
		store, err = NewS3Store(cfg.S3KV.AccKey, cfg.S3KV.SecretKey, cfg.S3KV.Region, cfg.S3KV.Prefix, cfg.S3KV.Endpoint)
	case cfg.AliyunKV.UseAliyun:
		store, err = NewAliyunStore(cfg.AliyunKV.Endpoint, cfg.AliyunKV.AccKey, cfg.AliyunKV.SecretKey, cfg.AliyunKV.Prefix)
	case cfg.MongoDBKV.UseMongoDB:
		store, err = NewMongoDBStore(context.Background(), cfg.MongoDBKV.Uri, cfg.MongoDBKV.DbName)
	default:
		store, err = NewBoltStore(cfg.BoltDir)
	}
	if err != nil {
		panic(err)
	}

	var wdb *Wdb
	if cfg.UseSqlite {
		wdb = NewSqliteDb(cfg.SqliteDir)
	} else {
		wdb = NewMysqlDb(cfg.Mysql)
	}
	if err = wdb.Migrate(); err != nil {
		panic(err)
	}

	ttl := defaultQuoteCacheTTL
	if cfg.QuoteCacheTTL > 0 {
		ttl = time.Duration(cfg.QuoteCacheTTL) * time.Second
	}
	quotes, err := cache.NewLocalCache(ttl)
	if err != nil {
		panic(err)
	}

	ledger := NewLedgerGateway(cfg.LedgerNode)
	s := newNames(self, store, wdb, ledger, ledger, quotes)
	s.config = config.New(cfg.Mysql, cfg.SqliteDir, cfg.UseSqlite)

	if cfg.Kafka.Start {
		s.kWriters, err = NewKWriters(cfg.Kafka.Uri)
		if err != nil {
			panic(err)
		}
	}
	return s
}

func newNames(self schema.Name, store *Store, wdb *Wdb, accounts AccountCreator, tokens TokenTransfer, quotes *cache.Cache) *Names {
	return &Names{
		self:      self,
		store:     store,
		wdb:       wdb,
		engine:    gin.Default(),
		scheduler: gocron.NewScheduler(time.UTC),
		quotes:    quotes,
		accounts:  accounts,
		tokens:    tokens,
		now:       time.Now,
	}
}

func (s *Names) Run(port, metricPort string) {
	if s.config != nil {
		s.config.Run()
	}
	common.NewMetricServer(metricPort)
	go s.runAPI(port)
	go s.runJobs()
}

func (s *Names) Close() {
	s.scheduler.Stop()
	if s.config != nil {
		s.config.Close()
	}
	for _, w := range s.kWriters {
		w.Close()
	}
	if s.wdb != nil {
		s.wdb.Close()
	}
	if err := s.store.Close(); err != nil {
		log.Error("s.store.Close()", "err", err)
	}
}

// update runs fn as one serialized action. Writes are committed only when fn returns nil.
func (s *Names) update(fn func(tx *Txn) error) error {
	s.txLocker.Lock()
	defer s.txLocker.Unlock()

	tx := s.store.Begin()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("tx.Commit()", "err", err)
		return err
	}
	if tx.Touched(schema.ParamsBucket) || tx.Touched(schema.SuffixBucket) {
		s.invalidateQuotes()
	}
	return nil
}

func (s *Names) view(fn func(tx *Txn) error) error {
	s.txLocker.RLock()
	defer s.txLocker.RUnlock()
	return fn(s.store.Begin())
}

// requireAuth passes when auth is one of the accepted principals.
func requireAuth(auth schema.Name, accepted ...schema.Name) error {
	for _, a := range accepted {
		if auth == a {
			return nil
		}
	}
	return fmt.Errorf("%w: missing authority of %s", schema.ErrUnauthorized, accepted[0])
}

func (s *Names) maxWebsiteLen() int {
	if s.config != nil && s.config.GetParam().MaxWebsiteLen > 0 {
		return s.config.GetParam().MaxWebsiteLen
	}
	return configSchema.DefaultParam().MaxWebsiteLen
}
