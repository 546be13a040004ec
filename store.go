package names

import (
	"context"
	"encoding/json"

	"github.com/everFinance/names/rawdb"
	"github.com/everFinance/names/schema"
)

type Store struct {
	KVDb rawdb.KeyValueDB
}

func NewBoltStore(boltDirPath string) (*Store, error) {
	Db, err := rawdb.NewBoltDB(boltDirPath)
	if err != nil {
		return nil, err
	}
	return &Store{KVDb: Db}, nil
}

func NewS3Store(accKey, secretKey, region, bucketPrefix, endpoint string) (*Store, error) {
	Db, err := rawdb.NewS3DB(accKey, secretKey, region, bucketPrefix, endpoint)
	if err != nil {
		return nil, err
	}
	return &Store{KVDb: Db}, nil
}

func NewAliyunStore(endpoint, accKey, secretKey, bucketPrefix string) (*Store, error) {
	Db, err := rawdb.NewAliyunDB(endpoint, accKey, secretKey, bucketPrefix)
	if err != nil {
		return nil, err
	}
	return &Store{KVDb: Db}, nil
}

func NewMongoDBStore(ctx context.Context, uri, dbName string) (*Store, error) {
	Db, err := rawdb.NewMongoDB(ctx, uri, dbName)
	if err != nil {
		return nil, err
	}
	return &Store{KVDb: Db}, nil
}

func (s *Store) Close() error {
	return s.KVDb.Close()
}

// Begin opens a write overlay on the store. Nothing reaches the db until Commit.
func (s *Store) Begin() *Txn {
	return &Txn{
		db:      s.KVDb,
		index:   make(map[string]int),
		touched: make(map[string]bool),
	}
}

type Txn struct {
	db      rawdb.KeyValueDB
	ops     []rawdb.Op
	index   map[string]int // bucket+key -> position in ops
	touched map[string]bool
}

func (t *Txn) Commit() error {
	if len(t.ops) == 0 {
		return nil
	}
	return t.db.Batch(t.ops)
}

// Touched reports whether the txn writes to the bucket.
func (t *Txn) Touched(bucket string) bool {
	return t.touched[bucket]
}

func (t *Txn) get(bucket, key string) ([]byte, error) {
	if i, ok := t.index[bucket+"\x00"+key]; ok {
		if t.ops[i].Delete {
			return nil, schema.ErrNotExist
		}
		return t.ops[i].Value, nil
	}
	return t.db.Get(bucket, key)
}

func (t *Txn) write(op rawdb.Op) {
	k := op.Bucket + "\x00" + op.Key
	t.touched[op.Bucket] = true
	if i, ok := t.index[k]; ok {
		t.ops[i] = op
		return
	}
	t.index[k] = len(t.ops)
	t.ops = append(t.ops, op)
}

func (t *Txn) putJSON(bucket, key string, v interface{}) error {
	by, err := json.Marshal(v)
	if err != nil {
		return err
	}
	t.write(rawdb.Op{Bucket: bucket, Key: key, Value: by})
	return nil
}

func (t *Txn) getJSON(bucket, key string, v interface{}) error {
	by, err := t.get(bucket, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(by, v)
}

func (t *Txn) LoadPrices() (params schema.PriceParams, err error) {
	err = t.getJSON(schema.ParamsBucket, schema.PricesKey, &params)
	return
}

func (t *Txn) SavePrices(params schema.PriceParams) error {
	return t.putJSON(schema.ParamsBucket, schema.PricesKey, params)
}

func (t *Txn) LoadSettings() (settings schema.Settings, err error) {
	err = t.getJSON(schema.ParamsBucket, schema.SettingsKey, &settings)
	return
}

func (t *Txn) SaveSettings(settings schema.Settings) error {
	return t.putJSON(schema.ParamsBucket, schema.SettingsKey, settings)
}

func (t *Txn) LoadSuffix(suffix schema.Name) (rec schema.SuffixRecord, err error) {
	err = t.getJSON(schema.SuffixBucket, string(suffix), &rec)
	return
}

func (t *Txn) SaveSuffix(rec schema.SuffixRecord) error {
	return t.putJSON(schema.SuffixBucket, string(rec.Suffix), rec)
}

func (t *Txn) DeleteSuffix(suffix schema.Name) {
	t.write(rawdb.Op{Bucket: schema.SuffixBucket, Key: string(suffix), Delete: true})
}

// LoadSuffixes reads committed records only.
func (t *Txn) LoadSuffixes() ([]schema.SuffixRecord, error) {
	keys, err := t.db.GetAllKey(schema.SuffixBucket)
	if err != nil {
		return nil, err
	}
	res := make([]schema.SuffixRecord, 0, len(keys))
	for _, key := range keys {
		rec, err := t.LoadSuffix(schema.Name(key))
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, nil
}

func (t *Txn) LoadBalance(owner schema.Name, symbolCode string) (bal schema.Balance, err error) {
	err = t.getJSON(schema.BalanceBucket, schema.BalanceKey(owner, symbolCode), &bal)
	return
}

func (t *Txn) SaveBalance(bal schema.Balance) error {
	return t.putJSON(schema.BalanceBucket, schema.BalanceKey(bal.Owner, bal.Balance.Symbol.Code), bal)
}

func (t *Txn) DeleteBalance(owner schema.Name, symbolCode string) {
	t.write(rawdb.Op{Bucket: schema.BalanceBucket, Key: schema.BalanceKey(owner, symbolCode), Delete: true})
}
