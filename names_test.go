package names

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/everFinance/names/schema"
	"github.com/stretchr/testify/require"
)

const (
	testSelf     = schema.Name("names")
	testContract = schema.Name("eosio.token")
	testOwnerKey = "EOS6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5GDW5CV"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeLedger struct {
	mu          sync.Mutex
	created     []schema.AccountCreation
	transfers   []schema.Transfer
	createErr   error
	transferErr error
}

func (f *fakeLedger) CreateAccount(ctx context.Context, req schema.AccountCreation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, req)
	return nil
}

func (f *fakeLedger) Transfer(ctx context.Context, tr schema.Transfer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transferErr != nil {
		return f.transferErr
	}
	f.transfers = append(f.transfers, tr)
	return nil
}

func newTestNames(t *testing.T) (*Names, *fakeLedger) {
	store, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	ledger := &fakeLedger{}
	s := newNames(testSelf, store, nil, ledger, ledger, nil)
	s.now = func() time.Time { return testNow }
	t.Cleanup(func() { store.Close() })
	return s, ledger
}

func eos(amount string) schema.ExtendedAsset {
	return schema.ExtendedAsset{Quantity: schema.MustParseAsset(amount + " EOS"), Contract: testContract}
}

func asset(amount string) schema.Asset {
	return schema.MustParseAsset(amount + " EOS")
}

// setTestPrices sets a 1.0000 EOS base price and the given premium table.
func setTestPrices(t *testing.T, s *Names, premium map[uint8]string, commissionBips *uint64) {
	p := make(map[uint8]schema.Asset, len(premium))
	for length, amount := range premium {
		p[length] = asset(amount)
	}
	_, err := s.SetPrices(testSelf, schema.SetPricesReq{Base: eos("1.0000"), Premium: p, CommissionBips: commissionBips})
	require.NoError(t, err)
}

func deposit(t *testing.T, s *Names, owner schema.Name, amount string) {
	require.NoError(t, s.OnDeposit(owner, testSelf, eos(amount), ""))
}

func registerSuffix(t *testing.T, s *Names, suffix schema.Name) {
	_, err := s.RegisterSuffix(suffix, schema.RegisterSuffixReq{Suffix: suffix})
	require.NoError(t, err)
}

// dumpStore returns every committed row keyed by bucket and key.
func dumpStore(t *testing.T, s *Names) map[string]string {
	res := make(map[string]string)
	for _, bucket := range schema.AllBuckets() {
		keys, err := s.store.KVDb.GetAllKey(bucket)
		require.NoError(t, err)
		for _, key := range keys {
			val, err := s.store.KVDb.Get(bucket, key)
			require.NoError(t, err)
			res[bucket+"/"+key] = string(val)
		}
	}
	return res
}
