package names

import (
	"errors"
	"testing"

	"github.com/everFinance/names/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxnOverlay(t *testing.T) {
	s, _ := newTestNames(t)

	tx := s.store.Begin()
	require.NoError(t, tx.SaveSuffix(schema.SuffixRecord{Suffix: "cd", PriceMultiplier: 5000}))
	assert.True(t, tx.Touched(schema.SuffixBucket))
	assert.False(t, tx.Touched(schema.BalanceBucket))

	rec, err := tx.LoadSuffix("cd")
	require.NoError(t, err)
	assert.Equal(t, uint16(5000), rec.PriceMultiplier)

	// uncommitted writes are invisible to other txns
	_, err = s.store.Begin().LoadSuffix("cd")
	assert.ErrorIs(t, err, schema.ErrNotExist)

	require.NoError(t, tx.Commit())
	rec, err = s.store.Begin().LoadSuffix("cd")
	require.NoError(t, err)
	assert.Equal(t, uint16(5000), rec.PriceMultiplier)

	tx = s.store.Begin()
	tx.DeleteSuffix("cd")
	_, err = tx.LoadSuffix("cd")
	assert.ErrorIs(t, err, schema.ErrNotExist)
	require.NoError(t, tx.SaveSuffix(schema.SuffixRecord{Suffix: "cd", PriceMultiplier: 7000}))
	require.NoError(t, tx.Commit())

	rec, err = s.store.Begin().LoadSuffix("cd")
	require.NoError(t, err)
	assert.Equal(t, uint16(7000), rec.PriceMultiplier)
}

func TestUpdateDiscardsOnError(t *testing.T) {
	s, _ := newTestNames(t)
	boom := errors.New("boom")

	err := s.update(func(tx *Txn) error {
		if err := credit(tx, "alice", eos("1.0000")); err != nil {
			return err
		}
		if err := tx.SavePrices(testParams()); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, dumpStore(t, s))

	err = s.update(func(tx *Txn) error {
		return credit(tx, "alice", eos("1.0000"))
	})
	require.NoError(t, err)
	assert.Len(t, dumpStore(t, s), 1)
}

func TestRegisteredSuffixReloads(t *testing.T) {
	s, _ := newTestNames(t)
	registerSuffix(t, s, "cd")

	// a fresh record has no commission symbol yet
	rec, err := s.store.Begin().LoadSuffix("cd")
	require.NoError(t, err)
	assert.Equal(t, schema.Asset{}, rec.Commissions)
	assert.Equal(t, schema.ActiveLevel("cd"), rec.Permission)
	assert.Equal(t, testNow, rec.CreatedAt)

	tx := s.store.Begin()
	require.NoError(t, recordPurchase(tx, rec, asset("2.5000"), testNow))
	require.NoError(t, tx.Commit())
	rec, err = s.store.Begin().LoadSuffix("cd")
	require.NoError(t, err)
	assert.Equal(t, asset("2.5000"), rec.Commissions)
	assert.Equal(t, uint64(1), rec.Transactions)
}
