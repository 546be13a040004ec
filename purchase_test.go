package names

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/everFinance/names/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buyReq(creator, name schema.Name) schema.BuyAccountReq {
	return schema.BuyAccountReq{Creator: creator, Name: name, Owner: schema.KeyAuthority(testOwnerKey)}
}

func TestBuyAccountPremium(t *testing.T) {
	s, ledger := newTestNames(t)
	setTestPrices(t, s, map[uint8]string{5: "5.0000"}, nil)
	registerSuffix(t, s, "cd")
	m := uint16(5000)
	_, err := s.SetDiscount("cd", "cd", &m)
	require.NoError(t, err)
	deposit(t, s, "alice", "3.0000")

	req := buyReq("alice", "ab.cd")
	req.Website = "https://example.com"
	rec, err := s.BuyAccount(context.Background(), "alice", req)
	require.NoError(t, err)
	assert.Equal(t, asset("2.5000"), rec.Price)
	assert.Equal(t, asset("2.5000"), rec.Commission)
	assert.True(t, rec.Fee.IsZero())
	assert.Equal(t, schema.Name("cd"), rec.Suffix)
	assert.Equal(t, "https://example.com", rec.Website)
	assert.Equal(t, testNow, rec.Timestamp)

	bal, err := s.GetBalance("alice", "EOS")
	require.NoError(t, err)
	assert.Equal(t, asset("0.5000"), bal.Balance)
	bal, err = s.GetBalance("cd", "EOS")
	require.NoError(t, err)
	assert.Equal(t, asset("2.5000"), bal.Balance)

	sfx, err := s.GetSuffix("cd")
	require.NoError(t, err)
	assert.Equal(t, asset("2.5000"), sfx.Commissions)
	assert.Equal(t, uint64(1), sfx.Transactions)
	assert.Equal(t, testNow, sfx.BuyAccountAt)

	require.Len(t, ledger.created, 1)
	created := ledger.created[0]
	assert.Equal(t, schema.Name("ab.cd"), created.Name)
	assert.Equal(t, schema.ActiveLevel("cd"), created.Authorizer)
	assert.Equal(t, req.Owner, created.Active)
	assert.Equal(t, schema.DefaultSettings(), created.Resources)
}

func TestBuyAccountCommissionSplit(t *testing.T) {
	s, _ := newTestNames(t)
	bips := uint64(2500)
	setTestPrices(t, s, map[uint8]string{5: "5.0000"}, &bips)
	commission := schema.Name("treasury")
	_, err := s.RegisterSuffix("cd", schema.RegisterSuffixReq{Suffix: "cd", CommissionAccount: &commission})
	require.NoError(t, err)
	deposit(t, s, "alice", "5.0000")

	rec, err := s.BuyAccount(context.Background(), "alice", buyReq("alice", "ab.cd"))
	require.NoError(t, err)
	assert.Equal(t, asset("1.2500"), rec.Commission)
	assert.Equal(t, asset("3.7500"), rec.Fee)
	sum, err := rec.Commission.Add(rec.Fee)
	require.NoError(t, err)
	assert.Equal(t, rec.Price, sum)

	bal, err := s.GetBalance("treasury", "EOS")
	require.NoError(t, err)
	assert.Equal(t, asset("1.2500"), bal.Balance)
	_, err = s.GetBalance("alice", "EOS")
	assert.ErrorIs(t, err, schema.ErrNotFound)
}

func TestBuyAccountBasic(t *testing.T) {
	s, ledger := newTestNames(t)
	setTestPrices(t, s, map[uint8]string{5: "5.0000"}, nil)
	deposit(t, s, "alice", "1.0000")

	active := schema.KeyAuthority("EOS5activekey")
	req := buyReq("alice", "bobby")
	req.Active = &active
	rec, err := s.BuyAccount(context.Background(), "alice", req)
	require.NoError(t, err)
	assert.Equal(t, asset("1.0000"), rec.Price)
	assert.True(t, rec.Commission.IsZero())
	assert.Equal(t, asset("1.0000"), rec.Fee)

	require.Len(t, ledger.created, 1)
	assert.Equal(t, schema.ActiveLevel(testSelf), ledger.created[0].Authorizer)
	assert.Equal(t, active, ledger.created[0].Active)
	assert.Empty(t, dumpStore(t, s)[schema.SuffixBucket+"/bobby"])
}

func TestBuyAccountInsufficientBalance(t *testing.T) {
	s, ledger := newTestNames(t)
	setTestPrices(t, s, nil, nil)
	deposit(t, s, "alice", "0.5000")
	before := dumpStore(t, s)

	_, err := s.BuyAccount(context.Background(), "alice", buyReq("alice", "bobby"))
	assert.ErrorIs(t, err, schema.ErrInsufficientBalance)

	assert.Equal(t, before, dumpStore(t, s))
	bal, err := s.GetBalance("alice", "EOS")
	require.NoError(t, err)
	assert.Equal(t, asset("0.5000"), bal.Balance)
	assert.Empty(t, ledger.created)
}

func TestBuyAccountCreateFailure(t *testing.T) {
	s, ledger := newTestNames(t)
	setTestPrices(t, s, map[uint8]string{5: "5.0000"}, nil)
	registerSuffix(t, s, "cd")
	deposit(t, s, "alice", "5.0000")
	before := dumpStore(t, s)

	ledger.createErr = errors.New("account exists")
	_, err := s.BuyAccount(context.Background(), "alice", buyReq("alice", "ab.cd"))
	assert.ErrorIs(t, err, schema.ErrLedgerCall)
	assert.Equal(t, before, dumpStore(t, s))
}

func TestBuyAccountRejected(t *testing.T) {
	s, _ := newTestNames(t)

	_, err := s.BuyAccount(context.Background(), "alice", buyReq("alice", "bobby"))
	assert.ErrorIs(t, err, schema.ErrMaintenanceMode)

	setTestPrices(t, s, map[uint8]string{5: "5.0000"}, nil)
	deposit(t, s, "alice", "10.0000")

	_, err = s.BuyAccount(context.Background(), "bob", buyReq("alice", "bobby"))
	assert.ErrorIs(t, err, schema.ErrUnauthorized)

	_, err = s.BuyAccount(context.Background(), "alice", buyReq("alice", "ab.cd"))
	assert.ErrorIs(t, err, schema.ErrSuffixNotFound)

	registerSuffix(t, s, "cd")
	before := dumpStore(t, s)
	_, err = s.BuyAccount(context.Background(), "alice", buyReq("alice", "abc.cd"))
	assert.ErrorIs(t, err, schema.ErrUnpricedLength)

	req := buyReq("alice", "ab.cd")
	req.Website = strings.Repeat("w", 257)
	_, err = s.BuyAccount(context.Background(), "alice", req)
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)

	req = buyReq("alice", "ab.cd")
	req.Owner = schema.Authority{}
	_, err = s.BuyAccount(context.Background(), "alice", req)
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)

	assert.Equal(t, before, dumpStore(t, s))
}
