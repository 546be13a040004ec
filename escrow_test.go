package names

import (
	"context"
	"errors"
	"testing"

	"github.com/everFinance/names/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnDeposit(t *testing.T) {
	s, _ := newTestNames(t)
	setTestPrices(t, s, nil, nil)

	deposit(t, s, "alice", "2.0000")
	deposit(t, s, "alice", "0.5000")
	bal, err := s.GetBalance("alice", "EOS")
	require.NoError(t, err)
	assert.Equal(t, asset("2.5000"), bal.Balance)
	assert.Equal(t, testContract, bal.Contract)

	// json memo names the owner to credit
	require.NoError(t, s.OnDeposit("alice", testSelf, eos("1.0000"), `{"owner":"bob"}`))
	bal, err = s.GetBalance("bob", "EOS")
	require.NoError(t, err)
	assert.Equal(t, asset("1.0000"), bal.Balance)

	// plain memo credits the sender
	require.NoError(t, s.OnDeposit("carol", testSelf, eos("1.0000"), "hello"))
	bal, err = s.GetBalance("carol", "EOS")
	require.NoError(t, err)
	assert.Equal(t, asset("1.0000"), bal.Balance)

	err = s.OnDeposit("alice", testSelf, eos("1.0000"), `{"owner":"Not.Valid"}`)
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)
}

func TestOnDepositIgnored(t *testing.T) {
	s, _ := newTestNames(t)

	require.NoError(t, s.OnDeposit("alice", "bob", eos("1.0000"), ""))
	require.NoError(t, s.OnDeposit(testSelf, "alice", eos("1.0000"), ""))
	assert.Empty(t, dumpStore(t, s))

	err := s.OnDeposit("alice", testSelf, eos("0.0000"), "")
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)

	// no price params, no accepted token
	err = s.OnDeposit("alice", testSelf, eos("1.0000"), "")
	assert.ErrorIs(t, err, schema.ErrMaintenanceMode)
	assert.Empty(t, dumpStore(t, s))
}

func TestOnDepositForeignToken(t *testing.T) {
	s, _ := newTestNames(t)
	setTestPrices(t, s, map[uint8]string{5: "5.0000"}, nil)
	registerSuffix(t, s, "cd")

	fake := schema.ExtendedAsset{Quantity: asset("0.0001"), Contract: "evil.token"}
	err := s.OnDeposit("mallory", testSelf, fake, `{"owner":"cd"}`)
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)
	err = s.OnDeposit("mallory", testSelf, fake, `{"owner":"bob"}`)
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)

	sys := schema.ExtendedAsset{Quantity: schema.MustParseAsset("1.0000 SYS"), Contract: testContract}
	err = s.OnDeposit("mallory", testSelf, sys, "")
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)

	bal, err := s.BalanceOf("cd", "EOS")
	require.NoError(t, err)
	assert.True(t, bal.Balance.IsZero())
	keys, err := s.store.KVDb.GetAllKey(schema.BalanceBucket)
	require.NoError(t, err)
	assert.Empty(t, keys)

	// real deposits and sales under the suffix are unaffected
	deposit(t, s, "bob", "5.0000")
	_, err = s.BuyAccount(context.Background(), "bob", buyReq("bob", "ab.cd"))
	require.NoError(t, err)
	bal, err = s.GetBalance("cd", "EOS")
	require.NoError(t, err)
	assert.Equal(t, testContract, bal.Contract)
	assert.Equal(t, asset("5.0000"), bal.Balance)
}

func TestOnDepositContractMismatch(t *testing.T) {
	s, _ := newTestNames(t)
	setTestPrices(t, s, nil, nil)
	deposit(t, s, "alice", "1.0000")

	fake := schema.ExtendedAsset{Quantity: asset("1.0000"), Contract: "fake.token"}
	err := s.OnDeposit("alice", testSelf, fake, "")
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)

	// rows keep the contract they were opened with
	err = s.update(func(tx *Txn) error { return credit(tx, "alice", fake) })
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)

	bal, err := s.BalanceOf("alice", "EOS")
	require.NoError(t, err)
	assert.Equal(t, asset("1.0000"), bal.Balance)
}

func TestBalanceOfAbsent(t *testing.T) {
	s, _ := newTestNames(t)

	bal, err := s.BalanceOf("alice", "EOS")
	require.NoError(t, err)
	assert.True(t, bal.Balance.IsZero())

	_, err = s.GetBalance("alice", "EOS")
	assert.ErrorIs(t, err, schema.ErrNotFound)
	assert.Contains(t, err.Error(), "no balance with specified symbol")
}

func TestWithdraw(t *testing.T) {
	s, ledger := newTestNames(t)
	setTestPrices(t, s, nil, nil)
	deposit(t, s, "alice", "2.0000")

	err := s.Withdraw(context.Background(), "alice", schema.WithdrawReq{Owner: "alice", Quantity: eos("0.5000")})
	require.NoError(t, err)
	bal, err := s.GetBalance("alice", "EOS")
	require.NoError(t, err)
	assert.Equal(t, asset("1.5000"), bal.Balance)

	require.Len(t, ledger.transfers, 1)
	assert.Equal(t, schema.Transfer{From: testSelf, To: "alice", Quantity: eos("0.5000"), Memo: "withdraw"}, ledger.transfers[0])

	// the operator may withdraw on behalf of the owner; an emptied row is erased
	memo := "closing"
	err = s.Withdraw(context.Background(), testSelf, schema.WithdrawReq{Owner: "alice", Quantity: eos("1.5000"), Memo: &memo})
	require.NoError(t, err)
	_, err = s.GetBalance("alice", "EOS")
	assert.ErrorIs(t, err, schema.ErrNotFound)
	keys, err := s.store.KVDb.GetAllKey(schema.BalanceBucket)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.Len(t, ledger.transfers, 2)
	assert.Equal(t, "closing", ledger.transfers[1].Memo)
}

func TestWithdrawRejected(t *testing.T) {
	s, ledger := newTestNames(t)
	setTestPrices(t, s, nil, nil)
	deposit(t, s, "alice", "1.0000")
	before := dumpStore(t, s)

	err := s.Withdraw(context.Background(), "alice", schema.WithdrawReq{Owner: "alice", Quantity: eos("1.0001")})
	assert.ErrorIs(t, err, schema.ErrInsufficientBalance)

	err = s.Withdraw(context.Background(), "bob", schema.WithdrawReq{Owner: "alice", Quantity: eos("0.1000")})
	assert.ErrorIs(t, err, schema.ErrUnauthorized)

	err = s.Withdraw(context.Background(), "alice", schema.WithdrawReq{Owner: "alice", Quantity: eos("0.0000")})
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)

	err = s.Withdraw(context.Background(), "bob", schema.WithdrawReq{Owner: "bob", Quantity: eos("0.1000")})
	assert.ErrorIs(t, err, schema.ErrInsufficientBalance)

	ledger.transferErr = errors.New("node unavailable")
	err = s.Withdraw(context.Background(), "alice", schema.WithdrawReq{Owner: "alice", Quantity: eos("0.5000")})
	assert.ErrorIs(t, err, schema.ErrLedgerCall)

	assert.Equal(t, before, dumpStore(t, s))
	assert.Empty(t, ledger.transfers)
}

func TestCreditOverflow(t *testing.T) {
	s, _ := newTestNames(t)
	setTestPrices(t, s, nil, nil)
	big := schema.ExtendedAsset{
		Quantity: schema.Asset{Amount: schema.MaxAmount, Symbol: asset("1.0000").Symbol},
		Contract: testContract,
	}
	require.NoError(t, s.OnDeposit("alice", testSelf, big, ""))

	err := s.OnDeposit("alice", testSelf, eos("0.0001"), "")
	assert.ErrorIs(t, err, schema.ErrOverflow)

	bal, err := s.BalanceOf("alice", "EOS")
	require.NoError(t, err)
	assert.Equal(t, schema.MaxAmount, bal.Balance.Amount)
}
