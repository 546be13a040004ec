package names

import (
	"context"
	"errors"
	"fmt"

	"github.com/everFinance/names/schema"
	"github.com/tidwall/gjson"
)

// credit adds quantity to the owner's escrow row, creating the row on first credit.
func credit(tx *Txn, owner schema.Name, quantity schema.ExtendedAsset) error {
	if quantity.Quantity.Amount < 0 {
		return fmt.Errorf("%w: credit quantity must not be negative", schema.ErrInvalidArgument)
	}
	code := quantity.Quantity.Symbol.Code
	bal, err := tx.LoadBalance(owner, code)
	switch {
	case errors.Is(err, schema.ErrNotExist):
		bal = schema.Balance{Owner: owner, Balance: quantity.Quantity.Zero(), Contract: quantity.Contract}
	case err != nil:
		return err
	case bal.Contract != quantity.Contract || bal.Balance.Symbol != quantity.Quantity.Symbol:
		return fmt.Errorf("%w: %s is held as %s@%s", schema.ErrInvalidArgument, quantity, bal.Balance.Symbol, bal.Contract)
	}

	bal.Balance, err = bal.Balance.Add(quantity.Quantity)
	if err != nil {
		return err
	}
	if bal.Balance.IsZero() {
		tx.DeleteBalance(owner, code)
		return nil
	}
	return tx.SaveBalance(bal)
}

// debit removes quantity from the owner's escrow row. The row is erased when it reaches zero.
func debit(tx *Txn, owner schema.Name, quantity schema.ExtendedAsset) error {
	if quantity.Quantity.Amount < 0 {
		return fmt.Errorf("%w: debit quantity must not be negative", schema.ErrInvalidArgument)
	}
	code := quantity.Quantity.Symbol.Code
	bal, err := tx.LoadBalance(owner, code)
	if errors.Is(err, schema.ErrNotExist) {
		if quantity.Quantity.IsZero() {
			return nil
		}
		return fmt.Errorf("%w: %s has no %s balance", schema.ErrInsufficientBalance, owner, code)
	}
	if err != nil {
		return err
	}
	if bal.Contract != quantity.Contract || bal.Balance.Symbol != quantity.Quantity.Symbol {
		return fmt.Errorf("%w: %s is held as %s@%s", schema.ErrInvalidArgument, quantity, bal.Balance.Symbol, bal.Contract)
	}
	if bal.Balance.Amount < quantity.Quantity.Amount {
		return fmt.Errorf("%w: %s holds %s, needs %s", schema.ErrInsufficientBalance, owner, bal.Balance, quantity.Quantity)
	}

	bal.Balance, err = bal.Balance.Sub(quantity.Quantity)
	if err != nil {
		return err
	}
	if bal.Balance.IsZero() {
		tx.DeleteBalance(owner, code)
		return nil
	}
	return tx.SaveBalance(bal)
}

// BalanceOf returns the owner's escrow in symbolCode. An absent row reads as zero with an empty contract.
func (s *Names) BalanceOf(owner schema.Name, symbolCode string) (bal schema.Balance, err error) {
	err = s.view(func(tx *Txn) error {
		bal, err = tx.LoadBalance(owner, symbolCode)
		if errors.Is(err, schema.ErrNotExist) {
			bal = schema.Balance{Owner: owner, Balance: schema.Asset{Symbol: schema.Symbol{Code: symbolCode}}}
			return nil
		}
		return err
	})
	return
}

// GetBalance is the external read. Unlike BalanceOf it reports an absent row as not found.
func (s *Names) GetBalance(owner schema.Name, symbolCode string) (bal schema.Balance, err error) {
	err = s.view(func(tx *Txn) error {
		bal, err = tx.LoadBalance(owner, symbolCode)
		if errors.Is(err, schema.ErrNotExist) {
			return fmt.Errorf("%w: no balance with specified symbol", schema.ErrNotFound)
		}
		return err
	})
	return
}

// Withdraw pays quantity out of the owner's escrow. The debit is only kept if the transfer succeeds.
func (s *Names) Withdraw(ctx context.Context, auth schema.Name, req schema.WithdrawReq) error {
	if err := req.Owner.Validate(); err != nil {
		return err
	}
	if err := req.Quantity.Validate(); err != nil {
		return err
	}
	if !req.Quantity.Quantity.IsPositive() {
		return fmt.Errorf("%w: withdraw quantity must be positive", schema.ErrInvalidArgument)
	}
	if err := requireAuth(auth, req.Owner, s.self); err != nil {
		return err
	}
	memo := schema.DefaultWithdrawMemo
	if req.Memo != nil {
		memo = *req.Memo
	}

	err := s.update(func(tx *Txn) error {
		if err := debit(tx, req.Owner, req.Quantity); err != nil {
			return err
		}
		tr := schema.Transfer{From: s.self, To: req.Owner, Quantity: req.Quantity, Memo: memo}
		if err := s.tokens.Transfer(ctx, tr); err != nil {
			log.Error("s.tokens.Transfer(tr)", "to", tr.To, "quantity", tr.Quantity, "err", err)
			return fmt.Errorf("%w: transfer %s to %s: %v", schema.ErrLedgerCall, tr.Quantity, tr.To, err)
		}
		return nil
	})
	if err != nil {
		metricActionFailed("withdraw", err)
		return err
	}
	s.recordEscrowEntries(escrowEntry(req.Owner, schema.EntryWithdraw, req.Quantity, memo))
	return nil
}

// OnDeposit credits an inbound transfer to the sender, or to the owner named by a json memo
// like {"owner":"alice"}. Transfers not addressed to the engine are ignored. Only the base
// price token is accepted.
func (s *Names) OnDeposit(from, to schema.Name, quantity schema.ExtendedAsset, memo string) error {
	if to != s.self || from == s.self {
		log.Debug("ignore transfer", "from", from, "to", to, "quantity", quantity)
		return nil
	}
	if err := quantity.Validate(); err != nil {
		return err
	}
	if !quantity.Quantity.IsPositive() {
		return fmt.Errorf("%w: deposit quantity must be positive", schema.ErrInvalidArgument)
	}

	owner := from
	if gjson.Valid(memo) {
		if v := gjson.Get(memo, "owner"); v.Exists() {
			owner = schema.Name(v.String())
		}
	}
	if err := owner.Validate(); err != nil {
		return err
	}

	err := s.update(func(tx *Txn) error {
		params, err := loadPrices(tx)
		if err != nil {
			return err
		}
		base := params.Base
		if quantity.Contract != base.Contract || quantity.Quantity.Symbol != base.Quantity.Symbol {
			log.Warn("reject deposit of foreign token", "from", from, "quantity", quantity, "accepted", base.Contract)
			return fmt.Errorf("%w: only %s@%s deposits are accepted", schema.ErrInvalidArgument, base.Quantity.Symbol, base.Contract)
		}
		return credit(tx, owner, quantity)
	})
	if err != nil {
		metricActionFailed("deposit", err)
		return err
	}
	metricDeposit(quantity)
	s.recordEscrowEntries(escrowEntry(owner, schema.EntryDeposit, quantity, memo))
	return nil
}
