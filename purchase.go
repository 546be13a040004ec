package names

import (
	"context"
	"errors"
	"fmt"

	"github.com/everFinance/names/schema"
)

// BuyAccount charges the creator's escrow for name and creates the account on the ledger.
// Either every effect is committed or none is.
func (s *Names) BuyAccount(ctx context.Context, auth schema.Name, req schema.BuyAccountReq) (*schema.PurchaseRecord, error) {
	if err := req.Creator.Validate(); err != nil {
		return nil, err
	}
	if err := req.Name.Validate(); err != nil {
		return nil, err
	}
	if err := req.Owner.Validate(); err != nil {
		return nil, err
	}
	active := req.Owner
	if req.Active != nil {
		active = *req.Active
		if err := active.Validate(); err != nil {
			return nil, err
		}
	}
	if limit := s.maxWebsiteLen(); len(req.Website) > limit {
		return nil, fmt.Errorf("%w: website longer than %d", schema.ErrInvalidArgument, limit)
	}
	if err := requireAuth(auth, req.Creator); err != nil {
		return nil, err
	}

	var (
		rec          *schema.PurchaseRecord
		commissionTo schema.Name
		contract     schema.Name
	)
	err := s.update(func(tx *Txn) error {
		price, sfx, params, err := quote(tx, req.Name)
		if err != nil {
			return err
		}
		settings, err := tx.LoadSettings()
		if errors.Is(err, schema.ErrNotExist) {
			settings = schema.DefaultSettings()
		} else if err != nil {
			return err
		}

		if err = debit(tx, req.Creator, schema.ExtendedAsset{Quantity: price, Contract: params.Base.Contract}); err != nil {
			return err
		}

		contract = params.Base.Contract
		now := s.now().UTC()
		commission := price.Zero()
		authorizer := schema.ActiveLevel(s.self)
		if sfx != nil {
			commission, err = price.MulBips(params.CommissionBips)
			if err != nil {
				return err
			}
			if commission.IsPositive() {
				if err = credit(tx, sfx.CommissionAccount, schema.ExtendedAsset{Quantity: commission, Contract: params.Base.Contract}); err != nil {
					return err
				}
			}
			if err = recordPurchase(tx, *sfx, commission, now); err != nil {
				return err
			}
			authorizer = sfx.Permission
			commissionTo = sfx.CommissionAccount
		}
		fee, err := price.Sub(commission)
		if err != nil {
			return err
		}

		creation := schema.AccountCreation{
			Creator:    req.Creator,
			Name:       req.Name,
			Owner:      req.Owner,
			Active:     active,
			Resources:  settings,
			Authorizer: authorizer,
		}
		if err = s.accounts.CreateAccount(ctx, creation); err != nil {
			log.Error("s.accounts.CreateAccount(creation)", "name", req.Name, "creator", req.Creator, "err", err)
			return fmt.Errorf("%w: create account %s: %v", schema.ErrLedgerCall, req.Name, err)
		}

		rec = &schema.PurchaseRecord{
			Creator:    req.Creator,
			Name:       req.Name,
			Suffix:     req.Name.Suffix(),
			Price:      price,
			Commission: commission,
			Fee:        fee,
			Website:    req.Website,
			Timestamp:  now,
		}
		return nil
	})
	if err != nil {
		metricActionFailed("buyaccount", err)
		return nil, err
	}

	metricPurchase(rec)
	s.recordPurchaseLog(rec, commissionTo, contract, req.Owner, active)
	return rec, nil
}
