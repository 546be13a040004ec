package names

import (
	"errors"
	"fmt"
	"time"

	"github.com/everFinance/names/schema"
)

func (s *Names) RegisterSuffix(auth schema.Name, req schema.RegisterSuffixReq) (rec schema.SuffixRecord, err error) {
	if err = req.Suffix.Validate(); err != nil {
		return
	}
	if !req.Suffix.IsBasic() {
		err = fmt.Errorf("%w: suffix %s must be a top level name", schema.ErrInvalidArgument, req.Suffix)
		return
	}
	if err = requireAuth(auth, req.Suffix); err != nil {
		return
	}

	rec = schema.SuffixRecord{
		Suffix:            req.Suffix,
		PriceMultiplier:   schema.DefaultPriceMultiplier,
		CommissionAccount: req.Suffix,
		Permission:        schema.ActiveLevel(req.Suffix),
	}
	if req.CommissionAccount != nil {
		rec.CommissionAccount = *req.CommissionAccount
	}
	if req.Permission != nil {
		rec.Permission = *req.Permission
	}
	if err = rec.CommissionAccount.Validate(); err != nil {
		return
	}
	if err = rec.Permission.Validate(); err != nil {
		return
	}

	err = s.update(func(tx *Txn) error {
		_, err := tx.LoadSuffix(req.Suffix)
		if err == nil {
			return fmt.Errorf("%w: suffix %s", schema.ErrAlreadyRegistered, req.Suffix)
		}
		if !errors.Is(err, schema.ErrNotExist) {
			return err
		}
		now := s.now().UTC()
		rec.CreatedAt = now
		rec.UpdatedAt = now
		return tx.SaveSuffix(rec)
	})
	if err != nil {
		metricActionFailed("regsuffix", err)
		return
	}
	s.recordSuffixLog(auth, schema.SuffixRegister, rec)
	return
}

// SetDiscount sets the price multiplier of a suffix. A nil multiplier restores 10000 bips.
func (s *Names) SetDiscount(auth, suffix schema.Name, multiplier *uint16) (rec schema.SuffixRecord, err error) {
	if err = requireAuth(auth, suffix); err != nil {
		return
	}
	m := uint16(schema.DefaultPriceMultiplier)
	if multiplier != nil {
		m = *multiplier
	}

	err = s.update(func(tx *Txn) error {
		rec, err = lookupSuffix(tx, suffix)
		if err != nil {
			return err
		}
		rec.PriceMultiplier = m
		rec.UpdatedAt = s.now().UTC()
		return tx.SaveSuffix(rec)
	})
	if err != nil {
		metricActionFailed("discount", err)
		return
	}
	s.recordSuffixLog(auth, schema.SuffixDiscount, rec)
	return
}

// DeregisterSuffix deletes the suffix record. Commissions were credited to the commission
// account's escrow at purchase time, so a non-zero total does not block deregistration; the
// final totals go out with the deregister log.
func (s *Names) DeregisterSuffix(auth, suffix schema.Name) (rec schema.SuffixRecord, err error) {
	if err = requireAuth(auth, suffix, s.self); err != nil {
		return
	}

	err = s.update(func(tx *Txn) error {
		rec, err = tx.LoadSuffix(suffix)
		if errors.Is(err, schema.ErrNotExist) {
			return fmt.Errorf("%w: suffix %s", schema.ErrNotFound, suffix)
		}
		if err != nil {
			return err
		}
		tx.DeleteSuffix(suffix)
		return nil
	})
	if err != nil {
		metricActionFailed("delsuffix", err)
		return
	}
	if rec.Commissions.IsPositive() {
		log.Info("deregister suffix with settled commissions", "suffix", suffix, "commissions", rec.Commissions, "transactions", rec.Transactions)
	}
	s.recordSuffixLog(auth, schema.SuffixDeregister, rec)
	return
}

func (s *Names) GetSuffix(suffix schema.Name) (rec schema.SuffixRecord, err error) {
	err = s.view(func(tx *Txn) error {
		rec, err = lookupSuffix(tx, suffix)
		return err
	})
	return
}

func (s *Names) GetSuffixes() (recs []schema.SuffixRecord, err error) {
	err = s.view(func(tx *Txn) error {
		recs, err = tx.LoadSuffixes()
		return err
	})
	return
}

func lookupSuffix(tx *Txn, suffix schema.Name) (schema.SuffixRecord, error) {
	rec, err := tx.LoadSuffix(suffix)
	if errors.Is(err, schema.ErrNotExist) {
		return rec, fmt.Errorf("%w: suffix %s", schema.ErrSuffixNotFound, suffix)
	}
	return rec, err
}

// recordPurchase runs once per successful purchase under the suffix.
func recordPurchase(tx *Txn, rec schema.SuffixRecord, commission schema.Asset, now time.Time) error {
	if rec.Commissions.Symbol.Code == "" {
		rec.Commissions = commission.Zero()
	}
	total, err := rec.Commissions.Add(commission)
	if err != nil {
		return err
	}
	rec.Commissions = total
	rec.Transactions++
	rec.BuyAccountAt = now
	return tx.SaveSuffix(rec)
}
