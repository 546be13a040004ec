package names

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/everFinance/names/cache"
	"github.com/everFinance/names/schema"
)

// PriceFor returns the price of name under a suffix whose multiplier is given in bips.
// Basic names cost the base price. Premium names cost premium[len(name)] * multiplier / 10000,
// never less than the base price.
func PriceFor(name schema.Name, multiplier uint16, params schema.PriceParams) (schema.Asset, error) {
	base := params.Base.Quantity
	if name.IsBasic() {
		return base, nil
	}

	premium, ok := params.Premium[uint8(name.Length())]
	if !ok {
		return schema.Asset{}, fmt.Errorf("%w: no premium price for length %d", schema.ErrUnpricedLength, name.Length())
	}
	price, err := premium.MulBips(uint64(multiplier))
	if err != nil {
		return schema.Asset{}, err
	}
	if price.Symbol != base.Symbol {
		return schema.Asset{}, fmt.Errorf("%w: premium symbol %s differs from base %s", schema.ErrInvalidArgument, price.Symbol, base.Symbol)
	}
	if price.Amount < base.Amount {
		return base, nil
	}
	return price, nil
}

// loadPrices reads the price params, which must be set before any sale or deposit.
func loadPrices(tx *Txn) (schema.PriceParams, error) {
	params, err := tx.LoadPrices()
	if errors.Is(err, schema.ErrNotExist) {
		return params, fmt.Errorf("%w: contract is under going maintenance", schema.ErrMaintenanceMode)
	}
	return params, err
}

// quote prices name against the current state. sfx is nil for basic names.
func quote(tx *Txn, name schema.Name) (price schema.Asset, sfx *schema.SuffixRecord, params schema.PriceParams, err error) {
	params, err = loadPrices(tx)
	if err != nil {
		return
	}

	multiplier := uint16(schema.DefaultPriceMultiplier)
	if !name.IsBasic() {
		rec, e := tx.LoadSuffix(name.Suffix())
		if errors.Is(e, schema.ErrNotExist) {
			err = fmt.Errorf("%w: suffix %s is not available", schema.ErrSuffixNotFound, name.Suffix())
			return
		}
		if e != nil {
			err = e
			return
		}
		sfx = &rec
		multiplier = rec.PriceMultiplier
	}
	price, err = PriceFor(name, multiplier, params)
	return
}

func (s *Names) GetPrice(name schema.Name) (schema.RespPrice, error) {
	if err := name.Validate(); err != nil {
		return schema.RespPrice{}, err
	}

	res := schema.RespPrice{}
	if s.quotes != nil {
		by, err := s.quotes.Cache.Get(string(name))
		if err == nil && json.Unmarshal(by, &res) == nil {
			return res, nil
		}
		if err != nil && !cache.IsMiss(err) {
			log.Warn("s.quotes.Cache.Get(name)", "name", name, "err", err)
		}
	}

	err := s.view(func(tx *Txn) error {
		price, _, _, err := quote(tx, name)
		if err != nil {
			return err
		}
		res = schema.RespPrice{Name: name, Suffix: name.Suffix(), Price: price}
		// must stay under the read lock, writers reset quotes under the write lock
		if s.quotes != nil {
			by, _ := json.Marshal(res)
			if err := s.quotes.Cache.Set(string(name), by); err != nil {
				log.Warn("s.quotes.Cache.Set(name)", "name", name, "err", err)
			}
		}
		return nil
	})
	return res, err
}

func (s *Names) invalidateQuotes() {
	if s.quotes == nil {
		return
	}
	if err := s.quotes.Cache.Reset(); err != nil {
		log.Error("s.quotes.Cache.Reset()", "err", err)
	}
}
