package names

import (
	"errors"
	"fmt"

	"github.com/everFinance/names/schema"
)

// SetPrices replaces the global price params.
func (s *Names) SetPrices(auth schema.Name, req schema.SetPricesReq) (params schema.PriceParams, err error) {
	if err = requireAuth(auth, s.self); err != nil {
		return
	}
	params = schema.PriceParams{
		Base:           req.Base,
		Premium:        make(map[uint8]schema.Asset, len(req.Premium)),
		Incremental:    req.Incremental,
		MinMultiplier:  schema.DefaultMinMultiplierBips,
		MaxMultiplier:  schema.DefaultMaxMultiplierBips,
		CommissionBips: schema.DefaultCommissionBips,
	}
	if req.MinMultiplier != nil {
		params.MinMultiplier = *req.MinMultiplier
	}
	if req.MaxMultiplier != nil {
		params.MaxMultiplier = *req.MaxMultiplier
	}
	if req.CommissionBips != nil {
		params.CommissionBips = *req.CommissionBips
	}
	for length, price := range req.Premium {
		params.Premium[length] = price
	}
	if err = validatePrices(params); err != nil {
		return
	}

	err = s.update(func(tx *Txn) error {
		return tx.SavePrices(params)
	})
	if err != nil {
		metricActionFailed("setprices", err)
	}
	return
}

func validatePrices(params schema.PriceParams) error {
	if err := params.Base.Validate(); err != nil {
		return err
	}
	if !params.Base.Quantity.IsPositive() {
		return fmt.Errorf("%w: base price must be positive", schema.ErrInvalidArgument)
	}
	for length, price := range params.Premium {
		if length == 0 || int(length) > schema.MaxNameLength {
			return fmt.Errorf("%w: premium length %d out of range", schema.ErrInvalidArgument, length)
		}
		if price.Symbol != params.Base.Quantity.Symbol {
			return fmt.Errorf("%w: premium %s must use symbol %s", schema.ErrInvalidArgument, price, params.Base.Quantity.Symbol)
		}
		if !price.IsValid() || !price.IsPositive() {
			return fmt.Errorf("%w: premium price %s must be positive", schema.ErrInvalidArgument, price)
		}
	}
	if params.MinMultiplier > params.MaxMultiplier {
		return fmt.Errorf("%w: min multiplier %d above max %d", schema.ErrInvalidArgument, params.MinMultiplier, params.MaxMultiplier)
	}
	if params.CommissionBips > schema.BipsDenominator {
		return fmt.Errorf("%w: commission %d bips above 10000", schema.ErrInvalidArgument, params.CommissionBips)
	}
	return nil
}

func (s *Names) GetPrices() (params schema.PriceParams, err error) {
	err = s.view(func(tx *Txn) error {
		params, err = loadPrices(tx)
		return err
	})
	return
}

// SetSettings replaces the resources delegated to new accounts. nil restores the defaults.
func (s *Names) SetSettings(auth schema.Name, settings *schema.Settings) (res schema.Settings, err error) {
	if err = requireAuth(auth, s.self); err != nil {
		return
	}
	res = schema.DefaultSettings()
	if settings != nil {
		res = *settings
	}
	for _, a := range []schema.Asset{res.CPU, res.NET, res.RAM} {
		if !a.IsValid() || a.Amount < 0 {
			return res, fmt.Errorf("%w: invalid resource amount %s", schema.ErrInvalidArgument, a)
		}
	}

	err = s.update(func(tx *Txn) error {
		return tx.SaveSettings(res)
	})
	if err != nil {
		metricActionFailed("setsettings", err)
	}
	return
}

func (s *Names) GetSettings() (settings schema.Settings, err error) {
	err = s.view(func(tx *Txn) error {
		settings, err = tx.LoadSettings()
		if errors.Is(err, schema.ErrNotExist) {
			settings = schema.DefaultSettings()
			return nil
		}
		return err
	})
	return
}
