package schema

import (
	"time"
)

const (
	DefaultPriceMultiplier   = 10000
	DefaultMinMultiplierBips = 2500
	DefaultMaxMultiplierBips = 40000
	DefaultCommissionBips    = 10000

	DefaultWithdrawMemo = "withdraw"
)

// PriceParams is the global pricing singleton. Absent params put the engine in maintenance mode.
type PriceParams struct {
	Base    ExtendedAsset   `json:"base"`
	Premium map[uint8]Asset `json:"premium"` // key: name length
	// Incremental is kept as configuration; the price curve does not read it.
	Incremental   uint64 `json:"incremental"`
	MinMultiplier uint64 `json:"minMultiplier"`
	MaxMultiplier uint64 `json:"maxMultiplier"`
	// CommissionBips is the share of a premium price credited to the suffix commission account.
	CommissionBips uint64 `json:"commissionBips"`
}

type Settings struct {
	CPU Asset `json:"cpu"`
	NET Asset `json:"net"`
	RAM Asset `json:"ram"`
	Rex bool  `json:"rex"`
}

func DefaultSettings() Settings {
	return Settings{
		CPU: MustParseAsset("0.0950 EOS"),
		NET: MustParseAsset("0.0050 EOS"),
		RAM: MustParseAsset("0.1500 EOS"),
		Rex: true,
	}
}

type SuffixRecord struct {
	Suffix            Name            `json:"suffix"`
	PriceMultiplier   uint16          `json:"priceMultiplier"` // bips, 10000 means no discount
	CommissionAccount Name            `json:"commissionAccount"`
	Commissions       Asset           `json:"commissions"`
	Transactions      uint64          `json:"transactions"`
	Permission        PermissionLevel `json:"permission"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	BuyAccountAt      time.Time       `json:"buyAccountAt"`
}

// Balance is one escrow row, keyed by owner and symbol code.
type Balance struct {
	Owner    Name  `json:"owner"`
	Balance  Asset `json:"balance"`
	Contract Name  `json:"contract"`
}

func (b Balance) Extended() ExtendedAsset {
	return ExtendedAsset{Quantity: b.Balance, Contract: b.Contract}
}
