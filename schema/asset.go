package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxAmount bounds every asset amount, the same way the ledger's token contract does.
	MaxAmount       = int64(1)<<62 - 1
	MaxPrecision    = 18
	BipsDenominator = 10000
)

var symbolCodeRegexp = regexp.MustCompile(`^[A-Z]{1,7}$`)

type Symbol struct {
	Code      string `json:"code"`
	Precision uint8  `json:"precision"`
}

func (s Symbol) Validate() error {
	if !symbolCodeRegexp.MatchString(s.Code) {
		return fmt.Errorf("%w: invalid symbol code %q", ErrInvalidArgument, s.Code)
	}
	if s.Precision > MaxPrecision {
		return fmt.Errorf("%w: symbol precision %d too large", ErrInvalidArgument, s.Precision)
	}
	return nil
}

func (s Symbol) String() string {
	return fmt.Sprintf("%d,%s", s.Precision, s.Code)
}

// Asset is a fixed point token amount, e.g. "1.0000 EOS" is {10000, 4,EOS}.
type Asset struct {
	Amount int64
	Symbol Symbol
}

func ParseAsset(s string) (Asset, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Asset{}, fmt.Errorf("%w: malformed asset %q", ErrInvalidArgument, s)
	}
	amountStr, code := fields[0], fields[1]

	precision := 0
	if idx := strings.IndexByte(amountStr, '.'); idx >= 0 {
		precision = len(amountStr) - idx - 1
		if precision == 0 {
			return Asset{}, fmt.Errorf("%w: malformed asset %q", ErrInvalidArgument, s)
		}
	}
	sym := Symbol{Code: code, Precision: uint8(precision)}
	if precision > MaxPrecision {
		return Asset{}, fmt.Errorf("%w: symbol precision %d too large", ErrInvalidArgument, precision)
	}
	if err := sym.Validate(); err != nil {
		return Asset{}, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return Asset{}, fmt.Errorf("%w: malformed amount %q", ErrInvalidArgument, amountStr)
	}
	units := amount.Shift(int32(precision))
	if units.Abs().GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return Asset{}, fmt.Errorf("%w: amount %s out of range", ErrOverflow, amountStr)
	}
	return Asset{Amount: units.IntPart(), Symbol: sym}, nil
}

func MustParseAsset(s string) Asset {
	a, err := ParseAsset(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Asset) Decimal() decimal.Decimal {
	return decimal.New(a.Amount, -int32(a.Symbol.Precision))
}

func (a Asset) String() string {
	return a.Decimal().StringFixed(int32(a.Symbol.Precision)) + " " + a.Symbol.Code
}

func (a Asset) IsValid() bool {
	return a.Symbol.Validate() == nil && a.Amount <= MaxAmount && a.Amount >= -MaxAmount
}

func (a Asset) IsPositive() bool {
	return a.Amount > 0
}

func (a Asset) IsZero() bool {
	return a.Amount == 0
}

func (a Asset) Zero() Asset {
	return Asset{Symbol: a.Symbol}
}

func (a Asset) Add(b Asset) (Asset, error) {
	if a.Symbol != b.Symbol {
		return Asset{}, fmt.Errorf("%w: symbol mismatch %s and %s", ErrInvalidArgument, a.Symbol, b.Symbol)
	}
	sum := a.Amount + b.Amount
	if sum > MaxAmount || sum < -MaxAmount {
		return Asset{}, fmt.Errorf("%w: %s + %s", ErrOverflow, a, b)
	}
	return Asset{Amount: sum, Symbol: a.Symbol}, nil
}

func (a Asset) Sub(b Asset) (Asset, error) {
	return a.Add(Asset{Amount: -b.Amount, Symbol: b.Symbol})
}

// MulBips returns a * bips / 10000, truncated toward zero.
func (a Asset) MulBips(bips uint64) (Asset, error) {
	d := decimal.NewFromInt(a.Amount).
		Mul(decimal.New(int64(bips), 0)).
		Div(decimal.NewFromInt(BipsDenominator)).
		Truncate(0)
	if d.Abs().GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return Asset{}, fmt.Errorf("%w: %s * %d bips", ErrOverflow, a, bips)
	}
	return Asset{Amount: d.IntPart(), Symbol: a.Symbol}, nil
}

// MarshalJSON encodes the zero Asset{} as "".
func (a Asset) MarshalJSON() ([]byte, error) {
	if a == (Asset{}) {
		return json.Marshal("")
	}
	return json.Marshal(a.String())
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Asset{}
		return nil
	}
	res, err := ParseAsset(s)
	if err != nil {
		return err
	}
	*a = res
	return nil
}

// ExtendedAsset is an asset together with the token contract that issued it.
type ExtendedAsset struct {
	Quantity Asset `json:"quantity"`
	Contract Name  `json:"contract"`
}

func (e ExtendedAsset) Validate() error {
	if !e.Quantity.IsValid() {
		return fmt.Errorf("%w: invalid quantity %s", ErrInvalidArgument, e.Quantity)
	}
	return e.Contract.Validate()
}

func (e ExtendedAsset) String() string {
	return e.Quantity.String() + "@" + string(e.Contract)
}
