package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAsset(t *testing.T) {
	a, err := ParseAsset("1.0000 EOS")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), a.Amount)
	assert.Equal(t, Symbol{Code: "EOS", Precision: 4}, a.Symbol)
	assert.Equal(t, "1.0000 EOS", a.String())

	a, err = ParseAsset("25 TKN")
	require.NoError(t, err)
	assert.Equal(t, int64(25), a.Amount)
	assert.Equal(t, uint8(0), a.Symbol.Precision)
	assert.Equal(t, "25 TKN", a.String())

	a, err = ParseAsset("0.0950 EOS")
	require.NoError(t, err)
	assert.Equal(t, int64(950), a.Amount)

	for _, bad := range []string{"", "1.0000", "1. EOS", "1.0000 eos", "abc EOS", "1.0000 EOSEOSEOS"} {
		_, err = ParseAsset(bad)
		assert.True(t, errors.Is(err, ErrInvalidArgument), bad)
	}

	_, err = ParseAsset("9999999999999999999 EOS")
	assert.True(t, errors.Is(err, ErrOverflow))
}

func TestAssetArithmetic(t *testing.T) {
	one := MustParseAsset("1.0000 EOS")
	half := MustParseAsset("0.5000 EOS")

	sum, err := one.Add(half)
	assert.NoError(t, err)
	assert.Equal(t, "1.5000 EOS", sum.String())

	diff, err := half.Sub(one)
	assert.NoError(t, err)
	assert.Equal(t, "-0.5000 EOS", diff.String())

	_, err = one.Add(MustParseAsset("1.0000 SYS"))
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	max := Asset{Amount: MaxAmount, Symbol: one.Symbol}
	_, err = max.Add(one)
	assert.True(t, errors.Is(err, ErrOverflow))
}

func TestAssetMulBips(t *testing.T) {
	five := MustParseAsset("5.0000 EOS")

	res, err := five.MulBips(5000)
	assert.NoError(t, err)
	assert.Equal(t, "2.5000 EOS", res.String())

	res, err = five.MulBips(1000)
	assert.NoError(t, err)
	assert.Equal(t, "0.5000 EOS", res.String())

	// truncates
	res, err = MustParseAsset("0.0003 EOS").MulBips(5000)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), res.Amount)

	res, err = five.MulBips(40000)
	assert.NoError(t, err)
	assert.Equal(t, "20.0000 EOS", res.String())

	_, err = Asset{Amount: MaxAmount, Symbol: five.Symbol}.MulBips(20000)
	assert.True(t, errors.Is(err, ErrOverflow))
}

func TestAssetJSON(t *testing.T) {
	ext := ExtendedAsset{Quantity: MustParseAsset("1.2500 EOS"), Contract: "eosio.token"}
	by, err := json.Marshal(ext)
	assert.NoError(t, err)
	assert.Equal(t, `{"quantity":"1.2500 EOS","contract":"eosio.token"}`, string(by))

	res := ExtendedAsset{}
	assert.NoError(t, json.Unmarshal(by, &res))
	assert.Equal(t, ext, res)
	assert.Equal(t, "1.2500 EOS@eosio.token", res.String())

	assert.Error(t, json.Unmarshal([]byte(`{"quantity":"bad"}`), &res))
}

func TestAssetJSONRoundTrip(t *testing.T) {
	eos := MustParseAsset("1.0000 EOS").Symbol
	tests := []struct {
		asset Asset
		js    string
	}{
		{Asset{}, `""`},
		{Asset{Symbol: eos}, `"0.0000 EOS"`},
		{Asset{Amount: -12500, Symbol: eos}, `"-1.2500 EOS"`},
		{Asset{Amount: MaxAmount, Symbol: eos}, `"461168601842738.7903 EOS"`},
		{Asset{Amount: -MaxAmount, Symbol: eos}, `"-461168601842738.7903 EOS"`},
	}
	for _, tt := range tests {
		by, err := json.Marshal(tt.asset)
		assert.NoError(t, err)
		assert.Equal(t, tt.js, string(by))

		res := Asset{}
		assert.NoError(t, json.Unmarshal(by, &res), tt.js)
		assert.Equal(t, tt.asset, res)
	}
}

func TestSuffixRecordJSON(t *testing.T) {
	rec := SuffixRecord{
		Suffix:            "cd",
		PriceMultiplier:   DefaultPriceMultiplier,
		CommissionAccount: "cd",
		Permission:        ActiveLevel("cd"),
	}
	by, err := json.Marshal(rec)
	assert.NoError(t, err)

	res := SuffixRecord{}
	assert.NoError(t, json.Unmarshal(by, &res))
	assert.Equal(t, rec, res)
	assert.True(t, res.Commissions.IsZero())
}
