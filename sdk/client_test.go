package sdk

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/everFinance/names/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/price/ab.cd", r.URL.Path)
		json.NewEncoder(w).Encode(schema.RespPrice{Name: "ab.cd", Suffix: "cd", Price: schema.MustParseAsset("2.5000 EOS")})
	}))
	defer srv.Close()

	res, err := New(srv.URL, "").GetPrice("ab.cd")
	require.NoError(t, err)
	assert.Equal(t, schema.Name("cd"), res.Suffix)
	assert.Equal(t, schema.MustParseAsset("2.5000 EOS"), res.Price)
}

func TestBuyAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/buyaccount", r.URL.Path)
		assert.Equal(t, "alice", r.Header.Get(schema.HeaderActor))

		req := schema.BuyAccountReq{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Name == "taken.cd" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(schema.RespErr{Err: "insufficient_balance: alice holds 0.5000 EOS, needs 1.0000 EOS"})
			return
		}
		json.NewEncoder(w).Encode(schema.PurchaseRecord{Creator: req.Creator, Name: req.Name, Suffix: req.Name.Suffix()})
	}))
	defer srv.Close()

	cli := New(srv.URL, "alice")
	rec, err := cli.BuyAccount(schema.BuyAccountReq{Creator: "alice", Name: "ab.cd"})
	require.NoError(t, err)
	assert.Equal(t, schema.Name("cd"), rec.Suffix)

	_, err = cli.BuyAccount(schema.BuyAccountReq{Creator: "alice", Name: "taken.cd"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrInsufficientBalance))
	apiErr := &ApiError{}
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestApiErrorUnwrap(t *testing.T) {
	err := &ApiError{StatusCode: 404, Err: "suffix_not_found: suffix cd is not available"}
	assert.ErrorIs(t, err, schema.ErrSuffixNotFound)
	assert.False(t, errors.Is(err, schema.ErrNotFound))

	err = &ApiError{StatusCode: 500, Err: "boom"}
	assert.Nil(t, err.Unwrap())
}
