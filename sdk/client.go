package sdk

import (
	"fmt"

	"github.com/everFinance/names/schema"
	"gopkg.in/h2non/gentleman.v2"
)

// NamesCli talks to the names http api. Actor is sent as the verified principal,
// so it must sit behind the same signing gateway as the server in production.
type NamesCli struct {
	SCli  *gentleman.Client
	Actor schema.Name
}

func New(namesUrl string, actor schema.Name) *NamesCli {
	return &NamesCli{
		SCli:  gentleman.New().URL(namesUrl),
		Actor: actor,
	}
}

// actions

func (n *NamesCli) BuyAccount(req schema.BuyAccountReq) (*schema.PurchaseRecord, error) {
	rec := &schema.PurchaseRecord{}
	err := n.send(n.SCli.Post(), "/buyaccount", req, rec)
	return rec, err
}

func (n *NamesCli) RegisterSuffix(req schema.RegisterSuffixReq) (schema.SuffixRecord, error) {
	rec := schema.SuffixRecord{}
	err := n.send(n.SCli.Post(), "/suffix", req, &rec)
	return rec, err
}

func (n *NamesCli) SetDiscount(suffix schema.Name, multiplier *uint16) (schema.SuffixRecord, error) {
	rec := schema.SuffixRecord{}
	err := n.send(n.SCli.Post(), fmt.Sprintf("/suffix/%s/discount", suffix), schema.DiscountReq{Multiplier: multiplier}, &rec)
	return rec, err
}

func (n *NamesCli) DeregisterSuffix(suffix schema.Name) (schema.SuffixRecord, error) {
	rec := schema.SuffixRecord{}
	err := n.send(n.SCli.Delete(), fmt.Sprintf("/suffix/%s", suffix), nil, &rec)
	return rec, err
}

func (n *NamesCli) Withdraw(req schema.WithdrawReq) error {
	return n.send(n.SCli.Post(), "/withdraw", req, nil)
}

func (n *NamesCli) NotifyTransfer(tr schema.TransferNotify) error {
	return n.send(n.SCli.Post(), "/notify/transfer", tr, nil)
}

func (n *NamesCli) SetPrices(req schema.SetPricesReq) (schema.PriceParams, error) {
	params := schema.PriceParams{}
	err := n.send(n.SCli.Post(), "/prices", req, &params)
	return params, err
}

// SetSettings resets the settings to defaults when settings is nil.
func (n *NamesCli) SetSettings(settings *schema.Settings) (schema.Settings, error) {
	res := schema.Settings{}
	var body interface{}
	if settings != nil {
		body = settings
	}
	err := n.send(n.SCli.Post(), "/settings", body, &res)
	return res, err
}

// reads

func (n *NamesCli) GetPrice(name schema.Name) (schema.RespPrice, error) {
	res := schema.RespPrice{}
	err := n.send(n.SCli.Get(), fmt.Sprintf("/price/%s", name), nil, &res)
	return res, err
}

func (n *NamesCli) GetBalance(owner schema.Name, symbolCode string) (schema.Balance, error) {
	bal := schema.Balance{}
	err := n.send(n.SCli.Get(), fmt.Sprintf("/balance/%s/%s", owner, symbolCode), nil, &bal)
	return bal, err
}

func (n *NamesCli) GetSuffix(suffix schema.Name) (schema.SuffixRecord, error) {
	rec := schema.SuffixRecord{}
	err := n.send(n.SCli.Get(), fmt.Sprintf("/suffix/%s", suffix), nil, &rec)
	return rec, err
}

func (n *NamesCli) GetSuffixes() ([]schema.SuffixRecord, error) {
	recs := make([]schema.SuffixRecord, 0)
	err := n.send(n.SCli.Get(), "/suffixes", nil, &recs)
	return recs, err
}

func (n *NamesCli) GetPrices() (schema.PriceParams, error) {
	params := schema.PriceParams{}
	err := n.send(n.SCli.Get(), "/prices", nil, &params)
	return params, err
}

func (n *NamesCli) GetSettings() (schema.Settings, error) {
	settings := schema.Settings{}
	err := n.send(n.SCli.Get(), "/settings", nil, &settings)
	return settings, err
}

func (n *NamesCli) GetPurchases(creator schema.Name, cursor uint, num int) ([]schema.PurchaseLog, error) {
	req := n.SCli.Get()
	req.AddQuery("cursor", fmt.Sprint(cursor))
	req.AddQuery("num", fmt.Sprint(num))
	res := make([]schema.PurchaseLog, 0)
	err := n.send(req, fmt.Sprintf("/purchases/%s", creator), nil, &res)
	return res, err
}

func (n *NamesCli) GetEscrowEntries(owner schema.Name, cursor uint, num int) ([]schema.EscrowEntry, error) {
	req := n.SCli.Get()
	req.AddQuery("cursor", fmt.Sprint(cursor))
	req.AddQuery("num", fmt.Sprint(num))
	res := make([]schema.EscrowEntry, 0)
	err := n.send(req, fmt.Sprintf("/escrow/%s", owner), nil, &res)
	return res, err
}

func (n *NamesCli) send(req *gentleman.Request, path string, body, out interface{}) error {
	req.AddPath(path)
	if n.Actor != "" {
		req.SetHeader(schema.HeaderActor, string(n.Actor))
	}
	if body != nil {
		req.JSON(body)
	}
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		respErr := schema.RespErr{}
		if err := resp.JSON(&respErr); err == nil && respErr.Err != "" {
			return &ApiError{StatusCode: resp.StatusCode, Err: respErr.Err}
		}
		return &ApiError{StatusCode: resp.StatusCode, Err: resp.String()}
	}
	if out == nil {
		return nil
	}
	return resp.JSON(out)
}
