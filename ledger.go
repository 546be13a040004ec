package names

import (
	"context"
	"fmt"

	"github.com/everFinance/names/schema"
	"gopkg.in/h2non/gentleman.v2"
)

// AccountCreator creates a ledger account and delegates its starting resources.
type AccountCreator interface {
	CreateAccount(ctx context.Context, req schema.AccountCreation) error
}

// TokenTransfer pays tokens out of the engine's own ledger account.
type TokenTransfer interface {
	Transfer(ctx context.Context, tr schema.Transfer) error
}

// LedgerGateway reaches the ledger through the node gateway's http api.
type LedgerGateway struct {
	cli *gentleman.Client
}

func NewLedgerGateway(nodeUrl string) *LedgerGateway {
	return &LedgerGateway{
		cli: gentleman.New().URL(nodeUrl),
	}
}

func (l *LedgerGateway) CreateAccount(ctx context.Context, req schema.AccountCreation) error {
	return l.post(ctx, "/v1/names/newaccount", req)
}

func (l *LedgerGateway) Transfer(ctx context.Context, tr schema.Transfer) error {
	return l.post(ctx, "/v1/names/transfer", tr)
}

func (l *LedgerGateway) post(ctx context.Context, path string, body interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	req := l.cli.Post()
	req.AddPath(path)
	req.JSON(body)
	resp, err := req.Send()
	if err != nil {
		return err
	}
	defer resp.Close()
	if !resp.Ok {
		return fmt.Errorf("resp failed: %s, status: %d, body: %s", path, resp.StatusCode, resp.String())
	}
	return nil
}
