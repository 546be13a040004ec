package schema

import "time"

// PurchaseRecord holds the facts of one successful buy_account. It is never stored by the engine.
type PurchaseRecord struct {
	Creator    Name      `json:"creator"`
	Name       Name      `json:"name"`
	Suffix     Name      `json:"suffix"`
	Price      Asset     `json:"price"`
	Commission Asset     `json:"commission"`
	Fee        Asset     `json:"fee"`
	Website    string    `json:"website,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// AccountCreation is the request handed to the ledger's account creation capability.
type AccountCreation struct {
	Creator    Name            `json:"creator"`
	Name       Name            `json:"name"`
	Owner      Authority       `json:"owner"`
	Active     Authority       `json:"active"`
	Resources  Settings        `json:"resources"`
	Authorizer PermissionLevel `json:"authorizer"`
}

// Transfer is an outbound token transfer paid from the engine's own account.
type Transfer struct {
	From     Name          `json:"from"`
	To       Name          `json:"to"`
	Quantity ExtendedAsset `json:"quantity"`
	Memo     string        `json:"memo"`
}
