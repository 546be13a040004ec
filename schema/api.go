package schema

const (
	// HeaderActor carries the principal the signing gateway verified for this request.
	HeaderActor = "X-Authorized-Actor"

	DefaultPageSize = 20
	MaxPageSize     = 100
)

type BuyAccountReq struct {
	Creator Name       `json:"creator"`
	Name    Name       `json:"name"`
	Owner   Authority  `json:"owner"`
	Active  *Authority `json:"active,omitempty"` // default: Owner
	Website string     `json:"website,omitempty"`
}

type RegisterSuffixReq struct {
	Suffix            Name             `json:"suffix"`
	CommissionAccount *Name            `json:"commissionAccount,omitempty"` // default: Suffix
	Permission        *PermissionLevel `json:"permission,omitempty"`        // default: Suffix@active
}

type DiscountReq struct {
	Multiplier *uint16 `json:"multiplier,omitempty"` // default: 10000
}

type WithdrawReq struct {
	Owner    Name          `json:"owner"`
	Quantity ExtendedAsset `json:"quantity"`
	Memo     *string       `json:"memo,omitempty"` // default: "withdraw"
}

// TransferNotify is an inbound token transfer observed on the ledger.
type TransferNotify struct {
	From     Name          `json:"from"`
	To       Name          `json:"to"`
	Quantity ExtendedAsset `json:"quantity"`
	Memo     string        `json:"memo"`
}

type SetPricesReq struct {
	Base           ExtendedAsset   `json:"base"`
	Premium        map[uint8]Asset `json:"premium"`
	Incremental    uint64          `json:"incremental"`
	MinMultiplier  *uint64         `json:"minMultiplier,omitempty"`  // default: 2500
	MaxMultiplier  *uint64         `json:"maxMultiplier,omitempty"`  // default: 40000
	CommissionBips *uint64         `json:"commissionBips,omitempty"` // default: 10000
}

type RespPrice struct {
	Name   Name  `json:"name"`
	Suffix Name  `json:"suffix"`
	Price  Asset `json:"price"`
}

type RespErr struct {
	Err string `json:"error"`
}

type RespOk struct {
	Status string `json:"status"`
}
