package schema

import (
	"time"

	"gorm.io/datatypes"
)

const (
	// EscrowEntry kind
	EntryDeposit    = "deposit"
	EntryWithdraw   = "withdraw"
	EntryPurchase   = "purchase"
	EntryCommission = "commission"

	// SuffixLog action
	SuffixRegister   = "register"
	SuffixDiscount   = "discount"
	SuffixDeregister = "deregister"
)

type PurchaseLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	EventId    string         `gorm:"unique" json:"eventId"`
	Creator    string         `gorm:"index:idx1" json:"creator"`
	Name       string         `gorm:"index:idx2" json:"name"`
	Suffix     string         `json:"suffix"`
	Price      string         `json:"price"`
	Commission string         `json:"commission"`
	Fee        string         `json:"fee"`
	Website    string         `json:"website"`
	Owner      datatypes.JSON `json:"owner"`  // json.marshal(Authority)
	Active     datatypes.JSON `json:"active"` // json.marshal(Authority)

	Exported bool `gorm:"index:idx3" json:"-"`
}

// EscrowEntry is one line of the off-engine escrow journal.
type EscrowEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	EventId  string `gorm:"unique" json:"eventId"`
	Owner    string `gorm:"index:idx4" json:"owner"`
	Kind     string `json:"kind"` // "deposit","withdraw","purchase","commission"
	Quantity string `json:"quantity"`
	Contract string `json:"contract"`
	Memo     string `json:"memo"`

	Exported bool `gorm:"index:idx5" json:"-"`
}

type SuffixLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	EventId string         `gorm:"unique" json:"eventId"`
	Suffix  string         `gorm:"index:idx6" json:"suffix"`
	Action  string         `json:"action"` // "register","discount","deregister"
	Actor   string         `json:"actor"`
	Record  datatypes.JSON `json:"record"` // json.marshal(SuffixRecord) after the action

	Exported bool `gorm:"index:idx7" json:"-"`
}
