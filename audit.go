package names

import (
	"encoding/json"

	"github.com/everFinance/names/schema"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Audit rows are written after the engine commit. A failed write is logged and never undoes the action.

func escrowEntry(owner schema.Name, kind string, quantity schema.ExtendedAsset, memo string) schema.EscrowEntry {
	return schema.EscrowEntry{
		EventId:  uuid.NewString(),
		Owner:    string(owner),
		Kind:     kind,
		Quantity: quantity.Quantity.String(),
		Contract: string(quantity.Contract),
		Memo:     memo,
	}
}

func (s *Names) recordPurchaseLog(rec *schema.PurchaseRecord, commissionTo, contract schema.Name, owner, active schema.Authority) {
	if s.wdb == nil {
		return
	}
	ownerJs, _ := json.Marshal(owner)
	activeJs, _ := json.Marshal(active)
	pl := schema.PurchaseLog{
		EventId:    uuid.NewString(),
		Creator:    string(rec.Creator),
		Name:       string(rec.Name),
		Suffix:     string(rec.Suffix),
		Price:      rec.Price.String(),
		Commission: rec.Commission.String(),
		Fee:        rec.Fee.String(),
		Website:    rec.Website,
		Owner:      datatypes.JSON(ownerJs),
		Active:     datatypes.JSON(activeJs),
	}

	entries := []schema.EscrowEntry{
		escrowEntry(rec.Creator, schema.EntryPurchase, schema.ExtendedAsset{Quantity: rec.Price, Contract: contract}, string(rec.Name)),
	}
	if rec.Commission.IsPositive() {
		entries = append(entries, escrowEntry(commissionTo, schema.EntryCommission, schema.ExtendedAsset{Quantity: rec.Commission, Contract: contract}, string(rec.Name)))
	}
	if err := s.wdb.InsertPurchase(pl, entries); err != nil {
		log.Error("s.wdb.InsertPurchase(pl, entries)", "name", rec.Name, "err", err)
	}
}

func (s *Names) recordEscrowEntries(entries ...schema.EscrowEntry) {
	if s.wdb == nil {
		return
	}
	if err := s.wdb.InsertEscrowEntries(entries); err != nil {
		log.Error("s.wdb.InsertEscrowEntries(entries)", "err", err)
	}
}

func (s *Names) recordSuffixLog(actor schema.Name, action string, rec schema.SuffixRecord) {
	if s.wdb == nil {
		return
	}
	recJs, _ := json.Marshal(rec)
	sl := schema.SuffixLog{
		EventId: uuid.NewString(),
		Suffix:  string(rec.Suffix),
		Action:  action,
		Actor:   string(actor),
		Record:  datatypes.JSON(recJs),
	}
	if err := s.wdb.InsertSuffixLog(sl); err != nil {
		log.Error("s.wdb.InsertSuffixLog(sl)", "suffix", rec.Suffix, "action", action, "err", err)
	}
}
