package names

import (
	"encoding/json"
	"sync"

	"github.com/everFinance/names/schema"
	"github.com/panjf2000/ants/v2"
	"github.com/tidwall/sjson"
)

const (
	exportBatchSize   = 200
	exportConcurrency = 10
)

func (s *Names) runJobs() {
	if len(s.kWriters) > 0 && s.wdb != nil {
		s.scheduler.Every(2).Seconds().SingletonMode().Do(s.exportPurchases)
		s.scheduler.Every(2).Seconds().SingletonMode().Do(s.exportEscrowEntries)
		s.scheduler.Every(5).Seconds().SingletonMode().Do(s.exportSuffixLogs)
	}
	if s.wdb != nil {
		s.scheduler.Every(30).Seconds().SingletonMode().Do(s.watchUnexported)
	}
	s.scheduler.StartAsync()
}

type exportItem struct {
	id   uint
	key  string
	body []byte
}

func newExportItem(id uint, key, eventId, topic string, row interface{}) (exportItem, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return exportItem{}, err
	}
	// body decodes as schema.KafkaEvent
	body, err := sjson.SetBytes([]byte(`{}`), "eventId", eventId)
	if err != nil {
		return exportItem{}, err
	}
	if body, err = sjson.SetBytes(body, "type", topic); err != nil {
		return exportItem{}, err
	}
	body, err = sjson.SetRawBytes(body, "data", data)
	return exportItem{id: id, key: key, body: body}, err
}

// publish writes items to the topic and returns the ids that were written.
// Items sharing a key are written in order by one worker; a failure stops the rest of that key.
func (s *Names) publish(topic string, items []exportItem) []uint {
	w, ok := s.kWriters[topic]
	if !ok || len(items) == 0 {
		return nil
	}

	groups := make(map[string][]exportItem)
	keys := make([]string, 0)
	for _, item := range items {
		if _, ok := groups[item.key]; !ok {
			keys = append(keys, item.key)
		}
		groups[item.key] = append(groups[item.key], item)
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		ids = make([]uint, 0, len(items))
	)
	p, err := ants.NewPoolWithFunc(exportConcurrency, func(i interface{}) {
		defer wg.Done()
		for _, item := range i.([]exportItem) {
			if err := w.Write(item.key, item.body); err != nil {
				log.Error("w.Write(item.key, item.body)", "topic", topic, "id", item.id, "err", err)
				return
			}
			mu.Lock()
			ids = append(ids, item.id)
			mu.Unlock()
		}
	})
	if err != nil {
		log.Error("ants.NewPoolWithFunc()", "err", err)
		return nil
	}
	defer p.Release()

	for _, key := range keys {
		wg.Add(1)
		if err := p.Invoke(groups[key]); err != nil {
			wg.Done()
			log.Error("p.Invoke(group)", "topic", topic, "key", key, "err", err)
		}
	}
	wg.Wait()
	return ids
}

func (s *Names) exportPurchases() {
	rows, err := s.wdb.GetUnexportedPurchases(exportBatchSize)
	if err != nil {
		log.Error("s.wdb.GetUnexportedPurchases()", "err", err)
		return
	}
	items := make([]exportItem, 0, len(rows))
	for _, r := range rows {
		item, err := newExportItem(r.ID, r.Creator, r.EventId, PurchaseTopic, r)
		if err != nil {
			log.Error("newExportItem(purchase)", "id", r.ID, "err", err)
			continue
		}
		items = append(items, item)
	}
	if err := s.wdb.MarkExported(&schema.PurchaseLog{}, s.publish(PurchaseTopic, items)); err != nil {
		log.Error("s.wdb.MarkExported(PurchaseLog)", "err", err)
	}
}

func (s *Names) exportEscrowEntries() {
	rows, err := s.wdb.GetUnexportedEscrowEntries(exportBatchSize)
	if err != nil {
		log.Error("s.wdb.GetUnexportedEscrowEntries()", "err", err)
		return
	}
	items := make([]exportItem, 0, len(rows))
	for _, r := range rows {
		item, err := newExportItem(r.ID, r.Owner, r.EventId, EscrowTopic, r)
		if err != nil {
			log.Error("newExportItem(escrow)", "id", r.ID, "err", err)
			continue
		}
		items = append(items, item)
	}
	if err := s.wdb.MarkExported(&schema.EscrowEntry{}, s.publish(EscrowTopic, items)); err != nil {
		log.Error("s.wdb.MarkExported(EscrowEntry)", "err", err)
	}
}

func (s *Names) exportSuffixLogs() {
	rows, err := s.wdb.GetUnexportedSuffixLogs(exportBatchSize)
	if err != nil {
		log.Error("s.wdb.GetUnexportedSuffixLogs()", "err", err)
		return
	}
	items := make([]exportItem, 0, len(rows))
	for _, r := range rows {
		item, err := newExportItem(r.ID, r.Suffix, r.EventId, SuffixTopic, r)
		if err != nil {
			log.Error("newExportItem(suffix)", "id", r.ID, "err", err)
			continue
		}
		items = append(items, item)
	}
	if err := s.wdb.MarkExported(&schema.SuffixLog{}, s.publish(SuffixTopic, items)); err != nil {
		log.Error("s.wdb.MarkExported(SuffixLog)", "err", err)
	}
}

func (s *Names) watchUnexported() {
	models := map[string]interface{}{
		PurchaseTopic: &schema.PurchaseLog{},
		EscrowTopic:   &schema.EscrowEntry{},
		SuffixTopic:   &schema.SuffixLog{},
	}
	for topic, model := range models {
		count, err := s.wdb.CountUnexported(model)
		if err != nil {
			log.Error("s.wdb.CountUnexported(model)", "topic", topic, "err", err)
			continue
		}
		metricUnexported(topic, count)
	}
}
