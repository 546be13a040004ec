package names

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/everFinance/names/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu      sync.Mutex
	keys    []string
	bodies  [][]byte
	failKey string
}

func (w *fakeWriter) Write(key string, body []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if key == w.failKey {
		return errors.New("broker unavailable")
	}
	w.keys = append(w.keys, key)
	w.bodies = append(w.bodies, body)
	return nil
}

func (w *fakeWriter) Close() {}

func TestExportPurchases(t *testing.T) {
	s, _ := newTestNames(t)
	s.wdb = newTestWdb(t)
	setTestPrices(t, s, nil, nil)
	deposit(t, s, "alice", "2.0000")
	deposit(t, s, "bob", "1.0000")
	for _, req := range []schema.BuyAccountReq{buyReq("alice", "alice1"), buyReq("alice", "alice2"), buyReq("bob", "bob1")} {
		_, err := s.BuyAccount(context.Background(), req.Creator, req)
		require.NoError(t, err)
	}

	w := &fakeWriter{failKey: "bob"}
	s.kWriters = map[string]EventWriter{PurchaseTopic: w}
	s.exportPurchases()

	// alice's rows go out in order; bob's stay unexported for the next run
	assert.Equal(t, []string{"alice", "alice"}, w.keys)
	event := schema.KafkaEvent{}
	require.NoError(t, json.Unmarshal(w.bodies[0], &event))
	assert.Equal(t, PurchaseTopic, event.Type)
	pl := schema.PurchaseLog{}
	require.NoError(t, json.Unmarshal(event.Data, &pl))
	assert.Equal(t, "alice1", pl.Name)
	assert.Equal(t, pl.EventId, event.EventId)

	count, err := s.wdb.CountUnexported(&schema.PurchaseLog{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	w.failKey = ""
	s.exportPurchases()
	assert.Equal(t, []string{"alice", "alice", "bob"}, w.keys)
	count, err = s.wdb.CountUnexported(&schema.PurchaseLog{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestExportEscrowAndSuffix(t *testing.T) {
	s, _ := newTestNames(t)
	s.wdb = newTestWdb(t)
	setTestPrices(t, s, nil, nil)
	registerSuffix(t, s, "cd")
	deposit(t, s, "alice", "1.0000")

	escrow, suffix := &fakeWriter{}, &fakeWriter{}
	s.kWriters = map[string]EventWriter{EscrowTopic: escrow, SuffixTopic: suffix}
	s.exportEscrowEntries()
	s.exportSuffixLogs()
	s.watchUnexported()

	assert.Equal(t, []string{"alice"}, escrow.keys)
	assert.Equal(t, []string{"cd"}, suffix.keys)
	for _, model := range []interface{}{&schema.EscrowEntry{}, &schema.SuffixLog{}} {
		count, err := s.wdb.CountUnexported(model)
		require.NoError(t, err)
		assert.Zero(t, count)
	}
}

func TestPublishWithoutWriter(t *testing.T) {
	s, _ := newTestNames(t)
	ids := s.publish(PurchaseTopic, []exportItem{{id: 1, key: "alice"}})
	assert.Empty(t, ids)
}

func TestNewExportItem(t *testing.T) {
	item, err := newExportItem(7, "cd", "evt-1", SuffixTopic, schema.SuffixLog{Suffix: "cd", Action: "register"})
	require.NoError(t, err)
	assert.Equal(t, uint(7), item.id)
	assert.Equal(t, "cd", item.key)

	event := schema.KafkaEvent{}
	require.NoError(t, json.Unmarshal(item.body, &event))
	assert.Equal(t, "evt-1", event.EventId)
	assert.Equal(t, SuffixTopic, event.Type)
	sl := schema.SuffixLog{}
	require.NoError(t, json.Unmarshal(event.Data, &sl))
	assert.Equal(t, "cd", sl.Suffix)
	assert.Equal(t, "register", sl.Action)
}
