package schema

import "encoding/json"

// KafkaEvent wraps every row exported from the bookkeeping db.
type KafkaEvent struct {
	EventId string          `json:"eventId"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
}
