package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Cache tags shared by the services.
const (
	TagAssets    = "assets"
	TagLocations = "locations"
	TagExpenses  = "expenses"
	TagDashboard = "dashboard"
)

// LedgerTags are invalidated by any asset, location or expense mutation.
var LedgerTags = []string{TagAssets, TagLocations, TagExpenses, TagDashboard}

const TypeInvalidate = "invalidate"

// Event travels between instances over AMQP.
type Event struct {
	ID     string    `json:"id"`
	Origin string    `json:"origin"`
	Type   string    `json:"type"`
	Tags   []string  `json:"tags"`
	At     time.Time `json:"at"`
}

func NewInvalidation(origin string, tags []string) Event {
	return Event{
		ID:     uuid.NewString(),
		Origin: origin,
		Type:   TypeInvalidate,
		Tags:   tags,
		At:     time.Now().UTC(),
	}
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func EventFromJSON(body []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" || len(e.Tags) == 0 {
		return nil, fmt.Errorf("decode event: missing type or tags")
	}
	return &e, nil
}

// ClientMessage is what browsers receive on /api/events.
type ClientMessage struct {
	Type string   `json:"type"`
	Tags []string `json:"tags"`
}
