// Package telemetry records gameplay events for balance analysis. It is
// fire-and-forget: recording never fails a transition.
package telemetry

import (
	"sync"
	"time"
)

type EventType string

const (
	EventResourceCollected EventType = "resource_collected"
	EventBuildingPurchased EventType = "building_purchased"
	EventUpgradePurchased  EventType = "upgrade_purchased"
	EventTechResearched    EventType = "tech_researched"
	EventEventStarted      EventType = "event_started"
	EventEventResolved     EventType = "event_resolved"
	EventTradeExecuted     EventType = "trade_executed"
	EventPrestige          EventType = "prestige"
)

type Event struct {
	ID        int            `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Recorder accepts gameplay events. The engine holds one; a nil recorder
// disables telemetry.
type Recorder interface {
	Record(eventType EventType, metadata map[string]any)
}

// MemoryRecorder keeps events in a bounded in-memory ring.
type MemoryRecorder struct {
	mu     sync.RWMutex
	events []Event
	nextID int
	limit  int
}

func NewMemoryRecorder(limit int) *MemoryRecorder {
	if limit <= 0 {
		limit = 10000
	}
	return &MemoryRecorder{nextID: 1, limit: limit}
}

func (r *MemoryRecorder) Record(eventType EventType, metadata map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{
		ID:        r.nextID,
		Type:      eventType,
		Timestamp: time.Now(),
		Metadata:  metadata,
	})
	r.nextID++
	if len(r.events) > r.limit {
		r.events = r.events[len(r.events)-r.limit:]
	}
}

// Events returns everything recorded at or after since.
func (r *MemoryRecorder) Events(since time.Time) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Event{}
	for _, ev := range r.events {
		if !ev.Timestamp.Before(since) {
			out = append(out, ev)
		}
	}
	return out
}

// Stats aggregates event counts for the balance dashboard.
type Stats struct {
	Since       string            `json:"since"`
	EventCounts map[EventType]int `json:"eventCounts"`
	Purchases   map[string]int    `json:"purchases"`
	Research    map[string]int    `json:"research"`
	TradeVolume map[string]float64 `json:"tradeVolume"`
}

// CalculateStats folds events into per-key counters. Metadata keys follow
// the engine's conventions: "key" for purchases and research, "from" and
// "amount" for trades.
func CalculateStats(events []Event, since time.Time) Stats {
	stats := Stats{
		Since:       since.Format(time.RFC3339),
		EventCounts: make(map[EventType]int),
		Purchases:   make(map[string]int),
		Research:    make(map[string]int),
		TradeVolume: make(map[string]float64),
	}
	for _, ev := range events {
		if ev.Timestamp.Before(since) {
			continue
		}
		stats.EventCounts[ev.Type]++

		switch ev.Type {
		case EventBuildingPurchased, EventUpgradePurchased:
			if key, ok := ev.Metadata["key"].(string); ok {
				stats.Purchases[key]++
			}
		case EventTechResearched:
			if key, ok := ev.Metadata["key"].(string); ok {
				stats.Research[key]++
			}
		case EventTradeExecuted:
			from, _ := ev.Metadata["from"].(string)
			amount, _ := ev.Metadata["amount"].(float64)
			if from != "" {
				stats.TradeVolume[from] += amount
			}
		}
	}
	return stats
}
