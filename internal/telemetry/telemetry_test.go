package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordAndQuery(t *testing.T) {
	r := NewMemoryRecorder(0)
	r.Record(EventResourceCollected, map[string]any{"resource": "energy"})
	r.Record(EventBuildingPurchased, map[string]any{"key": "solarPanel"})

	events := r.Events(time.Time{})
	assert.Len(t, events, 2)
	assert.Equal(t, 1, events[0].ID)
	assert.Equal(t, EventBuildingPurchased, events[1].Type)
}

func TestRecorderBounded(t *testing.T) {
	r := NewMemoryRecorder(5)
	for i := 0; i < 20; i++ {
		r.Record(EventResourceCollected, nil)
	}
	events := r.Events(time.Time{})
	assert.Len(t, events, 5)
	assert.Equal(t, 20, events[len(events)-1].ID, "ring keeps the newest events")
}

func TestCalculateStats(t *testing.T) {
	r := NewMemoryRecorder(0)
	r.Record(EventBuildingPurchased, map[string]any{"key": "solarPanel"})
	r.Record(EventBuildingPurchased, map[string]any{"key": "solarPanel"})
	r.Record(EventBuildingPurchased, map[string]any{"key": "mine"})
	r.Record(EventTechResearched, map[string]any{"key": "basicResearch"})
	r.Record(EventTradeExecuted, map[string]any{"from": "energy", "amount": 40.0})
	r.Record(EventTradeExecuted, map[string]any{"from": "energy", "amount": 10.0})

	stats := CalculateStats(r.Events(time.Time{}), time.Time{})
	assert.Equal(t, 3, stats.EventCounts[EventBuildingPurchased])
	assert.Equal(t, 2, stats.Purchases["solarPanel"])
	assert.Equal(t, 1, stats.Purchases["mine"])
	assert.Equal(t, 1, stats.Research["basicResearch"])
	assert.Equal(t, 50.0, stats.TradeVolume["energy"])
}
