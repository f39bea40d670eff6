// Package event holds the timed-event catalog and the generator that picks
// from it.
package event

import (
	"math/rand"
	"time"

	"github.com/egodevrjm/resource-colony/internal/colony"
)

// Template is an event definition before it is stamped with a start time.
type Template struct {
	ID          string
	Name        string
	Description string
	Duration    float64 // seconds
	Effects     colony.EventEffects
}

// Catalog lists every event that can fire. Multipliers below 1 are setbacks
// the player rides out; above 1 are windfalls.
var Catalog = []Template{
	{
		ID:          "solarFlare",
		Name:        "Solar Flare",
		Description: "A solar flare disrupts energy production!",
		Duration:    60,
		Effects: colony.EventEffects{
			ProductionMultipliers: map[colony.Kind]float64{colony.Energy: 0.5},
		},
	},
	{
		ID:          "mineralDeposit",
		Name:        "Rich Mineral Deposit",
		Description: "Your miners struck a rich vein of minerals!",
		Duration:    60,
		Effects: colony.EventEffects{
			ProductionMultipliers: map[colony.Kind]float64{colony.Minerals: 2.0},
		},
	},
	{
		ID:          "waterLeak",
		Name:        "Water Leak",
		Description: "A leak in the water system reduces output.",
		Duration:    45,
		Effects: colony.EventEffects{
			ProductionMultipliers: map[colony.Kind]float64{colony.Water: 0.7},
		},
	},
	{
		ID:          "researchBreakthrough",
		Name:        "Research Breakthrough",
		Description: "Your scientists made an unexpected breakthrough!",
		Duration:    45,
		Effects: colony.EventEffects{
			ProductionMultipliers: map[colony.Kind]float64{colony.Research: 2.0},
		},
	},
	{
		ID:          "clickFrenzy",
		Name:        "Click Frenzy",
		Description: "Your colonists are energized! Manual collection is tripled.",
		Duration:    30,
		Effects: colony.EventEffects{
			ClickMultiplier: 3.0,
		},
	},
}

// ByID looks up a catalog template. Returns nil for unknown ids.
func ByID(id string) *Template {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}

// Setback reports whether the template hurts production. Drives the
// severity of the event notification.
func (t *Template) Setback() bool {
	for _, m := range t.Effects.ProductionMultipliers {
		if m < 1 {
			return true
		}
	}
	return false
}

// Instantiate stamps the template into a running event.
func (t *Template) Instantiate(now time.Time) colony.ActiveEvent {
	effects := colony.EventEffects{ClickMultiplier: t.Effects.ClickMultiplier}
	if t.Effects.ProductionMultipliers != nil {
		effects.ProductionMultipliers = make(map[colony.Kind]float64, len(t.Effects.ProductionMultipliers))
		for k, v := range t.Effects.ProductionMultipliers {
			effects.ProductionMultipliers[k] = v
		}
	}
	return colony.ActiveEvent{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Duration:    t.Duration,
		Effects:     effects,
		StartTime:   now,
	}
}

// Generator picks random events. The rng is owned by the caller so tests
// can seed it.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate draws a uniformly random catalog event starting at now.
func (g *Generator) Generate(now time.Time) colony.ActiveEvent {
	t := &Catalog[g.rng.Intn(len(Catalog))]
	return t.Instantiate(now)
}
