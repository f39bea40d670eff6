package event

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egodevrjm/resource-colony/internal/colony"
)

func TestCatalogShape(t *testing.T) {
	require.Len(t, Catalog, 5)
	seen := map[string]bool{}
	for _, tmpl := range Catalog {
		assert.NotEmpty(t, tmpl.ID)
		assert.Greater(t, tmpl.Duration, 0.0)
		assert.False(t, seen[tmpl.ID], "duplicate id %s", tmpl.ID)
		seen[tmpl.ID] = true
	}
}

func TestByID(t *testing.T) {
	tmpl := ByID("solarFlare")
	require.NotNil(t, tmpl)
	assert.Equal(t, 0.5, tmpl.Effects.ProductionMultipliers[colony.Energy])

	assert.Nil(t, ByID("meteorShower"))
}

func TestSetback(t *testing.T) {
	assert.True(t, ByID("solarFlare").Setback())
	assert.True(t, ByID("waterLeak").Setback())
	assert.False(t, ByID("mineralDeposit").Setback())
	assert.False(t, ByID("clickFrenzy").Setback())
}

func TestInstantiateCopiesEffects(t *testing.T) {
	now := time.Unix(1000, 0)
	tmpl := ByID("solarFlare")
	ev := tmpl.Instantiate(now)

	assert.Equal(t, now, ev.StartTime)
	ev.Effects.ProductionMultipliers[colony.Energy] = 99
	assert.Equal(t, 0.5, tmpl.Effects.ProductionMultipliers[colony.Energy],
		"instantiated event must not alias the catalog")
}

func TestRemaining(t *testing.T) {
	now := time.Unix(1000, 0)
	ev := ByID("clickFrenzy").Instantiate(now)

	assert.Equal(t, 30.0, ev.Remaining(now))
	assert.Equal(t, 10.0, ev.Remaining(now.Add(20*time.Second)))
	assert.Equal(t, 0.0, ev.Remaining(now.Add(2*time.Minute)))
}

func TestGeneratorDeterministic(t *testing.T) {
	now := time.Unix(1000, 0)
	a := NewGenerator(rand.New(rand.NewSource(42)))
	b := NewGenerator(rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Generate(now).ID, b.Generate(now).ID)
	}
}

func TestGeneratorCoversCatalog(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[g.Generate(time.Now()).ID] = true
	}
	assert.Len(t, seen, len(Catalog))
}
