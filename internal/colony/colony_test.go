package colony

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerCanAffordAndSpend(t *testing.T) {
	l := Ledger{Energy: 100, Minerals: 20}

	assert.True(t, l.CanAfford(Ledger{Energy: 100, Minerals: 20}))
	assert.False(t, l.CanAfford(Ledger{Energy: 101}))
	assert.True(t, l.CanAfford(nil))

	l.Spend(Ledger{Energy: 30, Minerals: 5})
	assert.Equal(t, 70.0, l[Energy])
	assert.Equal(t, 15.0, l[Minerals])
}

func TestLedgerAddGuards(t *testing.T) {
	l := Ledger{Energy: 1}

	l.Add(Energy, math.NaN())
	assert.Equal(t, 1.0, l[Energy], "NaN neutralized")

	l.Add(Energy, math.Inf(1))
	assert.Equal(t, 1.0, l[Energy])

	l.Add(Kind("gold"), 100)
	_, ok := l[Kind("gold")]
	assert.False(t, ok, "unknown kinds ignored")
}

func TestSafe(t *testing.T) {
	assert.Equal(t, 0.0, Safe(math.NaN()))
	assert.Equal(t, 0.0, Safe(math.Inf(1)))
	assert.Equal(t, 0.0, Safe(math.Inf(-1)))
	assert.Equal(t, 1.5, Safe(1.5))
}

func TestValidKind(t *testing.T) {
	for _, k := range Kinds {
		assert.True(t, ValidKind(k))
	}
	assert.False(t, ValidKind(Kind("gold")))
}

func TestNewStateTemplate(t *testing.T) {
	now := time.Now()
	st := NewState(now)

	assert.Equal(t, Version, st.Version)
	assert.Equal(t, 50.0, st.Resources[Energy])
	assert.Equal(t, 20.0, st.Resources[Research])
	assert.Len(t, st.Buildings, 9)
	assert.Len(t, st.Upgrades, 8)
	assert.Len(t, st.Tech, 7)
	assert.Len(t, st.Achievements, 9)
	assert.Len(t, st.Tutorial.Steps, 4)

	assert.True(t, st.Buildings["solarPanel"].Unlocked)
	assert.False(t, st.Buildings["researchLab"].Unlocked)
	assert.Equal(t, 1.0, st.Prestige.Multipliers.ProductionSpeed)
	assert.Equal(t, now, st.Stats.LastUpdate)
}

func TestTechContentReferencesResolve(t *testing.T) {
	st := NewState(time.Now())
	for key, tech := range st.Tech {
		for _, name := range tech.UnlocksBuildings {
			assert.Contains(t, st.Buildings, name, "tech %s", key)
		}
		for _, name := range tech.UnlocksUpgrades {
			assert.Contains(t, st.Upgrades, name, "tech %s", key)
		}
		for _, name := range tech.UnlocksTech {
			assert.Contains(t, st.Tech, name, "tech %s", key)
		}
		for _, name := range tech.Requires {
			assert.Contains(t, st.Tech, name, "tech %s", key)
		}
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	st := NewState(time.Now())
	st.Events.Active = &ActiveEvent{
		ID:      "solarFlare",
		Effects: EventEffects{ProductionMultipliers: map[Kind]float64{Energy: 0.5}},
	}
	st.Stats.ResourcesTraded = map[Kind]float64{Energy: 10}

	cp := st.Clone()
	require.NotNil(t, cp)

	cp.Resources[Energy] = 999
	cp.Buildings["solarPanel"].Count = 42
	cp.Upgrades["energyEfficiency"].Level = 9
	cp.Tech["basicResearch"].Unlocked = true
	cp.Events.Active.Effects.ProductionMultipliers[Energy] = 7
	cp.Achievements["firstClick"].Unlocked = true
	cp.Stats.ResourcesTraded[Energy] = 99
	cp.Tutorial.Steps[0].Completed = true

	assert.Equal(t, 50.0, st.Resources[Energy])
	assert.Zero(t, st.Buildings["solarPanel"].Count)
	assert.Zero(t, st.Upgrades["energyEfficiency"].Level)
	assert.False(t, st.Tech["basicResearch"].Unlocked)
	assert.Equal(t, 0.5, st.Events.Active.Effects.ProductionMultipliers[Energy])
	assert.False(t, st.Achievements["firstClick"].Unlocked)
	assert.Equal(t, 10.0, st.Stats.ResourcesTraded[Energy])
	assert.False(t, st.Tutorial.Steps[0].Completed)
}

func TestCloneNil(t *testing.T) {
	var st *State
	assert.Nil(t, st.Clone())
}

func TestEventRemaining(t *testing.T) {
	start := time.Now()
	ev := &ActiveEvent{Duration: 60, StartTime: start}

	assert.Equal(t, 60.0, ev.Remaining(start))
	assert.Equal(t, 30.0, ev.Remaining(start.Add(30*time.Second)))
	assert.Zero(t, ev.Remaining(start.Add(2*time.Minute)))
}
