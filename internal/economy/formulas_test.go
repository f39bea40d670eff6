package economy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egodevrjm/resource-colony/internal/colony"
	"github.com/egodevrjm/resource-colony/internal/config"
)

func TestScaledCost(t *testing.T) {
	bal := config.Default()
	base := colony.Ledger{colony.Minerals: 10}

	assert.Equal(t, 10.0, ScaledCost(bal, base, 0)[colony.Minerals])
	assert.Equal(t, math.Floor(10*1.15), ScaledCost(bal, base, 1)[colony.Minerals])
	assert.Equal(t, math.Floor(10*1.15*1.15), ScaledCost(bal, base, 2)[colony.Minerals])
}

func TestScaledCostMonotonic(t *testing.T) {
	bal := config.Default()
	base := colony.Ledger{colony.Energy: 20, colony.Minerals: 30}

	prev := ScaledCost(bal, base, 0)
	for n := 1; n < 30; n++ {
		next := ScaledCost(bal, base, n)
		for k := range base {
			assert.GreaterOrEqual(t, next[k], prev[k], "cost must not decrease with count for %s", k)
		}
		prev = next
	}
}

func TestProductionRatesBaseline(t *testing.T) {
	st := colony.NewState(time.Now())
	st.Buildings["solarPanel"].Count = 3
	st.Buildings["mine"].Count = 1

	rates := ProductionRates(st)
	assert.InDelta(t, 0.6, rates[colony.Energy], 1e-9)
	assert.InDelta(t, 0.2, rates[colony.Minerals], 1e-9)
	assert.Zero(t, rates[colony.Food])
}

func TestProductionRatesLockedBuildingIgnored(t *testing.T) {
	st := colony.NewState(time.Now())
	st.Buildings["researchLab"].Count = 5 // still locked

	rates := ProductionRates(st)
	assert.Zero(t, rates[colony.Research])
}

func TestProductionRatesUpgradeMultiplier(t *testing.T) {
	st := colony.NewState(time.Now())
	st.Buildings["solarPanel"].Count = 10
	st.Upgrades["energyEfficiency"].Level = 2

	rates := ProductionRates(st)
	assert.InDelta(t, 2.0*1.1*1.1, rates[colony.Energy], 1e-9)
}

func TestProductionRatesLockedUpgradeIgnored(t *testing.T) {
	st := colony.NewState(time.Now())
	st.Buildings["solarPanel"].Count = 10
	st.Upgrades["energyEfficiency"].Level = 3
	st.Upgrades["energyEfficiency"].Unlocked = false

	rates := ProductionRates(st)
	assert.InDelta(t, 2.0, rates[colony.Energy], 1e-9)
}

func TestProductionRatesEventHalvesEnergy(t *testing.T) {
	st := colony.NewState(time.Now())
	st.Buildings["solarPanel"].Count = 10
	st.Events.Active = &colony.ActiveEvent{
		ID:       "solarFlare",
		Duration: 60,
		Effects: colony.EventEffects{
			ProductionMultipliers: map[colony.Kind]float64{colony.Energy: 0.5},
		},
	}

	rates := ProductionRates(st)
	assert.InDelta(t, 1.0, rates[colony.Energy], 1e-9)
}

func TestProductionRatesPrestigeMultiplier(t *testing.T) {
	st := colony.NewState(time.Now())
	st.Buildings["mine"].Count = 5
	st.Prestige.Multipliers.ProductionSpeed = 1.5

	rates := ProductionRates(st)
	assert.InDelta(t, 1.5, rates[colony.Minerals], 1e-9)
	// zero rates stay zero under the global multiplier
	assert.Zero(t, rates[colony.Components])
}

func TestProductionRatesNilSafe(t *testing.T) {
	rates := ProductionRates(nil)
	require.NotNil(t, rates)
	for _, k := range colony.Kinds {
		assert.Zero(t, rates[k])
	}

	st := &colony.State{}
	rates = ProductionRates(st)
	for _, k := range colony.Kinds {
		assert.Zero(t, rates[k])
	}
}

func TestClickValue(t *testing.T) {
	bal := config.Default()
	st := colony.NewState(time.Now())

	assert.Equal(t, 1.0, ClickValue(bal, st))

	st.Upgrades["clickEfficiency"].Unlocked = true
	st.Upgrades["clickEfficiency"].Level = 2
	assert.InDelta(t, 2.25, ClickValue(bal, st), 1e-9)

	st.Prestige.Multipliers.ClickValue = 2
	assert.InDelta(t, 4.5, ClickValue(bal, st), 1e-9)

	st.Events.Active = &colony.ActiveEvent{
		ID:      "clickFrenzy",
		Effects: colony.EventEffects{ClickMultiplier: 3},
	}
	assert.InDelta(t, 13.5, ClickValue(bal, st), 1e-9)
}

func TestPopulationGrowthRequiresInfrastructure(t *testing.T) {
	bal := config.Default()
	st := colony.NewState(time.Now())

	assert.Zero(t, PopulationGrowth(bal, st), "no habitat")

	st.Buildings["habitat"].Count = 1
	assert.Zero(t, PopulationGrowth(bal, st), "no farm or extractor yet still zero")

	st.Buildings["farm"].Count = 1
	assert.Zero(t, PopulationGrowth(bal, st), "missing water extractor")

	st.Buildings["waterExtractor"].Count = 1
	assert.Greater(t, PopulationGrowth(bal, st), 0.0)
}

func TestPopulationGrowthStopsAtCapacity(t *testing.T) {
	bal := config.Default()
	st := colony.NewState(time.Now())
	st.Buildings["habitat"].Count = 2
	st.Buildings["farm"].Count = 1
	st.Buildings["waterExtractor"].Count = 1
	st.Resources[colony.Population] = 10 // 2 habitats * 5

	assert.Zero(t, PopulationGrowth(bal, st))
}

func TestPopulationGrowthAbundanceCapped(t *testing.T) {
	bal := config.Default()
	st := colony.NewState(time.Now())
	st.Buildings["habitat"].Count = 10
	st.Buildings["farm"].Count = 1
	st.Buildings["waterExtractor"].Count = 1
	st.Resources[colony.Population] = 1
	st.Resources[colony.Food] = 1e9
	st.Resources[colony.Water] = 1e9

	// both modifiers capped at 3: 0.02 * 3 * 3
	assert.InDelta(t, 0.18, PopulationGrowth(bal, st), 1e-9)
}

func TestPrestigePoints(t *testing.T) {
	st := colony.NewState(time.Now())
	st.Resources = colony.Ledger{colony.Energy: 100}
	for _, b := range st.Buildings {
		b.Count = 0
	}
	st.Buildings["solarPanel"].Count = 3

	// floor(sqrt(100) + 3*2) = 16
	assert.Equal(t, 16, PrestigePoints(st))
}

func TestPrestigePointsNeverNegative(t *testing.T) {
	assert.Zero(t, PrestigePoints(nil))
	assert.Zero(t, PrestigePoints(&colony.State{}))

	st := colony.NewState(time.Now())
	st.Resources[colony.Energy] = math.NaN()
	assert.GreaterOrEqual(t, PrestigePoints(st), 0)
}
