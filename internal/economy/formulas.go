// Package economy holds the pure formulas of the progression engine: cost
// scaling, production aggregation, click value, population growth and
// prestige points. Nothing here mutates state and nothing here may panic on
// a partially-built tree; guard clauses return zeroed values instead.
package economy

import (
	"math"

	"github.com/egodevrjm/resource-colony/internal/colony"
	"github.com/egodevrjm/resource-colony/internal/config"
)

// productionUpgrades maps each resource to the upgrade that multiplies its
// production rate.
var productionUpgrades = map[colony.Kind]string{
	colony.Energy:     "energyEfficiency",
	colony.Minerals:   "advancedMining",
	colony.Food:       "hydroponics",
	colony.Water:      "waterRecycling",
	colony.Research:   "researchEfficiency",
	colony.Population: "populationGrowth",
	colony.Components: "componentProduction",
}

// ScaledCost returns the price of the next purchase after count owned
// units: floor(base * growth^count) per resource. Floor keeps displayed
// costs integral.
func ScaledCost(bal config.Balance, base colony.Ledger, count int) colony.Ledger {
	cost := make(colony.Ledger, len(base))
	scale := math.Pow(bal.CostGrowth, float64(count))
	for k, amount := range base {
		cost[k] = math.Floor(colony.Safe(amount * scale))
	}
	return cost
}

// ProductionRates aggregates per-second output of every unlocked building,
// then layers upgrade, prestige and event multipliers. Zero rates are never
// multiplied. Absent substructures short-circuit to the rates computed so
// far; the formula never throws.
func ProductionRates(st *colony.State) colony.Ledger {
	rates := make(colony.Ledger, len(colony.Kinds))
	for _, k := range colony.Kinds {
		rates[k] = 0
	}

	if st == nil || st.Buildings == nil {
		return rates
	}
	for _, b := range st.Buildings {
		if b == nil || b.Count == 0 || !b.Unlocked {
			continue
		}
		for k, amount := range b.BaseOutput {
			if _, ok := rates[k]; ok {
				rates[k] += colony.Safe(amount * float64(b.Count))
			}
		}
	}

	if st.Upgrades == nil {
		return rates
	}
	for k, upgradeKey := range productionUpgrades {
		u := st.Upgrades[upgradeKey]
		if u == nil || !u.Unlocked || u.Effect == 0 || rates[k] <= 0 {
			continue
		}
		rates[k] *= math.Pow(u.Effect, float64(u.Level))
	}

	if st.Prestige.Multipliers.ProductionSpeed != 0 {
		for k := range rates {
			if rates[k] > 0 {
				rates[k] *= st.Prestige.Multipliers.ProductionSpeed
			}
		}
	}

	if st.Events.Active == nil {
		return rates
	}
	for k, mult := range st.Events.Active.Effects.ProductionMultipliers {
		if _, ok := rates[k]; ok {
			rates[k] *= mult
		}
	}

	return rates
}

// ClickValue is the yield of one manual collection of a resource.
func ClickValue(bal config.Balance, st *colony.State) float64 {
	value := bal.BaseClickValue
	if st == nil {
		return value
	}

	if u := st.Upgrades["clickEfficiency"]; u != nil && u.Unlocked {
		value *= math.Pow(u.Effect, float64(u.Level))
	}
	if m := st.Prestige.Multipliers.ClickValue; m != 0 {
		value *= m
	}
	if ev := st.Events.Active; ev != nil && ev.Effects.ClickMultiplier != 0 {
		value *= ev.Effects.ClickMultiplier
	}

	return colony.Safe(value)
}

// PopulationGrowth is the colonists-per-second rate. Zero without a
// habitat, at capacity, or without both a farm and a water extractor.
// Above that, abundance of food and water per capita scales the base rate
// up to the configured cap.
func PopulationGrowth(bal config.Balance, st *colony.State) float64 {
	if st == nil || st.Buildings == nil {
		return 0
	}
	habitat := st.Buildings["habitat"]
	if habitat == nil || habitat.Count == 0 {
		return 0
	}

	population := colony.Safe(st.Resources[colony.Population])
	maxPopulation := float64(habitat.Count * bal.PopulationPerHabitat)
	if population >= maxPopulation {
		return 0
	}

	farm := st.Buildings["farm"]
	extractor := st.Buildings["waterExtractor"]
	if farm == nil || farm.Count == 0 || extractor == nil || extractor.Count == 0 {
		return 0
	}

	capita := math.Max(population, 1)
	foodModifier := math.Min(1+colony.Safe(st.Resources[colony.Food]/capita)/bal.PerCapitaScale, bal.GrowthModifierCap)
	waterModifier := math.Min(1+colony.Safe(st.Resources[colony.Water]/capita)/bal.PerCapitaScale, bal.GrowthModifierCap)

	rate := bal.PopGrowthRate * foodModifier * waterModifier

	if u := st.Upgrades["populationGrowth"]; u != nil && u.Unlocked && u.Level > 0 {
		rate *= math.Pow(u.Effect, float64(u.Level))
	}
	if m := st.Prestige.Multipliers.ProductionSpeed; m != 0 {
		rate *= m
	}

	return colony.Safe(rate)
}

// PrestigePoints converts accumulated progress into prestige currency:
// floor(sqrt(total resources) + total buildings * 2), clamped to zero when
// the computation is not a number.
func PrestigePoints(st *colony.State) int {
	if st == nil || st.Resources == nil || st.Buildings == nil {
		return 0
	}

	totalResources := 0.0
	for _, amount := range st.Resources {
		totalResources += colony.Safe(amount)
	}

	totalBuildings := 0
	for _, b := range st.Buildings {
		if b != nil {
			totalBuildings += b.Count
		}
	}

	points := math.Floor(math.Sqrt(totalResources) + float64(totalBuildings*2))
	if math.IsNaN(points) || points < 0 {
		return 0
	}
	return int(points)
}
