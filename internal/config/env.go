package config

import (
	"os"
	"strconv"
)

// FromEnv loads balance configuration from environment variables, falling
// back to defaults for anything unset.
func FromEnv() Balance {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// applyEnv overlays any knobs set in the environment on top of b. A
// DIFFICULTY preset replaces the whole balance first, so individual
// variables still win over the preset.
func (b *Balance) applyEnv() {
	switch os.Getenv("DIFFICULTY") {
	case "casual":
		*b = Casual()
	case "hard":
		*b = Hard()
	}

	if val, ok := getEnvFloat("COST_GROWTH"); ok && val > 1 {
		b.CostGrowth = val
	}
	if val, ok := getEnvFloat("BASE_CLICK_VALUE"); ok && val > 0 {
		b.BaseClickValue = val
	}
	if val, ok := getEnvFloat("POP_GROWTH_RATE"); ok && val > 0 {
		b.PopGrowthRate = val
	}
	if val, ok := getEnvFloat("CONSUMPTION_PER_CAPITA"); ok && val >= 0 {
		b.ConsumptionPerCapita = val
	}
	if val := getEnvInt("POPULATION_PER_HABITAT"); val > 0 {
		b.PopulationPerHabitat = val
	}
	if val, ok := getEnvFloat("EVENT_COOLDOWN_SECONDS"); ok && val >= 0 {
		b.EventCooldownSeconds = val
	}
	if val, ok := getEnvFloat("EVENT_SPAWN_CHANCE"); ok && val >= 0 && val <= 1 {
		b.EventSpawnChance = val
	}
	if val, ok := getEnvFloat("MARKET_EFFICIENCY"); ok && val > 0 {
		b.MarketEfficiency = val
	}
	if val := getEnvInt("TICK_INTERVAL_MS"); val > 0 {
		b.TickIntervalMS = val
	}
	if val := getEnvInt("MARKET_INTERVAL_SECONDS"); val > 0 {
		b.MarketIntervalSeconds = val
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvFloat(key string) (float64, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}
