package config

// Balance holds the gameplay tuning knobs. Everything that shapes the
// numeric economy lives here so tests and difficulty presets can vary it
// without touching the simulation code.
type Balance struct {
	// Cost scaling
	CostGrowth float64 `yaml:"cost_growth" json:"cost_growth"` // geometric base per owned unit

	// Manual collection
	BaseClickValue float64 `yaml:"base_click_value" json:"base_click_value"`

	// Population
	PopGrowthRate        float64 `yaml:"pop_growth_rate" json:"pop_growth_rate"`               // colonists per second
	PerCapitaScale       float64 `yaml:"per_capita_scale" json:"per_capita_scale"`             // stock/capita divisor in the growth modifier
	GrowthModifierCap    float64 `yaml:"growth_modifier_cap" json:"growth_modifier_cap"`       // max food/water bonus
	ConsumptionPerCapita float64 `yaml:"consumption_per_capita" json:"consumption_per_capita"` // food+water per colonist per second
	PopulationPerHabitat int     `yaml:"population_per_habitat" json:"population_per_habitat"`

	// Events
	EventCooldownSeconds float64 `yaml:"event_cooldown_seconds" json:"event_cooldown_seconds"`
	EventSpawnChance     float64 `yaml:"event_spawn_chance" json:"event_spawn_chance"` // per elapsed second once cooldown is spent

	// Prestige point spending
	ProductionSpeedPerPoint float64 `yaml:"production_speed_per_point" json:"production_speed_per_point"`
	ClickValuePerPoint      float64 `yaml:"click_value_per_point" json:"click_value_per_point"`
	BuildingCostPerPoint    float64 `yaml:"building_cost_per_point" json:"building_cost_per_point"` // reduction, applied multiplicatively
	BuildingCostFloor       float64 `yaml:"building_cost_floor" json:"building_cost_floor"`
	ResearchSpeedPerPoint   float64 `yaml:"research_speed_per_point" json:"research_speed_per_point"`

	// Market
	MarketEfficiency   float64 `yaml:"market_efficiency" json:"market_efficiency"` // base conversion efficiency
	MarketTechBonus    float64 `yaml:"market_tech_bonus" json:"market_tech_bonus"` // per trading technology
	MarketMaxDeviation float64 `yaml:"market_max_deviation" json:"market_max_deviation"`

	// Timers
	TickIntervalMS        int `yaml:"tick_interval_ms" json:"tick_interval_ms"`
	MarketIntervalSeconds int `yaml:"market_interval_seconds" json:"market_interval_seconds"`
}

// Default returns the baseline balance.
func Default() Balance {
	return Balance{
		CostGrowth:              1.15,
		BaseClickValue:          1,
		PopGrowthRate:           0.02,
		PerCapitaScale:          20,
		GrowthModifierCap:       3,
		ConsumptionPerCapita:    0.01,
		PopulationPerHabitat:    5,
		EventCooldownSeconds:    120,
		EventSpawnChance:        0.1,
		ProductionSpeedPerPoint: 0.1,
		ClickValuePerPoint:      0.2,
		BuildingCostPerPoint:    0.05,
		BuildingCostFloor:       0.5,
		ResearchSpeedPerPoint:   0.1,
		MarketEfficiency:        0.8,
		MarketTechBonus:         0.1,
		MarketMaxDeviation:      0.5,
		TickIntervalMS:          100,
		MarketIntervalSeconds:   10,
	}
}

// Casual softens the grind for casual play.
func Casual() Balance {
	cfg := Default()
	cfg.CostGrowth = 1.12
	cfg.PopGrowthRate = 0.03
	cfg.EventCooldownSeconds = 180
	return cfg
}

// Hard steepens costs and shortens event cooldowns.
func Hard() Balance {
	cfg := Default()
	cfg.CostGrowth = 1.18
	cfg.PopGrowthRate = 0.015
	cfg.EventCooldownSeconds = 90
	cfg.EventSpawnChance = 0.15
	return cfg
}
