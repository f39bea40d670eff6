package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration, mapping to colony.yml.
type Config struct {
	Version string       `yaml:"version" json:"version"`
	Server  ServerConfig `yaml:"server" json:"server"`
	Balance Balance      `yaml:"balance" json:"balance"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr" json:"addr"`
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = "data"
	}
	def := Default()
	if c.Balance.CostGrowth == 0 {
		c.Balance = def
		return
	}
	// Fill individual zero-valued knobs so a partial YAML file works.
	if c.Balance.BaseClickValue == 0 {
		c.Balance.BaseClickValue = def.BaseClickValue
	}
	if c.Balance.PopGrowthRate == 0 {
		c.Balance.PopGrowthRate = def.PopGrowthRate
	}
	if c.Balance.PerCapitaScale == 0 {
		c.Balance.PerCapitaScale = def.PerCapitaScale
	}
	if c.Balance.GrowthModifierCap == 0 {
		c.Balance.GrowthModifierCap = def.GrowthModifierCap
	}
	if c.Balance.PopulationPerHabitat == 0 {
		c.Balance.PopulationPerHabitat = def.PopulationPerHabitat
	}
	if c.Balance.EventCooldownSeconds == 0 {
		c.Balance.EventCooldownSeconds = def.EventCooldownSeconds
	}
	if c.Balance.EventSpawnChance == 0 {
		c.Balance.EventSpawnChance = def.EventSpawnChance
	}
	if c.Balance.ProductionSpeedPerPoint == 0 {
		c.Balance.ProductionSpeedPerPoint = def.ProductionSpeedPerPoint
	}
	if c.Balance.ClickValuePerPoint == 0 {
		c.Balance.ClickValuePerPoint = def.ClickValuePerPoint
	}
	if c.Balance.BuildingCostPerPoint == 0 {
		c.Balance.BuildingCostPerPoint = def.BuildingCostPerPoint
	}
	if c.Balance.BuildingCostFloor == 0 {
		c.Balance.BuildingCostFloor = def.BuildingCostFloor
	}
	if c.Balance.ResearchSpeedPerPoint == 0 {
		c.Balance.ResearchSpeedPerPoint = def.ResearchSpeedPerPoint
	}
	if c.Balance.MarketEfficiency == 0 {
		c.Balance.MarketEfficiency = def.MarketEfficiency
	}
	if c.Balance.MarketTechBonus == 0 {
		c.Balance.MarketTechBonus = def.MarketTechBonus
	}
	if c.Balance.MarketMaxDeviation == 0 {
		c.Balance.MarketMaxDeviation = def.MarketMaxDeviation
	}
	if c.Balance.TickIntervalMS == 0 {
		c.Balance.TickIntervalMS = def.TickIntervalMS
	}
	if c.Balance.MarketIntervalSeconds == 0 {
		c.Balance.MarketIntervalSeconds = def.MarketIntervalSeconds
	}
	if c.Balance.ConsumptionPerCapita == 0 {
		c.Balance.ConsumptionPerCapita = def.ConsumptionPerCapita
	}
}

// Load reads a YAML config file. A missing file is not an error: the
// defaults apply. Environment overrides land on top of whatever the file
// set.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	c.Balance.applyEnv()
	return &c, nil
}
