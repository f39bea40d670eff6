package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	bal := Default()
	assert.Equal(t, 1.15, bal.CostGrowth)
	assert.Equal(t, 1.0, bal.BaseClickValue)
	assert.Equal(t, 120.0, bal.EventCooldownSeconds)
	assert.Equal(t, 0.5, bal.BuildingCostFloor)
	assert.Equal(t, 100, bal.TickIntervalMS)
}

func TestPresets(t *testing.T) {
	casual := Casual()
	assert.Less(t, casual.CostGrowth, Default().CostGrowth)
	assert.Greater(t, casual.PopGrowthRate, Default().PopGrowthRate)

	hard := Hard()
	assert.Greater(t, hard.CostGrowth, Default().CostGrowth)
	assert.Greater(t, hard.EventSpawnChance, Default().EventSpawnChance)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("COST_GROWTH", "1.25")
	t.Setenv("EVENT_SPAWN_CHANCE", "0.5")
	t.Setenv("TICK_INTERVAL_MS", "250")

	bal := FromEnv()
	assert.Equal(t, 1.25, bal.CostGrowth)
	assert.Equal(t, 0.5, bal.EventSpawnChance)
	assert.Equal(t, 250, bal.TickIntervalMS)
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	t.Setenv("COST_GROWTH", "0.5") // growth below 1 would make costs shrink
	t.Setenv("EVENT_SPAWN_CHANCE", "2")
	t.Setenv("TICK_INTERVAL_MS", "nope")

	bal := FromEnv()
	assert.Equal(t, Default().CostGrowth, bal.CostGrowth)
	assert.Equal(t, Default().EventSpawnChance, bal.EventSpawnChance)
	assert.Equal(t, Default().TickIntervalMS, bal.TickIntervalMS)
}

func TestFromEnvDifficultyPreset(t *testing.T) {
	t.Setenv("DIFFICULTY", "hard")
	assert.Equal(t, Hard(), FromEnv())

	t.Setenv("DIFFICULTY", "casual")
	assert.Equal(t, Casual(), FromEnv())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "data", cfg.Server.DataDir)
	assert.Equal(t, Default(), cfg.Balance)
}

func TestLoadPartialYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colony.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server:\n  addr: \":9000\"\nbalance:\n  cost_growth: 1.2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "data", cfg.Server.DataDir)
	assert.Equal(t, 1.2, cfg.Balance.CostGrowth)
	assert.Equal(t, Default().EventCooldownSeconds, cfg.Balance.EventCooldownSeconds,
		"unset knobs fall back to defaults")
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colony.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"balance:\n  cost_growth: 1.2\n  tick_interval_ms: 500\n"), 0o644))

	t.Setenv("COST_GROWTH", "1.3")
	t.Setenv("MARKET_EFFICIENCY", "0.9")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.3, cfg.Balance.CostGrowth, "env wins over the file")
	assert.Equal(t, 0.9, cfg.Balance.MarketEfficiency)
	assert.Equal(t, 500, cfg.Balance.TickIntervalMS, "file values without env override stay")
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colony.yml")
	require.NoError(t, os.WriteFile(path, []byte("balance: ["), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
