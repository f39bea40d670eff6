// Package market prices resource-to-resource conversions. Each resource
// carries a fluctuating value around a fixed base; the exchange rate is the
// value ratio scaled by a conversion efficiency that trading technologies
// improve.
package market

import (
	"math/rand"
	"sync"

	"github.com/egodevrjm/resource-colony/internal/colony"
	"github.com/egodevrjm/resource-colony/internal/config"
)

// baseValues anchor each resource's price. Fluctuation stays within the
// configured deviation of these.
var baseValues = map[colony.Kind]float64{
	colony.Energy:     1.0,
	colony.Minerals:   1.0,
	colony.Food:       1.2,
	colony.Water:      1.2,
	colony.Research:   2.0,
	colony.Components: 3.0,
}

// tradingTech lists the technologies that each add the configured bonus to
// conversion efficiency.
var tradingTech = []string{"efficientTrading", "advancedTrading"}

// Tradable reports whether k can be bought or sold. Population is not a
// commodity.
func Tradable(k colony.Kind) bool {
	_, ok := baseValues[k]
	return ok
}

// Market is safe for concurrent use; the fluctuation ticker and request
// handlers share it.
type Market struct {
	mu     sync.Mutex
	bal    config.Balance
	rng    *rand.Rand
	values map[colony.Kind]float64
}

// New seeds each value randomly within the deviation band.
func New(bal config.Balance, rng *rand.Rand) *Market {
	m := &Market{
		bal:    bal,
		rng:    rng,
		values: make(map[colony.Kind]float64, len(baseValues)),
	}
	for k, base := range baseValues {
		spread := bal.MarketMaxDeviation * base
		m.values[k] = base - spread/2 + rng.Float64()*spread
	}
	return m
}

// Fluctuate nudges every value by a few percent, clamped to the deviation
// band around base.
func (m *Market) Fluctuate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, base := range baseValues {
		v := m.values[k] * (0.97 + m.rng.Float64()*0.06)
		min := base * (1 - m.bal.MarketMaxDeviation)
		max := base * (1 + m.bal.MarketMaxDeviation)
		if v < min {
			v = min
		}
		if v > max {
			v = max
		}
		m.values[k] = v
	}
}

// Values returns a copy of the current prices.
func (m *Market) Values() map[colony.Kind]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[colony.Kind]float64, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Efficiency is the fraction of value preserved in a conversion, improved
// by each unlocked trading technology.
func (m *Market) Efficiency(st *colony.State) float64 {
	eff := m.bal.MarketEfficiency
	if st == nil || st.Tech == nil {
		return eff
	}
	for _, key := range tradingTech {
		if t := st.Tech[key]; t != nil && t.Unlocked {
			eff += m.bal.MarketTechBonus
		}
	}
	return eff
}

// Rate is the units of to received per unit of from. Zero for untradable
// kinds or a same-kind conversion.
func (m *Market) Rate(st *colony.State, from, to colony.Kind) float64 {
	if from == to || !Tradable(from) || !Tradable(to) {
		return 0
	}
	m.mu.Lock()
	fromValue, toValue := m.values[from], m.values[to]
	m.mu.Unlock()
	if toValue == 0 {
		return 0
	}
	return fromValue / toValue * m.Efficiency(st)
}

// Quote prices a sale of amount units of from into to.
func (m *Market) Quote(st *colony.State, from, to colony.Kind, amount float64) float64 {
	return colony.Safe(amount * m.Rate(st, from, to))
}
