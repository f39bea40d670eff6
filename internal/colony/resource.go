package colony

import "math"

// Kind identifies one resource tracked in the colony ledger.
type Kind string

const (
	Energy     Kind = "energy"
	Minerals   Kind = "minerals"
	Food       Kind = "food"
	Water      Kind = "water"
	Research   Kind = "research"
	Population Kind = "population"
	Components Kind = "components"
)

// Kinds lists every ledger resource in display order.
var Kinds = []Kind{Energy, Minerals, Food, Water, Research, Population, Components}

// ValidKind reports whether k is a resource the ledger tracks.
func ValidKind(k Kind) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Safe neutralizes NaN and infinities so a single malformed input cannot
// corrupt the ledger on the next tick.
func Safe(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Ledger maps resource kinds to non-negative quantities. It doubles as the
// cost/output mapping for buildings, upgrades and technologies.
type Ledger map[Kind]float64

func (l Ledger) Clone() Ledger {
	if l == nil {
		return nil
	}
	out := make(Ledger, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// CanAfford reports whether every entry of cost is covered. All-or-nothing:
// the caller must not deduct anything when this returns false.
func (l Ledger) CanAfford(cost Ledger) bool {
	for k, amount := range cost {
		if l[k] < amount {
			return false
		}
	}
	return true
}

// Spend deducts cost from the ledger. Callers check CanAfford first so no
// entry can go negative.
func (l Ledger) Spend(cost Ledger) {
	for k, amount := range cost {
		l[k] -= amount
	}
}

// Add credits amount of k, ignoring unknown kinds and malformed values.
func (l Ledger) Add(k Kind, amount float64) {
	if _, ok := l[k]; !ok {
		return
	}
	l[k] += Safe(amount)
}
