// Package achievement evaluates unlock conditions against the colony state.
package achievement

import "github.com/egodevrjm/resource-colony/internal/colony"

// conditions maps achievement keys to their unlock predicates. A key absent
// from the state's achievement map is silently skipped, so content and
// predicates can evolve independently.
var conditions = map[string]func(*colony.State) bool{
	"firstClick":    func(st *colony.State) bool { return st.Stats.TotalClicks >= 1 },
	"tenClicks":     func(st *colony.State) bool { return st.Stats.TotalClicks >= 10 },
	"hundredClicks": func(st *colony.State) bool { return st.Stats.TotalClicks >= 100 },
	"firstBuilding": func(st *colony.State) bool { return st.Stats.BuildingsConstructed >= 1 },
	"tenBuildings":  func(st *colony.State) bool { return st.Stats.BuildingsConstructed >= 10 },
	"firstUpgrade":  func(st *colony.State) bool { return st.Stats.UpgradesPurchased >= 1 },
	"firstTech":     func(st *colony.State) bool { return st.Stats.TechResearched >= 1 },
	"firstPopulation": func(st *colony.State) bool {
		return st.Resources[colony.Population] >= 1
	},
	"tenPopulation": func(st *colony.State) bool {
		return st.Resources[colony.Population] >= 10
	},
}

// Evaluate flips any newly satisfied achievements and returns their keys.
// Unlocks are monotonic: a satisfied condition that later stops holding
// (population dipping below a threshold) never re-locks.
func Evaluate(st *colony.State) []string {
	if st == nil || st.Achievements == nil {
		return nil
	}
	var unlocked []string
	for key, satisfied := range conditions {
		a := st.Achievements[key]
		if a == nil || a.Unlocked {
			continue
		}
		if satisfied(st) {
			a.Unlocked = true
			unlocked = append(unlocked, key)
		}
	}
	return unlocked
}
