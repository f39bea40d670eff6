// Package techtree resolves research purchases: prerequisite checks, the
// fan-out of unlocks into buildings, upgrades and downstream technologies,
// and the availability recomputation that follows.
package techtree

import (
	"log"

	"github.com/egodevrjm/resource-colony/internal/colony"
)

// UnlockSet is everything a single research grants.
type UnlockSet struct {
	Buildings []string
	Upgrades  []string
	Tech      []string
}

// CanResearch reports whether key is a known technology that is not yet
// unlocked, has all prerequisites met and is affordable. A technology with
// no prerequisites is always reachable.
func CanResearch(st *colony.State, key string) bool {
	if st == nil || st.Tech == nil {
		return false
	}
	t := st.Tech[key]
	if t == nil || t.Unlocked {
		return false
	}
	for _, req := range t.Requires {
		prereq := st.Tech[req]
		if prereq == nil || !prereq.Unlocked {
			return false
		}
	}
	return st.Resources.CanAfford(t.Cost)
}

// Resolve collects the unlock set of key. Dangling references are logged
// and skipped rather than failing the purchase; a typo in the content table
// must not strand the player.
func Resolve(st *colony.State, key string, logger *log.Logger) UnlockSet {
	var set UnlockSet
	t := st.Tech[key]
	if t == nil {
		return set
	}

	for _, name := range t.UnlocksBuildings {
		if st.Buildings[name] == nil {
			logf(logger, "tech %s unlocks unknown building %s, skipping", key, name)
			continue
		}
		set.Buildings = append(set.Buildings, name)
	}
	for _, name := range t.UnlocksUpgrades {
		if st.Upgrades[name] == nil {
			logf(logger, "tech %s unlocks unknown upgrade %s, skipping", key, name)
			continue
		}
		set.Upgrades = append(set.Upgrades, name)
	}
	for _, name := range t.UnlocksTech {
		if st.Tech[name] == nil {
			logf(logger, "tech %s unlocks unknown tech %s, skipping", key, name)
			continue
		}
		set.Tech = append(set.Tech, name)
	}
	return set
}

// Apply flips the unlock flags granted by a resolved set, then marks any
// downstream technology Available once every prerequisite is unlocked.
func Apply(st *colony.State, set UnlockSet) {
	for _, name := range set.Buildings {
		st.Buildings[name].Unlocked = true
	}
	for _, name := range set.Upgrades {
		st.Upgrades[name].Unlocked = true
	}
	for _, name := range set.Tech {
		t := st.Tech[name]
		if t.Unlocked {
			continue
		}
		t.Available = prereqsMet(st, t)
	}
}

// Refresh recomputes Available for every locked technology. Used after a
// load, where the flags in the snapshot may be stale.
func Refresh(st *colony.State) {
	for _, t := range st.Tech {
		if t.Unlocked {
			t.Available = false
			continue
		}
		t.Available = prereqsMet(st, t)
	}
}

func prereqsMet(st *colony.State, t *colony.Tech) bool {
	for _, req := range t.Requires {
		prereq := st.Tech[req]
		if prereq == nil || !prereq.Unlocked {
			return false
		}
	}
	return true
}

func logf(logger *log.Logger, format string, args ...any) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}
