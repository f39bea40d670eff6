package colony

import "time"

// Building is an owned structure that produces resources every tick.
// Count only increases; demolition is not a thing. Reset to zero on full
// reset or prestige.
type Building struct {
	Count       int    `json:"count"`
	BaseCost    Ledger `json:"baseCost"`
	BaseOutput  Ledger `json:"baseOutput"` // per second
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// Upgrade multiplies production (or click value) by Effect^Level.
type Upgrade struct {
	Level       int     `json:"level"`
	BaseCost    Ledger  `json:"baseCost"`
	Effect      float64 `json:"effect"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Unlocked    bool    `json:"unlocked"`
}

// Tech is a one-time research purchase. Available means every prerequisite
// is unlocked; the player still has to pay the cost to unlock it.
type Tech struct {
	Unlocked         bool     `json:"unlocked"`
	Available        bool     `json:"available,omitempty"`
	Cost             Ledger   `json:"cost"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	UnlocksBuildings []string `json:"unlocksBuildings"`
	UnlocksUpgrades  []string `json:"unlocksUpgrades"`
	UnlocksTech      []string `json:"unlocksTech"`
	Requires         []string `json:"requires"`
}

// EventEffects is the payload of a timed event: either per-resource
// production multipliers or a click multiplier (zero means unset).
type EventEffects struct {
	ProductionMultipliers map[Kind]float64 `json:"productionMultipliers,omitempty"`
	ClickMultiplier       float64          `json:"clickMultiplier,omitempty"`
}

// ActiveEvent is a running timed modifier. Duration is in seconds.
type ActiveEvent struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Duration    float64      `json:"duration"`
	Effects     EventEffects `json:"effects"`
	StartTime   time.Time    `json:"startTime"`
}

// Remaining is the read-only countdown projection. The authoritative expiry
// test lives in the tick; this never drives state.
func (e *ActiveEvent) Remaining(now time.Time) float64 {
	left := e.Duration - now.Sub(e.StartTime).Seconds()
	if left < 0 {
		return 0
	}
	return left
}

// EventState holds the one-at-a-time event lifecycle: none -> active ->
// none+cooldown -> none. Cooldown is in seconds and only decays while no
// event is active.
type EventState struct {
	Active   *ActiveEvent  `json:"active"`
	Cooldown float64       `json:"cooldown"`
	History  []ActiveEvent `json:"history"`
}

// Achievement is monotonic: once Unlocked flips true it never flips back.
type Achievement struct {
	Unlocked    bool   `json:"unlocked"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Stats are the aggregate lifetime counters. LastUpdate anchors tick
// reconciliation and is the only stat not carried over by Load.
type Stats struct {
	LastUpdate           time.Time        `json:"lastUpdate"`
	TotalClicks          int              `json:"totalClicks"`
	BuildingsConstructed int              `json:"buildingsConstructed"`
	UpgradesPurchased    int              `json:"upgradesPurchased"`
	TechResearched       int              `json:"techResearched"`
	ColonyAge            float64          `json:"colonyAge"` // seconds
	EventsSurvived       int              `json:"eventsSurvived"`
	PrestigeCount        int              `json:"prestigeCount"`
	ResourcesTraded      map[Kind]float64 `json:"resourcesTraded,omitempty"`
}

// Settings live outside the gameplay reset cycle.
type Settings struct {
	GameSpeed        float64   `json:"gameSpeed"`
	Notifications    bool      `json:"notifications"`
	AutoSaveInterval float64   `json:"autoSaveInterval"` // seconds
	LastSave         time.Time `json:"lastSave"`
}

// Multipliers is the permanent prestige record. It survives prestige
// resets; everything else is rebuilt from the template.
type Multipliers struct {
	ProductionSpeed float64 `json:"productionSpeed"`
	ClickValue      float64 `json:"clickValue"`
	BuildingCost    float64 `json:"buildingCost"`
	ResearchSpeed   float64 `json:"researchSpeed"`
}

type Prestige struct {
	AvailablePoints int         `json:"availablePoints"`
	TotalEarned     int         `json:"totalEarned"`
	Multipliers     Multipliers `json:"multipliers"`
}

type TutorialStep struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
	Text      string `json:"text"`
}

type Tutorial struct {
	Step      int            `json:"step"`
	Completed bool           `json:"completed"`
	Steps     []TutorialStep `json:"steps"`
}

// State is the whole mutable game tree. Transitions run one at a time on a
// single owned handle, so there is no locking inside the tree itself.
type State struct {
	Version      string                  `json:"version"`
	Resources    Ledger                  `json:"resources"`
	Buildings    map[string]*Building    `json:"buildings"`
	Upgrades     map[string]*Upgrade     `json:"upgrades"`
	Tech         map[string]*Tech        `json:"tech"`
	Events       EventState              `json:"events"`
	Achievements map[string]*Achievement `json:"achievements"`
	Stats        Stats                   `json:"stats"`
	Settings     Settings                `json:"settings"`
	Prestige     Prestige                `json:"prestige"`
	Tutorial     Tutorial                `json:"tutorial"`
}

// Clone deep-copies the tree. Snapshots handed to persistence or the API
// must not alias the live state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := *s

	out.Resources = s.Resources.Clone()

	out.Buildings = make(map[string]*Building, len(s.Buildings))
	for key, b := range s.Buildings {
		cp := *b
		cp.BaseCost = b.BaseCost.Clone()
		cp.BaseOutput = b.BaseOutput.Clone()
		out.Buildings[key] = &cp
	}

	out.Upgrades = make(map[string]*Upgrade, len(s.Upgrades))
	for key, u := range s.Upgrades {
		cp := *u
		cp.BaseCost = u.BaseCost.Clone()
		out.Upgrades[key] = &cp
	}

	out.Tech = make(map[string]*Tech, len(s.Tech))
	for key, t := range s.Tech {
		cp := *t
		cp.Cost = t.Cost.Clone()
		cp.UnlocksBuildings = append([]string(nil), t.UnlocksBuildings...)
		cp.UnlocksUpgrades = append([]string(nil), t.UnlocksUpgrades...)
		cp.UnlocksTech = append([]string(nil), t.UnlocksTech...)
		cp.Requires = append([]string(nil), t.Requires...)
		out.Tech[key] = &cp
	}

	if s.Events.Active != nil {
		cp := *s.Events.Active
		cp.Effects.ProductionMultipliers = cloneMultipliers(s.Events.Active.Effects.ProductionMultipliers)
		out.Events.Active = &cp
	}
	out.Events.History = make([]ActiveEvent, len(s.Events.History))
	for i, ev := range s.Events.History {
		cp := ev
		cp.Effects.ProductionMultipliers = cloneMultipliers(ev.Effects.ProductionMultipliers)
		out.Events.History[i] = cp
	}

	out.Achievements = make(map[string]*Achievement, len(s.Achievements))
	for key, a := range s.Achievements {
		cp := *a
		out.Achievements[key] = &cp
	}

	if s.Stats.ResourcesTraded != nil {
		out.Stats.ResourcesTraded = make(map[Kind]float64, len(s.Stats.ResourcesTraded))
		for k, v := range s.Stats.ResourcesTraded {
			out.Stats.ResourcesTraded[k] = v
		}
	}

	out.Tutorial.Steps = append([]TutorialStep(nil), s.Tutorial.Steps...)

	return &out
}

func cloneMultipliers(m map[Kind]float64) map[Kind]float64 {
	if m == nil {
		return nil
	}
	out := make(map[Kind]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
