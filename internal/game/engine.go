// Package game owns the colony simulation: the single mutable state tree,
// every player-driven transition, and the reconciling tick that advances
// production, population and events from one timestamp to the next.
package game

import (
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/egodevrjm/resource-colony/internal/achievement"
	"github.com/egodevrjm/resource-colony/internal/colony"
	"github.com/egodevrjm/resource-colony/internal/config"
	"github.com/egodevrjm/resource-colony/internal/economy"
	"github.com/egodevrjm/resource-colony/internal/event"
	"github.com/egodevrjm/resource-colony/internal/market"
	"github.com/egodevrjm/resource-colony/internal/notify"
	"github.com/egodevrjm/resource-colony/internal/techtree"
	"github.com/egodevrjm/resource-colony/internal/telemetry"
)

// Engine serializes all access to the state tree behind one mutex. Every
// transition is atomic: validation happens before any mutation, so a failed
// call leaves the tree untouched.
type Engine struct {
	mu       sync.Mutex
	bal      config.Balance
	st       *colony.State
	clock    Clock
	gen      *event.Generator
	mkt      *market.Market
	notifier notify.Notifier
	rec      telemetry.Recorder
	logger   *log.Logger
	rng      *rand.Rand
}

type Options struct {
	Balance  config.Balance
	Clock    Clock
	Market   *market.Market
	Notifier notify.Notifier
	Recorder telemetry.Recorder
	Logger   *log.Logger
	Seed     int64
}

func New(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	if opts.Market == nil {
		opts.Market = market.New(opts.Balance, rand.New(rand.NewSource(opts.Seed+1)))
	}
	return &Engine{
		bal:      opts.Balance,
		st:       colony.NewState(opts.Clock.Now()),
		clock:    opts.Clock,
		gen:      event.NewGenerator(rng),
		mkt:      opts.Market,
		notifier: opts.Notifier,
		rec:      opts.Recorder,
		logger:   opts.Logger,
		rng:      rng,
	}
}

// Balance exposes the tuning in effect.
func (e *Engine) Balance() config.Balance { return e.bal }

// Market exposes the shared price board.
func (e *Engine) Market() *market.Market { return e.mkt }

// Snapshot deep-copies the current state for persistence or the API.
func (e *Engine) Snapshot() *colony.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.Clone()
}

// Rates returns the current per-second production ledger.
func (e *Engine) Rates() colony.Ledger {
	e.mu.Lock()
	defer e.mu.Unlock()
	return economy.ProductionRates(e.st)
}

// ClickValue returns the current yield of one manual collection.
func (e *Engine) ClickValue() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return economy.ClickValue(e.bal, e.st)
}

// PrestigePreview returns the points a prestige right now would grant.
func (e *Engine) PrestigePreview() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return economy.PrestigePoints(e.st)
}

// BuildingCost is the price of the next unit of key, prestige discount
// applied.
func (e *Engine) BuildingCost(key string) (colony.Ledger, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b := e.st.Buildings[key]
	if b == nil {
		return nil, ErrUnknownBuilding
	}
	return e.buildingCost(b), nil
}

func (e *Engine) buildingCost(b *colony.Building) colony.Ledger {
	cost := economy.ScaledCost(e.bal, b.BaseCost, b.Count)
	if m := e.st.Prestige.Multipliers.BuildingCost; m != 0 && m != 1 {
		for k, v := range cost {
			cost[k] = math.Floor(v * m)
		}
	}
	return cost
}

// Collect performs one manual collection of kind.
func (e *Engine) Collect(kind colony.Kind) (float64, error) {
	if !colony.ValidKind(kind) {
		return 0, ErrUnknownResource
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	value := economy.ClickValue(e.bal, e.st)
	e.st.Resources.Add(kind, value)
	e.st.Stats.TotalClicks++
	e.completeTutorialStep("welcome")
	e.checkAchievements()
	e.record(telemetry.EventResourceCollected, map[string]any{"resource": string(kind), "amount": value})
	return value, nil
}

// PurchaseBuilding buys one unit of key at the scaled cost.
func (e *Engine) PurchaseBuilding(key string) (colony.Ledger, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := e.st.Buildings[key]
	if b == nil {
		return nil, ErrUnknownBuilding
	}
	if !b.Unlocked {
		return nil, ErrLocked
	}
	cost := e.buildingCost(b)
	if !e.st.Resources.CanAfford(cost) {
		return nil, ErrInsufficient
	}
	e.st.Resources.Spend(cost)
	b.Count++
	e.st.Stats.BuildingsConstructed++
	e.completeTutorialStep("building")
	e.checkAchievements()
	e.record(telemetry.EventBuildingPurchased, map[string]any{"key": key, "count": b.Count})
	return cost, nil
}

// PurchaseUpgrade buys one level of key at the level-scaled cost.
func (e *Engine) PurchaseUpgrade(key string) (colony.Ledger, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	u := e.st.Upgrades[key]
	if u == nil {
		return nil, ErrUnknownUpgrade
	}
	if !u.Unlocked {
		return nil, ErrLocked
	}
	cost := economy.ScaledCost(e.bal, u.BaseCost, u.Level)
	if !e.st.Resources.CanAfford(cost) {
		return nil, ErrInsufficient
	}
	e.st.Resources.Spend(cost)
	u.Level++
	e.st.Stats.UpgradesPurchased++
	e.completeTutorialStep("upgrade")
	e.checkAchievements()
	e.record(telemetry.EventUpgradePurchased, map[string]any{"key": key, "level": u.Level})
	return cost, nil
}

// CanResearch reports whether key is currently researchable.
func (e *Engine) CanResearch(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return techtree.CanResearch(e.st, key)
}

// ResearchTech unlocks a technology, pays its cost and fans out the grants.
func (e *Engine) ResearchTech(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.st.Tech[key]
	if t == nil {
		return ErrUnknownTech
	}
	if t.Unlocked {
		return ErrLocked
	}
	if !techtree.CanResearch(e.st, key) {
		if !e.st.Resources.CanAfford(t.Cost) {
			return ErrInsufficient
		}
		return ErrPrereqsUnmet
	}

	e.st.Resources.Spend(t.Cost)
	t.Unlocked = true
	t.Available = false
	techtree.Apply(e.st, techtree.Resolve(e.st, key, e.logger))
	e.st.Stats.TechResearched++
	e.completeTutorialStep("research")

	e.notify(notify.Notification{
		Title:    "Technology Researched!",
		Body:     t.Name,
		Severity: notify.Success,
	})
	e.checkAchievements()
	e.record(telemetry.EventTechResearched, map[string]any{"key": key})
	return nil
}

// StartEvent begins the catalog event id immediately. Fails while another
// event is running or the cooldown has not run out; an active event and a
// non-zero cooldown never coexist.
func (e *Engine) StartEvent(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.Events.Active != nil {
		return ErrEventActive
	}
	if e.st.Events.Cooldown > 0 {
		return ErrEventCooldown
	}
	tmpl := event.ByID(id)
	if tmpl == nil {
		return ErrUnknownEvent
	}
	e.beginEvent(tmpl.Instantiate(e.clock.Now()), tmpl.Setback())
	return nil
}

// ResolveEvent ends the active event early, crediting it as survived.
func (e *Engine) ResolveEvent() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.Events.Active == nil {
		return ErrNoActiveEvent
	}
	e.finishEvent()
	return nil
}

func (e *Engine) beginEvent(ev colony.ActiveEvent, setback bool) {
	e.st.Events.Active = &ev
	severity := notify.Info
	if setback {
		severity = notify.Warning
	}
	e.notify(notify.Notification{
		Title:    "Event Started!",
		Body:     ev.Name + ": " + ev.Description,
		Severity: severity,
	})
	e.record(telemetry.EventEventStarted, map[string]any{"id": ev.ID})
}

// finishEvent archives the active event and arms the cooldown.
func (e *Engine) finishEvent() {
	ev := e.st.Events.Active
	e.st.Events.History = append(e.st.Events.History, *ev)
	e.st.Events.Active = nil
	e.st.Events.Cooldown = e.bal.EventCooldownSeconds
	e.st.Stats.EventsSurvived++
	e.record(telemetry.EventEventResolved, map[string]any{"id": ev.ID})
}

// Prestige resets the colony in exchange for permanent points. The prestige
// record and lifetime prestige count are the only survivors.
func (e *Engine) Prestige() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	points := economy.PrestigePoints(e.st)
	prestige := e.st.Prestige
	prestige.AvailablePoints += points
	prestige.TotalEarned += points
	count := e.st.Stats.PrestigeCount + 1

	e.st = colony.NewState(e.clock.Now())
	e.st.Prestige = prestige
	e.st.Stats.PrestigeCount = count

	e.logf("prestige #%d earned %d points (%d available)", count, points, prestige.AvailablePoints)
	e.record(telemetry.EventPrestige, map[string]any{"points": points, "count": count})
	return points, nil
}

// SpendPrestigePoints converts amount points into a permanent multiplier.
// Targets match the multiplier field names: productionSpeed, clickValue,
// buildingCost, researchSpeed.
func (e *Engine) SpendPrestigePoints(target string, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.Prestige.AvailablePoints < amount {
		return ErrNoPrestigePoints
	}
	m := &e.st.Prestige.Multipliers
	switch target {
	case "productionSpeed":
		m.ProductionSpeed += e.bal.ProductionSpeedPerPoint * float64(amount)
	case "clickValue":
		m.ClickValue += e.bal.ClickValuePerPoint * float64(amount)
	case "buildingCost":
		m.BuildingCost *= math.Pow(1-e.bal.BuildingCostPerPoint, float64(amount))
		if m.BuildingCost < e.bal.BuildingCostFloor {
			m.BuildingCost = e.bal.BuildingCostFloor
		}
	case "researchSpeed":
		m.ResearchSpeed += e.bal.ResearchSpeedPerPoint * float64(amount)
	default:
		return ErrUnknownTarget
	}
	e.st.Prestige.AvailablePoints -= amount
	return nil
}

// TradeResult reports a completed conversion.
type TradeResult struct {
	From       colony.Kind `json:"from"`
	To         colony.Kind `json:"to"`
	FromAmount float64     `json:"fromAmount"`
	ToAmount   float64     `json:"toAmount"`
}

// Trade sells fromAmount of from at the current market rate.
func (e *Engine) Trade(from, to colony.Kind, fromAmount float64) (TradeResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	toAmount := e.mkt.Quote(e.st, from, to, fromAmount)
	return e.trade(from, to, fromAmount, toAmount)
}

// TradeResources performs a conversion at an explicit exchange, used when
// the caller already holds a quote.
func (e *Engine) TradeResources(from, to colony.Kind, fromAmount, toAmount float64) (TradeResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trade(from, to, fromAmount, toAmount)
}

func (e *Engine) trade(from, to colony.Kind, fromAmount, toAmount float64) (TradeResult, error) {
	if !market.Tradable(from) || !market.Tradable(to) || from == to {
		return TradeResult{}, ErrNotTradable
	}
	if fromAmount <= 0 || toAmount <= 0 {
		return TradeResult{}, ErrInvalidAmount
	}
	if e.st.Resources[from] < fromAmount {
		return TradeResult{}, ErrInsufficient
	}

	e.st.Resources[from] -= fromAmount
	e.st.Resources.Add(to, toAmount)

	if e.st.Stats.ResourcesTraded == nil {
		e.st.Stats.ResourcesTraded = make(map[colony.Kind]float64)
	}
	e.st.Stats.ResourcesTraded[from] += fromAmount
	e.record(telemetry.EventTradeExecuted, map[string]any{
		"from": string(from), "to": string(to), "amount": fromAmount,
	})

	return TradeResult{From: from, To: to, FromAmount: fromAmount, ToAmount: toAmount}, nil
}

// SetGameSpeed adjusts the simulation speed multiplier.
func (e *Engine) SetGameSpeed(speed float64) error {
	if speed <= 0 || speed > 10 {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.Settings.GameSpeed = speed
	return nil
}

// ToggleNotifications flips the notification setting and returns the new
// value.
func (e *Engine) ToggleNotifications() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.Settings.Notifications = !e.st.Settings.Notifications
	return e.st.Settings.Notifications
}

// SetAutoSaveInterval adjusts how often the loop persists, in seconds.
func (e *Engine) SetAutoSaveInterval(seconds float64) error {
	if seconds < 5 {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.Settings.AutoSaveInterval = seconds
	return nil
}

// MarkSaved records a persistence pass and emits the save notification.
func (e *Engine) MarkSaved(manual bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.Settings.LastSave = e.clock.Now()
	if manual {
		e.notify(notify.Notification{Title: "Manual Save", Body: "Game saved", Severity: notify.Success})
	} else {
		e.notify(notify.Notification{Title: "Auto-Save", Body: "Game saved", Severity: notify.Info})
	}
}

// AdvanceTutorial completes the current step and moves to the next.
func (e *Engine) AdvanceTutorial() {
	e.mu.Lock()
	defer e.mu.Unlock()
	tut := &e.st.Tutorial
	if tut.Completed {
		return
	}
	if tut.Step < len(tut.Steps) {
		tut.Steps[tut.Step].Completed = true
	}
	tut.Step++
	if tut.Step >= len(tut.Steps) {
		tut.Completed = true
	}
}

// ResetTutorial restarts the walkthrough from the first step.
func (e *Engine) ResetTutorial() {
	e.mu.Lock()
	defer e.mu.Unlock()
	tut := &e.st.Tutorial
	tut.Step = 0
	tut.Completed = false
	for i := range tut.Steps {
		tut.Steps[i].Completed = false
	}
}

// completeTutorialStep marks stepID done if it is the current step. Player
// actions drive the walkthrough forward without an explicit advance call.
func (e *Engine) completeTutorialStep(stepID string) {
	tut := &e.st.Tutorial
	if tut.Completed || tut.Step >= len(tut.Steps) {
		return
	}
	if tut.Steps[tut.Step].ID != stepID {
		return
	}
	tut.Steps[tut.Step].Completed = true
	tut.Step++
	if tut.Step >= len(tut.Steps) {
		tut.Completed = true
	}
}

// Reset discards everything, prestige record included.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st = colony.NewState(e.clock.Now())
	e.logf("game reset to initial state")
}

// Load replaces the live state with a persisted snapshot. Sections missing
// from the snapshot keep their template values. Both time anchors are reset
// to now, so the gap since the save is not credited as production.
func (e *Engine) Load(snapshot *colony.State) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	fresh := colony.NewState(now)
	if snapshot == nil {
		e.st = fresh
		return
	}

	merged := snapshot.Clone()
	if len(merged.Resources) == 0 {
		merged.Resources = fresh.Resources
	}
	if len(merged.Buildings) == 0 {
		merged.Buildings = fresh.Buildings
	}
	if len(merged.Upgrades) == 0 {
		merged.Upgrades = fresh.Upgrades
	}
	if len(merged.Tech) == 0 {
		merged.Tech = fresh.Tech
	}
	if len(merged.Achievements) == 0 {
		merged.Achievements = fresh.Achievements
	}
	if merged.Tutorial.Steps == nil {
		merged.Tutorial = fresh.Tutorial
	}
	if merged.Settings.GameSpeed == 0 {
		merged.Settings.GameSpeed = fresh.Settings.GameSpeed
	}
	if merged.Settings.AutoSaveInterval == 0 {
		merged.Settings.AutoSaveInterval = fresh.Settings.AutoSaveInterval
	}
	if merged.Prestige.Multipliers.ProductionSpeed == 0 {
		merged.Prestige.Multipliers = fresh.Prestige.Multipliers
	}
	if merged.Version == "" {
		merged.Version = colony.Version
	}

	merged.Stats.LastUpdate = now
	merged.Settings.LastSave = now

	techtree.Refresh(merged)
	e.st = merged
	e.logf("loaded save: %d buildings constructed, colony age %.0fs",
		merged.Stats.BuildingsConstructed, merged.Stats.ColonyAge)
}

// Tick reconciles the state from Stats.LastUpdate to now. One call handles
// both a 100ms heartbeat and an hours-long offline gap; production is a
// single linear projection of the rates in effect at tick time.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	elapsed := now.Sub(e.st.Stats.LastUpdate).Seconds()
	if elapsed <= 0 {
		// Clock went backwards or no time passed. Re-anchor and wait.
		e.st.Stats.LastUpdate = now
		return
	}
	effective := elapsed * e.gameSpeed()

	e.st.Stats.ColonyAge += elapsed

	rates := economy.ProductionRates(e.st)
	for k, rate := range rates {
		if rate != 0 {
			e.st.Resources.Add(k, rate*effective)
		}
	}

	e.tickPopulation(elapsed, effective)
	e.tickEvents(now, elapsed)
	e.checkAchievements()

	e.st.Stats.LastUpdate = now
}

func (e *Engine) gameSpeed() float64 {
	if s := e.st.Settings.GameSpeed; s > 0 {
		return s
	}
	return 1
}

// tickPopulation grows population toward the habitat cap. Food and water
// are consumed only while the colony is actually growing and both stocks
// are positive; consumption runs on wall-clock seconds, untouched by the
// game speed setting.
func (e *Engine) tickPopulation(elapsed, effective float64) {
	growth := economy.PopulationGrowth(e.bal, e.st)
	if growth > 0 {
		if e.st.Resources[colony.Food] > 0 && e.st.Resources[colony.Water] > 0 {
			need := e.st.Resources[colony.Population] * e.bal.ConsumptionPerCapita * elapsed
			e.st.Resources[colony.Food] -= math.Min(need, e.st.Resources[colony.Food])
			e.st.Resources[colony.Water] -= math.Min(need, e.st.Resources[colony.Water])
		}
		e.st.Resources.Add(colony.Population, growth*effective)
	}

	if habitat := e.st.Buildings["habitat"]; habitat != nil {
		cap := float64(habitat.Count * e.bal.PopulationPerHabitat)
		if e.st.Resources[colony.Population] > cap {
			e.st.Resources[colony.Population] = cap
		}
	}
}

// tickEvents expires the active event or, when idle and off cooldown, rolls
// for a spawn. The roll scales with elapsed wall time so a long offline gap
// gets one fair chance rather than per-tick spam.
func (e *Engine) tickEvents(now time.Time, elapsed float64) {
	ev := e.st.Events.Active
	if ev != nil {
		if now.Sub(ev.StartTime).Seconds() >= ev.Duration {
			e.finishEvent()
		}
		return
	}

	if e.st.Events.Cooldown > 0 {
		e.st.Events.Cooldown = math.Max(0, e.st.Events.Cooldown-elapsed)
		return
	}

	chance := 1 - math.Pow(1-e.bal.EventSpawnChance, elapsed)
	if e.rng.Float64() < chance {
		spawned := e.gen.Generate(now)
		tmpl := event.ByID(spawned.ID)
		e.beginEvent(spawned, tmpl != nil && tmpl.Setback())
	}
}

func (e *Engine) checkAchievements() {
	for _, key := range achievement.Evaluate(e.st) {
		a := e.st.Achievements[key]
		e.notify(notify.Notification{
			Title:    "Achievement Unlocked!",
			Body:     a.Name + ": " + a.Description,
			Severity: notify.Success,
		})
	}
}

// notify respects the player's notification setting.
func (e *Engine) notify(n notify.Notification) {
	if e.notifier == nil || !e.st.Settings.Notifications {
		return
	}
	e.notifier.Notify(n)
}

func (e *Engine) record(eventType telemetry.EventType, metadata map[string]any) {
	if e.rec != nil {
		e.rec.Record(eventType, metadata)
	}
}

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
