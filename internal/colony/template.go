package colony

import "time"

// Version is bumped when the save format changes shape.
const Version = "1.1.0"

// NewState builds a fresh game from the initial template. Prestige and
// resets call this directly instead of round-tripping through a serializer.
func NewState(now time.Time) *State {
	return &State{
		Version: Version,
		Resources: Ledger{
			Energy:     50,
			Minerals:   50,
			Food:       50,
			Water:      50,
			Research:   20,
			Population: 0,
			Components: 0,
		},
		Buildings:    newBuildings(),
		Upgrades:     newUpgrades(),
		Tech:         newTech(),
		Events:       EventState{History: []ActiveEvent{}},
		Achievements: newAchievements(),
		Stats: Stats{
			LastUpdate: now,
		},
		Settings: Settings{
			GameSpeed:        1,
			Notifications:    true,
			AutoSaveInterval: 30,
			LastSave:         now,
		},
		Prestige: Prestige{
			Multipliers: Multipliers{
				ProductionSpeed: 1,
				ClickValue:      1,
				BuildingCost:    1,
				ResearchSpeed:   1,
			},
		},
		Tutorial: Tutorial{
			Steps: []TutorialStep{
				{ID: "welcome", Text: "Welcome to Resource Colony! Click resources to collect them."},
				{ID: "building", Text: "Great! Now build your first structure to automate resource collection."},
				{ID: "upgrade", Text: "Purchase an upgrade to improve your production efficiency."},
				{ID: "research", Text: "Research new technologies to unlock advanced buildings and upgrades."},
			},
		},
	}
}

func newBuildings() map[string]*Building {
	return map[string]*Building{
		"solarPanel": {
			BaseCost:    Ledger{Energy: 0, Minerals: 10},
			BaseOutput:  Ledger{Energy: 0.2},
			Name:        "Solar Panel",
			Description: "Generates energy from the sun",
			Unlocked:    true,
		},
		"mine": {
			BaseCost:    Ledger{Energy: 10, Minerals: 0},
			BaseOutput:  Ledger{Minerals: 0.2},
			Name:        "Mine",
			Description: "Extracts minerals from the surface",
			Unlocked:    true,
		},
		"farm": {
			BaseCost:    Ledger{Energy: 5, Minerals: 5},
			BaseOutput:  Ledger{Food: 0.2},
			Name:        "Farm",
			Description: "Grows food for your colonists",
			Unlocked:    true,
		},
		"waterExtractor": {
			BaseCost:    Ledger{Energy: 7, Minerals: 3},
			BaseOutput:  Ledger{Water: 0.2},
			Name:        "Water Extractor",
			Description: "Pulls water from the atmosphere",
			Unlocked:    true,
		},
		"researchLab": {
			BaseCost:    Ledger{Energy: 20, Minerals: 30, Food: 10, Water: 10},
			BaseOutput:  Ledger{Research: 0.1},
			Name:        "Research Lab",
			Description: "Generates research points for new technologies",
		},
		"habitat": {
			BaseCost:    Ledger{Energy: 30, Minerals: 50, Food: 20, Water: 20},
			BaseOutput:  Ledger{Population: 0.05},
			Name:        "Habitat",
			Description: "Houses colonists to grow your population",
		},
		"factory": {
			BaseCost:    Ledger{Energy: 50, Minerals: 50, Population: 1},
			BaseOutput:  Ledger{Components: 0.1},
			Name:        "Factory",
			Description: "Produces components for advanced buildings",
		},
		"advancedSolarArray": {
			BaseCost:    Ledger{Energy: 100, Minerals: 100, Components: 10},
			BaseOutput:  Ledger{Energy: 1.0},
			Name:        "Advanced Solar Array",
			Description: "High-efficiency energy generation",
		},
		"deepDrillingSite": {
			BaseCost:    Ledger{Energy: 150, Minerals: 50, Components: 15},
			BaseOutput:  Ledger{Minerals: 1.0},
			Name:        "Deep Drilling Site",
			Description: "Extract minerals from deep underground",
		},
	}
}

func newUpgrades() map[string]*Upgrade {
	return map[string]*Upgrade{
		"energyEfficiency": {
			BaseCost:    Ledger{Energy: 50, Minerals: 50},
			Effect:      1.1,
			Name:        "Energy Efficiency",
			Description: "Improves energy production by 10% per level",
			Unlocked:    true,
		},
		"advancedMining": {
			BaseCost:    Ledger{Energy: 50, Minerals: 50},
			Effect:      1.1,
			Name:        "Advanced Mining",
			Description: "Improves mineral production by 10% per level",
			Unlocked:    true,
		},
		"hydroponics": {
			BaseCost:    Ledger{Energy: 50, Minerals: 50},
			Effect:      1.1,
			Name:        "Hydroponics",
			Description: "Improves food production by 10% per level",
			Unlocked:    true,
		},
		"waterRecycling": {
			BaseCost:    Ledger{Energy: 50, Minerals: 50},
			Effect:      1.1,
			Name:        "Water Recycling",
			Description: "Improves water production by 10% per level",
			Unlocked:    true,
		},
		"clickEfficiency": {
			BaseCost:    Ledger{Research: 10},
			Effect:      1.5,
			Name:        "Click Efficiency",
			Description: "Increases manual collection by 50% per level",
		},
		"researchEfficiency": {
			BaseCost:    Ledger{Research: 20, Energy: 100},
			Effect:      1.2,
			Name:        "Research Efficiency",
			Description: "Improves research output by 20% per level",
		},
		"populationGrowth": {
			BaseCost:    Ledger{Research: 30, Food: 200, Water: 200},
			Effect:      1.2,
			Name:        "Population Growth",
			Description: "Increases population growth by 20% per level",
		},
		"componentProduction": {
			BaseCost:    Ledger{Research: 50, Energy: 300, Minerals: 300},
			Effect:      1.2,
			Name:        "Component Production",
			Description: "Improves component production by 20% per level",
		},
	}
}

func newTech() map[string]*Tech {
	return map[string]*Tech{
		"basicResearch": {
			Cost:             Ledger{Research: 10},
			Name:             "Basic Research",
			Description:      "Unlock research capabilities",
			UnlocksBuildings: []string{"researchLab"},
			UnlocksUpgrades:  []string{},
			UnlocksTech:      []string{"advancedHousing"},
			Requires:         []string{},
		},
		"advancedHousing": {
			Cost:             Ledger{Research: 100},
			Name:             "Advanced Housing",
			Description:      "Develop habitat technology for colonists",
			UnlocksBuildings: []string{"habitat"},
			UnlocksUpgrades:  []string{"clickEfficiency"},
			UnlocksTech:      []string{"manualLabor"},
			Requires:         []string{"basicResearch"},
		},
		"manualLabor": {
			Cost:             Ledger{Research: 200, Population: 5},
			Name:             "Manual Labor",
			Description:      "Train colonists for factory work",
			UnlocksBuildings: []string{"factory"},
			UnlocksUpgrades:  []string{"researchEfficiency", "populationGrowth"},
			UnlocksTech:      []string{"advancedEnergy", "deepDrilling"},
			Requires:         []string{"advancedHousing"},
		},
		"advancedEnergy": {
			Cost:             Ledger{Research: 350, Components: 15},
			Name:             "Advanced Energy",
			Description:      "Develop high-efficiency solar technology",
			UnlocksBuildings: []string{"advancedSolarArray"},
			UnlocksUpgrades:  []string{"componentProduction"},
			UnlocksTech:      []string{},
			Requires:         []string{"manualLabor"},
		},
		"deepDrilling": {
			Cost:             Ledger{Research: 350, Components: 15},
			Name:             "Deep Drilling",
			Description:      "Access deep mineral deposits",
			UnlocksBuildings: []string{"deepDrillingSite"},
			UnlocksUpgrades:  []string{},
			UnlocksTech:      []string{},
			Requires:         []string{"manualLabor"},
		},
		"efficientTrading": {
			Cost:             Ledger{Research: 200, Components: 10},
			Name:             "Efficient Trading",
			Description:      "Improve resource conversion efficiency by 10%",
			UnlocksBuildings: []string{},
			UnlocksUpgrades:  []string{},
			UnlocksTech:      []string{"advancedTrading"},
			Requires:         []string{"basicResearch"},
		},
		"advancedTrading": {
			Cost:             Ledger{Research: 400, Components: 25},
			Name:             "Advanced Trading",
			Description:      "Further improve resource conversion efficiency by 10%",
			UnlocksBuildings: []string{},
			UnlocksUpgrades:  []string{},
			UnlocksTech:      []string{},
			Requires:         []string{"efficientTrading"},
		},
	}
}

func newAchievements() map[string]*Achievement {
	return map[string]*Achievement{
		"firstClick":      {Name: "First Click", Description: "Click on a resource for the first time"},
		"tenClicks":       {Name: "Getting Started", Description: "Click resources 10 times"},
		"hundredClicks":   {Name: "Manual Laborer", Description: "Click resources 100 times"},
		"firstBuilding":   {Name: "Breaking Ground", Description: "Build your first structure"},
		"tenBuildings":    {Name: "Urban Planner", Description: "Build 10 structures"},
		"firstUpgrade":    {Name: "Innovator", Description: "Purchase your first upgrade"},
		"firstTech":       {Name: "Researcher", Description: "Research your first technology"},
		"firstPopulation": {Name: "Welcome Aboard", Description: "Get your first colonist"},
		"tenPopulation":   {Name: "Small Community", Description: "Reach 10 population"},
	}
}
