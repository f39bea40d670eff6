package techtree

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egodevrjm/resource-colony/internal/colony"
)

func TestCanResearchZeroPrereq(t *testing.T) {
	st := colony.NewState(time.Now())
	assert.True(t, CanResearch(st, "basicResearch"), "starting research stock covers the cost")
}

func TestCanResearchUnaffordable(t *testing.T) {
	st := colony.NewState(time.Now())
	st.Resources[colony.Research] = 5
	assert.False(t, CanResearch(st, "basicResearch"))
}

func TestCanResearchPrereqGate(t *testing.T) {
	st := colony.NewState(time.Now())
	st.Resources[colony.Research] = 10000

	assert.False(t, CanResearch(st, "advancedHousing"), "basicResearch not unlocked yet")

	st.Tech["basicResearch"].Unlocked = true
	assert.True(t, CanResearch(st, "advancedHousing"))
}

func TestCanResearchAlreadyUnlocked(t *testing.T) {
	st := colony.NewState(time.Now())
	st.Tech["basicResearch"].Unlocked = true
	assert.False(t, CanResearch(st, "basicResearch"))
}

func TestCanResearchUnknownKey(t *testing.T) {
	st := colony.NewState(time.Now())
	assert.False(t, CanResearch(st, "warpDrive"))
	assert.False(t, CanResearch(nil, "basicResearch"))
}

func TestResolveAndApply(t *testing.T) {
	st := colony.NewState(time.Now())

	set := Resolve(st, "basicResearch", nil)
	require.Equal(t, []string{"researchLab"}, set.Buildings)
	require.Equal(t, []string{"advancedHousing"}, set.Tech)

	st.Tech["basicResearch"].Unlocked = true
	Apply(st, set)

	assert.True(t, st.Buildings["researchLab"].Unlocked)
	assert.True(t, st.Tech["advancedHousing"].Available)
}

func TestApplyHoldsBackUnmetDownstream(t *testing.T) {
	st := colony.NewState(time.Now())

	// manualLabor grants advancedEnergy, whose prerequisite is manualLabor
	// itself; until it is flagged unlocked the downstream stays unavailable.
	set := Resolve(st, "manualLabor", nil)
	Apply(st, set)
	assert.False(t, st.Tech["advancedEnergy"].Available)

	st.Tech["manualLabor"].Unlocked = true
	Apply(st, set)
	assert.True(t, st.Tech["advancedEnergy"].Available)
}

func TestResolveDanglingReference(t *testing.T) {
	st := colony.NewState(time.Now())
	st.Tech["basicResearch"].UnlocksBuildings = []string{"researchLab", "orbitalRing"}

	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	set := Resolve(st, "basicResearch", logger)
	assert.Equal(t, []string{"researchLab"}, set.Buildings)
	assert.Contains(t, buf.String(), "orbitalRing")
}

func TestRefresh(t *testing.T) {
	st := colony.NewState(time.Now())
	st.Tech["basicResearch"].Unlocked = true
	st.Tech["efficientTrading"].Unlocked = true

	Refresh(st)

	assert.True(t, st.Tech["advancedHousing"].Available)
	assert.True(t, st.Tech["advancedTrading"].Available)
	assert.False(t, st.Tech["manualLabor"].Available)
	assert.False(t, st.Tech["basicResearch"].Available, "unlocked tech is never marked available")
}
