package save

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egodevrjm/resource-colony/internal/colony"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := newStore(t)

	st := colony.NewState(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	st.Resources[colony.Energy] = 123.5
	st.Buildings["solarPanel"].Count = 4
	st.Stats.TotalClicks = 9

	require.NoError(t, s.SaveGame(st))

	loaded, err := s.LoadGame()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 123.5, loaded.Resources[colony.Energy])
	assert.Equal(t, 4, loaded.Buildings["solarPanel"].Count)
	assert.Equal(t, 9, loaded.Stats.TotalClicks)
}

func TestLoadMissingSave(t *testing.T) {
	s := newStore(t)
	loaded, err := s.LoadGame()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadUnreadableSaveDiscarded(t *testing.T) {
	s := newStore(t)
	path := filepath.Join(s.dir, saveFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	loaded, err := s.LoadGame()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "corrupt file should be deleted")
}

func TestLoadCorruptSaveDiscarded(t *testing.T) {
	s := newStore(t)

	st := colony.NewState(time.Now())
	st.Resources[colony.Energy] = 0
	st.Resources[colony.Minerals] = 0
	st.Resources[colony.Food] = 0
	require.NoError(t, s.SaveGame(st))

	loaded, err := s.LoadGame()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	_, statErr := os.Stat(filepath.Join(s.dir, saveFile))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteGame(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.DeleteGame(), "missing save is not an error")

	require.NoError(t, s.SaveGame(colony.NewState(time.Now())))
	require.NoError(t, s.DeleteGame())

	loaded, err := s.LoadGame()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLayoutRoundTrip(t *testing.T) {
	s := newStore(t)

	got, err := s.LoadLayout()
	require.NoError(t, err)
	assert.Nil(t, got)

	raw := json.RawMessage(`{"panels":["resources","buildings"]}`)
	require.NoError(t, s.SaveLayout(raw))

	got, err = s.LoadLayout()
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(got))
}

func TestThemeRoundTrip(t *testing.T) {
	s := newStore(t)

	raw := json.RawMessage(`{"name":"dark"}`)
	require.NoError(t, s.SaveTheme(raw))

	got, err := s.LoadTheme()
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(got))
}
