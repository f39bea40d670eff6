// Package save persists the colony to disk as JSON. One save slot, plus
// side files for the player's layout and theme preferences.
package save

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/egodevrjm/resource-colony/internal/colony"
)

const (
	saveFile   = "colony_save.json"
	layoutFile = "layout.json"
	themeFile  = "theme.json"
)

// Store reads and writes the data directory. Methods are safe to call from
// the loop and the API concurrently only because each operates on whole
// files via rename.
type Store struct {
	dir    string
	logger *log.Logger
}

func NewStore(dir string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, logger: logger}, nil
}

// SaveGame writes the snapshot atomically: temp file then rename, so a
// crash mid-write never truncates the previous save.
func (s *Store) SaveGame(st *colony.State) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return s.writeFile(saveFile, b)
}

// LoadGame reads the save slot. A missing file means a fresh colony and
// returns (nil, nil). A corrupt save is discarded and deleted rather than
// surfaced: resources absent, or the three primary stocks all zero, marks
// a snapshot that cannot have come from real play.
func (s *Store) LoadGame() (*colony.State, error) {
	path := filepath.Join(s.dir, saveFile)
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var st colony.State
	if err := json.Unmarshal(b, &st); err != nil {
		s.discard(path, "unreadable save: "+err.Error())
		return nil, nil
	}
	if corrupt(&st) {
		s.discard(path, "corrupt save: empty resource ledger")
		return nil, nil
	}
	return &st, nil
}

// DeleteGame removes the save slot. Missing is not an error.
func (s *Store) DeleteGame() error {
	err := os.Remove(filepath.Join(s.dir, saveFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SaveLayout stores the client's panel arrangement verbatim.
func (s *Store) SaveLayout(raw json.RawMessage) error {
	return s.writeFile(layoutFile, raw)
}

func (s *Store) LoadLayout() (json.RawMessage, error) {
	return s.readRaw(layoutFile)
}

// SaveTheme stores the client's theme selection verbatim.
func (s *Store) SaveTheme(raw json.RawMessage) error {
	return s.writeFile(themeFile, raw)
}

func (s *Store) LoadTheme() (json.RawMessage, error) {
	return s.readRaw(themeFile)
}

func (s *Store) readRaw(name string) (json.RawMessage, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !json.Valid(b) {
		return nil, nil
	}
	return b, nil
}

func (s *Store) writeFile(name string, b []byte) error {
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *Store) discard(path, reason string) {
	if s.logger != nil {
		s.logger.Printf("discarding %s: %s", filepath.Base(path), reason)
	}
	_ = os.Remove(path)
}

func corrupt(st *colony.State) bool {
	if st.Resources == nil {
		return true
	}
	return st.Resources[colony.Energy] == 0 &&
		st.Resources[colony.Minerals] == 0 &&
		st.Resources[colony.Food] == 0
}
