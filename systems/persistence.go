package systems

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

const profileKey = "profile"

// SavedProfile is the client profile stored on disk
type SavedProfile struct {
	Nickname  string `json:"nickname"`
	ServerURL string `json:"serverUrl"`
	Kills     int    `json:"kills"`
	Matches   int    `json:"matches"`
}

// ProfileStore reads and writes the profile through gdata. A nil store, or
// one whose manager failed to open, loads nothing and saves nothing.
type ProfileStore struct {
	m *gdata.Manager
}

// OpenProfileStore initializes the gdata manager for profile storage
func OpenProfileStore(appName string) (*ProfileStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return &ProfileStore{}, fmt.Errorf("open profile storage: %w", err)
	}
	return &ProfileStore{m: m}, nil
}

// Load returns the saved profile, or nil if there is none yet
func (s *ProfileStore) Load() (*SavedProfile, error) {
	if s == nil || s.m == nil {
		return nil, nil
	}

	data, err := s.m.LoadItem(profileKey)
	if err != nil {
		log.Printf("Warning: Could not load profile: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		// No saved profile yet, use defaults
		return nil, nil
	}

	var p SavedProfile
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("Warning: Could not parse saved profile: %v", err)
		return nil, err
	}
	return &p, nil
}

// Save writes the profile to disk
func (s *ProfileStore) Save(p *SavedProfile) error {
	if s == nil || s.m == nil || p == nil {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("Warning: Could not serialize profile: %v", err)
		return err
	}
	if err := s.m.SaveItem(profileKey, data); err != nil {
		log.Printf("Warning: Could not save profile: %v", err)
		return err
	}
	return nil
}
