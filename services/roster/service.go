// Package roster keeps user-built fantasy rosters as JSON files on
// disk and resolves their free-form player names against the scraped
// season listing.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Roster is one user's team, player display names keyed by position.
type Roster struct {
	Goalkeepers []string `json:"goalkeepers"`
	Defenders   []string `json:"defenders"`
	Midfielders []string `json:"midfielders"`
	Attackers   []string `json:"attackers"`
}

// Players flattens the roster in position order.
func (r Roster) Players() []string {
	var players []string
	players = append(players, r.Goalkeepers...)
	players = append(players, r.Defenders...)
	players = append(players, r.Midfielders...)
	players = append(players, r.Attackers...)
	return players
}

type Service struct {
	dir string
}

func NewService(dir string) (Service, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return Service{}, err
	}
	return Service{dir: dir}, nil
}

func (s Service) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid roster name %q", name)
	}
	return filepath.Join(s.dir, name+".json"), nil
}

func (s Service) Save(name string, roster Roster) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(roster, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s Service) Load(name string) (Roster, error) {
	path, err := s.path(name)
	if err != nil {
		return Roster{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, err
	}

	var roster Roster
	err = json.Unmarshal(data, &roster)
	if err != nil {
		return Roster{}, fmt.Errorf("roster %q: %w", name, err)
	}
	return roster, nil
}

// List returns the saved roster names, sorted.
func (s Service) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

func (s Service) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}
