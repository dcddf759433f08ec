// Package state persists small amounts of per-repository state as key-value
// pairs in .grove-hooks/state.yml. Each worktree has its own state file.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// State is a generic map of key-value pairs.
type State map[string]interface{}

const lastRunKey = "last_run"

// LastRun summarizes the most recent dispatch for this repository.
type LastRun struct {
	At      time.Time `yaml:"at"`
	Files   int       `yaml:"files"`
	Passed  int       `yaml:"passed"`
	Failed  int       `yaml:"failed"`
	Skipped int       `yaml:"skipped"`
}

// stateFilePath returns the path to the state file in the current working
// directory.
func stateFilePath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current directory: %w", err)
	}
	return filepath.Join(cwd, ".grove-hooks", "state.yml"), nil
}

// Load loads the state from the state file.
// Returns an empty state if the file doesn't exist.
func Load() (State, error) {
	path, err := stateFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	if state == nil {
		state = make(State)
	}

	return state, nil
}

// Save saves the state to the state file.
func Save(state State) error {
	path, err := stateFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// Set sets a value in the state.
func Set(key string, value interface{}) error {
	state, err := Load()
	if err != nil {
		return err
	}

	state[key] = value
	return Save(state)
}

// Delete removes a key from the state.
func Delete(key string) error {
	state, err := Load()
	if err != nil {
		return err
	}

	delete(state, key)
	return Save(state)
}

// RecordLastRun stores the summary of a finished dispatch. Failures to
// persist state never fail the run; callers ignore the error at their
// discretion.
func RecordLastRun(lr LastRun) error {
	return Set(lastRunKey, lr)
}

// GetLastRun returns the most recent dispatch summary, if one has been
// recorded.
func GetLastRun() (LastRun, bool, error) {
	st, err := Load()
	if err != nil {
		return LastRun{}, false, err
	}

	raw, ok := st[lastRunKey]
	if !ok {
		return LastRun{}, false, nil
	}

	// Values round-trip through the YAML file as generic maps.
	data, err := yaml.Marshal(raw)
	if err != nil {
		return LastRun{}, false, err
	}
	var lr LastRun
	if err := yaml.Unmarshal(data, &lr); err != nil {
		return LastRun{}, false, err
	}
	return lr, true, nil
}
