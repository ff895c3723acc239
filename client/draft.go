package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hospital-portal/core/incidents"
)

// DraftStore keeps one unsubmitted incident form on disk.
type DraftStore struct {
	path string
}

func NewDraftStore(path string) *DraftStore {
	return &DraftStore{path: path}
}

// DefaultDraftPath is under the user config dir, falling back to the working directory.
func DefaultDraftPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "hospital-portal", "incident_draft.json")
	}
	return "incident_draft.json"
}

func (d *DraftStore) Path() string {
	return d.path
}

// Save replaces the stored draft atomically.
func (d *DraftStore) Save(in incidents.Input) error {
	buf, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(d.path), 0o700); err != nil {
		return fmt.Errorf("draft dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(d.path), ".draft-*")
	if err != nil {
		return fmt.Errorf("draft temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return fmt.Errorf("write draft: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close draft: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

// Load returns the stored draft; ok is false when there is none.
func (d *DraftStore) Load() (in incidents.Input, ok bool, err error) {
	buf, err := os.ReadFile(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return in, false, nil
	}
	if err != nil {
		return in, false, fmt.Errorf("read draft: %w", err)
	}
	if err := json.Unmarshal(buf, &in); err != nil {
		return in, false, fmt.Errorf("decode draft: %w", err)
	}
	return in, true, nil
}

// Clear removes the draft. A missing draft is not an error.
func (d *DraftStore) Clear() error {
	if err := os.Remove(d.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
