package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EditorConfigPath is the path to the editor config file, relative to the process working directory.
const EditorConfigPath = "config/editor.json"

// EditorPrefs holds editor-only preferences (undo depth, snapping, recent files).
// Scene content is separate and handled by the scene package.
type EditorPrefs struct {
	UndoDepth        int      `json:"undo_depth"`
	GridSnap         float32  `json:"grid_snap"`
	AngleSnap        float32  `json:"angle_snap"`
	AutosaveInterval float64  `json:"autosave_interval_sec"`
	TimelineSnapping bool     `json:"timeline_snapping"`
	RecentScenes     []string `json:"recent_scenes,omitempty"`
}

// Default returns default editor preferences (snapping on, autosave every five minutes).
func Default() EditorPrefs {
	return EditorPrefs{
		UndoDepth:        100,
		GridSnap:         0.5,
		AngleSnap:        15,
		AutosaveInterval: 300,
		TimelineSnapping: true,
	}
}

// AddRecentScene prepends path to the recent list, deduplicating and keeping
// at most ten entries.
func (p *EditorPrefs) AddRecentScene(path string) {
	recent := []string{path}
	for _, r := range p.RecentScenes {
		if r != path {
			recent = append(recent, r)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	p.RecentScenes = recent
}

// Load reads editor preferences from config/editor.json. If the file is missing
// or invalid, returns Default() and does not create a file.
func Load() (EditorPrefs, error) {
	return LoadFrom(EditorConfigPath)
}

// LoadFrom reads editor preferences from the given path, falling back to
// Default() when the file is missing or invalid.
func LoadFrom(path string) (EditorPrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	var p EditorPrefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes editor preferences to config/editor.json, creating the config directory if needed.
func Save(p EditorPrefs) error {
	return SaveTo(EditorConfigPath, p)
}

// SaveTo writes editor preferences to the given path.
func SaveTo(path string, p EditorPrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
