package capture

import (
	"encoding/json"
	"os"
	"time"
)

// FrameResult is the outcome of rendering and writing one frame.
type FrameResult struct {
	Index   int     `json:"index"`
	Time    float64 `json:"time"`
	Path    string  `json:"path,omitempty"`
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
}

// Manifest describes a capture run. Paths are relative to the output directory.
type Manifest struct {
	RunID     string        `json:"run_id"`
	CreatedAt time.Time     `json:"created_at"`
	Mode      string        `json:"mode"`
	Paused    bool          `json:"paused"`
	FPS       float64       `json:"fps"`
	Start     float64       `json:"start"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Format    string        `json:"format"`
	Frames    []FrameResult `json:"frames"`
}

// Failed counts frames that were not written.
func (m *Manifest) Failed() int {
	n := 0
	for _, f := range m.Frames {
		if !f.Success {
			n++
		}
	}
	return n
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}
