package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/skylicht/editor/handles"
)

// DefaultConfigPath is relative to the process working directory.
const DefaultConfigPath = "config/editor.yaml"

type SnapConfig struct {
	XZ            bool    `yaml:"xz"`
	DistanceXZ    float32 `yaml:"distance_xz"`
	Y             bool    `yaml:"y"`
	DistanceY     float32 `yaml:"distance_y"`
	Rotate        bool    `yaml:"rotate"`
	RotateDegrees float32 `yaml:"rotate_degrees"`
}

// Config holds the persisted editor preferences.
type Config struct {
	Snap          SnapConfig `yaml:"snap"`
	LocalSpace    bool       `yaml:"local_space"`
	AllowAxisFlip bool       `yaml:"allow_axis_flip"`
	Debug         bool       `yaml:"debug"`
	LogPrefix     string     `yaml:"log_prefix"`
}

// DefaultConfig returns snapping off with unit distances, local space on and axis flip on.
func DefaultConfig() Config {
	return Config{
		Snap: SnapConfig{
			DistanceXZ:    1,
			DistanceY:     1,
			RotateDegrees: 15,
		},
		LocalSpace:    true,
		AllowAxisFlip: true,
		LogPrefix:     "editor",
	}
}

// LoadConfig reads a YAML config. A missing file yields DefaultConfig and no error.
// Keys absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML, creating the directory if needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Apply pushes the snap and space settings into h. Non-positive distances are ignored.
func (c Config) Apply(h *handles.Handles) {
	h.SetSnapXZ(c.Snap.XZ)
	h.SetSnapY(c.Snap.Y)
	h.SetSnapRotate(c.Snap.Rotate)
	if c.Snap.DistanceXZ > 0 {
		h.SetSnapDistanceXZ(c.Snap.DistanceXZ)
	}
	if c.Snap.DistanceY > 0 {
		h.SetSnapDistanceY(c.Snap.DistanceY)
	}
	if c.Snap.RotateDegrees > 0 {
		h.SetSnapRotateDeg(c.Snap.RotateDegrees)
	}
	h.SetUseLocalSpace(c.LocalSpace)
	if r := h.Renderer(); r != nil {
		r.SetAllowAxisFlip(c.AllowAxisFlip)
	}
}
