package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the shell configuration: window scale, audio sink and
// key bindings. The emulation core has no configuration of its own.
type Config struct {
	Window WindowConfig `json:"window"`
	Audio  AudioConfig  `json:"audio"`
	Input  KeyMapping   `json:"input"`
}

// WindowConfig contains window options.
type WindowConfig struct {
	Scale int    `json:"scale"` // NES resolution multiplier
	Title string `json:"title"`
}

// AudioConfig selects the speaker backend.
type AudioConfig struct {
	Backend    string `json:"backend"` // "portaudio", "wav", "none"
	SampleRate int    `json:"sample_rate"`
	WavPath    string `json:"wav_path"`
}

// KeyMapping names the keyboard keys bound to the eight pad buttons.
type KeyMapping struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Select string `json:"select"`
	Start  string `json:"start"`
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Scale: 3, Title: "nesgo"},
		Audio:  AudioConfig{Backend: "portaudio", SampleRate: 48000, WavPath: "nesgo.wav"},
		Input: KeyMapping{
			A:      "Z",
			B:      "X",
			Select: "ShiftRight",
			Start:  "Enter",
			Up:     "Up",
			Down:   "Down",
			Left:   "Left",
			Right:  "Right",
		},
	}
}

// LoadConfig reads a JSON config, writing the defaults first when the
// file does not exist yet.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.validate()
	return cfg, nil
}

// Save writes the config as indented JSON.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("config dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// validate clamps nonsensical values back to the defaults.
func (c *Config) validate() {
	if c.Window.Scale <= 0 {
		c.Window.Scale = 3
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 48000
	}
	if c.Window.Title == "" {
		c.Window.Title = "nesgo"
	}
}
