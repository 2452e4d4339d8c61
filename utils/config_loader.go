package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ─── Capture config (raw burst datasets) ────────────────────────────────

// CaptureConfig drives the raw-sample capture pipeline: which stroke
// classes can be recorded and how a burst is framed and persisted.
type CaptureConfig struct {
	Capture struct {
		Classes         []string `yaml:"classes"`
		SamplesPerBurst int      `yaml:"samples_per_burst"`
		OutputDir       string   `yaml:"output_dir"`
		ChannelBuffer   int      `yaml:"channel_buffer"`
	} `yaml:"capture"`
}

// ─── Session config (classification dashboard) ──────────────────────────

type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// SessionConfig drives the classification pipeline: the known class set,
// which label means "no stroke", and which classes feed the derived KPIs.
type SessionConfig struct {
	Session struct {
		Classes       []string     `yaml:"classes"`
		RestClass     string       `yaml:"rest_class"`
		RatioPair     []string     `yaml:"ratio_pair"` // exactly two class labels
		ShareClass    string       `yaml:"share_class"`
		ChannelBuffer int          `yaml:"channel_buffer"`
		RefreshMs     int          `yaml:"refresh_interval_ms"`
		Export        ExportConfig `yaml:"export"`
	} `yaml:"session"`
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadCaptureConfig reads and parses capture.yaml, applying defaults for
// anything the file leaves unset.
func LoadCaptureConfig(path string) (*CaptureConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capture config: %w", err)
	}
	var cfg CaptureConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse capture config: %w", err)
	}
	applyCaptureDefaults(&cfg)
	return &cfg, nil
}

// LoadSessionConfig reads and parses session.yaml, applying defaults.
func LoadSessionConfig(path string) (*SessionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session config: %w", err)
	}
	var cfg SessionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse session config: %w", err)
	}
	applySessionDefaults(&cfg)
	return &cfg, nil
}

// DefaultCaptureConfig returns the configuration used when no file is
// given: the padel stroke set plus the rest/noise class.
func DefaultCaptureConfig() *CaptureConfig {
	cfg := &CaptureConfig{}
	applyCaptureDefaults(cfg)
	return cfg
}

// DefaultSessionConfig returns the classifier-side defaults.
func DefaultSessionConfig() *SessionConfig {
	cfg := &SessionConfig{}
	applySessionDefaults(cfg)
	return cfg
}

func applyCaptureDefaults(cfg *CaptureConfig) {
	c := &cfg.Capture
	if len(c.Classes) == 0 {
		c.Classes = []string{"drive", "reves", "smash", "bandeja", "ruido"}
	}
	if c.SamplesPerBurst <= 0 {
		c.SamplesPerBurst = 150 // must match the device sketch
	}
	if c.OutputDir == "" {
		c.OutputDir = "data"
	}
	if c.ChannelBuffer <= 0 {
		c.ChannelBuffer = 16
	}
}

func applySessionDefaults(cfg *SessionConfig) {
	s := &cfg.Session
	if len(s.Classes) == 0 {
		s.Classes = []string{"drive", "reves", "smash", "descanso"}
	}
	if s.RestClass == "" {
		s.RestClass = "descanso"
	}
	if len(s.RatioPair) != 2 {
		s.RatioPair = []string{"drive", "reves"}
	}
	if s.ShareClass == "" {
		s.ShareClass = "smash"
	}
	if s.ChannelBuffer <= 0 {
		s.ChannelBuffer = 64
	}
	if s.RefreshMs <= 0 {
		s.RefreshMs = 500
	}
	if s.Export.Dir == "" {
		s.Export.Dir = "."
	}
	if s.Export.Prefix == "" {
		s.Export.Prefix = "sesion_padel"
	}
}
