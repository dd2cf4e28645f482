package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/inertial.conditioner/internal/filter"
	"github.com/banshee-data/inertial.conditioner/internal/interp"
	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the path to the canonical conditioning defaults file.
const DefaultConfigPath = "config/conditioning.defaults.json"

// FilterNone disables averaging.
const FilterNone = "none"

const maxFileSize = 1 * 1024 * 1024 // 1MB

// ConditioningConfig holds the construction-time parameters of a
// conditioning stream. Omitted fields fall back to the Get* defaults, so
// partial configs are safe.
type ConditioningConfig struct {
	// Frame conversion. Empty keeps the source frame.
	TargetFrame *string `json:"target_frame,omitempty" yaml:"target_frame,omitempty"`

	// Interpolation params
	Interpolation        *string `json:"interpolation,omitempty" yaml:"interpolation,omitempty"`
	CopyIfNotInitialized *bool   `json:"copy_if_not_initialized,omitempty" yaml:"copy_if_not_initialized,omitempty"`

	// Averaging params
	Filter        *string  `json:"filter,omitempty" yaml:"filter,omitempty"`
	TimeConstant  *float64 `json:"time_constant,omitempty" yaml:"time_constant,omitempty"` // seconds
	SeedFromFirst *bool    `json:"seed_from_first,omitempty" yaml:"seed_from_first,omitempty"`

	// Alignment history
	HistoryWindow     *string `json:"history_window,omitempty" yaml:"history_window,omitempty"` // duration string like "2s"
	MaxHistorySamples *int    `json:"max_history_samples,omitempty" yaml:"max_history_samples,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyConditioningConfig returns a ConditioningConfig with all fields nil.
func EmptyConditioningConfig() *ConditioningConfig {
	return &ConditioningConfig{}
}

// LoadConditioningConfig loads a ConditioningConfig from a .json, .yaml or
// .yml file no larger than 1MB, then validates it.
func LoadConditioningConfig(path string) (*ConditioningConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyConditioningConfig()
	if ext == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root. Panics if the file
// cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *ConditioningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadConditioningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *ConditioningConfig) Validate() error {
	if c.TargetFrame != nil && *c.TargetFrame != "" {
		if _, err := measurement.ParseFrame(*c.TargetFrame); err != nil {
			return fmt.Errorf("invalid target_frame: %w", err)
		}
	}

	if c.Interpolation != nil {
		if _, err := interp.ParseMethod(*c.Interpolation); err != nil {
			return fmt.Errorf("invalid interpolation: %w", err)
		}
	}

	if c.Filter != nil && *c.Filter != FilterNone {
		if _, err := filter.ParseKind(*c.Filter); err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
	}

	if c.TimeConstant != nil {
		if *c.TimeConstant < 0 {
			return fmt.Errorf("time_constant must be non-negative, got %f", *c.TimeConstant)
		}
	}

	if c.HistoryWindow != nil && *c.HistoryWindow != "" {
		d, err := time.ParseDuration(*c.HistoryWindow)
		if err != nil {
			return fmt.Errorf("invalid history_window '%s': %w", *c.HistoryWindow, err)
		}
		if d < 0 {
			return fmt.Errorf("history_window must be non-negative, got %s", d)
		}
	}

	if c.MaxHistorySamples != nil {
		if *c.MaxHistorySamples < 1 {
			return fmt.Errorf("max_history_samples must be at least 1, got %d", *c.MaxHistorySamples)
		}
	}

	return nil
}

// GetTargetFrame returns the frame streams convert into, or "" to keep the
// source frame.
func (c *ConditioningConfig) GetTargetFrame() measurement.Frame {
	if c.TargetFrame == nil {
		return measurement.FrameNED
	}
	f, err := measurement.ParseFrame(*c.TargetFrame)
	if err != nil {
		return ""
	}
	return f
}

// GetInterpolation returns the interpolation method or the default.
func (c *ConditioningConfig) GetInterpolation() interp.Method {
	if c.Interpolation == nil {
		return interp.MethodLinear
	}
	m, err := interp.ParseMethod(*c.Interpolation)
	if err != nil {
		return interp.MethodLinear
	}
	return m
}

// GetCopyIfNotInitialized returns the copy_if_not_initialized value or the default.
func (c *ConditioningConfig) GetCopyIfNotInitialized() bool {
	if c.CopyIfNotInitialized == nil {
		return true
	}
	return *c.CopyIfNotInitialized
}

// GetFilter returns the averaging filter name or the default. FilterNone
// disables averaging.
func (c *ConditioningConfig) GetFilter() string {
	if c.Filter == nil {
		return string(filter.KindLowPass)
	}
	return *c.Filter
}

// GetTimeConstant returns the time_constant value in seconds or the default.
func (c *ConditioningConfig) GetTimeConstant() float64 {
	if c.TimeConstant == nil {
		return filter.DefaultTimeConstant
	}
	return *c.TimeConstant
}

// GetSeedFromFirst returns the seed_from_first value or the default.
func (c *ConditioningConfig) GetSeedFromFirst() bool {
	if c.SeedFromFirst == nil {
		return true
	}
	return *c.SeedFromFirst
}

// GetHistoryWindow parses and returns HistoryWindow as a time.Duration.
func (c *ConditioningConfig) GetHistoryWindow() time.Duration {
	if c.HistoryWindow == nil || *c.HistoryWindow == "" {
		return 2 * time.Second
	}
	d, err := time.ParseDuration(*c.HistoryWindow)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// GetMaxHistorySamples returns the max_history_samples value or the default.
func (c *ConditioningConfig) GetMaxHistorySamples() int {
	if c.MaxHistorySamples == nil {
		return 256
	}
	return *c.MaxHistorySamples
}

// NewFilter builds the configured averaging filter, or returns nil when
// averaging is disabled.
func (c *ConditioningConfig) NewFilter() (filter.Averaging, error) {
	name := c.GetFilter()
	if name == FilterNone {
		return nil, nil
	}
	kind, err := filter.ParseKind(name)
	if err != nil {
		return nil, err
	}
	if kind == filter.KindLowPass && c.GetSeedFromFirst() {
		return filter.NewLowPass(c.GetTimeConstant(), filter.WithSeedFromFirst())
	}
	return filter.New(kind, c.GetTimeConstant())
}

// Resolved returns a copy with every field set to its effective value.
func (c *ConditioningConfig) Resolved() *ConditioningConfig {
	return &ConditioningConfig{
		TargetFrame:          ptrString(string(c.GetTargetFrame())),
		Interpolation:        ptrString(string(c.GetInterpolation())),
		CopyIfNotInitialized: ptrBool(c.GetCopyIfNotInitialized()),
		Filter:               ptrString(c.GetFilter()),
		TimeConstant:         ptrFloat64(c.GetTimeConstant()),
		SeedFromFirst:        ptrBool(c.GetSeedFromFirst()),
		HistoryWindow:        ptrString(c.GetHistoryWindow().String()),
		MaxHistorySamples:    ptrInt(c.GetMaxHistorySamples()),
	}
}
