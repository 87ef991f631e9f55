package reed

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
)

// Default thresholds.
const (
	defaultDragHysteresis     = 5.0
	defaultScrollThreshold    = 10.0
	defaultZoomThreshold      = 0.1
	defaultRotateThreshold    = 10.0
	defaultSwipeMinDistance   = 40.0
	defaultSwipeMaxDuration   = 300 * time.Millisecond
	defaultInertiaMinVelocity = 200.0
	defaultInertiaDuration    = 600 * time.Millisecond
	defaultWheelScale         = 40.0
)

// Config holds the tunables of a Scene's input pipeline.
type Config struct {
	// DragHysteresis is the distance in pixels the pointer must move from
	// the press position before a drag is detected by default.
	DragHysteresis float64 `env:"DRAG_HYSTERESIS"`

	// Two-point touch gesture thresholds. ZoomThreshold is a ratio of the
	// initial spread; RotateThreshold is in degrees.
	ScrollThreshold float64 `env:"SCROLL_THRESHOLD"`
	ZoomThreshold   float64 `env:"ZOOM_THRESHOLD"`
	RotateThreshold float64 `env:"ROTATE_THRESHOLD"`

	SwipeMinDistance float64       `env:"SWIPE_MIN_DISTANCE"`
	SwipeMaxDuration time.Duration `env:"SWIPE_MAX_DURATION"`

	// InertiaMinVelocity is the release speed in pixels per second below
	// which a touch scroll stops without inertia.
	InertiaMinVelocity float64       `env:"INERTIA_MIN_VELOCITY"`
	InertiaDuration    time.Duration `env:"INERTIA_DURATION"`

	// WheelScale converts backend wheel units to scroll pixels.
	WheelScale float64 `env:"WHEEL_SCALE"`

	// StrictIndirect applies point count validation to indirect touch
	// frames too.
	StrictIndirect bool `env:"STRICT_INDIRECT"`

	// TransferModeOrder is the fallback order used when the proposed
	// transfer mode is not acceptable.
	TransferModeOrder []TransferMode `env:"TRANSFER_MODE_ORDER" envSeparator:","`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DragHysteresis:     defaultDragHysteresis,
		ScrollThreshold:    defaultScrollThreshold,
		ZoomThreshold:      defaultZoomThreshold,
		RotateThreshold:    defaultRotateThreshold,
		SwipeMinDistance:   defaultSwipeMinDistance,
		SwipeMaxDuration:   defaultSwipeMaxDuration,
		InertiaMinVelocity: defaultInertiaMinVelocity,
		InertiaDuration:    defaultInertiaDuration,
		WheelScale:         defaultWheelScale,
		TransferModeOrder:  []TransferMode{TransferMove, TransferCopy, TransferLink},
	}
}

// ConfigFromEnv returns DefaultConfig overlaid with REED_* environment
// variables, e.g. REED_DRAG_HYSTERESIS=8 or
// REED_TRANSFER_MODE_ORDER=copy,move.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "REED_"}); err != nil {
		return DefaultConfig(), fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DragHysteresis < 0 {
		return fmt.Errorf("drag hysteresis must not be negative, got %v", c.DragHysteresis)
	}
	if c.ZoomThreshold < 0 || c.ScrollThreshold < 0 || c.RotateThreshold < 0 {
		return fmt.Errorf("gesture thresholds must not be negative")
	}
	order := normalizeModes(c.TransferModeOrder)
	if len(order) == 0 {
		return fmt.Errorf("transfer mode order must name at least one mode")
	}
	c.TransferModeOrder = order
	return nil
}

// proposedTransferMode maps modifier keys to the mode a mouse drag
// proposes: Ctrl copies, Ctrl+Shift links, anything else moves.
func (c *Config) proposedTransferMode(mods KeyModifiers) TransferMode {
	switch {
	case mods&ModCtrl != 0 && mods&ModShift != 0:
		return TransferLink
	case mods&ModCtrl != 0:
		return TransferCopy
	}
	return TransferMove
}

// SetConfig replaces the scene's configuration. An invalid configuration
// is rejected and the current one kept.
func (s *Scene) SetConfig(cfg Config) error {
	cfg.TransferModeOrder = slices.Clone(cfg.TransferModeOrder)
	if err := cfg.validate(); err != nil {
		return err
	}
	s.config = cfg
	return nil
}

// Config returns a copy of the scene's configuration.
func (s *Scene) Config() Config {
	cfg := s.config
	cfg.TransferModeOrder = slices.Clone(cfg.TransferModeOrder)
	return cfg
}
