// Package profile loads per-device engraving profiles.
//
// A profile captures everything that varies between laser benches but not
// between documents: canvas dimensions, the calibration offset measured for
// the device, default text heights, and charset flags. Profiles are TOML
// files authored by bench operators.
package profile

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/etchlab/etchmark/pkg/document"
	"github.com/etchlab/etchmark/pkg/errors"
	"github.com/etchlab/etchmark/pkg/text"
)

// Profile is a device engraving profile.
type Profile struct {
	Canvas      CanvasConfig      `toml:"canvas"`
	Calibration CalibrationConfig `toml:"calibration"`
	Text        TextConfig        `toml:"text"`

	// LegacyLEDCharset accepts the full alphanumeric LED code charset
	// instead of the restricted segment-display set.
	LegacyLEDCharset bool `toml:"legacy_led_charset"`

	// Crosshair engraves a center crosshair alignment mark.
	Crosshair bool `toml:"crosshair"`

	// URLBase prefixes every identifier-URL text.
	URLBase string `toml:"url_base"`
}

// CanvasConfig is the canvas size in millimeters.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// CalibrationConfig is the device calibration offset in millimeters.
type CalibrationConfig struct {
	DX float64 `toml:"dx"`
	DY float64 `toml:"dy"`
}

// TextConfig holds text heights (mm) and LED tracking.
type TextConfig struct {
	LabelHeight float64 `toml:"label_height"`
	URLHeight   float64 `toml:"url_height"`
	LEDHeight   float64 `toml:"led_height"`
	LEDTracking float64 `toml:"led_tracking"`
}

// Default returns the profile for the standard array blank on an
// uncalibrated bench.
func Default() Profile {
	return Profile{
		Canvas: CanvasConfig{
			Width:  document.DefaultCanvas.Width,
			Height: document.DefaultCanvas.Height,
		},
		Text: TextConfig{
			LabelHeight: text.DefaultLabelHeight,
			URLHeight:   text.DefaultURLHeight,
			LEDHeight:   text.DefaultLEDCodeHeight,
			LEDTracking: 1.0,
		},
	}
}

// Load reads a profile from a TOML file. Fields missing from the file fall
// back to their defaults.
func Load(path string) (Profile, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidConfiguration, err,
			"read profile %s", path)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidConfiguration, err,
			"parse profile %s", path)
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate checks the profile against the documented bounds.
func (p Profile) Validate() error {
	for axis, v := range map[string]float64{"width": p.Canvas.Width, "height": p.Canvas.Height} {
		if v < document.MinCanvasDim || v > document.MaxCanvasDim {
			return errors.New(errors.ErrCodeInvalidConfiguration,
				"profile canvas %s %.1fmm outside [%.1f, %.1f]",
				axis, v, document.MinCanvasDim, document.MaxCanvasDim)
		}
	}
	if p.Text.LabelHeight <= 0 || p.Text.URLHeight <= 0 || p.Text.LEDHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"profile text heights must be positive")
	}
	if p.Text.LEDTracking <= 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"profile LED tracking must be positive, got %.4f", p.Text.LEDTracking)
	}
	return nil
}

// DocumentOptions converts the profile into document options.
func (p Profile) DocumentOptions() []document.Option {
	opts := []document.Option{
		document.WithCanvas(document.Canvas{Width: p.Canvas.Width, Height: p.Canvas.Height}),
		document.WithCalibration(p.Calibration.DX, p.Calibration.DY),
		document.WithTextHeights(document.TextHeights{
			Label: p.Text.LabelHeight,
			URL:   p.Text.URLHeight,
			LED:   p.Text.LEDHeight,
		}),
		document.WithLEDTracking(p.Text.LEDTracking),
		document.WithURLBase(p.URLBase),
	}
	if p.LegacyLEDCharset {
		opts = append(opts, document.WithLegacyLEDCharset())
	}
	if p.Crosshair {
		opts = append(opts, document.WithCrosshair())
	}
	return opts
}
