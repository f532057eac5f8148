package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-view/engine/projection"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidSettings is returned when a settings document fails validation.
var ErrInvalidSettings = errors.New("camera: invalid settings")

// Settings holds the per-gesture speed and step constants used by a CameraController,
// along with the lens defaults and optional view preset overrides.
// Angles are in radians. Speeds multiply NDC cursor distances; steps are fixed increments.
type Settings struct {
	OrbitSpeed  float64 `toml:"orbit_speed"`
	OrbitStep   float64 `toml:"orbit_step"`
	RollSpeed   float64 `toml:"roll_speed"`
	RollStep    float64 `toml:"roll_step"`
	ScaleIn     float64 `toml:"scale_in"`
	ScaleSpeed  float64 `toml:"scale_speed"`
	ScaleStep   float64 `toml:"scale_step"`
	TrackStep   float64 `toml:"track_step"`
	VerticalFov float64 `toml:"vertical_fov"`
	NearClip    float64 `toml:"near_clip"`
	FarClip     float64 `toml:"far_clip"`

	// Views overrides preset view directions by preset name.
	Views map[string][3]float64 `toml:"views,omitempty"`
}

// settingsDocument is the on-disk layout: camera settings live under a [camera] table.
type settingsDocument struct {
	Camera Settings `toml:"camera"`
}

// DefaultSettings returns the stock controller settings.
//
// Returns:
//   - Settings: the default settings
func DefaultSettings() Settings {
	return Settings{
		OrbitSpeed:  2.0,
		OrbitStep:   5 * math.Pi / 180,
		RollSpeed:   2.0,
		RollStep:    5 * math.Pi / 180,
		ScaleIn:     1,
		ScaleSpeed:  75,
		ScaleStep:   15,
		TrackStep:   20,
		VerticalFov: projection.DefaultVerticalFov,
		NearClip:    projection.DefaultNearClip,
		FarClip:     projection.DefaultFarClip,
	}
}

// ParseSettings decodes a TOML document and overlays its [camera] table on DefaultSettings.
// Keys absent from the document keep their defaults; other tables are ignored.
//
// Parameters:
//   - data: TOML document bytes
//
// Returns:
//   - Settings: the decoded and validated settings
//   - error: a decode error or a wrapped ErrInvalidSettings
func ParseSettings(data []byte) (Settings, error) {
	doc := settingsDocument{Camera: DefaultSettings()}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Settings{}, fmt.Errorf("failed to decode camera settings: %w", err)
	}
	if err := doc.Camera.Validate(); err != nil {
		return Settings{}, err
	}
	return doc.Camera, nil
}

// Marshal encodes the settings as a TOML document with a [camera] table.
//
// Returns:
//   - []byte: the encoded document
//   - error: an encoding error
func (s Settings) Marshal() ([]byte, error) {
	return toml.Marshal(settingsDocument{Camera: s})
}

// Validate reports every problem with the settings at once.
//
// Returns:
//   - error: nil, or an error wrapping ErrInvalidSettings for each problem found
func (s Settings) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidSettings, fmt.Sprintf(format, args...)))
	}

	positives := []struct {
		name  string
		value float64
	}{
		{"orbit_speed", s.OrbitSpeed},
		{"orbit_step", s.OrbitStep},
		{"roll_speed", s.RollSpeed},
		{"roll_step", s.RollStep},
		{"scale_speed", s.ScaleSpeed},
		{"scale_step", s.ScaleStep},
		{"track_step", s.TrackStep},
	}
	for _, p := range positives {
		if !(p.value > 0) || math.IsInf(p.value, 1) {
			invalid("%s must be positive, got %v", p.name, p.value)
		}
	}
	if s.ScaleIn != 1 && s.ScaleIn != -1 {
		invalid("scale_in must be 1 or -1, got %v", s.ScaleIn)
	}
	if !(s.VerticalFov > 0 && s.VerticalFov < math.Pi) {
		invalid("vertical_fov must be in (0, π), got %v", s.VerticalFov)
	}
	if !(s.NearClip > 0 && s.FarClip > s.NearClip) || math.IsInf(s.FarClip, 1) {
		invalid("clipping planes must satisfy 0 < near_clip < far_clip, got %v and %v", s.NearClip, s.FarClip)
	}
	for name, direction := range s.Views {
		if preset, err := ParseViewPreset(name); err != nil || preset.String() != name {
			invalid("unknown view %q", name)
			continue
		}
		if direction == [3]float64{} {
			invalid("view %q direction must be non-zero", name)
		}
	}
	return errors.Join(errs...)
}

// newPerspective builds a perspective projection from the lens defaults.
func (s Settings) newPerspective(aspect float64) (*projection.Perspective, error) {
	return projection.NewPerspective(
		projection.WithAspect(aspect),
		projection.WithNearClip(s.NearClip),
		projection.WithFarClip(s.FarClip),
		projection.WithVerticalFov(s.VerticalFov),
	)
}
