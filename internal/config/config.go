package config

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/phanxgames/scrollscape"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SCROLLSCAPE_LOGLEVEL=debug or
// SCROLLSCAPE_SCROLL_DAMPING=0.5.
const EnvPrefix = "SCROLLSCAPE"

// Config is the full scene configuration.
type Config struct {
	LogLevel  string                 `mapstructure:"logLevel"`
	Debug     bool                   `mapstructure:"debug"`
	Window    WindowConfig           `mapstructure:"window"`
	Scroll    ScrollConfig           `mapstructure:"scroll"`
	Focus     FocusConfig            `mapstructure:"focus"`
	Landmarks []scrollscape.Landmark `mapstructure:"landmarks"`
	Town      TownConfig             `mapstructure:"town"`
}

// WindowConfig holds host window settings.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	TPS    int    `mapstructure:"tps"`
}

// ScrollConfig holds damped scroll settings.
type ScrollConfig struct {
	Pages   float64 `mapstructure:"pages"`
	Damping float64 `mapstructure:"damping"`
}

// FocusConfig holds focus resolver settings.
type FocusConfig struct {
	Overshoot float64 `mapstructure:"overshoot"`
}

// TownConfig declares the animated entities and landmark markers of the demo
// town.
type TownConfig struct {
	Orbits      []OrbitConfig      `mapstructure:"orbits"`
	Oscillators []OscillatorConfig `mapstructure:"oscillators"`
	Spinners    []SpinConfig       `mapstructure:"spinners"`
	Markers     []MarkerConfig     `mapstructure:"markers"`
}

// OrbitConfig declares an orbiting entity.
type OrbitConfig struct {
	Name         string    `mapstructure:"name"`
	Color        string    `mapstructure:"color"`
	Size         float64   `mapstructure:"size"`
	Base         []float64 `mapstructure:"base"`
	Radius       float64   `mapstructure:"radius"`
	Speed        float64   `mapstructure:"speed"`
	Phase        float64   `mapstructure:"phase"`
	Heading      float64   `mapstructure:"heading"`
	Pitch        float64   `mapstructure:"pitch"`
	BobAmplitude float64   `mapstructure:"bobAmplitude"`
	BobFrequency float64   `mapstructure:"bobFrequency"`
}

// WaveConfig declares a secondary sinusoid.
type WaveConfig struct {
	Base      float64  `mapstructure:"base"`
	Amplitude float64  `mapstructure:"amplitude"`
	Frequency float64  `mapstructure:"frequency"`
	Phase     float64  `mapstructure:"phase"`
	Min       *float64 `mapstructure:"min"`
}

// OscillatorConfig declares a bobbing entity.
type OscillatorConfig struct {
	Name      string      `mapstructure:"name"`
	Color     string      `mapstructure:"color"`
	Size      float64     `mapstructure:"size"`
	Position  []float64   `mapstructure:"position"`
	Amplitude float64     `mapstructure:"amplitude"`
	Frequency float64     `mapstructure:"frequency"`
	Phase     float64     `mapstructure:"phase"`
	Emissive  *WaveConfig `mapstructure:"emissive"`
	Opacity   *WaveConfig `mapstructure:"opacity"`
	Scale     *WaveConfig `mapstructure:"scale"`
}

// SpinConfig declares an integrated-rotation entity.
type SpinConfig struct {
	Name     string    `mapstructure:"name"`
	Color    string    `mapstructure:"color"`
	Size     float64   `mapstructure:"size"`
	Position []float64 `mapstructure:"position"`
	Axis     string    `mapstructure:"axis"`
	Rate     float64   `mapstructure:"rate"`
}

// MarkerConfig places the marker node glowing for a landmark.
type MarkerConfig struct {
	Landmark string    `mapstructure:"landmark"`
	Color    string    `mapstructure:"color"`
	Size     float64   `mapstructure:"size"`
	Position []float64 `mapstructure:"position"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("debug", false)

	v.SetDefault("window.title", "Scrollscape")
	v.SetDefault("window.width", 960)
	v.SetDefault("window.height", 640)
	v.SetDefault("window.tps", 60)

	v.SetDefault("scroll.pages", scrollscape.DefaultScrollPages)
	v.SetDefault("scroll.damping", scrollscape.DefaultScrollDamping)

	v.SetDefault("focus.overshoot", scrollscape.DefaultOvershoot)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration file at path (JSON, YAML or TOML, chosen by
// extension), applies defaults and environment overrides, and validates it.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return decode(v)
}

// Parse reads configuration from data in the given format ("json", "yaml",
// "toml"), applies defaults and environment overrides, and validates it.
func Parse(data []byte, format string) (*Config, error) {
	v := newViper()
	v.SetConfigType(format)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and landmark identity.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid config: window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("invalid config: window.tps %d", c.Window.TPS)
	}
	if c.Scroll.Pages < 1 {
		return fmt.Errorf("invalid config: scroll.pages %v must be >= 1", c.Scroll.Pages)
	}
	if c.Scroll.Damping < 0 {
		return fmt.Errorf("invalid config: scroll.damping %v must be >= 0", c.Scroll.Damping)
	}
	if !(c.Focus.Overshoot >= 1) || math.IsInf(c.Focus.Overshoot, 1) {
		return fmt.Errorf("invalid config: focus.overshoot %v must be >= 1", c.Focus.Overshoot)
	}
	if _, err := c.Registry(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for _, m := range c.Town.Markers {
		found := false
		for _, lm := range c.Landmarks {
			if lm.ID == m.Landmark {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("invalid config: marker for unknown landmark %q", m.Landmark)
		}
	}
	return nil
}

// Registry builds the landmark registry.
func (c *Config) Registry() (*scrollscape.Registry, error) {
	return scrollscape.NewRegistry(c.Landmarks...)
}

// Vec converts a 0-3 element slice to a vector; missing components are zero.
func Vec(v []float64) scrollscape.Vec3 {
	var out scrollscape.Vec3
	if len(v) > 0 {
		out.X = v[0]
	}
	if len(v) > 1 {
		out.Y = v[1]
	}
	if len(v) > 2 {
		out.Z = v[2]
	}
	return out
}

// Wave converts a wave declaration; nil stays nil.
func (w *WaveConfig) Wave() *scrollscape.Wave {
	if w == nil {
		return nil
	}
	out := &scrollscape.Wave{
		Base:      w.Base,
		Amplitude: w.Amplitude,
		Frequency: w.Frequency,
		Phase:     w.Phase,
	}
	if w.Min != nil {
		out.Min = *w.Min
		out.Clamp = true
	}
	return out
}

// Orbit converts the declaration to a motion.
func (o OrbitConfig) Orbit() scrollscape.Orbit {
	return scrollscape.Orbit{
		Base:         Vec(o.Base),
		Radius:       o.Radius,
		AngularSpeed: o.Speed,
		Phase:        o.Phase,
		Heading:      o.Heading,
		Pitch:        o.Pitch,
		BobAmplitude: o.BobAmplitude,
		BobFrequency: o.BobFrequency,
	}
}

// Oscillation converts the declaration to a motion.
func (o OscillatorConfig) Oscillation() scrollscape.Oscillation {
	return scrollscape.Oscillation{
		BaseY:     Vec(o.Position).Y,
		Amplitude: o.Amplitude,
		Frequency: o.Frequency,
		Phase:     o.Phase,
		Emissive:  o.Emissive.Wave(),
		Opacity:   o.Opacity.Wave(),
		Scale:     o.Scale.Wave(),
	}
}

// Spin converts the declaration to a fresh motion with a zero angle.
func (s SpinConfig) Spin() *scrollscape.Spin {
	return scrollscape.NewSpin(scrollscape.ParseAxis(s.Axis), s.Rate)
}
