package treechart

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultID                 = "d3svg"
	DefaultSize               = 1000.0
	DefaultAspectRatio        = 1.0
	DefaultCoeff              = 1.0
	DefaultTransitionDuration = 750 * time.Millisecond
)

// Config configures a Chart. Zero or invalid fields fall back to their
// defaults.
type Config struct {
	// ID identifies the canvas element (default "d3svg").
	ID string
	// Style is passed through to the canvas element.
	Style string
	// Size is the canvas width in pixels (default 1000). The height is
	// Size * AspectRatio.
	Size        float64
	AspectRatio float64
	// IsSorted orders siblings by case-insensitive name.
	IsSorted bool

	WidthBetweenBranchCoeff float64
	HeightBetweenNodesCoeff float64

	// TransitionDuration is the length of every enter/update/exit
	// animation (default 750ms).
	TransitionDuration time.Duration
	// Ease is the easing of every transition (default cubic in-out).
	Ease ease.TweenFunc

	// State is rendered when RenderChart is called with nil.
	State any

	// Logger receives debug output. Defaults to DefaultLogger.
	Logger Logger
	// Debug logs a summary line for every update.
	Debug bool
}

func (c Config) withDefaults() Config {
	if c.ID == "" {
		c.ID = DefaultID
	}
	if !(c.Size > 0) {
		c.Size = DefaultSize
	}
	if !(c.AspectRatio > 0) {
		c.AspectRatio = DefaultAspectRatio
	}
	if !(c.WidthBetweenBranchCoeff > 0) {
		c.WidthBetweenBranchCoeff = DefaultCoeff
	}
	if !(c.HeightBetweenNodesCoeff > 0) {
		c.HeightBetweenNodesCoeff = DefaultCoeff
	}
	if c.TransitionDuration <= 0 {
		c.TransitionDuration = DefaultTransitionDuration
	}
	if c.Ease == nil {
		c.Ease = DefaultEase
	}
	if c.Logger == nil {
		c.Logger = DefaultLogger{}
	}
	return c
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

// Margin is the space between the canvas edge and the drawing group.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Canvas describes the drawing area a surface mounts.
type Canvas struct {
	ID    string
	Style string

	// FullWidth and FullHeight are the canvas size; Width and Height the
	// area inside the margin.
	FullWidth, FullHeight float64
	Width, Height         float64
	Margin                Margin

	// PreserveAspectRatio is the SVG scaling rule of the canvas.
	PreserveAspectRatio string
}

// Origin returns the canvas position of the drawing group's origin.
func (c Canvas) Origin() Vec2 {
	return Vec2{X: c.Margin.Left, Y: c.Margin.Top}
}

// CanvasFor derives the canvas geometry from a configuration.
func CanvasFor(cfg Config) Canvas {
	cfg = cfg.withDefaults()
	m := Margin{
		Top:    cfg.Size / 100,
		Right:  cfg.Size / 50,
		Bottom: cfg.Size / 100,
		Left:   40,
	}
	fullH := cfg.Size * cfg.AspectRatio
	return Canvas{
		ID:                  cfg.ID,
		Style:               cfg.Style,
		FullWidth:           cfg.Size,
		FullHeight:          fullH,
		Width:               cfg.Size - m.Left - m.Right,
		Height:              fullH - m.Top - m.Bottom,
		Margin:              m,
		PreserveAspectRatio: "xMinYMin slice",
	}
}

// fileConfig is the YAML shape of a config file.
type fileConfig struct {
	ID                      string        `yaml:"id"`
	Style                   string        `yaml:"style"`
	Size                    float64       `yaml:"size"`
	AspectRatio             float64       `yaml:"aspectRatio"`
	IsSorted                bool          `yaml:"isSorted"`
	WidthBetweenBranchCoeff float64       `yaml:"widthBetweenBranchCoeff"`
	HeightBetweenNodesCoeff float64       `yaml:"heightBetweenNodesCoeff"`
	TransitionDuration      time.Duration `yaml:"transitionDuration"`
	Debug                   bool          `yaml:"debug"`
	State                   yaml.Node     `yaml:"state"`
}

// ParseConfig decodes a YAML configuration. transitionDuration accepts Go
// duration strings such as "750ms". A state section, if present, becomes
// Config.State with its key order kept.
func ParseConfig(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	cfg := Config{
		ID:                      fc.ID,
		Style:                   fc.Style,
		Size:                    fc.Size,
		AspectRatio:             fc.AspectRatio,
		IsSorted:                fc.IsSorted,
		WidthBetweenBranchCoeff: fc.WidthBetweenBranchCoeff,
		HeightBetweenNodesCoeff: fc.HeightBetweenNodesCoeff,
		TransitionDuration:      fc.TransitionDuration,
		Debug:                   fc.Debug,
	}
	if fc.State.Kind != 0 {
		state, err := fromYAMLNode(&fc.State)
		if err != nil {
			return Config{}, errors.Wrap(err, "parse config state")
		}
		cfg.State = state
	}
	return cfg.withDefaults(), nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}
