package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle     = "piston_nphysics"
	DefaultWidth     = 640
	DefaultHeight    = 480
	DefaultFPS       = 60
	DefaultGravityY  = 9.81
	DefaultTimeScale = 4.0
	DefaultGroundY   = 440.0
	DefaultCubeSize  = 40.0
	DefaultDragSize  = 50.0
	DefaultFriction  = 0.6
	DefaultBounce    = 0.3
)

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Physics PhysicsConfig `yaml:"physics"`
	Scene   SceneConfig   `yaml:"scene"`
	Palette PaletteConfig `yaml:"palette"`
}

type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	FPS       int    `yaml:"fps"`
	ExitOnEsc bool   `yaml:"exit_on_esc"`
}

type PhysicsConfig struct {
	Gravity Vec2 `yaml:"gravity"`
	// TimeScale multiplies every frame delta before it reaches the solver.
	TimeScale  float64 `yaml:"time_scale"`
	Iterations int     `yaml:"iterations"`
}

type SceneConfig struct {
	GroundY    float64         `yaml:"ground_y"`
	Ground     GroundConfig    `yaml:"ground"`
	Material   MaterialConfig  `yaml:"material"`
	Boundaries []PlaneConfig   `yaml:"boundaries"`
	Stacks     []StackConfig   `yaml:"stacks"`
	Drag       *DragCubeConfig `yaml:"drag,omitempty"`
}

// GroundConfig is the strip drawn over the floor line, starting at GroundY.
type GroundConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type MaterialConfig struct {
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

// PlaneConfig is a static half-space. Normal points into free space.
// When FromGround is set the offset's Y is replaced with the ground line.
type PlaneConfig struct {
	Name       string `yaml:"name"`
	Normal     Vec2   `yaml:"normal"`
	Offset     Vec2   `yaml:"offset"`
	FromGround bool   `yaml:"from_ground,omitempty"`
}

type StackConfig struct {
	X       float64 `yaml:"x"`
	Count   int     `yaml:"count"`
	Size    float64 `yaml:"size"`
	Density float64 `yaml:"density"`
}

type DragCubeConfig struct {
	X        float64 `yaml:"x"`
	Size     float64 `yaml:"size"`
	Density  float64 `yaml:"density"`
	Velocity Vec2    `yaml:"velocity"`
}

type PaletteConfig struct {
	Background string `yaml:"background"`
	Cube       string `yaml:"cube"`
	Ground     string `yaml:"ground"`
}

type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     DefaultTitle,
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			FPS:       DefaultFPS,
			ExitOnEsc: true,
		},
		Physics: PhysicsConfig{
			Gravity:    Vec2{Y: DefaultGravityY},
			TimeScale:  DefaultTimeScale,
			Iterations: 10,
		},
		Scene: SceneConfig{
			GroundY:  DefaultGroundY,
			Ground:   GroundConfig{Width: 1000, Height: 50},
			Material: MaterialConfig{Friction: DefaultFriction, Restitution: DefaultBounce},
			Boundaries: []PlaneConfig{
				{Name: "bottom", Normal: Vec2{Y: -1}, FromGround: true},
				{Name: "top", Normal: Vec2{Y: 1}},
				{Name: "left", Normal: Vec2{X: 1}},
				{Name: "right", Normal: Vec2{X: -1}, Offset: Vec2{X: DefaultWidth}},
			},
			Stacks: []StackConfig{
				{X: 400, Count: 6, Size: DefaultCubeSize, Density: 1},
				{X: 360, Count: 6, Size: DefaultCubeSize, Density: 1},
			},
			Drag: &DragCubeConfig{
				X:        10,
				Size:     DefaultDragSize,
				Density:  2,
				Velocity: Vec2{X: 0.2},
			},
		},
		Palette: PaletteConfig{
			Background: "#ecf0f1",
			Cube:       "#e74c3c",
			Ground:     "#34495e",
		},
	}
}

// Load reads a yaml file over DefaultConfig and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal returns the yaml form of the config.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Physics.TimeScale < 0 {
		return fmt.Errorf("%w: time_scale must not be negative, got %f", ErrInvalidConfig, c.Physics.TimeScale)
	}
	if c.Physics.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Physics.Iterations)
	}
	m := c.Scene.Material
	if m.Friction < 0 || m.Restitution < 0 {
		return fmt.Errorf("%w: material friction %f restitution %f", ErrInvalidConfig, m.Friction, m.Restitution)
	}
	for i, p := range c.Scene.Boundaries {
		if p.Normal.X == 0 && p.Normal.Y == 0 {
			return fmt.Errorf("%w: boundary %d (%s) has a zero normal", ErrInvalidConfig, i, p.Name)
		}
	}
	for i, s := range c.Scene.Stacks {
		if s.Count < 0 || s.Size <= 0 || s.Density <= 0 {
			return fmt.Errorf("%w: stack %d needs count >= 0, size > 0, density > 0", ErrInvalidConfig, i)
		}
	}
	if d := c.Scene.Drag; d != nil && (d.Size <= 0 || d.Density <= 0) {
		return fmt.Errorf("%w: drag cube needs size > 0 and density > 0", ErrInvalidConfig)
	}
	if _, err := c.Palette.Colors(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// CubeCount is the number of dynamic cubes the scene section lays out.
func (s SceneConfig) CubeCount() int {
	n := 0
	for _, st := range s.Stacks {
		n += st.Count
	}
	if s.Drag != nil {
		n++
	}
	return n
}

// Colors holds the parsed palette.
type Colors struct {
	Background colorful.Color
	Cube       colorful.Color
	Ground     colorful.Color
}

func (p PaletteConfig) Colors() (Colors, error) {
	var out Colors
	var err error
	if out.Background, err = colorful.Hex(p.Background); err != nil {
		return Colors{}, fmt.Errorf("palette background %q: %w", p.Background, err)
	}
	if out.Cube, err = colorful.Hex(p.Cube); err != nil {
		return Colors{}, fmt.Errorf("palette cube %q: %w", p.Cube, err)
	}
	if out.Ground, err = colorful.Hex(p.Ground); err != nil {
		return Colors{}, fmt.Errorf("palette ground %q: %w", p.Ground, err)
	}
	return out, nil
}

// MustColors is Colors for palettes that already passed Validate.
func (p PaletteConfig) MustColors() Colors {
	c, err := p.Colors()
	if err != nil {
		panic(err)
	}
	return c
}
