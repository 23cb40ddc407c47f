package animation

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// settleThreshold is how close position and velocity must be to rest before a
// spring counts as settled.
const settleThreshold = 0.005

// SpringConfig describes a spring in physical terms.
type SpringConfig struct {
	Mass     float64
	Tension  float64
	Friction float64
}

var (
	DetailSpring = SpringConfig{Mass: 1, Tension: 220, Friction: 25}
	NavSpring    = SpringConfig{Mass: 1, Tension: 200, Friction: 20}
	HoverSpring  = SpringConfig{Mass: 1, Tension: 300, Friction: 25}
)

// AngularFrequency is √(k/m).
func (c SpringConfig) AngularFrequency() float64 {
	return math.Sqrt(c.Tension / c.Mass)
}

// DampingRatio is c / (2√(km)).
func (c SpringConfig) DampingRatio() float64 {
	return c.Friction / (2 * math.Sqrt(c.Tension*c.Mass))
}

type Config struct {
	FPS    int
	Detail SpringConfig
	Nav    SpringConfig
}

func DefaultConfig() Config {
	return Config{FPS: 60, Detail: DetailSpring, Nav: NavSpring}
}

// Spring tracks one animated value moving toward Target.
type Spring struct {
	Position float64
	Velocity float64
	Target   float64

	spring harmonica.Spring
}

func NewSpring(fps int, cfg SpringConfig, initial float64) Spring {
	if fps <= 0 {
		fps = 60
	}
	return Spring{
		Position: initial,
		Target:   initial,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), cfg.AngularFrequency(), cfg.DampingRatio()),
	}
}

func (s *Spring) SetTarget(target float64) {
	s.Target = target
}

// Step advances the spring by one frame, snapping once it comes to rest.
func (s *Spring) Step() {
	s.Position, s.Velocity = s.spring.Update(s.Position, s.Velocity, s.Target)
	if s.Settled() {
		s.Snap()
	}
}

func (s *Spring) Settled() bool {
	return math.Abs(s.Position-s.Target) < settleThreshold && math.Abs(s.Velocity) < settleThreshold
}

// Snap jumps straight to the target and stops.
func (s *Spring) Snap() {
	s.Position = s.Target
	s.Velocity = 0
}
