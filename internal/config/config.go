package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/beamline/internal/lattice"
	"github.com/san-kum/beamline/internal/phase"
)

const (
	DefaultParticles = 1000
	DefaultTurns     = 100
	DefaultSpread    = 1e-3
)

// Config describes a tracking run: the beam, the turn loop and the
// ring elements.
type Config struct {
	Beam     BeamConfig      `yaml:"beam"`
	Tracking TrackingConfig  `yaml:"tracking"`
	Ring     []ElementConfig `yaml:"ring"`
}

type BeamConfig struct {
	Particles int     `yaml:"particles"`
	Seed      int64   `yaml:"seed"`
	SpreadX   float64 `yaml:"spread_x"`
	SpreadY   float64 `yaml:"spread_y"`
	SpreadPX  float64 `yaml:"spread_px"`
	SpreadPY  float64 `yaml:"spread_py"`
	Delta     float64 `yaml:"delta"`
}

type TrackingConfig struct {
	Turns   int `yaml:"turns"`
	Workers int `yaml:"workers"`
	Monitor int `yaml:"monitor"` // particle index recorded turn by turn
}

type ElementConfig struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"`
	Length   float64   `yaml:"length"`
	K        float64   `yaml:"k"`     // quadrupole / gradient strength
	H        float64   `yaml:"h"`     // sextupole strength
	Angle    float64   `yaml:"angle"` // bending angle [rad]
	PolynomA []float64 `yaml:"polynom_a"`
	PolynomB []float64 `yaml:"polynom_b"`

	RAperture []float64 `yaml:"r_aperture"`
	EAperture []float64 `yaml:"e_aperture"`

	FringeEntrance int `yaml:"fringe_entrance"`
	FringeExit     int `yaml:"fringe_exit"`
}

func DefaultConfig() *Config {
	return &Config{
		Beam: BeamConfig{
			Particles: DefaultParticles,
			Seed:      1,
			SpreadX:   DefaultSpread,
			SpreadY:   DefaultSpread,
		},
		Tracking: TrackingConfig{
			Turns: DefaultTurns,
		},
		Ring: []ElementConfig{
			{Name: "QF", Type: lattice.KindQuadrupole, Length: 0.5, K: 1.2},
			{Name: "D1", Type: lattice.KindDrift, Length: 1.0},
			{Name: "QD", Type: lattice.KindQuadrupole, Length: 0.5, K: -1.2},
			{Name: "D2", Type: lattice.KindDrift, Length: 1.0},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Ring = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
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

// BuildElements converts the ring section into lattice elements.
func (c *Config) BuildElements() ([]*lattice.Element, error) {
	elements := make([]*lattice.Element, 0, len(c.Ring))
	for _, ec := range c.Ring {
		var el *lattice.Element
		switch ec.Type {
		case lattice.KindDrift:
			el = lattice.NewDrift(ec.Name, ec.Length)
		case lattice.KindQuadrupole:
			el = lattice.NewQuadrupole(ec.Name, ec.Length, ec.K)
		case lattice.KindSextupole:
			el = lattice.NewSextupole(ec.Name, ec.Length, ec.H)
		case lattice.KindDipole:
			el = lattice.NewDipole(ec.Name, ec.Length, ec.Angle, ec.K)
		case lattice.KindMultipole:
			el = lattice.NewMultipole(ec.Name, ec.Length, ec.PolynomA, ec.PolynomB)
		case lattice.KindThinMultipole:
			el = lattice.NewThinMultipole(ec.Name, ec.PolynomA, ec.PolynomB)
		default:
			return nil, fmt.Errorf("config: unknown element type %q", ec.Type)
		}
		if ec.RAperture != nil {
			el.Set("RAperture", ec.RAperture)
		}
		if ec.EAperture != nil {
			el.Set("EAperture", ec.EAperture)
		}
		if ec.FringeEntrance != 0 {
			el.Set("FringeQuadEntrance", ec.FringeEntrance)
		}
		if ec.FringeExit != 0 {
			el.Set("FringeQuadExit", ec.FringeExit)
		}
		elements = append(elements, el)
	}
	return elements, nil
}

// BuildBatch samples the initial particle distribution: gaussian in the
// transverse coordinates, a common momentum deviation, reproducible by
// seed.
func (c *Config) BuildBatch() phase.Batch {
	rng := rand.New(rand.NewSource(c.Beam.Seed))
	b := phase.NewBatch(c.Beam.Particles)
	for i := 0; i < c.Beam.Particles; i++ {
		r := b.At(i)
		r[phase.X] = rng.NormFloat64() * c.Beam.SpreadX
		r[phase.PX] = rng.NormFloat64() * c.Beam.SpreadPX
		r[phase.Y] = rng.NormFloat64() * c.Beam.SpreadY
		r[phase.PY] = rng.NormFloat64() * c.Beam.SpreadPY
		r[phase.Delta] = c.Beam.Delta
	}
	return b
}
