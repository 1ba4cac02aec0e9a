package starframe

import (
	"fmt"
	"io"

	"github.com/starframe/starframe/mathf"
	"github.com/starframe/starframe/spatial"
	"gopkg.in/yaml.v3"
)

// Params configures a Physics instance: the solver's tuning knobs plus
// the spatial index's extent and level geometry. Loadable from YAML the
// way gazed/vu's load/shd.go unmarshals tagged config structs, since
// spec.md §6 lists these exact fields as Physics::new's parameters.
type Params struct {
	Gravity    mathf.Vec2 `yaml:"gravity"`
	Substeps   int        `yaml:"substeps"`
	Iterations int        `yaml:"iterations"`

	SleepVelocityEps float64 `yaml:"sleep_velocity_eps"`
	SleepTime        float64 `yaml:"sleep_time"`

	WorldAABB spatial.AABB `yaml:"world_aabb"`

	GridLevels       int     `yaml:"grid_levels"`
	GridBaseCellSize float64 `yaml:"grid_base_cell_size"`
	GridGrowthFactor float64 `yaml:"grid_growth_factor"`

	// Workers bounds how many goroutines Tick fans island solving across.
	// 1 (the default) solves islands sequentially.
	Workers int `yaml:"workers"`
}

// DefaultParams returns the solver's own defaults (see solver.DefaultParams)
// plus a world spanning [-512,512]^2 split across 8 grid levels starting
// at a 1-unit base cell, doubling each level — reasonable defaults for a
// human-scale 2D scene. Sleep thresholds follow spec.md §9's pinned
// defaults (ε_v = ε_ω = 0.01, N = 20 ticks at 60Hz ≈ 1/3s, rounded to a
// friendlier 0.5s since Tick's dt is caller-controlled, not fixed at
// 60Hz).
func DefaultParams() Params {
	return Params{
		Gravity:          mathf.Vec2{0, -9.81},
		Substeps:         8,
		Iterations:       1,
		SleepVelocityEps: 0.01,
		SleepTime:        0.5,
		WorldAABB:        spatial.AABB{Min: mathf.Vec2{-512, -512}, Max: mathf.Vec2{512, 512}},
		GridLevels:       8,
		GridBaseCellSize: 1,
		GridGrowthFactor: 2,
		Workers:          1,
	}
}

// LoadParams decodes Params from YAML, starting from DefaultParams so a
// partial document only overrides the fields it sets.
func LoadParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return Params{}, fmt.Errorf("starframe: decoding params: %w", err)
	}
	return p, nil
}
