package generator

import (
	"math"

	"rail/game"

	"golang.org/x/exp/rand"
)

// Mixture component counts and spread relative to the grid side.
const (
	MinComponents = 1
	MaxComponents = 5
	MinSigmaRatio = 1.0 / 20
	MaxSigmaRatio = 1.0 / 4
)

// Categorical draws an index with probability proportional to its weight.
type Categorical struct {
	weights []float64
	total   float64
}

func NewCategorical(weights []float64) *Categorical {
	c := &Categorical{weights: weights}
	for _, w := range weights {
		c.total += w
	}
	return c
}

func (c *Categorical) Draw(rng *rand.Rand) int {
	x := rng.Float64() * c.total
	for i, w := range c.weights {
		if x < w {
			return i
		}
		x -= w
	}
	return len(c.weights) - 1
}

type component struct {
	row, col float64
	sigma    float64
}

// Mixture is a weighted mixture of isotropic 2-D Gaussians over an n×n grid.
type Mixture struct {
	rng        *rand.Rand
	components []component
	pick       *Categorical
}

// NewMixture draws the component count, weights, centers and spreads from rng.
func NewMixture(rng *rand.Rand, n int) *Mixture {
	k := MinComponents + rng.Intn(MaxComponents-MinComponents+1)
	m := &Mixture{rng: rng}
	weights := make([]float64, k)
	for i := 0; i < k; i++ {
		weights[i] = 1 - rng.Float64()
		m.components = append(m.components, component{
			row:   uniform(rng, 0, float64(n)),
			col:   uniform(rng, 0, float64(n)),
			sigma: uniform(rng, float64(n)*MinSigmaRatio, float64(n)*MaxSigmaRatio),
		})
	}
	m.pick = NewCategorical(weights)
	return m
}

// Sample picks a component by weight and draws one cell from it. Cells may fall
// beyond the far edges of the grid; callers reject those.
func (m *Mixture) Sample() game.Position {
	c := m.components[m.pick.Draw(m.rng)]
	return game.Position{
		Row: toCell(c.row + c.sigma*m.rng.NormFloat64()),
		Col: toCell(c.col + c.sigma*m.rng.NormFloat64()),
	}
}

func (m *Mixture) Len() int {
	return len(m.components)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// toCell rounds to the nearest cell; negative values saturate at 0.
func toCell(x float64) int {
	v := math.Round(x)
	if v < 0 {
		return 0
	}
	return int(v)
}
