package generator

import (
	"math"

	"rail/game"
	"rail/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Generate builds the instance for seed. The same seed always yields the same instance;
// variant only labels the request.
func Generate(seed uint64, variant string) *game.Instance {
	rng := rand.New(rand.NewSource(seed))
	n := meta.GridSize

	m := int(math.Round(math.Exp(uniform(rng, math.Log(meta.MinCommuters), math.Log(meta.MaxCommuters)))))
	origins := NewMixture(rng, n)
	destinations := NewMixture(rng, n)

	commuters := make([]game.Commuter, 0, m)
	minDist := math.MaxInt
	rejected := 0
	for len(commuters) < m {
		src := origins.Sample()
		dst := destinations.Sample()
		if !src.InBounds() || !dst.InBounds() {
			rejected++
			continue
		}
		d := game.Manhattan(src, dst)
		if d < meta.MinCommuteDistance {
			rejected++
			continue
		}
		minDist = min(minDist, d)
		commuters = append(commuters, game.Commuter{Origin: src, Destination: dst})
	}

	budget := drawBudget(rng, minDist)
	log.Debug().Msgf("generated seed=%d variant=%q m=%d budget=%d components=%d/%d rejected=%d",
		seed, variant, m, budget, origins.Len(), destinations.Len(), rejected)

	return &game.Instance{
		N:         n,
		Budget:    budget,
		Turns:     meta.MaxTurns,
		Commuters: commuters,
	}
}

// drawBudget keeps the cheapest commute (two stations joined by a straight line)
// affordable: the budget is drawn between that cost and the fixed upper bound.
func drawBudget(rng *rand.Rand, minDist int) int64 {
	upper := int64(meta.BudgetPerCell * meta.GridSize)
	serve := int64(2*meta.StationCost+meta.TrackCost*(minDist-1)) - meta.BudgetOffset
	lower := max(int64(meta.MinBudget-meta.BudgetOffset), serve)
	lower = min(lower, upper)
	return lower + rng.Int63n(upper-lower+1) + meta.BudgetOffset
}

// GenerateText returns the instance for seed in its text form.
func GenerateText(seed uint64, variant string) string {
	return Generate(seed, variant).String()
}
