package generator

import (
	"testing"

	"rail/game"
	"rail/meta"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestGenerateDeterministic(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42} {
		require.Equal(t, GenerateText(seed, "A"), GenerateText(seed, "A"))
		require.Equal(t, GenerateText(seed, "A"), GenerateText(seed, "B"), "variant does not change the instance")
	}
	require.NotEqual(t, GenerateText(0, "A"), GenerateText(1, "A"))
}

func TestGenerateBounds(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		inst := Generate(seed, "A")
		require.NoError(t, inst.Validate())
		require.Equal(t, meta.GridSize, inst.N)
		require.Equal(t, meta.MaxTurns, inst.Turns)
		require.GreaterOrEqual(t, inst.M(), meta.MinCommuters)
		require.LessOrEqual(t, inst.M(), meta.MaxCommuters)
		require.GreaterOrEqual(t, inst.Budget, int64(meta.MinBudget))
		require.LessOrEqual(t, inst.Budget, int64(meta.MaxBudget))

		minDist := meta.GridSize * 2
		for _, c := range inst.Commuters {
			require.GreaterOrEqual(t, c.Distance(), meta.MinCommuteDistance)
			minDist = min(minDist, c.Distance())
		}
		// The cheapest commute is always affordable.
		cheapest := int64(2*meta.StationCost + meta.TrackCost*(minDist-1))
		require.GreaterOrEqual(t, inst.Budget, cheapest)
	}
}

func TestGenerateParses(t *testing.T) {
	text := GenerateText(7, "A")
	inst, err := game.ParseInstance(text)
	require.NoError(t, err)
	require.Equal(t, Generate(7, "A"), inst)
	require.Equal(t, text, inst.String())
}

func TestDrawBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		b := drawBudget(rng, meta.MinCommuteDistance)
		require.GreaterOrEqual(t, b, int64(meta.MinBudget))
		require.LessOrEqual(t, b, int64(meta.MaxBudget))
	}
	for i := 0; i < 50; i++ {
		b := drawBudget(rng, 80)
		require.GreaterOrEqual(t, b, int64(2*meta.StationCost+meta.TrackCost*79))
		require.LessOrEqual(t, b, int64(meta.MaxBudget))
	}
	// Beyond the upper bound the budget collapses to it.
	require.Equal(t, int64(meta.MaxBudget), drawBudget(rng, 2*meta.GridSize+5))
}

func TestMixture(t *testing.T) {
	a := NewMixture(rand.New(rand.NewSource(11)), meta.GridSize)
	b := NewMixture(rand.New(rand.NewSource(11)), meta.GridSize)
	require.Equal(t, a.Len(), b.Len())
	require.GreaterOrEqual(t, a.Len(), MinComponents)
	require.LessOrEqual(t, a.Len(), MaxComponents)
	for i := 0; i < 100; i++ {
		p := a.Sample()
		require.Equal(t, p, b.Sample())
		require.GreaterOrEqual(t, p.Row, 0)
		require.GreaterOrEqual(t, p.Col, 0)
	}
}

func TestCategorical(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	c := NewCategorical([]float64{0, 1, 0})
	for i := 0; i < 100; i++ {
		require.Equal(t, 1, c.Draw(rng))
	}

	counts := make([]int, 2)
	c = NewCategorical([]float64{1, 3})
	for i := 0; i < 4000; i++ {
		counts[c.Draw(rng)]++
	}
	require.InDelta(t, 3.0, float64(counts[1])/float64(counts[0]), 0.5)
}

func TestToCell(t *testing.T) {
	tests := []struct {
		x    float64
		want int
	}{
		{-3.7, 0},
		{-0.4, 0},
		{2.4, 2},
		{2.5, 3},
		{49.6, 50},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, toCell(tt.x), "toCell(%v)", tt.x)
	}
}
