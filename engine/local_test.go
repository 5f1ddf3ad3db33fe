package engine

import (
	"errors"
	"testing"

	"rail/experiments/metrics"
	"rail/game"

	"github.com/stretchr/testify/require"
)

func newInstance(budget int64, turns int, commuters ...game.Commuter) *game.Instance {
	return &game.Instance{N: 50, Budget: budget, Turns: turns, Commuters: commuters}
}

func TestReplayPhases(t *testing.T) {
	t.Run("ready before the first turn", func(t *testing.T) {
		r := NewReplay(newInstance(1000, 3))
		require.Equal(t, Ready, r.Phase())
		require.False(t, r.Phase().Terminal())
		require.Len(t, r.Snapshots(), 1)
		require.Equal(t, 0, r.Snapshots()[0].Turn)
		require.Equal(t, int64(1000), r.Snapshots()[0].Money)
	})

	t.Run("in progress until the turn limit, then exhausted", func(t *testing.T) {
		r := NewReplay(newInstance(1000, 3))
		require.NoError(t, r.Step(game.Wait()))
		require.Equal(t, InProgress, r.Phase())
		require.NoError(t, r.Step(game.Wait()))
		require.Equal(t, InProgress, r.Phase())
		require.NoError(t, r.Step(game.Wait()))
		require.Equal(t, Exhausted, r.Phase())
		require.True(t, r.Phase().Terminal())
		require.Equal(t, 3, r.State().Turn)
		require.NoError(t, r.Err())
	})

	t.Run("an action after exhaustion fails", func(t *testing.T) {
		r := NewReplay(newInstance(1000, 1))
		require.NoError(t, r.Step(game.Wait()))
		err := r.Step(game.Wait())
		require.ErrorIs(t, err, game.ErrTooManyActions)
		require.Equal(t, Failed, r.Phase())

		var ruleErr *game.RuleError
		require.True(t, errors.As(err, &ruleErr))
		require.Equal(t, 1, ruleErr.Turn)
	})

	t.Run("a rule violation fails the run for good", func(t *testing.T) {
		r := NewReplay(newInstance(5050, 10))
		require.NoError(t, r.Step(game.Station(game.Position{Row: 1, Col: 1})))
		err := r.Step(game.Track(game.TrackHorizontal, game.Position{Row: 1, Col: 2}))
		require.ErrorIs(t, err, game.ErrInsufficientFunds)
		require.EqualError(t, r.Err(), err.Error())
		require.Equal(t, Failed, r.Phase())
		require.Equal(t, 1, r.State().Turn, "Failed turn is not consumed")

		again := r.Step(game.Wait())
		require.Equal(t, err, again)
		require.Equal(t, 1, r.State().Turn)
		require.Len(t, r.Snapshots(), 2)
	})
}

func TestReplayInvalidActions(t *testing.T) {
	tests := []struct {
		name   string
		action game.Action
	}{
		{"column past the edge", game.Station(game.Position{Row: 0, Col: 50})},
		{"negative row", game.Track(game.TrackVertical, game.Position{Row: -1, Col: 3})},
		{"row past the edge", game.Track(game.TrackHorizontal, game.Position{Row: 50, Col: 0})},
		{"unknown kind", game.Action{Type: 7, Pos: game.Position{Row: 2, Col: 2}}},
		{"kind below wait", game.Action{Type: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReplay(newInstance(20000, 3))
			require.NoError(t, r.Step(game.Wait()))

			var err error
			require.NotPanics(t, func() { err = r.Step(tt.action) })
			require.ErrorIs(t, err, game.ErrInvalidAction)
			require.Equal(t, Failed, r.Phase())
			require.Equal(t, int64(20000), r.State().Money)
			require.True(t, r.State().Grid.At(game.Position{Row: 1, Col: 0}).Empty())

			var ruleErr *game.RuleError
			require.True(t, errors.As(err, &ruleErr))
			require.Equal(t, 1, ruleErr.Turn)
		})
	}
}

func TestReplaySnapshots(t *testing.T) {
	commuter := game.Commuter{Origin: game.Position{Row: 10, Col: 8}, Destination: game.Position{Row: 10, Col: 14}}
	r := NewReplay(newInstance(11000, 5, commuter))

	first := game.Station(game.Position{Row: 10, Col: 10})
	first.Comment = "west"
	require.NoError(t, r.Step(first))
	require.NoError(t, r.Step(game.Track(game.TrackHorizontal, game.Position{Row: 10, Col: 11})))
	require.NoError(t, r.Step(game.Station(game.Position{Row: 10, Col: 12})))
	require.NoError(t, r.Step(game.Wait()))

	snaps := r.Snapshots()
	require.Len(t, snaps, 5)
	require.Equal(t, "west", snaps[1].Comment)
	require.Equal(t, int64(6000), snaps[1].Money)
	require.Equal(t, int64(5900), snaps[2].Money)
	require.Equal(t, int64(6), snaps[3].Income)
	require.Equal(t, int64(906), snaps[3].Money)
	require.Equal(t, 1, snaps[3].Served)
	require.Equal(t, int64(0), snaps[4].Income, "Income is paid once")
	require.Equal(t, int64(906), snaps[4].Money)
	for i, snap := range snaps {
		require.Equal(t, i, snap.Turn)
	}
	require.True(t, snaps[0].At(game.Position{Row: 10, Col: 10}).Empty())
}

func TestReplayOptions(t *testing.T) {
	t.Run("without snapshots", func(t *testing.T) {
		r := NewReplay(newInstance(1000, 2), WithoutSnapshots())
		require.NoError(t, r.Step(game.Wait()))
		require.Empty(t, r.Snapshots())
	})

	t.Run("custom rules", func(t *testing.T) {
		rules := &game.StandardRules{Station: 10, Track: 1, Radius: 2}
		r := NewReplay(newInstance(10, 2), WithRules(rules))
		require.NoError(t, r.Step(game.Station(game.Position{})))
		require.Equal(t, int64(0), r.State().Money)
	})

	t.Run("collector counts actions", func(t *testing.T) {
		collector := metrics.NewCollector()
		collector.Start()
		r := NewReplay(newInstance(20000, 3), WithCollector(collector))
		require.NoError(t, r.Step(game.Station(game.Position{})))
		require.NoError(t, r.Step(game.Track(game.TrackVertical, game.Position{Row: 1})))
		require.NoError(t, r.Step(game.Wait()))
		m := collector.Complete(r.State().Turn)
		require.Equal(t, 1, m.Stations)
		require.Equal(t, 1, m.Tracks)
		require.Equal(t, 1, m.Waits)
		require.Equal(t, 3, m.Turns)
	})
}
