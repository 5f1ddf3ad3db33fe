package gamemaster

import (
	"errors"
	"strings"
	"testing"

	"rail/game"
	"rail/meta"

	"github.com/stretchr/testify/require"
)

func waits(n int) []game.Action {
	actions := make([]game.Action, n)
	for i := range actions {
		actions[i] = game.Wait()
	}
	return actions
}

func p(r, c int) game.Position {
	return game.Position{Row: r, Col: c}
}

func TestJudge(t *testing.T) {
	commuter := game.Commuter{Origin: p(10, 8), Destination: p(10, 14)}
	inst := &game.Instance{N: 50, Budget: 11000, Turns: 800, Commuters: []game.Commuter{commuter}}

	t.Run("only waits keeps the budget", func(t *testing.T) {
		result := Judge(inst, waits(800))
		require.NoError(t, result.Err)
		require.Equal(t, int64(11000), result.Score)
		require.Equal(t, 800, result.Turn)
		require.Equal(t, 0, result.Served)
	})

	t.Run("two stations joined by a track serve the commuter", func(t *testing.T) {
		actions := append([]game.Action{
			game.Station(p(10, 10)),
			game.Track(game.TrackHorizontal, p(10, 11)),
			game.Station(p(10, 12)),
		}, waits(797)...)
		result := Judge(inst, actions)
		require.NoError(t, result.Err)
		want := int64(11000 - 2*meta.StationCost - meta.TrackCost + commuter.Distance())
		require.Equal(t, want, result.Score)
		require.Equal(t, 1, result.Served)
		require.Equal(t, 2, result.Metric.Stations)
		require.Equal(t, int64(6), result.Metric.Income)
		require.Nil(t, result.Snapshots, "Snapshots are opt-in")
	})

	t.Run("track without money fails with score zero", func(t *testing.T) {
		poor := &game.Instance{N: 50, Budget: 5050, Turns: 800, Commuters: inst.Commuters}
		actions := append([]game.Action{
			game.Station(p(10, 10)),
			game.Track(game.TrackHorizontal, p(10, 11)),
		}, waits(798)...)
		result := Judge(poor, actions)
		require.ErrorIs(t, result.Err, game.ErrInsufficientFunds)
		require.Equal(t, int64(0), result.Score)

		var ruleErr *game.RuleError
		require.True(t, errors.As(result.Err, &ruleErr))
		require.Equal(t, 1, ruleErr.Turn)
	})

	t.Run("station twice is occupied", func(t *testing.T) {
		rich := &game.Instance{N: 50, Budget: 1_000_000, Turns: 3, Commuters: inst.Commuters}
		actions := []game.Action{game.Station(p(0, 0)), game.Station(p(0, 0)), game.Wait()}
		result := Judge(rich, actions)
		require.ErrorIs(t, result.Err, game.ErrCellOccupied)
		require.Equal(t, int64(0), result.Score)
		require.Equal(t, 1, result.Turn)
	})

	t.Run("too few actions", func(t *testing.T) {
		result := Judge(inst, waits(12))
		require.ErrorIs(t, result.Err, game.ErrTooFewActions)
		require.EqualError(t, result.Err, "too few actions: 12 of 800 turns (turn 12)")
		require.Equal(t, int64(0), result.Score)
	})

	t.Run("too many actions", func(t *testing.T) {
		result := Judge(inst, waits(801))
		require.ErrorIs(t, result.Err, game.ErrTooManyActions)
		require.Equal(t, int64(0), result.Score)
		require.Equal(t, 800, result.Turn)
	})

	t.Run("a commuter pays once even as the network grows", func(t *testing.T) {
		actions := append([]game.Action{
			game.Station(p(10, 10)),
			game.Track(game.TrackHorizontal, p(10, 11)),
			game.Station(p(10, 12)),
			game.Track(game.TrackHorizontal, p(10, 13)),
		}, waits(796)...)
		rich := &game.Instance{N: 50, Budget: 20000, Turns: 800, Commuters: inst.Commuters}
		result := NewGameMaster(WithSnapshots()).Judge(rich, actions)
		require.NoError(t, result.Err)
		require.Equal(t, int64(20000-10000-200+6), result.Score)
		require.Len(t, result.Snapshots, 801)
		require.Equal(t, int64(6), result.Snapshots[3].Income)
		require.Equal(t, int64(0), result.Snapshots[4].Income)
	})
}

func TestScore(t *testing.T) {
	input := "50 1 11000 3\n10 8 10 14\n"

	t.Run("scores text", func(t *testing.T) {
		score, err := Score(input, "0 10 10\n1 10 11\n0 10 12\n")
		require.NoError(t, err)
		require.Equal(t, int64(11000-10100+6), score)
	})

	t.Run("parse errors score zero", func(t *testing.T) {
		score, err := Score(input, "0 10 10\n9 1 1\n-1\n")
		require.ErrorIs(t, err, game.ErrParse)
		require.Equal(t, int64(0), score)

		score, err = Score("50 1 11000\n", "-1\n")
		require.ErrorIs(t, err, game.ErrParse)
		require.Equal(t, int64(0), score)
	})

	t.Run("rule errors score zero", func(t *testing.T) {
		score, err := Score(input, "-1\n-1\n")
		require.ErrorIs(t, err, game.ErrTooFewActions)
		require.Equal(t, int64(0), score)
	})
}

func TestVisualize(t *testing.T) {
	input := "50 1 11000 3\n10 8 10 14\n"
	output := "# west\n0 10 10\n1 10 11\n0 10 12\n"

	v := Visualize(input, output, 1)
	require.Empty(t, v.Error)
	require.Equal(t, int64(906), v.Score)
	require.Equal(t, 1, v.Snapshot.Turn)
	require.Equal(t, "west", v.Snapshot.Comment)

	v = Visualize(input, output, 100)
	require.Equal(t, 3, v.Snapshot.Turn)

	v = Visualize(input, "0 10 10\n0 10 10\n-1\n", 3)
	require.Contains(t, v.Error, "occupied")
	require.Equal(t, int64(0), v.Score)
	require.Equal(t, 1, v.Snapshot.Turn)

	v = Visualize(input, "bad\n", 0)
	require.NotEmpty(t, v.Error)
	require.Nil(t, v.Snapshot)
}

func TestMaxTurn(t *testing.T) {
	input := "50 1 11000 3\n10 8 10 14\n"
	require.Equal(t, 2, MaxTurn(input, "-1\n-1\n"))
	require.Equal(t, 3, MaxTurn(input, strings.Repeat("-1\n", 5)))
	require.Equal(t, 0, MaxTurn("garbage", "-1\n"))
}

func TestReplay(t *testing.T) {
	input := "50 1 11000 3\n10 8 10 14\n"
	inst, result, err := Replay(input, strings.Repeat("-1\n", 3))
	require.NoError(t, err)
	require.Equal(t, 1, inst.M())
	require.Len(t, result.Snapshots, 4)
	require.Equal(t, int64(11000), result.Score)

	_, result, err = Replay(input, "x\n")
	require.Error(t, err)
	require.Equal(t, err, result.Err)
	require.Equal(t, int64(0), result.Score)
}
