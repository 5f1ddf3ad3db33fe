package gamemaster

import (
	"fmt"

	"rail/engine"
	"rail/experiments/metrics"
	"rail/game"

	"github.com/rs/zerolog/log"
)

// Result is the verdict of one judge run. On failure Score is 0 and Turn is the
// index of the offending turn.
type Result struct {
	Score     int64
	Err       error
	Turn      int
	Served    int
	Snapshots []*game.Snapshot
	Metric    metrics.RunMetric
}

type Option func(gm *GameMaster)

func WithRules(rules game.Rules) Option {
	return func(gm *GameMaster) {
		gm.rules = rules
	}
}

// WithSnapshots keeps one snapshot per turn in the Result.
func WithSnapshots() Option {
	return func(gm *GameMaster) {
		gm.snapshots = true
	}
}

// GameMaster replays solutions against instances and scores them.
type GameMaster struct {
	rules     game.Rules
	snapshots bool
}

func NewGameMaster(options ...Option) *GameMaster {
	gm := &GameMaster{
		rules: game.NewStandardRules(),
	}
	for _, option := range options {
		option(gm)
	}
	return gm
}

// Judge replays actions turn by turn. The solution must consume exactly the turn
// limit; the score is the money left at the end.
func (gm *GameMaster) Judge(inst *game.Instance, actions []game.Action) Result {
	collector := metrics.NewCollector()
	collector.Start()

	options := []engine.Option{engine.WithRules(gm.rules), engine.WithCollector(collector)}
	if !gm.snapshots {
		options = append(options, engine.WithoutSnapshots())
	}
	replay := engine.NewReplay(inst, options...)

	for _, action := range actions {
		if err := replay.Step(action); err != nil {
			break
		}
	}

	state := replay.State()
	err := replay.Err()
	if err == nil && replay.Phase() != engine.Exhausted {
		err = &game.RuleError{
			Turn: state.Turn,
			Err:  fmt.Errorf("%w: %d of %d turns", game.ErrTooFewActions, state.Turn, inst.Turns),
		}
	}

	result := Result{
		Turn:      state.Turn,
		Served:    state.ServedCount(),
		Snapshots: replay.Snapshots(),
		Metric:    collector.Complete(state.Turn),
	}
	if err != nil {
		result.Err = err
		log.Debug().Err(err).Msgf("judge failed at turn %d", state.Turn)
		return result
	}
	result.Score = state.Money
	return result
}

// Judge scores actions against inst with the standard rules.
func Judge(inst *game.Instance, actions []game.Action) Result {
	return NewGameMaster().Judge(inst, actions)
}
