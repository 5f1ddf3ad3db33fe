package engine

import (
	"rail/experiments/metrics"
	"rail/game"

	"github.com/rs/zerolog/log"
)

type Option func(r *Replay)

func WithRules(rules game.Rules) Option {
	return func(r *Replay) {
		r.rules = rules
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(r *Replay) {
		r.collector = collector
	}
}

// WithoutSnapshots skips the per-turn snapshots, for callers that only need the score.
func WithoutSnapshots() Option {
	return func(r *Replay) {
		r.keepSnapshots = false
	}
}

// Replay applies a solution one turn at a time to the state of a single instance.
type Replay struct {
	state         *game.State
	phase         Phase
	err           error
	rules         game.Rules
	collector     metrics.Collector
	keepSnapshots bool
	snapshots     []*game.Snapshot
}

func NewReplay(inst *game.Instance, options ...Option) *Replay {
	r := &Replay{
		phase:         Ready,
		keepSnapshots: true,
	}
	for _, option := range options {
		option(r)
	}
	if r.rules == nil {
		r.rules = game.NewStandardRules()
	}
	if r.collector == nil {
		r.collector = metrics.NewDummyCollector()
	}
	r.state = game.NewState(inst, r.rules)
	if r.keepSnapshots {
		r.snapshots = append(r.snapshots, r.state.Snapshot(nil))
	}
	return r
}

// Step applies action as the next turn: build (or wait), then serve newly connected
// commuters, then record a snapshot.
func (r *Replay) Step(action game.Action) error {
	switch r.phase {
	case Failed:
		return r.err
	case Exhausted:
		return r.fail(game.ErrTooManyActions)
	}

	s := r.state
	s.Income = 0
	if err := s.Apply(action); err != nil {
		return r.fail(err)
	}
	r.collector.AddAction(action.Type)

	if served := s.Accrue(); len(served) > 0 {
		r.collector.AddServed(len(served), s.Income)
		log.Debug().Msgf("turn %d: served %d commuters for %d", s.Turn, len(served), s.Income)
	}

	s.Turn++
	if r.keepSnapshots {
		r.snapshots = append(r.snapshots, s.Snapshot(&action))
	}
	if s.Turn >= s.Instance.Turns {
		r.phase = Exhausted
	} else {
		r.phase = InProgress
	}
	return nil
}

func (r *Replay) fail(err error) error {
	r.err = &game.RuleError{Turn: r.state.Turn, Err: err}
	r.phase = Failed
	log.Debug().Err(r.err).Msg("replay failed")
	return r.err
}

func (r *Replay) Phase() Phase {
	return r.phase
}

func (r *Replay) State() *game.State {
	return r.state
}

// Snapshots returns one snapshot per consumed turn plus the initial one at index 0.
func (r *Replay) Snapshots() []*game.Snapshot {
	return r.snapshots
}

func (r *Replay) Err() error {
	return r.err
}

var _ Engine = (*Replay)(nil)
