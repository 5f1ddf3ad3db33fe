package engine

import "rail/game"

// Phase is the lifecycle of a replay.
type Phase int

const (
	Ready      Phase = iota // no turn applied yet
	InProgress              // 0 < turns consumed < turn limit
	Exhausted               // turn limit reached
	Failed                  // a rule was violated
)

func (p Phase) String() string {
	switch p {
	case Ready:
		return "ready"
	case InProgress:
		return "in-progress"
	case Exhausted:
		return "exhausted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the replay accepts no further actions.
func (p Phase) Terminal() bool {
	return p == Exhausted || p == Failed
}

type Engine interface {
	// Step applies one action as the next turn
	Step(action game.Action) error
	Phase() Phase
	State() *game.State
	Snapshots() []*game.Snapshot
	// Err returns the violation that moved the replay to Failed, if any
	Err() error
}
