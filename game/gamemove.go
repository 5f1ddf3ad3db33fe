package game

import "fmt"

// Action is one turn of a submitted solution. Comment carries the "#" lines that
// preceded it and never affects scoring.
type Action struct {
	Type    ActionType `json:"type"`
	Pos     Position   `json:"pos"`
	Comment string     `json:"comment,omitempty"`
}

func Wait() Action {
	return Action{Type: WaitAction}
}

func Station(p Position) Action {
	return Action{Type: StationAction, Pos: p}
}

func Track(shape ActionType, p Position) Action {
	return Action{Type: shape, Pos: p}
}

func (a Action) IsWait() bool {
	return a.Type == WaitAction
}

func (a Action) String() string {
	if a.IsWait() {
		return "-1"
	}
	return fmt.Sprintf("%d %d %d", int(a.Type), a.Pos.Row, a.Pos.Col)
}
