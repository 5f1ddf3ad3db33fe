package gamemaster

import (
	"rail/game"
)

// Verdict is the text-boundary form of a Result.
type Verdict struct {
	Score    int64          `json:"score"`
	Error    string         `json:"error,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
}

func parse(input, output string) (*game.Instance, []game.Action, error) {
	inst, err := game.ParseInstance(input)
	if err != nil {
		return nil, nil, err
	}
	actions, err := game.ParseActions(output)
	if err != nil {
		return inst, nil, err
	}
	return inst, actions, nil
}

// Score judges raw instance and action text. Any parse or rule failure scores 0.
func Score(input, output string) (int64, error) {
	inst, actions, err := parse(input, output)
	if err != nil {
		return 0, err
	}
	result := Judge(inst, actions)
	return result.Score, result.Err
}

// Visualize judges the texts and returns the snapshot after the given turn, clamped
// to the last turn that was applied. The verdict of the whole run is always reported.
func Visualize(input, output string, turn int) Verdict {
	inst, actions, err := parse(input, output)
	if err != nil {
		return Verdict{Error: err.Error()}
	}
	result := NewGameMaster(WithSnapshots()).Judge(inst, actions)
	v := Verdict{Score: result.Score}
	if result.Err != nil {
		v.Error = result.Err.Error()
	}
	turn = max(0, min(turn, len(result.Snapshots)-1))
	v.Snapshot = result.Snapshots[turn]
	return v
}

// MaxTurn returns the last turn a renderer can step to, 0 when the texts do not parse.
func MaxTurn(input, output string) int {
	inst, actions, err := parse(input, output)
	if err != nil {
		return 0
	}
	return min(len(actions), inst.Turns)
}

// Replay judges the texts keeping every snapshot.
func Replay(input, output string) (*game.Instance, Result, error) {
	inst, actions, err := parse(input, output)
	if err != nil {
		return inst, Result{Err: err}, err
	}
	result := NewGameMaster(WithSnapshots()).Judge(inst, actions)
	return inst, result, nil
}
