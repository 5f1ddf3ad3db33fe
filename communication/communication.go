package communication

import (
	"rail/game"
	"rail/gamemaster"
	"rail/generator"
)

// Judge is the boundary offered to visualizers and contest tooling.
type Judge interface {
	Generate(seed uint64, variant string) (string, error)
	Score(input, output string) (gamemaster.Verdict, error)
	Visualize(input, output string, turn int) (gamemaster.Verdict, error)
	MaxTurn(input, output string) (int, error)
}

// JudgeRequest carries an instance and a solution in their text forms.
type JudgeRequest struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Turn   int    `json:"turn,omitempty"`
}

type MaxTurnResponse struct {
	MaxTurn int `json:"max_turn"`
}

// ReplayMessage is one websocket frame of a streamed replay: a snapshot per turn,
// then a final frame carrying the verdict.
type ReplayMessage struct {
	Snapshot *game.Snapshot      `json:"snapshot,omitempty"`
	Verdict  *gamemaster.Verdict `json:"verdict,omitempty"`
}

// LocalJudge serves the boundary in-process.
type LocalJudge struct{}

func (LocalJudge) Generate(seed uint64, variant string) (string, error) {
	return generator.GenerateText(seed, variant), nil
}

func (LocalJudge) Score(input, output string) (gamemaster.Verdict, error) {
	score, err := gamemaster.Score(input, output)
	v := gamemaster.Verdict{Score: score}
	if err != nil {
		v.Error = err.Error()
	}
	return v, nil
}

func (LocalJudge) Visualize(input, output string, turn int) (gamemaster.Verdict, error) {
	return gamemaster.Visualize(input, output, turn), nil
}

func (LocalJudge) MaxTurn(input, output string) (int, error) {
	return gamemaster.MaxTurn(input, output), nil
}
