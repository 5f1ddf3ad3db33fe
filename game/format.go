package game

import (
	"fmt"
	"strconv"
	"strings"

	"rail/meta"
)

type token struct {
	text string
	line int
}

// tokenReader walks whitespace separated tokens, remembering the line of each.
type tokenReader struct {
	tokens []token
	pos    int
	last   int
}

func newTokenReader(text string) *tokenReader {
	r := &tokenReader{}
	for i, line := range strings.Split(text, "\n") {
		for _, f := range strings.Fields(line) {
			r.tokens = append(r.tokens, token{text: f, line: i + 1})
		}
		r.last = i + 1
	}
	return r
}

// readInt reads the next token as an integer in [lo, hi].
func (r *tokenReader) readInt(lo, hi int64) (int64, error) {
	if r.pos >= len(r.tokens) {
		return 0, &ParseError{Line: r.last, Msg: "Unexpected EOF"}
	}
	t := r.tokens[r.pos]
	r.pos++
	return parseRanged(t.text, t.line, lo, hi)
}

func parseRanged(text string, line int, lo, hi int64) (int64, error) {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, &ParseError{Line: line, Msg: fmt.Sprintf("Parse error: %s", text)}
	}
	if v < lo || v > hi {
		return 0, &ParseError{Line: line, Msg: fmt.Sprintf("Out of range: %d", v)}
	}
	return v, nil
}

func (r *tokenReader) readPosition() (Position, error) {
	row, err := r.readInt(0, meta.GridSize-1)
	if err != nil {
		return Position{}, err
	}
	col, err := r.readInt(0, meta.GridSize-1)
	if err != nil {
		return Position{}, err
	}
	return Position{Row: int(row), Col: int(col)}, nil
}

// ParseInstance reads "n m k t" followed by m lines of "r_src c_src r_dst c_dst".
func ParseInstance(text string) (*Instance, error) {
	r := newTokenReader(text)
	n, err := r.readInt(meta.GridSize, meta.GridSize)
	if err != nil {
		return nil, err
	}
	m, err := r.readInt(1, meta.MaxCommuters)
	if err != nil {
		return nil, err
	}
	k, err := r.readInt(1, meta.MaxParsedBudget)
	if err != nil {
		return nil, err
	}
	t, err := r.readInt(1, meta.MaxTurns)
	if err != nil {
		return nil, err
	}
	inst := &Instance{
		N:         int(n),
		Budget:    k,
		Turns:     int(t),
		Commuters: make([]Commuter, 0, m),
	}
	for i := int64(0); i < m; i++ {
		src, err := r.readPosition()
		if err != nil {
			return nil, err
		}
		dst, err := r.readPosition()
		if err != nil {
			return nil, err
		}
		inst.Commuters = append(inst.Commuters, Commuter{Origin: src, Destination: dst})
	}
	if r.pos < len(r.tokens) {
		t := r.tokens[r.pos]
		return nil, &ParseError{Line: t.line, Msg: fmt.Sprintf("Unexpected token: %s", t.text)}
	}
	return inst, nil
}

func (inst *Instance) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d %d %d\n", inst.N, inst.M(), inst.Budget, inst.Turns)
	for _, c := range inst.Commuters {
		fmt.Fprintf(&sb, "%d %d %d %d\n", c.Origin.Row, c.Origin.Col, c.Destination.Row, c.Destination.Col)
	}
	return sb.String()
}

// ParseActions reads one action per line. Blank lines are skipped and "#" lines are
// collected into the Comment of the next action. A lone bare "#" carries no text, so
// it leaves Comment empty and FormatActions writes nothing back for it.
func ParseActions(text string) ([]Action, error) {
	var (
		actions []Action
		pending []string
	)
	for i, raw := range strings.Split(text, "\n") {
		line := i + 1
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			pending = append(pending, strings.TrimSpace(trimmed[1:]))
			continue
		}
		action, err := parseAction(strings.Fields(trimmed), line)
		if err != nil {
			return nil, err
		}
		action.Comment = strings.Join(pending, "\n")
		pending = nil
		actions = append(actions, action)
	}
	return actions, nil
}

func parseAction(fields []string, line int) (Action, error) {
	kind, err := parseRanged(fields[0], line, int64(WaitAction), int64(TrackRightDown))
	if err != nil {
		return Action{}, err
	}
	t := ActionType(kind)
	want := 3
	if t == WaitAction {
		want = 1
	}
	if len(fields) < want {
		return Action{}, &ParseError{Line: line, Msg: fmt.Sprintf("Missing coordinates for action %d", kind)}
	}
	if len(fields) > want {
		return Action{}, &ParseError{Line: line, Msg: fmt.Sprintf("Unexpected token: %s", fields[want])}
	}
	if t == WaitAction {
		return Wait(), nil
	}
	row, err := parseRanged(fields[1], line, 0, meta.GridSize-1)
	if err != nil {
		return Action{}, err
	}
	col, err := parseRanged(fields[2], line, 0, meta.GridSize-1)
	if err != nil {
		return Action{}, err
	}
	return Action{Type: t, Pos: Position{Row: int(row), Col: int(col)}}, nil
}

// FormatActions is the inverse of ParseActions.
func FormatActions(actions []Action) string {
	var sb strings.Builder
	for _, a := range actions {
		if a.Comment != "" {
			for _, c := range strings.Split(a.Comment, "\n") {
				fmt.Fprintf(&sb, "# %s\n", c)
			}
		}
		sb.WriteString(a.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
