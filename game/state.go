package game

import "fmt"

// State is the mutable replay state of one judge run: money, the income of the
// current turn, turns consumed, the board and which commuters are already served.
type State struct {
	Instance *Instance
	Rules    Rules
	Money    int64
	Income   int64
	Turn     int
	Grid     *Grid

	served      []bool
	servedCount int
	offsets     []Position
}

// NewState initializes the replay state of inst with an empty board.
func NewState(inst *Instance, rules Rules) *State {
	if rules == nil {
		rules = NewStandardRules()
	}
	return &State{
		Instance: inst,
		Rules:    rules,
		Money:    inst.Budget,
		Grid:     NewGrid(),
		served:   make([]bool, inst.M()),
		offsets:  serviceOffsets(rules.ServiceRadius()),
	}
}

// serviceOffsets lists every (dr, dc) with |dr|+|dc| <= radius in increasing tuple order.
func serviceOffsets(radius int) []Position {
	var offsets []Position
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if Manhattan(Position{}, Position{Row: dr, Col: dc}) <= radius {
				offsets = append(offsets, Position{Row: dr, Col: dc})
			}
		}
	}
	return offsets
}

// Apply performs the build of a, or nothing for a wait.
func (s *State) Apply(a Action) error {
	switch {
	case a.IsWait():
		return nil
	case a.Type == StationAction:
		return s.PlaceStation(a.Pos)
	case a.Type.IsTrack():
		return s.PlaceTrack(a.Pos, a.Type)
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidAction, int(a.Type))
	}
}

// PlaceTrack lays a track segment of the given shape on an empty cell.
func (s *State) PlaceTrack(p Position, shape ActionType) error {
	if !shape.IsTrack() {
		return fmt.Errorf("%w: %v is not a track shape", ErrInvalidAction, shape)
	}
	return s.build(p, shape.Edges(), s.Rules.TrackCost())
}

// PlaceStation builds a station on p. A track already on p is upgraded.
func (s *State) PlaceStation(p Position) error {
	return s.build(p, StationEdges, s.Rules.StationCost())
}

func (s *State) build(p Position, edges EdgeSet, cost int64) error {
	if !p.InBounds() {
		return fmt.Errorf("%w: %v is off the board", ErrInvalidAction, p)
	}
	if !s.Grid.canPlace(p, edges) {
		return fmt.Errorf("%w at %v", ErrCellOccupied, p)
	}
	if s.Money < cost {
		return fmt.Errorf("%w for %v: have %d, need %d", ErrInsufficientFunds, p, s.Money, cost)
	}
	s.Money -= cost
	s.Grid.lay(p, edges)
	return nil
}

// Accrue serves every commuter that has become reachable: a station near the origin
// and a station near the destination in the same component. Each newly served
// commuter pays its distance once into Money and Income. It returns their indices.
func (s *State) Accrue() []int {
	var newly []int
	roots := make(map[int]struct{}, len(s.offsets))
	for i, c := range s.Instance.Commuters {
		if s.served[i] {
			continue
		}
		clear(roots)
		s.stationRoots(c.Origin, roots)
		if len(roots) == 0 || !s.reachesAny(c.Destination, roots) {
			continue
		}
		s.served[i] = true
		s.servedCount++
		income := int64(c.Distance())
		s.Money += income
		s.Income += income
		newly = append(newly, i)
	}
	return newly
}

func (s *State) stationRoots(p Position, roots map[int]struct{}) {
	for _, off := range s.offsets {
		q := p.Add(off.Row, off.Col)
		if q.InBounds() && s.Grid.IsStation(q) {
			roots[s.Grid.Conn.Find(q.Index())] = struct{}{}
		}
	}
}

func (s *State) reachesAny(p Position, roots map[int]struct{}) bool {
	for _, off := range s.offsets {
		q := p.Add(off.Row, off.Col)
		if !q.InBounds() || !s.Grid.IsStation(q) {
			continue
		}
		if _, ok := roots[s.Grid.Conn.Find(q.Index())]; ok {
			return true
		}
	}
	return false
}

// Served reports whether commuter i has been served.
func (s *State) Served(i int) bool {
	return s.served[i]
}

func (s *State) ServedCount() int {
	return s.servedCount
}

// Snapshot captures the state after the latest turn; last is the action applied
// on that turn, nil for the initial snapshot.
func (s *State) Snapshot(last *Action) *Snapshot {
	snap := &Snapshot{
		Turn:   s.Turn,
		Money:  s.Money,
		Income: s.Income,
		Served: s.servedCount,
		Cells:  s.Grid.CopyCells(),
	}
	if last != nil {
		a := *last
		snap.Action = &a
		snap.Comment = a.Comment
	}
	return snap
}
