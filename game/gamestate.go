package game

// Snapshot is a read-only copy of the replay state after one turn, for renderers and
// other consumers that run after the replay. Turn 0 is the empty board.
type Snapshot struct {
	Turn    int       `json:"turn"`
	Money   int64     `json:"money"`
	Income  int64     `json:"income"`
	Served  int       `json:"served"`
	Cells   []EdgeSet `json:"cells"`
	Action  *Action   `json:"action,omitempty"`
	Comment string    `json:"comment,omitempty"`
}

// At returns the edge set of p in this snapshot.
func (s *Snapshot) At(p Position) EdgeSet {
	return s.Cells[p.Index()]
}

// Count returns the number of stations and track segments on the board.
func (s *Snapshot) Count() (stations, tracks int) {
	for _, e := range s.Cells {
		switch {
		case e.IsStation():
			stations++
		case !e.Empty():
			tracks++
		}
	}
	return stations, tracks
}

// Copy of the snapshot; the cell slice is not shared.
func (s *Snapshot) Copy() *Snapshot {
	cells := make([]EdgeSet, len(s.Cells))
	copy(cells, s.Cells)
	snap := *s
	snap.Cells = cells
	if s.Action != nil {
		a := *s.Action
		snap.Action = &a
	}
	return &snap
}
