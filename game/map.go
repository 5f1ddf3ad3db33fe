package game

import (
	"fmt"
	"strconv"
)

// Direction is a side of a cell through which it can connect to a neighbour.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

var Directions = []Direction{Left, Up, Right, Down}

var directionDeltas = [4][2]int{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the row and column offset of the neighbour on side d.
func (d Direction) Delta() (int, int) {
	return directionDeltas[d][0], directionDeltas[d][1]
}

func (d Direction) String() string {
	return [...]string{"left", "up", "right", "down"}[d]
}

// EdgeSet is a bitmask of Directions. The zero value is an empty cell.
type EdgeSet uint8

// StationEdges is the edge set of a station: every side is open.
const StationEdges EdgeSet = 1<<Left | 1<<Up | 1<<Right | 1<<Down

func EdgesOf(dirs ...Direction) EdgeSet {
	var e EdgeSet
	for _, d := range dirs {
		e |= 1 << d
	}
	return e
}

func (e EdgeSet) Has(d Direction) bool {
	return e&(1<<d) != 0
}

func (e EdgeSet) Empty() bool {
	return e == 0
}

func (e EdgeSet) IsStation() bool {
	return e == StationEdges
}

// MarshalJSON keeps []EdgeSet encoded as a number array instead of base64.
func (e EdgeSet) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(e))), nil
}

func (e *EdgeSet) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseUint(string(data), 10, 8)
	if err != nil {
		return fmt.Errorf("invalid edge set %s: %w", data, err)
	}
	*e = EdgeSet(v)
	return nil
}

// Grid is the board occupancy together with the connectivity it induces.
type Grid struct {
	Cells []EdgeSet
	Conn  *Connectivity
}

func NewGrid() *Grid {
	return &Grid{
		Cells: make([]EdgeSet, NumCells),
		Conn:  NewConnectivity(NumCells),
	}
}

func (g *Grid) At(p Position) EdgeSet {
	return g.Cells[p.Index()]
}

func (g *Grid) IsStation(p Position) bool {
	return g.At(p).IsStation()
}

// Connected reports whether a and b belong to the same component.
func (g *Grid) Connected(a, b Position) bool {
	return g.Conn.Same(a.Index(), b.Index())
}

// canPlace reports whether edges may be laid over the current content of p.
// Tracks need an empty cell; a station may replace a track but not another station.
func (g *Grid) canPlace(p Position, edges EdgeSet) bool {
	current := g.At(p)
	if edges.IsStation() {
		return !current.IsStation()
	}
	return current.Empty()
}

// lay records edges at p and unions p with every neighbour exposing the opposite side.
func (g *Grid) lay(p Position, edges EdgeSet) {
	id := p.Index()
	g.Cells[id] = edges
	for _, d := range Directions {
		if !edges.Has(d) {
			continue
		}
		dr, dc := d.Delta()
		q := p.Add(dr, dc)
		if !q.InBounds() {
			continue
		}
		if g.At(q).Has(d.Opposite()) {
			g.Conn.Union(id, q.Index())
		}
	}
}

// CopyCells returns a copy of the occupancy only.
func (g *Grid) CopyCells() []EdgeSet {
	cells := make([]EdgeSet, len(g.Cells))
	copy(cells, g.Cells)
	return cells
}
