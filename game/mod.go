package game

import (
	"fmt"

	"rail/meta"
	"rail/utils"
)

// Position is a cell address on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PositionOf converts a row-major cell id back into a Position.
func PositionOf(id int) Position {
	return Position{Row: id / meta.GridSize, Col: id % meta.GridSize}
}

// Index returns the row-major cell id of p.
func (p Position) Index() int {
	return p.Row*meta.GridSize + p.Col
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < meta.GridSize && p.Col >= 0 && p.Col < meta.GridSize
}

func (p Position) Add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Manhattan returns |a.Row-b.Row| + |a.Col-b.Col|.
func Manhattan(a, b Position) int {
	return utils.Abs(a.Row-b.Row) + utils.Abs(a.Col-b.Col)
}

// NumCells is the number of cells (and union-find elements) on a board.
const NumCells = meta.GridSize * meta.GridSize
