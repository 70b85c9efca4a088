package game

import "fmt"

// NoTarget is the sentinel position meaning "nowhere to go".
var NoTarget = CellPosition{Row: -1, Col: -1}

// CellPosition is the position of a cell in a grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// West returns the position one column to the left.
func (cp CellPosition) West() CellPosition {
	return CellPosition{Row: cp.Row, Col: cp.Col - 1}
}

// East returns the position one column to the right.
func (cp CellPosition) East() CellPosition {
	return CellPosition{Row: cp.Row, Col: cp.Col + 1}
}

// North returns the position one row up.
func (cp CellPosition) North() CellPosition {
	return CellPosition{Row: cp.Row - 1, Col: cp.Col}
}

// South returns the position one row down.
func (cp CellPosition) South() CellPosition {
	return CellPosition{Row: cp.Row + 1, Col: cp.Col}
}

// Neighbors returns the four orthogonal neighbors in west, east, north, south order.
func (cp CellPosition) Neighbors() [4]CellPosition {
	return [4]CellPosition{cp.West(), cp.East(), cp.North(), cp.South()}
}

// Adjacent reports whether cp and other are 4-adjacent.
func (cp CellPosition) Adjacent(other CellPosition) bool {
	return abs(cp.Row-other.Row)+abs(cp.Col-other.Col) == 1
}

// String formats the position as (row,col).
func (cp CellPosition) String() string {
	return fmt.Sprintf("(%d,%d)", cp.Row, cp.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Grid is the maze an explorer walks. It is read-only for the explorer.
type Grid interface {
	// IsOpen reports whether pos can be entered. Positions outside the grid are closed.
	IsOpen(pos CellPosition) bool

	// IsEndPoint reports whether pos is the exit.
	IsEndPoint(pos CellPosition) bool

	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int
}
