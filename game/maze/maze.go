/*
Package maze provides rectangular block mazes for explorers to walk.

A BlockMaze is a grid of open and closed cells with one start and one end
point. Mazes are either carved at random with Wilson's algorithm over a
lattice of rooms, or parsed from a text layout where '#' is a wall, '.' is
open floor, 'S' is the start and 'E' is the end.

Carved mazes are perfect: every open cell is reachable from every other one
along exactly one path.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-explorer/game"
)

const (
	defaultMaxDimension = 20
)

var (
	// directions lists room deltas in a fixed order so seeded generation is repeatable.
	directions = []struct {
		Name  string
		Delta game.CellPosition
	}{
		{Name: "North", Delta: game.CellPosition{Row: -1, Col: 0}},
		{Name: "South", Delta: game.CellPosition{Row: 1, Col: 0}},
		{Name: "East", Delta: game.CellPosition{Row: 0, Col: 1}},
		{Name: "West", Delta: game.CellPosition{Row: 0, Col: -1}},
	}

	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrInvalidLayout     = errors.New("invalid maze layout")
)

var _ game.Grid = &BlockMaze{}

// BlockMaze is a grid of open and closed cells with a start and an end point.
type BlockMaze struct {
	open  [][]bool          // open[row][col] is true for walkable cells
	start game.CellPosition // where explorers begin
	end   game.CellPosition // the exit
}

type options struct {
	rng          *rand.Rand
	maxDimension int
}

// Option configures maze generation.
type Option func(*options)

// WithSeed makes generation deterministic.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMaxDimension overrides the largest accepted width or height.
func WithMaxDimension(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDimension = n
		}
	}
}

// New carves a maze of width×height rooms and returns it as a block grid of
// (2*height+1) rows and (2*width+1) columns. The start is the top-left room
// and the end is the bottom-right room.
func New(width, height int, opts ...Option) (*BlockMaze, error) {
	o := &options{maxDimension: defaultMaxDimension}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if min(width, height) <= 0 || max(width, height) > o.maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	lattice := newRoomLattice(width, height, o.rng)
	lattice.generate()
	return lattice.blocks(), nil
}

// Parse builds a maze from a text layout. Every row must have the same length
// and the layout must hold exactly one 'S' and one 'E'.
func Parse(rows []string) (*BlockMaze, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidLayout)
	}

	m := &BlockMaze{open: make([][]bool, len(rows))}
	starts, ends := 0, 0
	for r, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrInvalidLayout, r, len(row), len(rows[0]))
		}

		m.open[r] = make([]bool, len(row))
		for c, symbol := range []byte(row) {
			switch symbol {
			case wallSymbol:
			case openSymbol:
				m.open[r][c] = true
			case startSymbol:
				m.open[r][c] = true
				m.start = game.CellPosition{Row: r, Col: c}
				starts++
			case endSymbol:
				m.open[r][c] = true
				m.end = game.CellPosition{Row: r, Col: c}
				ends++
			default:
				return nil, fmt.Errorf("%w: unexpected symbol %q at %d,%d", ErrInvalidLayout, symbol, r, c)
			}
		}
	}

	if starts != 1 || ends != 1 {
		return nil, fmt.Errorf("%w: need one start and one end, got %d and %d", ErrInvalidLayout, starts, ends)
	}
	return m, nil
}

// Rows implements game.Grid.
func (m *BlockMaze) Rows() int {
	return len(m.open)
}

// Cols implements game.Grid.
func (m *BlockMaze) Cols() int {
	if len(m.open) == 0 {
		return 0
	}
	return len(m.open[0])
}

// InBound reports whether pos lies inside the grid.
func (m *BlockMaze) InBound(pos game.CellPosition) bool {
	return pos.Row >= 0 && pos.Row < m.Rows() && pos.Col >= 0 && pos.Col < m.Cols()
}

// IsOpen implements game.Grid.
func (m *BlockMaze) IsOpen(pos game.CellPosition) bool {
	return m.InBound(pos) && m.open[pos.Row][pos.Col]
}

// IsEndPoint implements game.Grid.
func (m *BlockMaze) IsEndPoint(pos game.CellPosition) bool {
	return pos == m.end
}

// Start returns the start position.
func (m *BlockMaze) Start() game.CellPosition {
	return m.start
}

// End returns the exit position.
func (m *BlockMaze) End() game.CellPosition {
	return m.end
}

// Layout returns the maze in the format accepted by Parse.
func (m *BlockMaze) Layout() []string {
	rows := make([]string, 0, m.Rows())
	for r := range m.open {
		var b strings.Builder
		for c, open := range m.open[r] {
			pos := game.CellPosition{Row: r, Col: c}
			switch {
			case pos == m.start:
				b.WriteByte(startSymbol)
			case pos == m.end:
				b.WriteByte(endSymbol)
			case open:
				b.WriteByte(openSymbol)
			default:
				b.WriteByte(wallSymbol)
			}
		}
		rows = append(rows, b.String())
	}
	return rows
}

// String provides a textual representation of the maze.
func (m *BlockMaze) String() string {
	return strings.Join(m.Layout(), "\n") + "\n"
}

// roomLattice is the width×height room grid that Wilson's algorithm carves.
type roomLattice struct {
	Width  int       // Width of the lattice (number of columns)
	Height int       // Height of the lattice (number of rows)
	Grid   [][]*room // 2D grid of rooms
	rng    *rand.Rand
}

func newRoomLattice(width, height int, rng *rand.Rand) *roomLattice {
	grid := make([][]*room, height)
	for i := range grid {
		grid[i] = make([]*room, width)
		for j := range grid[i] {
			grid[i][j] = &room{
				NorthWall: true,
				SouthWall: true,
				EastWall:  true,
				WestWall:  true,
			}
		}
	}

	return &roomLattice{Width: width, Height: height, Grid: grid, rng: rng}
}

// randomCellPosition picks a random room.
func (l *roomLattice) randomCellPosition() game.CellPosition {
	return game.CellPosition{Row: l.rng.Intn(l.Height), Col: l.rng.Intn(l.Width)}
}

// randomUnvisitedCellPosition picks a random room that is not yet part of the maze.
func (l *roomLattice) randomUnvisitedCellPosition(visited map[game.CellPosition]struct{}) game.CellPosition {
	for {
		pos := l.randomCellPosition()
		if _, included := visited[pos]; !included {
			return pos
		}
	}
}

// neighbors finds every in-bound move from pos.
func (l *roomLattice) neighbors(pos game.CellPosition) []move {
	var result []move
	for _, dir := range directions {
		neighbor := game.CellPosition{Row: pos.Row + dir.Delta.Row, Col: pos.Col + dir.Delta.Col}
		if neighbor.Row >= 0 && neighbor.Row < l.Height && neighbor.Col >= 0 && neighbor.Col < l.Width {
			result = append(result, move{From: pos, To: neighbor, Direction: dir.Name})
		}
	}
	return result
}

// openWall removes the wall between two adjacent rooms.
func (l *roomLattice) openWall(mv move) {
	from := l.Grid[mv.From.Row][mv.From.Col]
	to := l.Grid[mv.To.Row][mv.To.Col]
	switch mv.Direction {
	case "North":
		from.NorthWall, to.SouthWall = false, false
	case "South":
		from.SouthWall, to.NorthWall = false, false
	case "East":
		from.EastWall, to.WestWall = false, false
	case "West":
		from.WestWall, to.EastWall = false, false
	}
}

// randomWalk walks from an unvisited room until it hits the maze.
// Only the last exit taken from each room is kept, which erases loops.
func (l *roomLattice) randomWalk(visited map[game.CellPosition]struct{}) map[game.CellPosition]move {
	visits := make(map[game.CellPosition]move)
	cell := l.randomUnvisitedCellPosition(visited)

	for {
		neighbors := l.neighbors(cell)
		next := neighbors[l.rng.Intn(len(neighbors))]
		visits[cell] = next
		if _, included := visited[next.To]; included {
			break
		}
		cell = next.To
	}

	return visits
}

// generate carves a spanning tree over every room.
func (l *roomLattice) generate() {
	visited := map[game.CellPosition]struct{}{
		l.randomCellPosition(): {},
	}

	for len(visited) < l.Width*l.Height {
		for cell, mv := range l.randomWalk(visited) {
			l.openWall(mv)
			visited[cell] = struct{}{}
		}
	}
}

// blocks renders the lattice as a block maze. Room (r,c) becomes block
// (2r+1, 2c+1) and an open wall becomes the block between two rooms.
func (l *roomLattice) blocks() *BlockMaze {
	open := make([][]bool, 2*l.Height+1)
	for i := range open {
		open[i] = make([]bool, 2*l.Width+1)
	}

	for r, row := range l.Grid {
		for c, rm := range row {
			br, bc := 2*r+1, 2*c+1
			open[br][bc] = true
			if !rm.EastWall {
				open[br][bc+1] = true
			}
			if !rm.SouthWall {
				open[br+1][bc] = true
			}
		}
	}

	return &BlockMaze{
		open:  open,
		start: game.CellPosition{Row: 1, Col: 1},
		end:   game.CellPosition{Row: 2*l.Height - 1, Col: 2*l.Width - 1},
	}
}
