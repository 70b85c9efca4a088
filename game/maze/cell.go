package maze

import "github.com/beka-birhanu/vinom-explorer/game"

// room is a single cell of the room lattice used while carving a maze.
// Every wall starts up and generation knocks some of them down.
type room struct {
	NorthWall bool // NorthWall indicates whether there is a wall on the north side of the room.
	SouthWall bool // SouthWall indicates whether there is a wall on the south side of the room.
	EastWall  bool // EastWall indicates whether there is a wall on the east side of the room.
	WestWall  bool // WestWall indicates whether there is a wall on the west side of the room.
}

// move is a step from one room to a neighboring one.
type move struct {
	From      game.CellPosition // Starting room
	To        game.CellPosition // Destination room
	Direction string            // Direction of the move (North, South, East, West)
}

// Cell symbols used by Parse and String.
const (
	wallSymbol  = '#'
	openSymbol  = '.'
	startSymbol = 'S'
	endSymbol   = 'E'
)
