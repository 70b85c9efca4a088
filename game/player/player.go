/*
Package player implements a maze explorer that searches a grid depth first,
one step per call to Update.

The explorer keeps three structures:
  - the frontier, a stack of cells discovered but not yet visited;
  - the discovery list, every cell ever pushed onto the frontier;
  - the path, a stack of the cells actually walked.

Neighbors are scanned west, east, north, south, so the south neighbor is
tried first. With backtracking on, the explorer only ever moves to a
4-adjacent cell: when the next frontier cell is not next to it, it walks
back along its path until it is.
*/
package player

import (
	"errors"

	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/beka-birhanu/vinom-explorer/list"
	"github.com/beka-birhanu/vinom-explorer/stack"
)

// ErrInvalidPlayerPosition is returned by New when start is a wall or off the grid.
var ErrInvalidPlayerPosition = errors.New("player is not on an open cell")

// Event describes one call to Update.
type Event struct {
	Tick   int               // 1-based count of updates that did work
	From   game.CellPosition // position before the update
	To     game.CellPosition // position after the update
	Target game.CellPosition // next frontier cell after the update, or game.NoTarget
	State  State             // state after the update
}

// Option configures a Player.
type Option func(*Player)

// WithName sets the name used by Say.
func WithName(name string) Option {
	return func(p *Player) {
		p.name = name
	}
}

// WithBacktracking turns retreating along the walked path on or off.
// It is on by default. With it off the explorer jumps straight to the next
// frontier cell.
func WithBacktracking(on bool) Option {
	return func(p *Player) {
		p.backtracking = on
	}
}

// WithObserver registers a callback invoked after every update.
func WithObserver(f func(Event)) Option {
	return func(p *Player) {
		p.observer = f
	}
}

// Player explores a game.Grid. It is not safe for concurrent use.
type Player struct {
	grid     game.Grid
	name     string
	pos      game.CellPosition
	state    State
	interact Interact

	look       *stack.Stack[game.CellPosition] // frontier
	discovered *list.List[game.CellPosition]   // every cell ever pushed onto look
	btStack    *stack.Stack[game.CellPosition] // walked path, current cell on top
	trail      *list.List[game.CellPosition]   // position after each update

	backtracking bool
	ticks        int
	steps        int
	observer     func(Event)
}

// New places an explorer on start and discovers it.
func New(grid game.Grid, start game.CellPosition, opts ...Option) (*Player, error) {
	if !grid.IsOpen(start) {
		return nil, ErrInvalidPlayerPosition
	}

	p := &Player{
		grid:         grid,
		name:         "Player",
		pos:          start,
		state:        Looking,
		look:         stack.New[game.CellPosition](),
		discovered:   list.New[game.CellPosition](),
		btStack:      stack.New[game.CellPosition](),
		trail:        list.New[game.CellPosition](),
		backtracking: true,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.discovered.PushFront(start)
	p.look.Push(start)
	return p, nil
}

// Update performs exactly one step of the search and returns the new state.
// Updates after the explorer is stuck or free do nothing.
func (p *Player) Update() State {
	if p.state.Terminal() {
		return p.state
	}

	from := p.pos
	p.ticks++
	defer func() {
		p.trail.PushBack(p.pos)
		p.notify(from)
	}()

	if p.look.Empty() {
		p.state = Stuck
		return p.state
	}

	p.moveTo(p.look.Pop())
	if p.grid.IsEndPoint(p.pos) {
		p.state = Freedom
		return p.state
	}

	p.discoverNeighbors()
	if p.look.Empty() {
		p.state = Stuck
		return p.state
	}

	if !p.backtracking {
		p.state = Looking
		return p.state
	}

	p.btStack.Push(p.pos)
	if p.pos.Adjacent(p.look.Peek()) {
		p.state = Looking
		return p.state
	}

	p.retreat()
	return p.state
}

// moveTo changes position, counting real moves.
func (p *Player) moveTo(pos game.CellPosition) {
	if pos != p.pos {
		p.steps++
	}
	p.pos = pos
}

// discoverNeighbors queues every open, undiscovered neighbor of the current cell.
func (p *Player) discoverNeighbors() {
	for _, n := range p.pos.Neighbors() {
		if p.grid.IsOpen(n) && !p.Discovered(n) {
			p.discovered.PushFront(n)
			p.look.Push(n)
		}
	}
}

// retreat queues walked cells until the top of the frontier is next to the
// current cell. Running out of path leaves the explorer stuck.
func (p *Player) retreat() {
	for !p.pos.Adjacent(p.look.Peek()) {
		cell, ok := p.btStack.TryPop()
		if !ok {
			p.state = Stuck
			return
		}
		if cell == p.pos {
			continue
		}
		p.look.Push(cell)
	}
	p.state = Backtrack
}

func (p *Player) notify(from game.CellPosition) {
	if p.observer == nil {
		return
	}
	p.observer(Event{
		Tick:   p.ticks,
		From:   from,
		To:     p.pos,
		Target: p.TargetPoint(),
		State:  p.state,
	})
}

// TargetPoint returns the next cell to visit, or game.NoTarget.
func (p *Player) TargetPoint() game.CellPosition {
	target, ok := p.look.TryPeek()
	if !ok {
		return game.NoTarget
	}
	return target
}

// Discovered reports whether pos has ever been queued.
func (p *Player) Discovered(pos game.CellPosition) bool {
	return p.discovered.Contains(pos)
}

// ToggleBackTrack turns backtracking on or off. Turning it on mid-search
// starts the walked path at the current cell.
func (p *Player) ToggleBackTrack(on bool) {
	if on && !p.backtracking {
		p.btStack.Clear()
		if p.ticks > 0 {
			p.btStack.Push(p.pos)
		}
	}
	p.backtracking = on
}

// Backtracking reports whether backtracking is on.
func (p *Player) Backtracking() bool {
	return p.backtracking
}

// Stuck reports whether the maze has no reachable exit.
func (p *Player) Stuck() bool {
	return p.state == Stuck
}

// FoundExit reports whether the explorer is free.
func (p *Player) FoundExit() bool {
	return p.state == Freedom
}

// State returns the current state.
func (p *Player) State() State {
	return p.state
}

// Position returns the current cell.
func (p *Player) Position() game.CellPosition {
	return p.pos
}

// Name returns the explorer's name.
func (p *Player) Name() string {
	return p.name
}

// Ticks returns how many updates did work.
func (p *Player) Ticks() int {
	return p.ticks
}

// Steps returns how many updates changed position.
func (p *Player) Steps() int {
	return p.steps
}

// DiscoveredCount returns the number of cells ever queued.
func (p *Player) DiscoveredCount() int {
	return p.discovered.Size()
}

// Frontier returns the queued cells, next target first.
func (p *Player) Frontier() []game.CellPosition {
	return p.look.Slice()
}

// Trail returns an independent copy of the positions held after each update.
func (p *Player) Trail() *list.List[game.CellPosition] {
	return p.trail.Clone()
}

// SetInteract records how the explorer is engaged with other actors.
func (p *Player) SetInteract(i Interact) {
	p.interact = i
}

// Interact returns the current interaction.
func (p *Player) Interact() Interact {
	return p.interact
}

// Say returns what the explorer says right now. Freedom wins over being
// attacked, and being attacked wins over being lost.
func (p *Player) Say() string {
	if p.state == Freedom {
		return p.name + ": WEEEEEEEEE!"
	}

	switch p.interact {
	case Attack:
		return p.name + ": OUCH!"
	case Greet:
		return ""
	}

	switch p.state {
	case Looking:
		return p.name + ": Where is the exit?"
	case Stuck:
		return p.name + ": Oh no! I am Trapped!"
	case Backtrack:
		return p.name + ": Got to backtrack..."
	default:
		return ""
	}
}
