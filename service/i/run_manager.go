package i

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/google/uuid"
)

// RunConfig describes a new explorer run. A non-empty Layout wins over the
// generated Width×Height maze.
type RunConfig struct {
	Width        int      // Rooms per row of a generated maze
	Height       int      // Rooms per column of a generated maze
	Seed         *int64   // Generation seed; random when nil
	Layout       []string // Text layout, see maze.Parse
	Backtracking *bool    // Defaults to on
	Name         string   // Explorer name
}

// Snapshot is the observable state of a run.
type Snapshot struct {
	ID           uuid.UUID
	Name         string
	State        string
	Message      string
	Position     game.CellPosition
	Target       game.CellPosition
	Frontier     []game.CellPosition // queued cells, next target first
	Start        game.CellPosition
	End          game.CellPosition
	Ticks        int
	Steps        int
	Discovered   int
	Backtracking bool
	Playing      bool
	Layout       []string
}

// RunManager owns explorer runs and advances them.
type RunManager interface {
	// NewRun builds a maze and an explorer and returns the run ID.
	NewRun(RunConfig) (uuid.UUID, error)

	// Step performs exactly one explorer update.
	Step(uuid.UUID) (Snapshot, error)

	// Solve updates until the explorer stops, maxTicks updates are done or ctx ends.
	Solve(ctx context.Context, id uuid.UUID, maxTicks int) (Snapshot, error)

	// Play updates the run in the background once per interval.
	Play(ctx context.Context, id uuid.UUID, interval time.Duration) error

	// Pause stops background play.
	Pause(uuid.UUID) error

	// Snapshot returns the current state of a run.
	Snapshot(uuid.UUID) (Snapshot, error)

	// Remove drops a run.
	Remove(uuid.UUID) error
}
