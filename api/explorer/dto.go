// Package explorerapi exposes explorer runs over HTTP.
package explorerapi

import (
	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/google/uuid"
)

// NewRunRequest represents a request to create a new run.
type NewRunRequest struct {
	Width        int      `json:"width" binding:"gte=0"`
	Height       int      `json:"height" binding:"gte=0"`
	Seed         *int64   `json:"seed"`
	Layout       []string `json:"layout"`
	Backtracking *bool    `json:"backtracking"`
	Name         string   `json:"name" binding:"max=32"`
}

// SolveRequest bounds a solve call. Zero means the server cap.
type SolveRequest struct {
	MaxTicks int `json:"max_ticks" binding:"gte=0"`
}

// PlayRequest sets the background tick interval.
type PlayRequest struct {
	IntervalMS int `json:"interval_ms" binding:"gte=0"`
}

// Position is a cell on the wire.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SnapshotResponse is the observable state of a run.
type SnapshotResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	State        string     `json:"state"`
	Message      string     `json:"message"`
	Position     Position   `json:"position"`
	Target       Position   `json:"target"`
	Frontier     []Position `json:"frontier"`
	Start        Position   `json:"start"`
	End          Position   `json:"end"`
	Ticks        int        `json:"ticks"`
	Steps        int        `json:"steps"`
	Discovered   int        `json:"discovered"`
	Backtracking bool       `json:"backtracking"`
	Playing      bool       `json:"playing"`
	Layout       []string   `json:"layout"`
}

// NewRunResponse is returned when a run is created.
type NewRunResponse struct {
	ID       uuid.UUID         `json:"id"`
	Snapshot *SnapshotResponse `json:"snapshot"`
}

func (r *NewRunRequest) toConfig() i.RunConfig {
	return i.RunConfig{
		Width:        r.Width,
		Height:       r.Height,
		Seed:         r.Seed,
		Layout:       r.Layout,
		Backtracking: r.Backtracking,
		Name:         r.Name,
	}
}

func toPosition(p game.CellPosition) Position {
	return Position{Row: p.Row, Col: p.Col}
}

func toPositions(ps []game.CellPosition) []Position {
	out := make([]Position, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPosition(p))
	}
	return out
}

func toSnapshotResponse(s i.Snapshot) *SnapshotResponse {
	return &SnapshotResponse{
		ID:           s.ID,
		Name:         s.Name,
		State:        s.State,
		Message:      s.Message,
		Position:     toPosition(s.Position),
		Target:       toPosition(s.Target),
		Frontier:     toPositions(s.Frontier),
		Start:        toPosition(s.Start),
		End:          toPosition(s.End),
		Ticks:        s.Ticks,
		Steps:        s.Steps,
		Discovered:   s.Discovered,
		Backtracking: s.Backtracking,
		Playing:      s.Playing,
		Layout:       s.Layout,
	}
}
