package maze

import (
	"testing"

	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reachable counts open cells reachable from start.
func reachable(m *BlockMaze) int {
	seen := map[game.CellPosition]bool{m.Start(): true}
	queue := []game.CellPosition{m.Start()}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if m.IsOpen(n) && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen)
}

func openCells(m *BlockMaze) int {
	count := 0
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			if m.IsOpen(game.CellPosition{Row: r, Col: c}) {
				count++
			}
		}
	}
	return count
}

func TestNew(t *testing.T) {
	t.Run("rejects bad dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}, {21, 2}} {
			_, err := New(dims[0], dims[1], WithSeed(1))
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		}
	})

	t.Run("max dimension option", func(t *testing.T) {
		_, err := New(5, 5, WithMaxDimension(4))
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})

	t.Run("block geometry", func(t *testing.T) {
		m, err := New(6, 4, WithSeed(3))
		require.NoError(t, err)

		assert.Equal(t, 9, m.Rows())
		assert.Equal(t, 13, m.Cols())
		assert.Equal(t, game.CellPosition{Row: 1, Col: 1}, m.Start())
		assert.Equal(t, game.CellPosition{Row: 7, Col: 11}, m.End())
		assert.True(t, m.IsEndPoint(m.End()))
		assert.True(t, m.IsOpen(m.Start()))
		assert.True(t, m.IsOpen(m.End()))
	})

	t.Run("carved maze is a spanning tree", func(t *testing.T) {
		for seed := int64(0); seed < 20; seed++ {
			m, err := New(7, 5, WithSeed(seed))
			require.NoError(t, err)

			rooms := 7 * 5
			// A tree over n rooms opens n-1 walls.
			assert.Equal(t, rooms+rooms-1, openCells(m))
			assert.Equal(t, openCells(m), reachable(m))
		}
	})

	t.Run("seed is deterministic", func(t *testing.T) {
		a, err := New(8, 8, WithSeed(42))
		require.NoError(t, err)
		b, err := New(8, 8, WithSeed(42))
		require.NoError(t, err)
		assert.Equal(t, a.String(), b.String())
	})

	t.Run("single room", func(t *testing.T) {
		m, err := New(1, 1, WithSeed(1))
		require.NoError(t, err)
		assert.Equal(t, m.Start(), m.End())
	})
}

func TestParse(t *testing.T) {
	t.Run("valid layout", func(t *testing.T) {
		rows := []string{
			"#####",
			"#S.E#",
			"#####",
		}
		m, err := Parse(rows)
		require.NoError(t, err)

		assert.Equal(t, 3, m.Rows())
		assert.Equal(t, 5, m.Cols())
		assert.Equal(t, game.CellPosition{Row: 1, Col: 1}, m.Start())
		assert.Equal(t, game.CellPosition{Row: 1, Col: 3}, m.End())
		assert.True(t, m.IsOpen(game.CellPosition{Row: 1, Col: 2}))
		assert.False(t, m.IsOpen(game.CellPosition{Row: 0, Col: 2}))
		assert.False(t, m.IsOpen(game.CellPosition{Row: -1, Col: 2}))
		assert.False(t, m.IsOpen(game.CellPosition{Row: 1, Col: 5}))
		assert.Equal(t, rows, m.Layout())
	})

	t.Run("start alone is not a maze", func(t *testing.T) {
		_, err := Parse([]string{"S"})
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})

	tests := []struct {
		name string
		rows []string
	}{
		{name: "empty", rows: nil},
		{name: "empty row", rows: []string{""}},
		{name: "ragged", rows: []string{"S.E", ".."}},
		{name: "unknown symbol", rows: []string{"S.xE"}},
		{name: "two starts", rows: []string{"SSE"}},
		{name: "no end", rows: []string{"S.."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.rows)
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	m, err := New(4, 3, WithSeed(9))
	require.NoError(t, err)

	parsed, err := Parse(m.Layout())
	require.NoError(t, err)
	assert.Equal(t, m.String(), parsed.String())
	assert.Equal(t, m.Start(), parsed.Start())
	assert.Equal(t, m.End(), parsed.End())
}
