package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/beka-birhanu/vinom-explorer/game/maze"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memLogger struct {
	sync.Mutex
	lines []string
}

func (l *memLogger) add(s string) {
	l.Lock()
	defer l.Unlock()
	l.lines = append(l.lines, s)
}

func (l *memLogger) Info(s string)    { l.add("INFO " + s) }
func (l *memLogger) Warning(s string) { l.add("WARNING " + s) }
func (l *memLogger) Error(s string)   { l.add("ERROR " + s) }
func (l *memLogger) Debug(s string)   { l.add("DEBUG " + s) }

type countingRecorder struct {
	sync.Mutex
	created, removed int
	updates          map[string]int
}

func (r *countingRecorder) RunCreated() {
	r.Lock()
	defer r.Unlock()
	r.created++
}

func (r *countingRecorder) RunRemoved() {
	r.Lock()
	defer r.Unlock()
	r.removed++
}

func (r *countingRecorder) Updated(state string) {
	r.Lock()
	defer r.Unlock()
	if r.updates == nil {
		r.updates = map[string]int{}
	}
	r.updates[state]++
}

var deadEnd = []string{
	"#######",
	"#S...E#",
	"#.#####",
	"#.#####",
	"#######",
}

func newManager(t *testing.T, c Config) (*RunManager, *countingRecorder) {
	t.Helper()
	rec := &countingRecorder{}
	if c.Logger == nil {
		c.Logger = &memLogger{}
	}
	c.Recorder = rec
	rm, err := NewRunManager(&c)
	require.NoError(t, err)
	return rm, rec
}

func TestNewRunManager(t *testing.T) {
	_, err := NewRunManager(nil)
	assert.ErrorIs(t, err, ErrNilLogger)
	_, err = NewRunManager(&Config{})
	assert.ErrorIs(t, err, ErrNilLogger)

	rm, err := NewRunManager(&Config{Logger: &memLogger{}})
	require.NoError(t, err)
	assert.Equal(t, defaultMaxRuns, rm.maxRuns)
	assert.Equal(t, defaultMaxTicks, rm.maxTicks)
	assert.Equal(t, defaultRunTTL, rm.ttl)
}

func TestNewRun(t *testing.T) {
	t.Run("from layout", func(t *testing.T) {
		rm, rec := newManager(t, Config{})
		id, err := rm.NewRun(i.RunConfig{Layout: deadEnd, Name: "Nemo"})
		require.NoError(t, err)

		snap, err := rm.Snapshot(id)
		require.NoError(t, err)
		assert.Equal(t, id, snap.ID)
		assert.Equal(t, "LOOKING", snap.State)
		assert.Equal(t, "Nemo: Where is the exit?", snap.Message)
		assert.Equal(t, game.CellPosition{Row: 1, Col: 1}, snap.Start)
		assert.Equal(t, deadEnd, snap.Layout)
		assert.True(t, snap.Backtracking)
		assert.Equal(t, 1, rec.created)
	})

	t.Run("generated with seed", func(t *testing.T) {
		rm, _ := newManager(t, Config{})
		seed := int64(5)
		id, err := rm.NewRun(i.RunConfig{Width: 4, Height: 3, Seed: &seed})
		require.NoError(t, err)

		snap, err := rm.Snapshot(id)
		require.NoError(t, err)
		assert.Len(t, snap.Layout, 7)
		assert.Len(t, snap.Layout[0], 9)
	})

	t.Run("default size", func(t *testing.T) {
		rm, _ := newManager(t, Config{})
		id, err := rm.NewRun(i.RunConfig{})
		require.NoError(t, err)

		snap, err := rm.Snapshot(id)
		require.NoError(t, err)
		assert.Len(t, snap.Layout, 2*defaultMazeSize+1)
	})

	t.Run("rejects bad maze", func(t *testing.T) {
		rm, _ := newManager(t, Config{MaxDimension: 5})
		_, err := rm.NewRun(i.RunConfig{Width: 6, Height: 2})
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

		_, err = rm.NewRun(i.RunConfig{Layout: []string{"S.."}})
		assert.ErrorIs(t, err, maze.ErrInvalidLayout)
	})

	t.Run("layout larger than the dimension limit", func(t *testing.T) {
		rm, _ := newManager(t, Config{MaxDimension: 2})
		_, err := rm.NewRun(i.RunConfig{Layout: deadEnd})
		assert.ErrorIs(t, err, maze.ErrInvalidLayout)

		rm, _ = newManager(t, Config{MaxDimension: 3})
		_, err = rm.NewRun(i.RunConfig{Layout: deadEnd})
		assert.NoError(t, err)
	})

	t.Run("limit", func(t *testing.T) {
		rm, _ := newManager(t, Config{MaxRuns: 1})
		_, err := rm.NewRun(i.RunConfig{Layout: deadEnd})
		require.NoError(t, err)
		_, err = rm.NewRun(i.RunConfig{Layout: deadEnd})
		assert.ErrorIs(t, err, ErrTooManyRuns)
	})
}

func TestStepAndSolve(t *testing.T) {
	rm, rec := newManager(t, Config{})
	id, err := rm.NewRun(i.RunConfig{Layout: deadEnd})
	require.NoError(t, err)

	snap, err := rm.Step(id)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Ticks)
	assert.Equal(t, game.CellPosition{Row: 2, Col: 1}, snap.Target)
	assert.Equal(t, []game.CellPosition{{Row: 2, Col: 1}, {Row: 1, Col: 2}}, snap.Frontier)

	snap, err = rm.Solve(context.Background(), id, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Ticks)
	assert.Equal(t, "BACKTRACK", snap.State)
	assert.Equal(t, "Player: Got to backtrack...", snap.Message)

	snap, err = rm.Solve(context.Background(), id, 0)
	require.NoError(t, err)
	assert.Equal(t, "FREEDOM", snap.State)
	assert.Equal(t, game.CellPosition{Row: 1, Col: 5}, snap.Position)
	assert.Equal(t, 9, snap.Ticks)
	assert.Equal(t, 8, snap.Steps)

	rec.Lock()
	assert.Equal(t, 1, rec.updates["FREEDOM"])
	assert.Equal(t, 2, rec.updates["BACKTRACK"])
	rec.Unlock()

	_, err = rm.Step(uuid.New())
	assert.ErrorIs(t, err, ErrRunNotFound)
	_, err = rm.Solve(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestSolveHonorsContext(t *testing.T) {
	rm, _ := newManager(t, Config{})
	id, err := rm.NewRun(i.RunConfig{Layout: deadEnd})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	snap, err := rm.Solve(ctx, id, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, snap.Ticks)
}

func TestPlay(t *testing.T) {
	t.Run("plays to the end", func(t *testing.T) {
		rm, _ := newManager(t, Config{})
		id, err := rm.NewRun(i.RunConfig{Layout: deadEnd})
		require.NoError(t, err)

		require.NoError(t, rm.Play(context.Background(), id, time.Millisecond))
		assert.ErrorIs(t, rm.Play(context.Background(), id, time.Millisecond), ErrAlreadyPlaying)

		assert.Eventually(t, func() bool {
			snap, err := rm.Snapshot(id)
			return err == nil && snap.State == "FREEDOM" && !snap.Playing
		}, 2*time.Second, 5*time.Millisecond)

		assert.ErrorIs(t, rm.Pause(id), ErrNotPlaying)
	})

	t.Run("pause stops updates", func(t *testing.T) {
		rm, _ := newManager(t, Config{})
		id, err := rm.NewRun(i.RunConfig{Layout: deadEnd})
		require.NoError(t, err)

		require.NoError(t, rm.Play(context.Background(), id, time.Hour))
		require.NoError(t, rm.Pause(id))

		snap, err := rm.Snapshot(id)
		require.NoError(t, err)
		assert.False(t, snap.Playing)
		assert.Equal(t, 0, snap.Ticks)
	})

	t.Run("bad interval", func(t *testing.T) {
		rm, _ := newManager(t, Config{})
		id, err := rm.NewRun(i.RunConfig{Layout: deadEnd})
		require.NoError(t, err)
		assert.ErrorIs(t, rm.Play(context.Background(), id, 0), ErrInvalidInterval)
	})
}

func TestRemoveAndSweep(t *testing.T) {
	rm, rec := newManager(t, Config{RunTTL: time.Minute})
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rm.now = func() time.Time { return start }

	stale, err := rm.NewRun(i.RunConfig{Layout: deadEnd})
	require.NoError(t, err)
	fresh, err := rm.NewRun(i.RunConfig{Layout: deadEnd})
	require.NoError(t, err)

	rm.now = func() time.Time { return start.Add(50 * time.Second) }
	_, err = rm.Step(fresh)
	require.NoError(t, err)

	assert.Equal(t, 1, rm.Sweep(start.Add(90*time.Second)))
	assert.Equal(t, 1, rm.Count())
	_, err = rm.Snapshot(stale)
	assert.ErrorIs(t, err, ErrRunNotFound)

	require.NoError(t, rm.Remove(fresh))
	assert.ErrorIs(t, rm.Remove(fresh), ErrRunNotFound)
	assert.Equal(t, 0, rm.Count())
	assert.Equal(t, 2, rec.removed)
}

func TestSweepWithBusyRun(t *testing.T) {
	rm, _ := newManager(t, Config{})
	busy, err := rm.NewRun(i.RunConfig{Layout: deadEnd})
	require.NoError(t, err)

	r, err := rm.get(busy)
	require.NoError(t, err)
	r.Lock()

	swept := make(chan int)
	go func() { swept <- rm.Sweep(time.Now()) }()

	created := make(chan error)
	go func() {
		_, err := rm.NewRun(i.RunConfig{Layout: deadEnd})
		created <- err
	}()

	select {
	case err := <-created:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("NewRun blocked while a run was busy during Sweep")
	}

	r.Unlock()
	assert.Equal(t, 0, <-swept)
	assert.Equal(t, 2, rm.Count())
}
