package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-explorer/game/maze"
	"github.com/beka-birhanu/vinom-explorer/game/player"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxRuns      = 64
	defaultMaxTicks     = 10000
	defaultMaxDimension = 20
	defaultRunTTL       = 10 * time.Minute
	defaultMazeSize     = 10
	minPlayInterval     = time.Millisecond
)

// Run manager errors.
var (
	ErrNilLogger       = errors.New("logger is required")
	ErrRunNotFound     = errors.New("run not found")
	ErrTooManyRuns     = errors.New("too many runs")
	ErrAlreadyPlaying  = errors.New("run is already playing")
	ErrNotPlaying      = errors.New("run is not playing")
	ErrInvalidInterval = errors.New("play interval too short")
)

var _ i.RunManager = &RunManager{}

// run is one maze with its explorer. The embedded mutex serializes updates.
type run struct {
	id         uuid.UUID
	maze       *maze.BlockMaze
	player     *player.Player
	lastActive time.Time
	stopPlay   context.CancelFunc // non-nil while playing
	playGen    int                // identifies the current play loop
	sync.Mutex
}

// RunManager keeps explorer runs in memory and advances them on request.
type RunManager struct {
	runs         map[uuid.UUID]*run
	logger       i.Logger
	recorder     i.Recorder
	maxRuns      int
	maxTicks     int
	maxDimension int
	ttl          time.Duration
	now          func() time.Time
	sync.RWMutex
}

// Config holds the dependencies and limits of a RunManager.
type Config struct {
	Logger       i.Logger
	Recorder     i.Recorder    // optional
	MaxRuns      int           // runs held at once
	MaxTicks     int           // cap on updates per Solve
	MaxDimension int           // largest generated maze side, in rooms
	RunTTL       time.Duration // idle time before Sweep drops a run
}

// NewRunManager creates a RunManager, filling unset limits with defaults.
func NewRunManager(c *Config) (*RunManager, error) {
	if c == nil || c.Logger == nil {
		return nil, ErrNilLogger
	}

	rm := &RunManager{
		runs:         make(map[uuid.UUID]*run),
		logger:       c.Logger,
		recorder:     c.Recorder,
		maxRuns:      c.MaxRuns,
		maxTicks:     c.MaxTicks,
		maxDimension: c.MaxDimension,
		ttl:          c.RunTTL,
		now:          time.Now,
	}

	if rm.recorder == nil {
		rm.recorder = nopRecorder{}
	}
	if rm.maxRuns <= 0 {
		rm.maxRuns = defaultMaxRuns
	}
	if rm.maxTicks <= 0 {
		rm.maxTicks = defaultMaxTicks
	}
	if rm.maxDimension <= 0 {
		rm.maxDimension = defaultMaxDimension
	}
	if rm.ttl <= 0 {
		rm.ttl = defaultRunTTL
	}
	return rm, nil
}

// NewRun implements i.RunManager.
func (rm *RunManager) NewRun(c i.RunConfig) (uuid.UUID, error) {
	m, err := rm.buildMaze(c)
	if err != nil {
		rm.logger.Warning(fmt.Sprintf("Rejected maze: %s", err))
		return uuid.Nil, err
	}

	id := uuid.New()
	opts := []player.Option{player.WithObserver(rm.observe(id))}
	if c.Backtracking != nil {
		opts = append(opts, player.WithBacktracking(*c.Backtracking))
	}
	if c.Name != "" {
		opts = append(opts, player.WithName(c.Name))
	}

	p, err := player.New(m, m.Start(), opts...)
	if err != nil {
		return uuid.Nil, err
	}

	rm.Lock()
	defer rm.Unlock()
	if len(rm.runs) >= rm.maxRuns {
		return uuid.Nil, ErrTooManyRuns
	}
	rm.runs[id] = &run{id: id, maze: m, player: p, lastActive: rm.now()}
	rm.recorder.RunCreated()
	rm.logger.Info(fmt.Sprintf("Created run: ID=%s Size=%dx%d", id, m.Rows(), m.Cols()))
	return id, nil
}

// buildMaze parses the layout when one is given, otherwise generates a maze.
func (rm *RunManager) buildMaze(c i.RunConfig) (*maze.BlockMaze, error) {
	if len(c.Layout) > 0 {
		m, err := maze.Parse(c.Layout)
		if err != nil {
			return nil, err
		}
		if limit := 2*rm.maxDimension + 1; m.Rows() > limit || m.Cols() > limit {
			return nil, fmt.Errorf("layout is %dx%d, limit is %dx%d: %w", m.Rows(), m.Cols(), limit, limit, maze.ErrInvalidLayout)
		}
		return m, nil
	}

	width, height := c.Width, c.Height
	if width == 0 && height == 0 {
		width, height = defaultMazeSize, defaultMazeSize
	}

	opts := []maze.Option{maze.WithMaxDimension(rm.maxDimension)}
	if c.Seed != nil {
		opts = append(opts, maze.WithSeed(*c.Seed))
	}
	return maze.New(width, height, opts...)
}

// observe reports every explorer update of run id.
func (rm *RunManager) observe(id uuid.UUID) func(player.Event) {
	return func(e player.Event) {
		rm.recorder.Updated(e.State.String())
		rm.logger.Debug(fmt.Sprintf("Run %s tick %d: %s -> %s target=%s state=%s", id, e.Tick, e.From, e.To, e.Target, e.State))
		if e.State.Terminal() {
			rm.logger.Info(fmt.Sprintf("Run %s finished after %d ticks: %s", id, e.Tick, e.State))
		}
	}
}

func (rm *RunManager) get(id uuid.UUID) (*run, error) {
	rm.RLock()
	defer rm.RUnlock()
	r, ok := rm.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return r, nil
}

// Step implements i.RunManager.
func (rm *RunManager) Step(id uuid.UUID) (i.Snapshot, error) {
	r, err := rm.get(id)
	if err != nil {
		return i.Snapshot{}, err
	}

	r.Lock()
	defer r.Unlock()
	r.player.Update()
	r.lastActive = rm.now()
	return r.snapshot(), nil
}

// Solve implements i.RunManager. A non-positive maxTicks, or one above the
// manager's cap, is replaced by the cap.
func (rm *RunManager) Solve(ctx context.Context, id uuid.UUID, maxTicks int) (i.Snapshot, error) {
	r, err := rm.get(id)
	if err != nil {
		return i.Snapshot{}, err
	}
	if maxTicks <= 0 || maxTicks > rm.maxTicks {
		maxTicks = rm.maxTicks
	}

	r.Lock()
	defer r.Unlock()
	defer func() { r.lastActive = rm.now() }()

	for n := 0; n < maxTicks && !r.player.State().Terminal(); n++ {
		if err := ctx.Err(); err != nil {
			return r.snapshot(), err
		}
		r.player.Update()
	}
	return r.snapshot(), nil
}

// Play implements i.RunManager. The run keeps updating until the explorer
// stops, ctx ends, Pause is called or the run is removed.
func (rm *RunManager) Play(ctx context.Context, id uuid.UUID, interval time.Duration) error {
	if interval < minPlayInterval {
		return ErrInvalidInterval
	}

	r, err := rm.get(id)
	if err != nil {
		return err
	}

	r.Lock()
	defer r.Unlock()
	if r.stopPlay != nil {
		return ErrAlreadyPlaying
	}

	playCtx, cancel := context.WithCancel(ctx)
	r.stopPlay = cancel
	r.playGen++
	rm.logger.Info(fmt.Sprintf("Playing run %s every %s", id, interval))
	go rm.play(playCtx, r, r.playGen, interval)
	return nil
}

// play is the background tick loop of a run. It exits as soon as another
// loop generation takes over.
func (rm *RunManager) play(ctx context.Context, r *run, gen int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Lock()
			if r.playGen == gen {
				r.stopPlay = nil
			}
			r.Unlock()
			return
		case <-ticker.C:
			if !rm.tick(r, gen) {
				return
			}
		}
	}
}

// tick performs one background update. It reports whether play continues.
func (rm *RunManager) tick(r *run, gen int) bool {
	r.Lock()
	defer r.Unlock()
	if r.playGen != gen || r.stopPlay == nil {
		return false
	}

	state := r.player.Update()
	r.lastActive = rm.now()
	if state.Terminal() {
		r.stopPlay()
		r.stopPlay = nil
		return false
	}
	return true
}

// Pause implements i.RunManager.
func (rm *RunManager) Pause(id uuid.UUID) error {
	r, err := rm.get(id)
	if err != nil {
		return err
	}

	r.Lock()
	defer r.Unlock()
	if r.stopPlay == nil {
		return ErrNotPlaying
	}
	r.stopPlay()
	r.stopPlay = nil
	return nil
}

// Snapshot implements i.RunManager.
func (rm *RunManager) Snapshot(id uuid.UUID) (i.Snapshot, error) {
	r, err := rm.get(id)
	if err != nil {
		return i.Snapshot{}, err
	}

	r.Lock()
	defer r.Unlock()
	return r.snapshot(), nil
}

// Remove implements i.RunManager.
func (rm *RunManager) Remove(id uuid.UUID) error {
	rm.Lock()
	r, ok := rm.runs[id]
	if !ok {
		rm.Unlock()
		return ErrRunNotFound
	}
	delete(rm.runs, id)
	rm.Unlock()

	r.Lock()
	if r.stopPlay != nil {
		r.stopPlay()
		r.stopPlay = nil
	}
	r.Unlock()

	rm.recorder.RunRemoved()
	rm.logger.Info(fmt.Sprintf("Removed run: ID=%s", id))
	return nil
}

// Count returns the number of runs held.
func (rm *RunManager) Count() int {
	rm.RLock()
	defer rm.RUnlock()
	return len(rm.runs)
}

// Sweep removes runs that are not playing and have been idle longer than
// the TTL at now. It returns how many runs were removed.
func (rm *RunManager) Sweep(now time.Time) int {
	rm.RLock()
	runs := make([]*run, 0, len(rm.runs))
	for _, r := range rm.runs {
		runs = append(runs, r)
	}
	rm.RUnlock()

	var stale []uuid.UUID
	for _, r := range runs {
		r.Lock()
		if r.stopPlay == nil && now.Sub(r.lastActive) > rm.ttl {
			stale = append(stale, r.id)
		}
		r.Unlock()
	}

	removed := 0
	for _, id := range stale {
		if rm.Remove(id) == nil {
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx ends.
func (rm *RunManager) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := rm.Sweep(now); n > 0 {
					rm.logger.Info(fmt.Sprintf("Swept %d idle runs", n))
				}
			}
		}
	}()
}

// snapshot copies the observable state. The caller holds r's lock.
func (r *run) snapshot() i.Snapshot {
	p := r.player
	return i.Snapshot{
		ID:           r.id,
		Name:         p.Name(),
		State:        p.State().String(),
		Message:      p.Say(),
		Position:     p.Position(),
		Target:       p.TargetPoint(),
		Frontier:     p.Frontier(),
		Start:        r.maze.Start(),
		End:          r.maze.End(),
		Ticks:        p.Ticks(),
		Steps:        p.Steps(),
		Discovered:   p.DiscoveredCount(),
		Backtracking: p.Backtracking(),
		Playing:      r.stopPlay != nil,
		Layout:       r.maze.Layout(),
	}
}

type nopRecorder struct{}

func (nopRecorder) RunCreated()    {}
func (nopRecorder) RunRemoved()    {}
func (nopRecorder) Updated(string) {}
