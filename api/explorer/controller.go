package explorerapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-explorer/game/maze"
	"github.com/beka-birhanu/vinom-explorer/service"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const solveTimeout = 5 * time.Second

// RunController manages explorer runs.
type RunController struct {
	runManager      i.RunManager
	defaultInterval time.Duration
}

// NewRunController initializes a RunController. defaultInterval is used by
// play requests that do not name one.
func NewRunController(rm i.RunManager, defaultInterval time.Duration) (*RunController, error) {
	if rm == nil {
		return nil, errors.New("run manager is required")
	}
	return &RunController{
		runManager:      rm,
		defaultInterval: defaultInterval,
	}, nil
}

// Register registers the run routes.
func (rc *RunController) Register(route *gin.RouterGroup) {
	runs := route.Group("/runs")
	{
		runs.POST("", rc.create)
		runs.GET("/:ID", rc.snapshot)
		runs.DELETE("/:ID", rc.remove)
		runs.POST("/:ID/step", rc.step)
		runs.POST("/:ID/solve", rc.solve)
		runs.POST("/:ID/play", rc.play)
		runs.POST("/:ID/pause", rc.pause)
	}
}

// create handles run creation requests.
func (rc *RunController) create(ctx *gin.Context) {
	var request NewRunRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := rc.runManager.NewRun(request.toConfig())
	if err != nil {
		respondError(ctx, err)
		return
	}

	snap, err := rc.runManager.Snapshot(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &NewRunResponse{ID: id, Snapshot: toSnapshotResponse(snap)})
}

// snapshot returns the current state of a run.
func (rc *RunController) snapshot(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	snap, err := rc.runManager.Snapshot(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toSnapshotResponse(snap))
}

// step performs one explorer update.
func (rc *RunController) step(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	snap, err := rc.runManager.Step(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toSnapshotResponse(snap))
}

// solve runs the explorer until it stops or the tick budget is spent.
func (rc *RunController) solve(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	var request SolveRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, solveTimeout)
	defer cancel()
	snap, err := rc.runManager.Solve(timeoutCtx, id, request.MaxTicks)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toSnapshotResponse(snap))
}

// play starts background updates. The loop outlives the request.
func (rc *RunController) play(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	var request PlayRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	interval := rc.defaultInterval
	if request.IntervalMS > 0 {
		interval = time.Duration(request.IntervalMS) * time.Millisecond
	}

	if err := rc.runManager.Play(context.Background(), id, interval); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusAccepted)
}

// pause stops background updates.
func (rc *RunController) pause(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	if err := rc.runManager.Pause(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// remove drops a run.
func (rc *RunController) remove(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	if err := rc.runManager.Remove(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func runID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return uuid.Nil, false
	}
	return id, true
}

func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrRunNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrTooManyRuns):
		status = http.StatusTooManyRequests
	case errors.Is(err, service.ErrAlreadyPlaying), errors.Is(err, service.ErrNotPlaying):
		status = http.StatusConflict
	case errors.Is(err, maze.ErrInvalidDimensions), errors.Is(err, maze.ErrInvalidLayout),
		errors.Is(err, service.ErrInvalidInterval):
		status = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
