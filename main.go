package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-explorer/api"
	explorerapi "github.com/beka-birhanu/vinom-explorer/api/explorer"
	api_i "github.com/beka-birhanu/vinom-explorer/api/i"
	"github.com/beka-birhanu/vinom-explorer/config"
	logger "github.com/beka-birhanu/vinom-explorer/infrastruture/log"
	"github.com/beka-birhanu/vinom-explorer/infrastruture/metrics"
	"github.com/beka-birhanu/vinom-explorer/service"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/gin-gonic/gin"
)

// Global variables for dependencies
var (
	appLogger     i.Logger
	recorder      *metrics.Prometheus
	runManager    *service.RunManager
	runController api_i.Controller
	router        *api.Router
)

func initMetrics() {
	var err error
	recorder, err = metrics.NewPrometheus()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating metrics: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Metrics initialized")
}

func initRunManager() {
	runLogger, err := logger.New("RUN-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run manager logger: %v", err))
		os.Exit(1)
	}

	runManager, err = service.NewRunManager(&service.Config{
		Logger:       runLogger,
		Recorder:     recorder,
		MaxRuns:      config.Envs.MaxRuns,
		MaxTicks:     config.Envs.MaxTicks,
		MaxDimension: config.Envs.MaxMazeDimension,
		RunTTL:       time.Duration(config.Envs.RunTTLSeconds) * time.Second,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run manager initialized")
}

func initRunController() {
	var err error
	interval := time.Duration(config.Envs.TickIntervalMS) * time.Millisecond
	runController, err = explorerapi.NewRunController(runManager, interval)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run controller initialized")
}

func initRouter() {
	router = api.NewRouter(api.Config{
		Addr:           fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:        "/api",
		Controllers:    []api_i.Controller{runController},
		MetricsHandler: recorder.Handler(),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gin.SetMode(config.Envs.GinMode)

	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating app logger: %v\n", err)
		os.Exit(1)
	}

	initMetrics()
	initRunManager()
	initRunController()
	initRouter()

	sweepEvery := time.Duration(config.Envs.RunTTLSeconds) * time.Second / 2
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}
	runManager.StartSweeper(ctx, sweepEvery)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
