// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitstack/exertrack/internal/api"
	"github.com/fitstack/exertrack/internal/app"
	"github.com/fitstack/exertrack/internal/config"
	"github.com/fitstack/exertrack/internal/utils"
)

func main() {
	log.Println("starting exertrack server...")

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration failed: %v", err)
	}

	// 2. Set up logging
	logger := utils.GetLogger()
	if cfg.DebugMode {
		logger.SetLogLevel(utils.DEBUG)
	}
	if err := utils.InitLogger(filepath.Join(cfg.LogDir, "server.log")); err != nil {
		log.Printf("warning: file logging disabled: %v", err)
	}
	logger.Infof("configuration loaded: env=%s port=%s file=%s",
		cfg.Environment, cfg.Port, cfg.ExercisesFile)

	// 3. Initialize all services (in dependency order). Failure here aborts
	// startup; nothing later in the run is fatal.
	if err := app.InitServices(cfg); err != nil {
		logger.Fatalf("initializing services failed: %v", err)
	}
	logger.Infof("services initialized")

	// 4. Set up routes (services come from the container)
	router, err := api.SetupRouter(cfg)
	if err != nil {
		logger.Fatalf("setting up routes failed: %v", err)
	}

	logger.Infof("listening on http://localhost:%s", cfg.Port)
	runWithGracefulShutdown(router, cfg.Port)
}

// runWithGracefulShutdown serves until SIGINT/SIGTERM, then drains with a
// timeout
func runWithGracefulShutdown(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced server shutdown: %v", err)
	}

	log.Println("server stopped")
}
