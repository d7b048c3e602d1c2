// internal/api/router.go
package api

import (
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/fitstack/exertrack/internal/config"
	"github.com/fitstack/exertrack/internal/di"
	"github.com/fitstack/exertrack/internal/services"
)

// SetupRouter configures the HTTP routes. Services come from the container
// only; nothing is constructed here except the handler and the update hub.
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	container := di.GetContainer()

	exerciseService, ok := container.Get("exercises").(*services.ExerciseService)
	if !ok {
		return nil, fmt.Errorf("exercise service not initialized")
	}

	statsService, ok := container.Get("stats").(*services.StatsService)
	if !ok {
		return nil, fmt.Errorf("stats service not initialized")
	}

	hub := NewUpdateHub()
	exerciseService.SetOnChange(hub.BroadcastDocument)

	handler := NewHandler(exerciseService, statsService, hub)

	r := gin.Default()
	r.Use(corsMiddleware())

	// Static UI
	r.Static("/static", cfg.StaticDir)
	r.StaticFile("/", filepath.Join(cfg.StaticDir, "index.html"))

	// Live document updates
	r.GET("/ws/updates", hub.HandleUpdates)

	// ===============================
	// API routes
	// ===============================
	api := r.Group("/api")
	api.Use(DefaultRateLimit())
	{
		exercisesGroup := api.Group("/exercises")
		{
			exercisesGroup.GET("", handler.GetExercises)
			exercisesGroup.POST("", handler.AddExercise)
			exercisesGroup.DELETE("/:section/:name", handler.DeleteExercise)
		}

		sectionsGroup := api.Group("/sections")
		{
			sectionsGroup.GET("", handler.GetSections)
			sectionsGroup.POST("", handler.AddSection)
			sectionsGroup.DELETE("/:name", handler.DeleteSection)
		}

		api.GET("/stats", handler.GetStats)
		api.GET("/health", handler.HealthCheck)
	}

	return r, nil
}
