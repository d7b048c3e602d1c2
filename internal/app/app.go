// internal/app/app.go
package app

import (
	"fmt"

	"github.com/fitstack/exertrack/internal/config"
	"github.com/fitstack/exertrack/internal/di"
	"github.com/fitstack/exertrack/internal/services"
	"github.com/fitstack/exertrack/internal/storage"
)

// InitServices builds all services in dependency order and registers them in
// the container. A failure here aborts startup: a store that cannot be
// initialized leaves nothing worth serving.
func InitServices(cfg *config.Config) error {
	container := di.GetContainer()

	fileStorage := storage.NewFileStorage()
	container.Register("storage", fileStorage)

	exerciseService := services.NewExerciseService(fileStorage, cfg.ExercisesFile)
	if err := exerciseService.Initialize(); err != nil {
		return fmt.Errorf("initializing exercise store: %w", err)
	}
	container.Register("exercises", exerciseService)

	statsService := services.NewStatsService(exerciseService)
	container.Register("stats", statsService)

	return nil
}
