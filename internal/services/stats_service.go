// internal/services/stats_service.go
package services

// Stats summarizes the current document
type Stats struct {
	Sections   int            `json:"sections"`
	Exercises  int            `json:"exercises"`
	PerSection map[string]int `json:"per_section"`
}

// StatsService computes counts over the exercise document
type StatsService struct {
	exercises *ExerciseService
}

// NewStatsService creates a stats service
func NewStatsService(exercises *ExerciseService) *StatsService {
	return &StatsService{exercises: exercises}
}

// Snapshot returns section and exercise counts from a fresh read
func (s *StatsService) Snapshot() (*Stats, error) {
	doc, err := s.exercises.Document()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Sections:   doc.SectionCount(),
		Exercises:  doc.ExerciseCount(),
		PerSection: make(map[string]int, doc.SectionCount()),
	}
	for _, name := range doc.SectionNames() {
		exercises, _ := doc.Exercises(name)
		stats.PerSection[name] = len(exercises)
	}
	return stats, nil
}
