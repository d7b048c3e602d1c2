// internal/services/exercise_service.go
package services

import (
	"fmt"
	"strings"
	"sync"

	apperrors "github.com/fitstack/exertrack/internal/errors"
	"github.com/fitstack/exertrack/internal/models"
	"github.com/fitstack/exertrack/internal/storage"
	"github.com/fitstack/exertrack/internal/utils"
)

// ExerciseService owns the persisted exercise document. Every operation is a
// full read, validate/mutate, write cycle against the backing file, so a
// document migrated from the legacy shape during one request is persisted in
// the new shape by that request's write.
//
// The mutex serializes the read-modify-write cycle within this process.
// Cross-process access to the same file stays uncoordinated.
type ExerciseService struct {
	storage *storage.FileStorage
	path    string
	mu      sync.Mutex

	onChange func(*models.Document)
}

// NewExerciseService creates the service for the document at path
func NewExerciseService(fileStorage *storage.FileStorage, path string) *ExerciseService {
	return &ExerciseService{
		storage: fileStorage,
		path:    path,
	}
}

// SetOnChange registers a callback invoked with the fresh document after
// every successful mutation
func (s *ExerciseService) SetOnChange(fn func(*models.Document)) {
	s.onChange = fn
}

// FilePath returns the backing file path
func (s *ExerciseService) FilePath() string {
	return s.path
}

// Initialize prepares the backing file at startup. A missing file is created
// with the default document; an existing legacy-format file is migrated and
// rewritten in the current shape immediately.
func (s *ExerciseService) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := utils.GetLogger()

	if !s.storage.FileExists(s.path) {
		if err := s.storage.EnsureParentDir(s.path); err != nil {
			return apperrors.NewIOError("creating exercise store directory", err)
		}
		doc := models.DefaultDocument()
		if err := s.save(doc); err != nil {
			return err
		}
		logger.Infof("created exercise store at %s", s.path)
		return nil
	}

	doc, migrated, err := s.load()
	if err != nil {
		return err
	}
	if migrated {
		if err := s.save(doc); err != nil {
			return err
		}
		logger.Infof("migrated legacy exercise store: %d sections, %d exercises",
			doc.SectionCount(), doc.ExerciseCount())
	}
	return nil
}

// Document returns the current document, freshly read and normalized
func (s *ExerciseService) Document() (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _, err := s.load()
	return doc, err
}

// SectionNames returns section names in insertion order
func (s *ExerciseService) SectionNames() ([]string, error) {
	doc, err := s.Document()
	if err != nil {
		return nil, err
	}
	return doc.SectionNames(), nil
}

// AddExercise appends an exercise to a section. The name must be unique in
// its section under case-insensitive comparison.
func (s *ExerciseService) AddExercise(name, section string) (*models.Document, error) {
	name = strings.TrimSpace(name)
	section = strings.TrimSpace(section)
	if name == "" {
		return nil, apperrors.NewValidationError("exercise name is required", nil)
	}
	if section == "" {
		return nil, apperrors.NewValidationError("section name is required", nil)
	}

	doc, err := s.mutate(func(doc *models.Document) error {
		exercises, exists := doc.Exercises(section)
		if !exists {
			return apperrors.NewNotFoundError(fmt.Sprintf("section %q does not exist", section), nil)
		}
		for _, exercise := range exercises {
			if strings.EqualFold(exercise.Name, name) {
				return apperrors.NewConflictError(
					fmt.Sprintf("exercise %q already exists in section %q", name, section), nil)
			}
		}
		doc.AppendExercise(section, models.Exercise{Name: name})
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Infof("added exercise %q to section %q", name, section)
	return doc, nil
}

// DeleteExercise removes an exercise by exact name. Deletion matches
// case-sensitively, unlike the case-insensitive check on add.
func (s *ExerciseService) DeleteExercise(section, name string) (*models.Document, error) {
	section = strings.TrimSpace(section)
	name = strings.TrimSpace(name)

	doc, err := s.mutate(func(doc *models.Document) error {
		if !doc.HasSection(section) {
			return apperrors.NewNotFoundError(fmt.Sprintf("section %q does not exist", section), nil)
		}
		if !doc.RemoveExercise(section, name) {
			return apperrors.NewNotFoundError(
				fmt.Sprintf("exercise %q not found in section %q", name, section), nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Infof("deleted exercise %q from section %q", name, section)
	return doc, nil
}

// AddSection appends a new empty section. Section names are unique under
// exact comparison.
func (s *ExerciseService) AddSection(name string) (*models.Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("section name is required", nil)
	}

	doc, err := s.mutate(func(doc *models.Document) error {
		if !doc.AddSection(name) {
			return apperrors.NewConflictError(fmt.Sprintf("section %q already exists", name), nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Infof("added section %q", name)
	return doc, nil
}

// DeleteSection removes a section and its exercises. The last remaining
// section can never be deleted.
func (s *ExerciseService) DeleteSection(name string) (*models.Document, error) {
	name = strings.TrimSpace(name)

	doc, err := s.mutate(func(doc *models.Document) error {
		if !doc.HasSection(name) {
			return apperrors.NewNotFoundError(fmt.Sprintf("section %q does not exist", name), nil)
		}
		if doc.SectionCount() == 1 {
			return apperrors.NewValidationError("the last section cannot be deleted", nil)
		}
		doc.RemoveSection(name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Infof("deleted section %q", name)
	return doc, nil
}

// mutate runs one read-modify-write cycle under the store lock and persists
// the document when apply succeeds. The change callback fires after the lock
// is released, so a slow listener never stalls other operations and
// listeners may call back into the service.
func (s *ExerciseService) mutate(apply func(doc *models.Document) error) (*models.Document, error) {
	s.mu.Lock()
	doc, _, err := s.load()
	if err == nil {
		if err = apply(doc); err == nil {
			err = s.save(doc)
		}
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if s.onChange != nil {
		s.onChange(doc)
	}
	return doc, nil
}

// load reads and normalizes the backing file. Callers hold s.mu.
func (s *ExerciseService) load() (*models.Document, bool, error) {
	raw, err := s.storage.LoadTextFile(s.path)
	if err != nil {
		return nil, false, apperrors.NewIOError("reading exercise store", err)
	}

	doc, migrated, err := models.ParseDocument(raw)
	if err != nil {
		return nil, false, apperrors.NewCorruptDocumentError("exercise store is not valid JSON", err)
	}

	// A document never has zero sections
	if doc.SectionCount() == 0 {
		doc.AddSection(models.DefaultSection)
	}
	return doc, migrated, nil
}

// save rewrites the full backing file. Callers hold s.mu.
func (s *ExerciseService) save(doc *models.Document) error {
	if err := s.storage.SaveJSONFile(s.path, doc); err != nil {
		utils.GetLogger().Errorf("writing exercise store: %v", err)
		return apperrors.NewIOError("writing exercise store", err)
	}
	return nil
}
