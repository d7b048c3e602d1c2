// internal/models/exercise.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DefaultSection is the section every document starts with. It is also the
// section a legacy flat exercise list is migrated into.
const DefaultSection = "General"

// Exercise is a single named exercise
type Exercise struct {
	Name string `json:"name"`
}

// Document is the full persisted state: an ordered mapping of section name
// to an ordered list of exercises. Go maps do not keep insertion order, so
// the order is tracked separately and honored by the JSON codec.
type Document struct {
	order    []string
	sections map[string][]Exercise
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		sections: make(map[string][]Exercise),
	}
}

// DefaultDocument creates the initial document with one empty default section
func DefaultDocument() *Document {
	d := NewDocument()
	d.AddSection(DefaultSection)
	return d
}

// SectionNames returns section names in insertion order
func (d *Document) SectionNames() []string {
	names := make([]string, len(d.order))
	copy(names, d.order)
	return names
}

// HasSection reports whether a section with that exact name exists
func (d *Document) HasSection(name string) bool {
	_, exists := d.sections[name]
	return exists
}

// Exercises returns the exercise list of a section in insertion order
func (d *Document) Exercises(section string) ([]Exercise, bool) {
	exercises, exists := d.sections[section]
	if !exists {
		return nil, false
	}
	result := make([]Exercise, len(exercises))
	copy(result, exercises)
	return result, true
}

// AddSection appends a new empty section after all existing ones.
// Returns false if a section with that exact name already exists.
func (d *Document) AddSection(name string) bool {
	if d.HasSection(name) {
		return false
	}
	if d.sections == nil {
		d.sections = make(map[string][]Exercise)
	}
	d.order = append(d.order, name)
	d.sections[name] = []Exercise{}
	return true
}

// RemoveSection deletes a section and its exercises.
// Returns false if no section with that exact name exists.
func (d *Document) RemoveSection(name string) bool {
	if !d.HasSection(name) {
		return false
	}
	delete(d.sections, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// AppendExercise adds an exercise at the end of a section's list.
// Returns false if the section does not exist.
func (d *Document) AppendExercise(section string, exercise Exercise) bool {
	exercises, exists := d.sections[section]
	if !exists {
		return false
	}
	d.sections[section] = append(exercises, exercise)
	return true
}

// RemoveExercise deletes the first exercise whose name matches exactly.
// Returns false if the section or the exercise does not exist.
func (d *Document) RemoveExercise(section, name string) bool {
	exercises, exists := d.sections[section]
	if !exists {
		return false
	}
	for i, exercise := range exercises {
		if exercise.Name == name {
			d.sections[section] = append(exercises[:i], exercises[i+1:]...)
			return true
		}
	}
	return false
}

// SectionCount returns the number of sections
func (d *Document) SectionCount() int {
	return len(d.order)
}

// ExerciseCount returns the total number of exercises across all sections
func (d *Document) ExerciseCount() int {
	total := 0
	for _, exercises := range d.sections {
		total += len(exercises)
	}
	return total
}

// MarshalJSON writes the document as a JSON object whose keys appear in
// section insertion order
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range d.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		exercises := d.sections[name]
		if exercises == nil {
			exercises = []Exercise{}
		}
		value, err := json.Marshal(exercises)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts both the current mapping form and the legacy flat
// array form, normalizing the latter into the default section
func (d *Document) UnmarshalJSON(data []byte) error {
	parsed, _, err := ParseDocument(data)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// ParseDocument parses raw document bytes. A top-level array is the legacy
// pre-sections form and is normalized to {"General": <array>}; the returned
// bool reports whether that migration happened. Parsing an already-normalized
// document is a no-op shape-wise, so the function is safe to apply on every
// read path.
func ParseDocument(data []byte) (*Document, bool, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("document is empty")
	}

	if trimmed[0] == '[' {
		var exercises []Exercise
		if err := json.Unmarshal(data, &exercises); err != nil {
			return nil, false, fmt.Errorf("parsing legacy exercise list: %w", err)
		}
		d := NewDocument()
		d.order = append(d.order, DefaultSection)
		if exercises == nil {
			exercises = []Exercise{}
		}
		d.sections[DefaultSection] = exercises
		return d, true, nil
	}

	if trimmed[0] != '{' {
		return nil, false, fmt.Errorf("document must be a JSON object or array")
	}

	d := NewDocument()
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, false, fmt.Errorf("parsing document: %w", err)
	}
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return nil, false, fmt.Errorf("parsing section name: %w", err)
		}
		name, ok := keyToken.(string)
		if !ok {
			return nil, false, fmt.Errorf("unexpected token %v for section name", keyToken)
		}

		var exercises []Exercise
		if err := dec.Decode(&exercises); err != nil {
			return nil, false, fmt.Errorf("parsing section %q: %w", name, err)
		}
		if exercises == nil {
			exercises = []Exercise{}
		}

		// Duplicate keys keep their first position, last value wins
		if _, seen := d.sections[name]; !seen {
			d.order = append(d.order, name)
		}
		d.sections[name] = exercises
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, false, fmt.Errorf("parsing document: %w", err)
	}

	// Anything beyond the closing brace except whitespace means the bytes
	// are not one valid JSON document
	if _, err := dec.Token(); err != io.EOF {
		return nil, false, fmt.Errorf("trailing data after document")
	}

	return d, false, nil
}
