package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/alexanderramin/tripplan/internal/domain"
)

// ErrStorageDecode marks a stored blob that is present but not a valid task array.
var ErrStorageDecode = errors.New("stored tasks are not a valid task array")

type taskJSON struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Date      string  `json:"date"`
	Budget    float64 `json:"budget"`
	Important bool    `json:"important"`
	Done      bool    `json:"done"`
	Notes     string  `json:"notes"`
}

// Encode renders tasks as a JSON array. A nil slice encodes as []. Ids
// outside the range Decode accepts are refused so a save never writes a
// blob that would later load as empty.
func Encode(tasks []domain.Task) ([]byte, error) {
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		if t.ID > MaxTaskID || t.ID < minTaskID {
			return nil, fmt.Errorf("encoding tasks: id %d out of range", t.ID)
		}
		out = append(out, taskJSON{
			ID:        t.ID,
			Title:     t.Title,
			Category:  string(t.Category),
			Date:      t.Date,
			Budget:    t.Budget,
			Important: t.Important,
			Done:      t.Done,
			Notes:     t.Notes,
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return data, nil
}

// Decode parses a stored blob. Empty or whitespace input and JSON null
// decode to no tasks. Anything that is not an array of task objects fails
// with ErrStorageDecode. Absent keys take zero values; unknown keys are ignored.
func Decode(blob []byte) ([]domain.Task, error) {
	if len(bytes.TrimSpace(blob)) == 0 {
		return nil, nil
	}

	doc, err := parseDocument(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageDecode, err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageDecode, err)
	}

	items, _ := doc.([]any)
	tasks := make([]domain.Task, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrStorageDecode, i)
		}
		task, err := decodeTask(obj)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrStorageDecode, i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func parseDocument(blob []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(blob))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return doc, nil
}

func decodeTask(obj map[string]any) (domain.Task, error) {
	var t domain.Task
	var err error
	if t.ID, err = intField(obj, "id"); err != nil {
		return t, err
	}
	t.Title = stringField(obj, "title")
	t.Category = domain.Category(stringField(obj, "category"))
	t.Date = stringField(obj, "date")
	if t.Budget, err = floatField(obj, "budget"); err != nil {
		return t, err
	}
	t.Important = boolField(obj, "important")
	t.Done = boolField(obj, "done")
	t.Notes = stringField(obj, "notes")
	return t, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func boolField(obj map[string]any, key string) bool {
	b, _ := obj[key].(bool)
	return b
}

func floatField(obj map[string]any, key string) (float64, error) {
	n, ok := obj[key].(json.Number)
	if !ok {
		return 0, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("%s: %v", key, err)
	}
	return f, nil
}

// intField accepts integral numbers written with a fraction or exponent
// (3.0, 1e2) since the schema treats them as integers.
func intField(obj map[string]any, key string) (int, error) {
	n, ok := obj[key].(json.Number)
	if !ok {
		return 0, nil
	}
	if i, err := n.Int64(); err == nil {
		if i > MaxTaskID || i < minTaskID {
			return 0, fmt.Errorf("%s: %d out of range", key, i)
		}
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f > MaxTaskID || f < minTaskID {
		return 0, fmt.Errorf("%s: %s is not an integer", key, n)
	}
	return int(f), nil
}
