// Package document encodes and decodes the persisted task list.
//
// The document is a JSON array of objects:
//
//	[
//	  {"id": 1, "title": "Pay rent", "importance": "high", "urgency": "high", "done": false}
//	]
//
// "done" is optional on decode and defaults to false, so files written by
// older versions of the tool still load. Unknown fields are ignored.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rezkam/eisen/internal/core"
)

// Reasons carried by core.FieldError.
var (
	ErrFieldMissing  = errors.New("field is required")
	ErrFieldType     = errors.New("field has the wrong type")
	ErrIDNotPositive = errors.New("id must be a positive integer")
	ErrDuplicateID   = errors.New("id is used by an earlier entry")
)

// Encode writes tasks as an indented JSON document followed by a newline.
// A nil list is written as an empty array.
func Encode(w io.Writer, tasks []core.Task) error {
	if tasks == nil {
		tasks = []core.Task{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	return nil
}

// Marshal returns the encoded document for tasks.
func Marshal(tasks []core.Task) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, tasks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses and validates a document.
// Shape errors match core.ErrMalformedDocument; entry errors are *core.FieldError.
func Decode(data []byte) ([]core.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: top level must be a JSON array", core.ErrMalformedDocument)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedDocument, err)
	}

	tasks := make([]core.Task, 0, len(entries))
	seen := make(map[int]struct{}, len(entries))

	for i, raw := range entries {
		if len(raw) == 0 || raw[0] != '{' {
			return nil, fmt.Errorf("%w: entry %d is not an object", core.ErrMalformedDocument, i)
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", core.ErrMalformedDocument, i, err)
		}

		task, err := decodeTask(i, fields)
		if err != nil {
			return nil, err
		}

		if _, dup := seen[task.ID]; dup {
			return nil, &core.FieldError{Index: i, Field: "id", Err: fmt.Errorf("%w: %d", ErrDuplicateID, task.ID)}
		}
		seen[task.ID] = struct{}{}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

func decodeTask(index int, fields map[string]json.RawMessage) (core.Task, error) {
	fieldErr := func(name string, err error) error {
		return &core.FieldError{Index: index, Field: name, Err: err}
	}

	var task core.Task

	rawID, err := required(fields, "id")
	if err != nil {
		return core.Task{}, fieldErr("id", err)
	}
	if err := json.Unmarshal(rawID, &task.ID); err != nil {
		return core.Task{}, fieldErr("id", fmt.Errorf("%w: %s", ErrFieldType, rawID))
	}
	if task.ID <= 0 {
		return core.Task{}, fieldErr("id", fmt.Errorf("%w: %d", ErrIDNotPositive, task.ID))
	}

	if task.Title, err = stringField(fields, "title"); err != nil {
		return core.Task{}, fieldErr("title", err)
	}

	label, err := stringField(fields, "importance")
	if err != nil {
		return core.Task{}, fieldErr("importance", err)
	}
	if task.Importance, err = core.ParseImportance(label); err != nil {
		return core.Task{}, fieldErr("importance", err)
	}

	label, err = stringField(fields, "urgency")
	if err != nil {
		return core.Task{}, fieldErr("urgency", err)
	}
	if task.Urgency, err = core.ParseUrgency(label); err != nil {
		return core.Task{}, fieldErr("urgency", err)
	}

	if rawDone, ok := fields["done"]; ok && !isNull(rawDone) {
		if err := json.Unmarshal(rawDone, &task.Done); err != nil {
			return core.Task{}, fieldErr("done", fmt.Errorf("%w: %s", ErrFieldType, rawDone))
		}
	}

	return task, nil
}

func required(fields map[string]json.RawMessage, name string) (json.RawMessage, error) {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return nil, ErrFieldMissing
	}
	return raw, nil
}

func stringField(fields map[string]json.RawMessage, name string) (string, error) {
	raw, err := required(fields, name)
	if err != nil {
		return "", err
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s", ErrFieldType, raw)
	}
	return s, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
