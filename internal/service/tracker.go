package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rezkam/eisen/internal/core"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/rezkam/eisen/internal/service"

var (
	// ErrLoad wraps failures to read the stored task list.
	ErrLoad = errors.New("failed to load tasks")

	// ErrSave wraps failures to write the task list back.
	ErrSave = errors.New("failed to save tasks")
)

// Tracker runs task list operations against a storage backend.
// Each call loads the full list, applies one core operation and, for
// mutations, writes the result back.
type Tracker struct {
	storage core.Storage
	logger  *slog.Logger
	tracer  trace.Tracer

	added     metric.Int64Counter
	completed metric.Int64Counter
}

// NewTracker creates a tracker using the global OpenTelemetry providers.
func NewTracker(storage core.Storage, logger *slog.Logger) (*Tracker, error) {
	if logger == nil {
		logger = slog.Default()
	}

	meter := otel.Meter(instrumentationName)

	added, err := meter.Int64Counter("eisen.tasks.added",
		metric.WithDescription("Tasks added to the list"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	completed, err := meter.Int64Counter("eisen.tasks.completed",
		metric.WithDescription("Tasks marked as done"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	return &Tracker{
		storage:   storage,
		logger:    logger,
		tracer:    otel.Tracer(instrumentationName),
		added:     added,
		completed: completed,
	}, nil
}

// Add appends a new open task and returns it.
func (t *Tracker) Add(ctx context.Context, title string, importance core.Importance, urgency core.Urgency) (core.Task, error) {
	ctx, span := t.tracer.Start(ctx, "Tracker.Add")
	defer span.End()

	tasks, err := t.load(ctx)
	if err != nil {
		return core.Task{}, recordError(span, err)
	}

	tasks = core.AddTask(tasks, title, importance, urgency)
	task := tasks[len(tasks)-1]

	if err := t.save(ctx, tasks); err != nil {
		return core.Task{}, recordError(span, err)
	}

	span.SetAttributes(attribute.Int("task.id", task.ID), attribute.Int("task.quadrant", task.Quadrant()))
	t.added.Add(ctx, 1, metric.WithAttributes(attribute.Int("quadrant", task.Quadrant())))
	t.logger.InfoContext(ctx, "task added",
		slog.Int("task_id", task.ID),
		slog.Int("quadrant", task.Quadrant()),
	)

	return task, nil
}

// MarkDone completes the task with the given id and returns its new value.
// Unknown ids return an error matching core.ErrNotFound and nothing is written.
func (t *Tracker) MarkDone(ctx context.Context, id int) (core.Task, error) {
	ctx, span := t.tracer.Start(ctx, "Tracker.MarkDone", trace.WithAttributes(attribute.Int("task.id", id)))
	defer span.End()

	tasks, err := t.load(ctx)
	if err != nil {
		return core.Task{}, recordError(span, err)
	}

	updated, err := core.MarkDone(tasks, id)
	if err != nil {
		t.logger.WarnContext(ctx, "task not found", slog.Int("task_id", id))
		return core.Task{}, recordError(span, err)
	}

	if err := t.save(ctx, updated); err != nil {
		return core.Task{}, recordError(span, err)
	}

	var task core.Task
	for _, candidate := range updated {
		if candidate.ID == id {
			task = candidate
			break
		}
	}

	t.completed.Add(ctx, 1, metric.WithAttributes(attribute.Int("quadrant", task.Quadrant())))
	t.logger.InfoContext(ctx, "task completed", slog.Int("task_id", id))

	return task, nil
}

// List returns the ranked task list, without completed tasks unless includeDone is set.
func (t *Tracker) List(ctx context.Context, includeDone bool) ([]core.Task, error) {
	ctx, span := t.tracer.Start(ctx, "Tracker.List", trace.WithAttributes(attribute.Bool("include_done", includeDone)))
	defer span.End()

	tasks, err := t.load(ctx)
	if err != nil {
		return nil, recordError(span, err)
	}

	ordered := core.Sorted(tasks, includeDone)
	span.SetAttributes(attribute.Int("task.count", len(ordered)))

	return ordered, nil
}

func (t *Tracker) load(ctx context.Context) ([]core.Task, error) {
	tasks, err := t.storage.Load(ctx)
	if err != nil {
		t.logger.ErrorContext(ctx, "failed to load tasks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	t.logger.DebugContext(ctx, "tasks loaded", slog.Int("count", len(tasks)))
	return tasks, nil
}

func (t *Tracker) save(ctx context.Context, tasks []core.Task) error {
	if err := t.storage.Save(ctx, tasks); err != nil {
		t.logger.ErrorContext(ctx, "failed to save tasks", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	t.logger.DebugContext(ctx, "tasks saved", slog.Int("count", len(tasks)))
	return nil
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
