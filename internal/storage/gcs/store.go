package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/rezkam/eisen/internal/core"
	"github.com/rezkam/eisen/internal/storage/document"
	"google.golang.org/api/option"
)

// DefaultObject is the object name used when none is configured.
const DefaultObject = "todo.json"

// Store is a GCS-based implementation of core.Storage.
// The task list is kept as one JSON object in the bucket.
type Store struct {
	client *storage.Client
	bucket string
	object string
}

// Config selects the object holding the task list.
type Config struct {
	Bucket string
	Object string // defaults to DefaultObject

	// Endpoint overrides the GCS API endpoint, e.g. for a local emulator.
	// Requests to a custom endpoint are sent unauthenticated.
	Endpoint string
}

// NewStore creates a new GCS store.
// It assumes the client is authenticated (e.g. via GOOGLE_APPLICATION_CREDENTIALS)
// unless a custom endpoint is configured.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	object := cfg.Object
	if object == "" {
		object = DefaultObject
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		object: object,
	}, nil
}

func (s *Store) handle() *storage.ObjectHandle {
	return s.client.Bucket(s.bucket).Object(s.object)
}

// Load reads the task list object. A missing object yields an empty list.
func (s *Store) Load(ctx context.Context) ([]core.Task, error) {
	r, err := s.handle().NewReader(ctx)
	if err != nil {
		// Use errors.Is to handle wrapped errors from GCS client
		if errors.Is(err, storage.ErrObjectNotExist) {
			return []core.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	tasks, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("gs://%s/%s: %w", s.bucket, s.object, err)
	}
	return tasks, nil
}

// Save overwrites the task list object. GCS publishes the new generation
// only when the writer is closed successfully.
func (s *Store) Save(ctx context.Context, tasks []core.Task) error {
	w := s.handle().NewWriter(ctx)
	w.ContentType = "application/json"

	if err := document.Encode(w, tasks); err != nil {
		w.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
