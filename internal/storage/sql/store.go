package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rezkam/eisen/internal/core"
)

const selectTasks = `SELECT id, title, importance, urgency, done FROM tasks ORDER BY position`

const deleteTasks = `DELETE FROM tasks`

var insertTask = map[Dialect]string{
	DialectSQLite:   `INSERT INTO tasks (position, id, title, importance, urgency, done) VALUES (?, ?, ?, ?, ?, ?)`,
	DialectPostgres: `INSERT INTO tasks (position, id, title, importance, urgency, done) VALUES ($1, $2, $3, $4, $5, $6)`,
}

// Store implements core.Storage on a SQL database.
// Rows keep the list order in the position column.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

func newStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads all tasks in list order. An empty table yields an empty list.
func (s *Store) Load(ctx context.Context) ([]core.Task, error) {
	rows, err := s.db.QueryContext(ctx, selectTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []core.Task{}
	for i := 0; rows.Next(); i++ {
		var (
			id                  int64
			title               string
			importance, urgency string
			done                bool
		)
		if err := rows.Scan(&id, &title, &importance, &urgency, &done); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		task, err := toTask(i, id, title, importance, urgency, done)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func toTask(index int, id int64, title, importance, urgency string, done bool) (core.Task, error) {
	imp, err := core.ParseImportance(importance)
	if err != nil {
		return core.Task{}, &core.FieldError{Index: index, Field: "importance", Err: err}
	}
	urg, err := core.ParseUrgency(urgency)
	if err != nil {
		return core.Task{}, &core.FieldError{Index: index, Field: "urgency", Err: err}
	}

	return core.Task{
		ID:         int(id),
		Title:      title,
		Importance: imp,
		Urgency:    urg,
		Done:       done,
	}, nil
}

// Save replaces the table contents with tasks in a single transaction.
func (s *Store) Save(ctx context.Context, tasks []core.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteTasks); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertTask[s.dialect])
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.ExecContext(ctx, i, t.ID, t.Title, string(t.Importance), string(t.Urgency), t.Done); err != nil {
			return fmt.Errorf("failed to insert task %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
