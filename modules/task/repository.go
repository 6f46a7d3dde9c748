package task

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the storage contract for task records. FindPage and
// Count share the same filter semantics: an empty query matches everything,
// a non-empty query matches tasks whose title or description contains it
// case-insensitively. Pages are ordered by created_at descending with id
// ascending as the tie-break.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindPage(ctx context.Context, query string, limit int32, offset int64) ([]Task, error)
	Count(ctx context.Context, query string) (int64, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostgresRepository provides PostgreSQL-based task storage via pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// Compile-time interface check.
var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a new PostgreSQL task repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const taskColumns = "id, title, description, status, priority, due_at, tags, created_at, updated_at"

const createTaskSQL = `
INSERT INTO tasks (` + taskColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const getTaskSQL = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1`

const listTasksSQL = `
SELECT ` + taskColumns + `
FROM tasks
WHERE $1::text = '' OR title ILIKE $2 OR description ILIKE $2
ORDER BY created_at DESC, id ASC
LIMIT $3 OFFSET $4`

const countTasksSQL = `
SELECT count(*)
FROM tasks
WHERE $1::text = '' OR title ILIKE $2 OR description ILIKE $2`

const updateTaskSQL = `
UPDATE tasks
SET title = $2, description = $3, status = $4, priority = $5,
    due_at = $6, tags = $7, updated_at = $8
WHERE id = $1`

const deleteTaskSQL = `
DELETE FROM tasks
WHERE id = $1`

// Create inserts a new record. The caller assigns id and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, t *Task) error {
	_, err := r.pool.Exec(ctx, createTaskSQL,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority),
		t.DueAt, t.Tags, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

// FindByID retrieves a task by ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	row := r.pool.QueryRow(ctx, getTaskSQL, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// FindPage retrieves one page of the ordered, filtered result.
func (r *PostgresRepository) FindPage(ctx context.Context, query string, limit int32, offset int64) ([]Task, error) {
	rows, err := r.pool.Query(ctx, listTasksSQL, query, likePattern(query), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]Task, 0, limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Count returns the total number of records matching the filter.
func (r *PostgresRepository) Count(ctx context.Context, query string) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, countTasksSQL, query, likePattern(query)).Scan(&total)
	return total, err
}

// Update persists a fully merged record. Fails with ErrTaskNotFound if the
// row disappeared between load and write.
func (r *PostgresRepository) Update(ctx context.Context, t *Task) error {
	ct, err := r.pool.Exec(ctx, updateTaskSQL,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority),
		t.DueAt, t.Tags, t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete permanently removes a record. A second delete of the same id fails
// with ErrTaskNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, deleteTaskSQL, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// scanTask reads one row in taskColumns order.
func scanTask(row pgx.Row) (*Task, error) {
	var (
		t        Task
		status   string
		priority string
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &priority,
		&t.DueAt, &t.Tags, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Status = Status(status)
	t.Priority = Priority(priority)
	return &t, nil
}

// likePattern builds a contains-match ILIKE pattern, escaping LIKE
// metacharacters so a query like "100%" matches literally.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + escaped + "%"
}
