package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, title, description, due_date, parent_task_id, dependencies, assigned_users, status, versioning, created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE (cardinality($1::text[]) = 0 OR id = ANY($1::text[]))
	  AND ($2 = '' OR assigned_users ? $2)
	  AND ($3 = '' OR status->>'current_status' = $3)
	ORDER BY created_at DESC
	LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query,
		textArray(filter.IDs),
		filter.AssignedUser,
		string(filter.Status),
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidInput
	}

	const query = `
	INSERT INTO tasks (id, title, description, due_date, parent_task_id, dependencies, assigned_users, status, versioning, version)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.DueDate,
		task.ParentTaskID,
		marshalStrings(task.Dependencies),
		marshalStrings(task.AssignedUsers),
		marshalJSON(task.Status),
		marshalJSON(task.Versioning),
		task.Versioning.Current,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

// Update writes the task back only when the stored version still equals
// expectedVersion. A concurrent writer that got there first makes the
// WHERE clause miss, which surfaces as ErrVersionConflict.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task, expectedVersion int) error {
	if task == nil {
		return domain.ErrInvalidInput
	}

	const query = `
	UPDATE tasks
	SET title = $3,
		description = $4,
		due_date = $5,
		parent_task_id = $6,
		dependencies = $7,
		assigned_users = $8,
		status = $9,
		versioning = $10,
		version = $11,
		updated_at = NOW()
	WHERE id = $1 AND version = $2
	RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		task.ID,
		expectedVersion,
		task.Title,
		task.Description,
		task.DueDate,
		task.ParentTaskID,
		marshalStrings(task.Dependencies),
		marshalStrings(task.AssignedUsers),
		marshalJSON(task.Status),
		marshalJSON(task.Versioning),
		task.Versioning.Current,
	).Scan(&task.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	// Distinguish a stale version from a deleted row.
	var exists bool
	if checkErr := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, task.ID,
	).Scan(&exists); checkErr != nil {
		return checkErr
	}
	if exists {
		return domain.ErrVersionConflict
	}
	return domain.ErrTaskNotFound
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		dependencies []byte
		assigned     []byte
		status       []byte
		versioning   []byte
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.ParentTaskID,
		&dependencies,
		&assigned,
		&status,
		&versioning,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Dependencies = unmarshalStrings(dependencies)
	task.AssignedUsers = unmarshalStrings(assigned)
	unmarshalJSON(status, &task.Status)
	unmarshalJSON(versioning, &task.Versioning)

	return &task, nil
}
