package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

const taskColumns = `
	t.id, t.title, t.description, t.status, t.priority, t.employee_id,
	e.full_name AS employee_name, t.date, t.start_time, t.end_time,
	t.git_link, t.hosting_link, t.task_type, t.estimated_hours,
	t.created_at, t.updated_at`

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (title, description, status, priority, employee_id, date,
			start_time, end_time, git_link, hosting_link, task_type, estimated_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority,
		task.EmployeeID, task.Date, task.StartTime, task.EndTime,
		task.GitLink, task.HostingLink, task.TaskType, task.EstimatedHours,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.id = $1`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	screenshots, err := r.GetScreenshots(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	task.Screenshots = screenshots

	return &task, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5, date = $6,
			start_time = $7, end_time = $8, git_link = $9, hosting_link = $10,
			task_type = $11, estimated_hours = $12, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.Date, task.StartTime, task.EndTime,
		task.GitLink, task.HostingLink, task.TaskType, task.EstimatedHours,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

// Delete removes the task row; screenshot rows go with it via the schema's
// ON DELETE CASCADE.
func (r *TaskRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if rows == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int) ([]entities.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.employee_id = $1
		ORDER BY t.date DESC, t.id DESC`

	tasks := []entities.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, employeeID); err != nil {
		return nil, fmt.Errorf("list tasks by employee: %w", err)
	}

	for i := range tasks {
		screenshots, err := r.GetScreenshots(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Screenshots = screenshots
	}

	return tasks, nil
}

// AddScreenshots inserts new attachment rows. Existing rows are never
// updated or reordered; insertion order is preserved by the serial id.
func (r *TaskRepositoryImpl) AddScreenshots(ctx context.Context, taskID int, screenshots []entities.Screenshot) error {
	if len(screenshots) == 0 {
		return nil
	}

	query := `INSERT INTO screenshots (task_id, image) VALUES ($1, $2) RETURNING id`

	for i := range screenshots {
		screenshots[i].TaskID = taskID
		err := r.db.QueryRowContext(ctx, query, taskID, screenshots[i].Image).Scan(&screenshots[i].ID)
		if err != nil {
			return fmt.Errorf("add screenshot: %w", err)
		}
	}

	return nil
}

func (r *TaskRepositoryImpl) GetScreenshots(ctx context.Context, taskID int) ([]entities.Screenshot, error) {
	query := `SELECT id, task_id, image FROM screenshots WHERE task_id = $1 ORDER BY id`

	screenshots := []entities.Screenshot{}
	if err := r.db.SelectContext(ctx, &screenshots, query, taskID); err != nil {
		return nil, fmt.Errorf("get screenshots: %w", err)
	}

	return screenshots, nil
}
