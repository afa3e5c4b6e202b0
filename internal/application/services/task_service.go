package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/infrastructure/logger"
	"github.com/staffdesk/core/internal/ports"
)

// TaskService owns the task lifecycle: validation, 12-to-24-hour time
// normalization, the append-only screenshot sequence, and deletion together
// with owned attachments.
type TaskService struct {
	taskRepo     ports.TaskRepository
	employeeRepo ports.EmployeeRepository
	store        ports.AttachmentStore
	logger       *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, employeeRepo ports.EmployeeRepository, store ports.AttachmentStore, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		store:        store,
		logger:       logger,
	}
}

// CreateTask validates the form, normalizes both clock triples and persists
// a new task with any uploaded screenshots.
func (s *TaskService) CreateTask(ctx context.Context, req ports.SaveTaskRequest) (*entities.Task, error) {
	if err := validateTaskForm(req); err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, fmt.Errorf("create task: assignee: %w", err)
	}

	task := &entities.Task{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		EmployeeID:     req.EmployeeID,
		Date:           req.Date,
		StartTime:      req.Start.Normalize(),
		EndTime:        req.End.Normalize(),
		GitLink:        req.GitLink,
		HostingLink:    req.HostingLink,
		TaskType:       req.TaskType,
		EstimatedHours: req.EstimatedHours,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if task.Status == "" {
		task.Status = entities.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = entities.PriorityMedium
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if err := s.appendScreenshots(ctx, task, req.Screenshots); err != nil {
		return nil, err
	}

	s.logger.Infow("task created", "task_id", task.ID, "employee_id", task.EmployeeID, "title", task.Title)
	return task, nil
}

// GetTask retrieves a task with its screenshots.
func (s *TaskService) GetTask(ctx context.Context, id int) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// UpdateTask overwrites the task's scalar fields and appends any newly
// uploaded screenshots. Prior attachments are never replaced, removed or
// reordered here.
func (s *TaskService) UpdateTask(ctx context.Context, id int, req ports.SaveTaskRequest) (*entities.Task, error) {
	if err := validateTaskForm(req); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	task.Title = strings.TrimSpace(req.Title)
	task.Description = req.Description
	task.Date = req.Date
	task.StartTime = req.Start.Normalize()
	task.EndTime = req.End.Normalize()
	task.GitLink = req.GitLink
	task.HostingLink = req.HostingLink
	task.TaskType = req.TaskType
	task.EstimatedHours = req.EstimatedHours
	// Any status may replace any other; there is no transition graph.
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	if err := s.appendScreenshots(ctx, task, req.Screenshots); err != nil {
		return nil, err
	}

	s.logger.Infow("task updated", "task_id", task.ID, "status", task.Status)
	return task, nil
}

// DeleteTask removes the task, its screenshot rows and, best effort, the
// stored files. Irreversible; confirmation belongs at the calling boundary.
func (s *TaskService) DeleteTask(ctx context.Context, id int) error {
	screenshots, err := s.taskRepo.GetScreenshots(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	for _, shot := range screenshots {
		if err := s.store.Remove(ctx, shot.Image); err != nil {
			s.logger.Warnw("orphaned attachment file", "task_id", id, "image", shot.Image, "error", err)
		}
	}

	s.logger.Infow("task deleted", "task_id", id, "screenshots", len(screenshots))
	return nil
}

// TasksFor lists an employee's tasks, newest first, denormalized with the
// employee name.
func (s *TaskService) TasksFor(ctx context.Context, employeeID int) ([]entities.Task, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, fmt.Errorf("employee tasks: %w", err)
	}

	tasks, err := s.taskRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("employee tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) appendScreenshots(ctx context.Context, task *entities.Task, uploads []ports.Attachment) error {
	if len(uploads) == 0 {
		return nil
	}

	rows := make([]entities.Screenshot, 0, len(uploads))
	for _, upload := range uploads {
		ref, err := s.store.Save(ctx, upload.Filename, upload.Content)
		if err != nil {
			return fmt.Errorf("store screenshot %q: %w", upload.Filename, err)
		}
		rows = append(rows, entities.Screenshot{TaskID: task.ID, Image: ref})
	}

	if err := s.taskRepo.AddScreenshots(ctx, task.ID, rows); err != nil {
		return fmt.Errorf("append screenshots: %w", err)
	}

	task.Screenshots = append(task.Screenshots, rows...)
	return nil
}

func validateTaskForm(req ports.SaveTaskRequest) error {
	ve := entities.NewValidationError()
	if strings.TrimSpace(req.Title) == "" {
		ve.Add("title", "This field is required.")
	}
	if strings.TrimSpace(req.Description) == "" {
		ve.Add("description", "This field is required.")
	}
	if req.Date.IsZero() {
		ve.Add("date", "This field is required.")
	}
	if req.Status != "" && !req.Status.IsValid() {
		ve.Add("status", fmt.Sprintf("%q is not a valid choice.", req.Status))
	}
	if req.Priority != "" && !req.Priority.IsValid() {
		ve.Add("priority", fmt.Sprintf("%q is not a valid choice.", req.Priority))
	}
	if err := req.Start.Validate(); err != nil {
		ve.Add("start_time", err.Error())
	}
	if err := req.End.Validate(); err != nil {
		ve.Add("end_time", err.Error())
	}
	if !ve.Empty() {
		return ve
	}
	return nil
}
