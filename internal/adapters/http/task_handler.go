package http

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/core/internal/application/services"
	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/infrastructure/logger"
	"github.com/staffdesk/core/internal/ports"
)

// TaskHandler serves the task lifecycle. Create and update consume a
// multipart form because screenshots ride along with the scalar fields.
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask creates a task from the submitted form
func (h *TaskHandler) CreateTask(c echo.Context) error {
	req, closers, err := parseTaskForm(c)
	defer closeAll(closers)
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// GetTask returns one task with its screenshots
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask overwrites the task's fields and appends uploaded screenshots
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	req, closers, err := parseTaskForm(c)
	defer closeAll(closers)
	if err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task and its screenshots
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// parseTaskForm decodes the multipart task form. Clock fields stay as the
// raw 12-hour triples; the service validates and normalizes them. Returned
// closers must be closed after the service is done reading the uploads.
func parseTaskForm(c echo.Context) (ports.SaveTaskRequest, []multipart.File, error) {
	var req ports.SaveTaskRequest

	req.Title = c.FormValue("title")
	req.Description = c.FormValue("description")
	req.Status = entities.TaskStatus(c.FormValue("status"))
	req.Priority = entities.Priority(c.FormValue("priority"))

	if v := c.FormValue("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			ve := entities.NewValidationError()
			ve.Add("date", "Enter a valid date.")
			return req, nil, ve
		}
		req.Date = date
	}

	req.EmployeeID, _ = strconv.Atoi(c.FormValue("employee"))

	req.Start = parseClock(c, "start")
	req.End = parseClock(c, "end")

	req.GitLink = optionalString(c, "git_link")
	req.HostingLink = optionalString(c, "hosting_link")
	req.TaskType = optionalString(c, "task_type")

	if v := c.FormValue("estimated_hours"); v != "" {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil {
			ve := entities.NewValidationError()
			ve.Add("estimated_hours", "Enter a number.")
			return req, nil, ve
		}
		req.EstimatedHours = &hours
	}

	var closers []multipart.File
	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, fh := range form.File["screenshots"] {
			f, err := fh.Open()
			if err != nil {
				return req, closers, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
			}
			closers = append(closers, f)
			req.Screenshots = append(req.Screenshots, ports.Attachment{
				Filename: fh.Filename,
				Content:  f,
			})
		}
	}

	return req, closers, nil
}

func parseClock(c echo.Context, prefix string) entities.Clock {
	hour, _ := strconv.Atoi(c.FormValue(prefix + "_hour"))
	minute, _ := strconv.Atoi(c.FormValue(prefix + "_minute"))
	return entities.Clock{
		Hour:     hour,
		Minute:   minute,
		Meridiem: entities.Meridiem(c.FormValue(prefix + "_meridiem")),
	}
}

func optionalString(c echo.Context, field string) *string {
	if v := c.FormValue(field); v != "" {
		return &v
	}
	return nil
}

func closeAll(files []multipart.File) {
	for _, f := range files {
		f.Close()
	}
}
