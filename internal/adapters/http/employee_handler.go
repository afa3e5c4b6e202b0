package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/core/internal/application/services"
	"github.com/staffdesk/core/internal/infrastructure/logger"
	"github.com/staffdesk/core/internal/ports"
)

const defaultPageSize = 8

// EmployeeHandler serves the employee directory, an employee's task list and
// the AI suggestion report.
type EmployeeHandler struct {
	employeeService   *services.EmployeeService
	taskService       *services.TaskService
	suggestionService *services.SuggestionService
	logger            *logger.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService, taskService *services.TaskService, suggestionService *services.SuggestionService, logger *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService:   employeeService,
		taskService:       taskService,
		suggestionService: suggestionService,
		logger:            logger,
	}
}

// ListEmployees returns one page of the (optionally filtered) directory
func (h *EmployeeHandler) ListEmployees(c echo.Context) error {
	term := c.QueryParam("search")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	result, err := h.employeeService.ListEmployees(c.Request().Context(), term, page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// CreateEmployee adds a directory entry
func (h *EmployeeHandler) CreateEmployee(c echo.Context) error {
	var req ports.EmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	employee, err := h.employeeService.CreateEmployee(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, employee)
}

// GetEmployee returns one profile
func (h *EmployeeHandler) GetEmployee(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	employee, err := h.employeeService.GetEmployee(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

// UpdateEmployee overwrites a profile
func (h *EmployeeHandler) UpdateEmployee(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ports.EmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

// DeleteEmployee removes a profile
func (h *EmployeeHandler) DeleteEmployee(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.employeeService.DeleteEmployee(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// EmployeeTasks lists the employee's tasks, newest first
func (h *EmployeeHandler) EmployeeTasks(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.TasksFor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// EmployeeSuggestions returns the advisor's next-task report
func (h *EmployeeHandler) EmployeeSuggestions(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	report, err := h.suggestionService.ForEmployee(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
