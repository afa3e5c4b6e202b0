package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/infrastructure/logger"
	"github.com/staffdesk/core/internal/ports"
	"github.com/staffdesk/core/internal/suggest"
)

// SuggestionService builds next-task recommendations for an employee: it
// prompts the advisor with the employee's task history and parses the
// free-text reply into structured suggestions. Parsing never fails; a
// malformed reply just yields sparse records.
type SuggestionService struct {
	taskRepo     ports.TaskRepository
	employeeRepo ports.EmployeeRepository
	advisor      ports.Advisor
	logger       *logger.Logger
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(taskRepo ports.TaskRepository, employeeRepo ports.EmployeeRepository, advisor ports.Advisor, logger *logger.Logger) *SuggestionService {
	return &SuggestionService{
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		advisor:      advisor,
		logger:       logger,
	}
}

// ForEmployee returns the employee's current tasks together with advisor
// text and its parsed form.
func (s *SuggestionService) ForEmployee(ctx context.Context, employeeID int) (*ports.SuggestionReport, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}

	tasks, err := s.taskRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}

	prompt := buildPrompt(employee.FullName, tasks)
	nextTasks, err := s.advisor.NextTasks(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("suggestions: advisor: %w", err)
	}

	suggestions := suggest.Parse(nextTasks)
	s.logger.Infow("suggestions generated", "employee_id", employeeID, "count", len(suggestions))

	return &ports.SuggestionReport{
		EmployeeTasks: tasks,
		NextTasks:     nextTasks,
		Suggestions:   suggestions,
	}, nil
}

// buildPrompt asks for the exact block format the parser consumes.
func buildPrompt(name string, tasks []entities.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Employee %s has worked on the following tasks:\n", name)
	for _, t := range tasks {
		fmt.Fprintf(&b, "- %s [%s, %s priority]: %s\n", t.Title, t.Status, t.Priority, t.Description)
	}
	b.WriteString("\nSuggest the next tasks for this employee. ")
	b.WriteString("Answer with one block per task, blocks separated by a blank line, ")
	b.WriteString("each block containing exactly three lines:\n")
	b.WriteString("Title: <short title>\nDescription: <one sentence>\nPriority: <Low|Medium|High>\n")
	return b.String()
}
