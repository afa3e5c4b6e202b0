package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/staffdesk/core/internal/application/services"
	"github.com/staffdesk/core/internal/domain/entities"
)

const advisorReply = "Title: Add caching\nDescription: Cache the employee list.\nPriority: High\n\nTitle: Write docs\nDescription: Document the API.\nPriority: Low"

func newSuggestionFixture(t *testing.T, advisor *stubAdvisor) (*services.SuggestionService, *memTaskRepo, *memEmployeeRepo) {
	t.Helper()
	tasks := newMemTaskRepo()
	employees := newMemEmployeeRepo()
	svc := services.NewSuggestionService(tasks, employees, advisor, testLogger())
	return svc, tasks, employees
}

func TestForEmployeeParsesReply(t *testing.T) {
	advisor := &stubAdvisor{reply: advisorReply}
	svc, tasks, employees := newSuggestionFixture(t, advisor)
	ctx := context.Background()

	id := seedEmployee(t, employees)
	task := &entities.Task{
		Title:       "Implement login",
		Description: "Wire the login form",
		Status:      entities.TaskStatusInProgress,
		Priority:    entities.PriorityHigh,
		EmployeeID:  id,
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatal(err)
	}

	report, err := svc.ForEmployee(ctx, id)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.EmployeeTasks) != 1 {
		t.Fatalf("expected 1 task in report, got %d", len(report.EmployeeTasks))
	}
	if report.NextTasks != advisorReply {
		t.Error("report must carry the raw advisor text")
	}
	if len(report.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(report.Suggestions))
	}
	if report.Suggestions[0].Title != "Add caching" || report.Suggestions[0].Priority != "High" {
		t.Errorf("unexpected first suggestion: %+v", report.Suggestions[0])
	}
	if report.Suggestions[1].Title != "Write docs" {
		t.Errorf("unexpected second suggestion: %+v", report.Suggestions[1])
	}

	if !strings.Contains(advisor.seen, "Ada Lovelace") {
		t.Error("prompt must name the employee")
	}
	if !strings.Contains(advisor.seen, "Implement login") {
		t.Error("prompt must include the task history")
	}
}

func TestForEmployeeUnknownEmployee(t *testing.T) {
	svc, _, _ := newSuggestionFixture(t, &stubAdvisor{reply: advisorReply})

	_, err := svc.ForEmployee(context.Background(), 7)
	if !errors.Is(err, entities.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestForEmployeeAdvisorError(t *testing.T) {
	advisor := &stubAdvisor{err: errors.New("upstream unavailable")}
	svc, _, employees := newSuggestionFixture(t, advisor)

	id := seedEmployee(t, employees)
	_, err := svc.ForEmployee(context.Background(), id)
	if err == nil || !strings.Contains(err.Error(), "advisor") {
		t.Fatalf("expected advisor error, got %v", err)
	}
}

func TestForEmployeeMalformedReplyYieldsNoSuggestions(t *testing.T) {
	advisor := &stubAdvisor{reply: "sorry, I cannot help with that"}
	svc, _, employees := newSuggestionFixture(t, advisor)

	id := seedEmployee(t, employees)
	report, err := svc.ForEmployee(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}

	// One label-free block parses to one empty suggestion; nothing errors.
	if len(report.Suggestions) != 1 {
		t.Fatalf("expected 1 sparse suggestion, got %d", len(report.Suggestions))
	}
	if report.Suggestions[0].Title != "" {
		t.Errorf("expected empty title, got %q", report.Suggestions[0].Title)
	}
}
