package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/staffdesk/core/internal/application/services"
	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/ports"
)

func newTaskFixture(t *testing.T) (*services.TaskService, *memTaskRepo, *memEmployeeRepo, *memStore) {
	t.Helper()
	tasks := newMemTaskRepo()
	employees := newMemEmployeeRepo()
	store := &memStore{}
	svc := services.NewTaskService(tasks, employees, store, testLogger())
	return svc, tasks, employees, store
}

func seedEmployee(t *testing.T, repo *memEmployeeRepo) int {
	t.Helper()
	e := &entities.Employee{FullName: "Ada Lovelace", Role: entities.RoleEmployee, Email: "ada@staffdesk.local"}
	if err := repo.Create(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	return e.ID
}

func validForm(employeeID int) ports.SaveTaskRequest {
	return ports.SaveTaskRequest{
		Title:       "Implement login",
		Description: "Wire the login form to the API",
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EmployeeID:  employeeID,
		Start:       entities.Clock{Hour: 9, Minute: 30, Meridiem: entities.MeridiemAM},
		End:         entities.Clock{Hour: 3, Minute: 45, Meridiem: entities.MeridiemPM},
	}
}

func TestCreateTaskNormalizesClocks(t *testing.T) {
	svc, _, employees, _ := newTaskFixture(t)
	id := seedEmployee(t, employees)

	task, err := svc.CreateTask(context.Background(), validForm(id))
	if err != nil {
		t.Fatal(err)
	}

	if task.StartTime != "09:30" {
		t.Errorf("start: expected 09:30, got %s", task.StartTime)
	}
	if task.EndTime != "15:45" {
		t.Errorf("end: expected 15:45, got %s", task.EndTime)
	}
}

func TestCreateTaskMidnightAndNoon(t *testing.T) {
	svc, _, employees, _ := newTaskFixture(t)
	id := seedEmployee(t, employees)

	form := validForm(id)
	form.Start = entities.Clock{Hour: 12, Minute: 0, Meridiem: entities.MeridiemAM}
	form.End = entities.Clock{Hour: 12, Minute: 15, Meridiem: entities.MeridiemPM}

	task, err := svc.CreateTask(context.Background(), form)
	if err != nil {
		t.Fatal(err)
	}

	if task.StartTime != "00:00" {
		t.Errorf("12 AM must normalize to 00:00, got %s", task.StartTime)
	}
	if task.EndTime != "12:15" {
		t.Errorf("12 PM must stay 12:15, got %s", task.EndTime)
	}
}

func TestCreateTaskDefaults(t *testing.T) {
	svc, _, employees, _ := newTaskFixture(t)
	id := seedEmployee(t, employees)

	task, err := svc.CreateTask(context.Background(), validForm(id))
	if err != nil {
		t.Fatal(err)
	}

	if task.Status != entities.TaskStatusPending {
		t.Errorf("expected Pending, got %s", task.Status)
	}
	if task.Priority != entities.PriorityMedium {
		t.Errorf("expected Medium, got %s", task.Priority)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc, _, employees, _ := newTaskFixture(t)
	id := seedEmployee(t, employees)

	form := validForm(id)
	form.Title = "  "
	form.Description = ""
	form.Date = time.Time{}
	form.Start.Hour = 13
	form.End.Minute = 7

	_, err := svc.CreateTask(context.Background(), form)
	var ve *entities.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	for _, field := range []string{"title", "description", "date", "start_time", "end_time"} {
		if len(ve.Fields[field]) == 0 {
			t.Errorf("expected a message on %s, got %v", field, ve.Fields)
		}
	}
}

func TestCreateTaskUnknownAssignee(t *testing.T) {
	svc, _, _, _ := newTaskFixture(t)

	_, err := svc.CreateTask(context.Background(), validForm(99))
	if !errors.Is(err, entities.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestUpdateTaskAppendsScreenshots(t *testing.T) {
	svc, tasks, employees, _ := newTaskFixture(t)
	id := seedEmployee(t, employees)
	ctx := context.Background()

	form := validForm(id)
	form.Screenshots = []ports.Attachment{
		{Filename: "before.png", Content: strings.NewReader("img1")},
	}
	task, err := svc.CreateTask(ctx, form)
	if err != nil {
		t.Fatal(err)
	}
	if len(task.Screenshots) != 1 {
		t.Fatalf("expected 1 screenshot after create, got %d", len(task.Screenshots))
	}
	first := task.Screenshots[0].Image

	update := validForm(id)
	update.Status = entities.TaskStatusCompleted
	update.Screenshots = []ports.Attachment{
		{Filename: "after.png", Content: strings.NewReader("img2")},
	}
	updated, err := svc.UpdateTask(ctx, task.ID, update)
	if err != nil {
		t.Fatal(err)
	}

	stored, err := tasks.GetScreenshots(ctx, updated.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 screenshots after update, got %d", len(stored))
	}
	if stored[0].Image != first {
		t.Error("existing screenshot must keep its position")
	}
	if updated.Status != entities.TaskStatusCompleted {
		t.Errorf("expected Completed, got %s", updated.Status)
	}
}

func TestUpdateTaskWithoutUploadsKeepsScreenshots(t *testing.T) {
	svc, tasks, employees, _ := newTaskFixture(t)
	id := seedEmployee(t, employees)
	ctx := context.Background()

	form := validForm(id)
	form.Screenshots = []ports.Attachment{
		{Filename: "one.png", Content: strings.NewReader("img")},
	}
	task, err := svc.CreateTask(ctx, form)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateTask(ctx, task.ID, validForm(id)); err != nil {
		t.Fatal(err)
	}

	stored, _ := tasks.GetScreenshots(ctx, task.ID)
	if len(stored) != 1 {
		t.Fatalf("update without uploads must not touch screenshots, got %d", len(stored))
	}
}

func TestDeleteTaskRemovesStoredFiles(t *testing.T) {
	svc, tasks, employees, store := newTaskFixture(t)
	id := seedEmployee(t, employees)
	ctx := context.Background()

	form := validForm(id)
	form.Screenshots = []ports.Attachment{
		{Filename: "a.png", Content: strings.NewReader("a")},
		{Filename: "b.png", Content: strings.NewReader("b")},
	}
	task, err := svc.CreateTask(ctx, form)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := tasks.GetByID(ctx, task.ID); !errors.Is(err, entities.ErrTaskNotFound) {
		t.Fatal("task must be gone after delete")
	}
	if len(store.removed) != 2 {
		t.Fatalf("expected 2 removed files, got %d", len(store.removed))
	}
}

func TestTasksForNewestFirst(t *testing.T) {
	svc, _, employees, _ := newTaskFixture(t)
	id := seedEmployee(t, employees)
	ctx := context.Background()

	older := validForm(id)
	older.Title = "older"
	older.Date = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	newer := validForm(id)
	newer.Title = "newer"
	newer.Date = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.CreateTask(ctx, older); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateTask(ctx, newer); err != nil {
		t.Fatal(err)
	}

	tasks, err := svc.TasksFor(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 || tasks[0].Title != "newer" {
		t.Fatalf("expected newest first, got %+v", tasks)
	}
}
