// Package query filters and paginates in-memory collections for list
// views. Filtering and pagination compose; a changed search term should be
// paired with page 1 by the caller.
package query

import (
	"strings"
	"time"

	"github.com/staffdesk/core/internal/domain/entities"
)

// TaskSearch holds the optional task list predicates. A nil/empty field
// means no constraint on that attribute.
type TaskSearch struct {
	Title string
	Date  *time.Time
}

// EmployeeSearch matches a single term against name, email or role, the
// way the directory search box does.
type EmployeeSearch struct {
	Term string
}

// Page is one slice of a paginated collection.
type Page[T any] struct {
	Items       []T `json:"results"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
}

// FilterTasks applies the ANDed predicates: case-insensitive substring on
// the title, calendar-day equality on the date.
func FilterTasks(tasks []entities.Task, search TaskSearch) []entities.Task {
	out := make([]entities.Task, 0, len(tasks))
	needle := strings.ToLower(search.Title)
	for _, task := range tasks {
		if needle != "" && !strings.Contains(strings.ToLower(task.Title), needle) {
			continue
		}
		if search.Date != nil && !sameDay(task.Date, *search.Date) {
			continue
		}
		out = append(out, task)
	}
	return out
}

// FilterEmployees keeps employees whose name, email or role contains the
// term, case-insensitively. An empty term keeps everything.
func FilterEmployees(employees []entities.Employee, search EmployeeSearch) []entities.Employee {
	needle := strings.ToLower(strings.TrimSpace(search.Term))
	if needle == "" {
		return employees
	}
	out := make([]entities.Employee, 0, len(employees))
	for _, emp := range employees {
		if strings.Contains(strings.ToLower(emp.FullName), needle) ||
			strings.Contains(strings.ToLower(emp.Email), needle) ||
			strings.Contains(strings.ToLower(string(emp.Role)), needle) {
			out = append(out, emp)
		}
	}
	return out
}

// Paginate slices items into 1-indexed pages of the given size. Out-of-range
// page numbers clamp into [1, TotalPages]; CurrentPage reports the clamped
// value. A non-positive size falls back to a single page holding everything.
func Paginate[T any](items []T, page, size int) Page[T] {
	total := len(items)
	if size <= 0 {
		size = total
		if size == 0 {
			size = 1
		}
	}

	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[start:end],
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
