package query_test

import (
	"testing"
	"time"

	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/query"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFilterTasks(t *testing.T) {
	tasks := []entities.Task{
		{ID: 1, Title: "Fix login bug", Date: day(2025, 3, 10)},
		{ID: 2, Title: "Deploy staging", Date: day(2025, 3, 11)},
		{ID: 3, Title: "fix LOGIN redirect", Date: day(2025, 3, 11)},
	}

	t.Run("Title Substring Case Insensitive", func(t *testing.T) {
		got := query.FilterTasks(tasks, query.TaskSearch{Title: "login"})
		if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("Date Day Precision", func(t *testing.T) {
		// Task timestamps can carry a time-of-day component; matching is
		// by calendar day.
		withTime := []entities.Task{
			{ID: 4, Title: "late one", Date: time.Date(2025, 3, 11, 23, 45, 0, 0, time.UTC)},
		}
		d := day(2025, 3, 11)
		got := query.FilterTasks(append(tasks, withTime...), query.TaskSearch{Date: &d})
		if len(got) != 3 {
			t.Errorf("expected 3 matches on 2025-03-11, got %d", len(got))
		}
	})

	t.Run("Predicates AND", func(t *testing.T) {
		d := day(2025, 3, 11)
		got := query.FilterTasks(tasks, query.TaskSearch{Title: "fix", Date: &d})
		if len(got) != 1 || got[0].ID != 3 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("No Constraints Returns All", func(t *testing.T) {
		got := query.FilterTasks(tasks, query.TaskSearch{})
		if len(got) != len(tasks) {
			t.Errorf("expected all %d, got %d", len(tasks), len(got))
		}
	})
}

func TestFilterEmployees(t *testing.T) {
	emps := []entities.Employee{
		{ID: 1, FullName: "Asha Rao", Email: "asha@corp.test", Role: entities.RoleEmployee},
		{ID: 2, FullName: "Ben Ortiz", Email: "ben@corp.test", Role: entities.RoleIntern},
	}
	if got := query.FilterEmployees(emps, query.EmployeeSearch{Term: "intern"}); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("role search: %+v", got)
	}
	if got := query.FilterEmployees(emps, query.EmployeeSearch{Term: "ASHA"}); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("name search: %+v", got)
	}
	if got := query.FilterEmployees(emps, query.EmployeeSearch{}); len(got) != 2 {
		t.Errorf("empty term should keep all, got %d", len(got))
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 10)
	for i := range items {
		items[i] = i + 1
	}

	t.Run("Ten Items Page Size Eight", func(t *testing.T) {
		p1 := query.Paginate(items, 1, 8)
		if len(p1.Items) != 8 || p1.TotalPages != 2 || p1.CurrentPage != 1 {
			t.Errorf("page 1: %+v", p1)
		}
		p2 := query.Paginate(items, 2, 8)
		if len(p2.Items) != 2 || p2.Items[0] != 9 || p2.Items[1] != 10 {
			t.Errorf("page 2: %+v", p2)
		}
	})

	t.Run("Concatenation Reconstructs Input", func(t *testing.T) {
		for _, size := range []int{1, 3, 4, 8, 10, 25} {
			first := query.Paginate(items, 1, size)
			var rebuilt []int
			for page := 1; page <= first.TotalPages; page++ {
				rebuilt = append(rebuilt, query.Paginate(items, page, size).Items...)
			}
			if len(rebuilt) != len(items) {
				t.Fatalf("size %d: rebuilt %d items", size, len(rebuilt))
			}
			for i, v := range rebuilt {
				if v != items[i] {
					t.Fatalf("size %d: order broken at %d", size, i)
				}
			}
			wantPages := (len(items) + size - 1) / size
			if first.TotalPages != wantPages {
				t.Errorf("size %d: total pages %d, want %d", size, first.TotalPages, wantPages)
			}
		}
	})

	t.Run("Out Of Range Clamps", func(t *testing.T) {
		p := query.Paginate(items, 99, 8)
		if p.CurrentPage != 2 || len(p.Items) != 2 {
			t.Errorf("beyond last: %+v", p)
		}
		p = query.Paginate(items, 0, 8)
		if p.CurrentPage != 1 || len(p.Items) != 8 {
			t.Errorf("below first: %+v", p)
		}
	})

	t.Run("Empty Collection", func(t *testing.T) {
		p := query.Paginate([]int{}, 1, 8)
		if len(p.Items) != 0 || p.TotalPages != 1 || p.CurrentPage != 1 {
			t.Errorf("empty: %+v", p)
		}
	})
}
