package services_test

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/infrastructure/logger"
	"github.com/staffdesk/core/internal/ports"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// In-memory repositories. Deletes are raw row removals, like the SQL
// implementations: no cascading, no conflict checks. That keeps the
// service-layer guard rails observable in tests.

type memCountryRepo struct {
	rows map[int]entities.Country
	next int
}

func newMemCountryRepo() *memCountryRepo {
	return &memCountryRepo{rows: make(map[int]entities.Country), next: 1}
}

func (r *memCountryRepo) Create(ctx context.Context, c *entities.Country) error {
	c.ID = r.next
	r.next++
	r.rows[c.ID] = *c
	return nil
}

func (r *memCountryRepo) GetByID(ctx context.Context, id int) (*entities.Country, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, entities.ErrCountryNotFound
	}
	return &c, nil
}

func (r *memCountryRepo) Update(ctx context.Context, c *entities.Country) error {
	if _, ok := r.rows[c.ID]; !ok {
		return entities.ErrCountryNotFound
	}
	r.rows[c.ID] = *c
	return nil
}

func (r *memCountryRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.rows[id]; !ok {
		return entities.ErrCountryNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memCountryRepo) List(ctx context.Context) ([]entities.Country, error) {
	out := make([]entities.Country, 0, len(r.rows))
	for _, c := range r.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memStateRepo struct {
	rows map[int]entities.State
	next int
}

func newMemStateRepo() *memStateRepo {
	return &memStateRepo{rows: make(map[int]entities.State), next: 1}
}

func (r *memStateRepo) Create(ctx context.Context, s *entities.State) error {
	s.ID = r.next
	r.next++
	r.rows[s.ID] = *s
	return nil
}

func (r *memStateRepo) GetByID(ctx context.Context, id int) (*entities.State, error) {
	s, ok := r.rows[id]
	if !ok {
		return nil, entities.ErrStateNotFound
	}
	return &s, nil
}

func (r *memStateRepo) Update(ctx context.Context, s *entities.State) error {
	if _, ok := r.rows[s.ID]; !ok {
		return entities.ErrStateNotFound
	}
	r.rows[s.ID] = *s
	return nil
}

func (r *memStateRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.rows[id]; !ok {
		return entities.ErrStateNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memStateRepo) List(ctx context.Context) ([]entities.State, error) {
	out := make([]entities.State, 0, len(r.rows))
	for _, s := range r.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memStateRepo) CountByCountry(ctx context.Context, countryID int) (int, error) {
	n := 0
	for _, s := range r.rows {
		if s.CountryID == countryID {
			n++
		}
	}
	return n, nil
}

type memCityRepo struct {
	rows map[int]entities.City
	next int
}

func newMemCityRepo() *memCityRepo {
	return &memCityRepo{rows: make(map[int]entities.City), next: 1}
}

func (r *memCityRepo) Create(ctx context.Context, c *entities.City) error {
	c.ID = r.next
	r.next++
	r.rows[c.ID] = *c
	return nil
}

func (r *memCityRepo) GetByID(ctx context.Context, id int) (*entities.City, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, entities.ErrCityNotFound
	}
	return &c, nil
}

func (r *memCityRepo) Update(ctx context.Context, c *entities.City) error {
	if _, ok := r.rows[c.ID]; !ok {
		return entities.ErrCityNotFound
	}
	r.rows[c.ID] = *c
	return nil
}

func (r *memCityRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.rows[id]; !ok {
		return entities.ErrCityNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memCityRepo) List(ctx context.Context) ([]entities.City, error) {
	out := make([]entities.City, 0, len(r.rows))
	for _, c := range r.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memCityRepo) CountByState(ctx context.Context, stateID int) (int, error) {
	n := 0
	for _, c := range r.rows {
		if c.StateID == stateID {
			n++
		}
	}
	return n, nil
}

type memEmployeeRepo struct {
	rows map[int]entities.Employee
	next int
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{rows: make(map[int]entities.Employee), next: 1}
}

func (r *memEmployeeRepo) Create(ctx context.Context, e *entities.Employee) error {
	e.ID = r.next
	r.next++
	r.rows[e.ID] = *e
	return nil
}

func (r *memEmployeeRepo) GetByID(ctx context.Context, id int) (*entities.Employee, error) {
	e, ok := r.rows[id]
	if !ok {
		return nil, entities.ErrEmployeeNotFound
	}
	return &e, nil
}

func (r *memEmployeeRepo) Update(ctx context.Context, e *entities.Employee) error {
	if _, ok := r.rows[e.ID]; !ok {
		return entities.ErrEmployeeNotFound
	}
	r.rows[e.ID] = *e
	return nil
}

func (r *memEmployeeRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.rows[id]; !ok {
		return entities.ErrEmployeeNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memEmployeeRepo) List(ctx context.Context) ([]entities.Employee, error) {
	out := make([]entities.Employee, 0, len(r.rows))
	for _, e := range r.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memTaskRepo struct {
	rows        map[int]entities.Task
	screenshots map[int][]entities.Screenshot
	next        int
	nextShot    int
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{
		rows:        make(map[int]entities.Task),
		screenshots: make(map[int][]entities.Screenshot),
		next:        1,
		nextShot:    1,
	}
}

func (r *memTaskRepo) Create(ctx context.Context, t *entities.Task) error {
	t.ID = r.next
	r.next++
	stored := *t
	stored.Screenshots = nil
	r.rows[t.ID] = stored
	return nil
}

func (r *memTaskRepo) GetByID(ctx context.Context, id int) (*entities.Task, error) {
	t, ok := r.rows[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	t.Screenshots = append([]entities.Screenshot(nil), r.screenshots[id]...)
	return &t, nil
}

func (r *memTaskRepo) Update(ctx context.Context, t *entities.Task) error {
	if _, ok := r.rows[t.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	stored := *t
	stored.Screenshots = nil
	r.rows[t.ID] = stored
	return nil
}

func (r *memTaskRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.rows[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.rows, id)
	delete(r.screenshots, id)
	return nil
}

func (r *memTaskRepo) ListByEmployee(ctx context.Context, employeeID int) ([]entities.Task, error) {
	out := []entities.Task{}
	for _, t := range r.rows {
		if t.EmployeeID == employeeID {
			t.Screenshots = append([]entities.Screenshot(nil), r.screenshots[t.ID]...)
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memTaskRepo) AddScreenshots(ctx context.Context, taskID int, shots []entities.Screenshot) error {
	if _, ok := r.rows[taskID]; !ok {
		return entities.ErrTaskNotFound
	}
	for i := range shots {
		shots[i].ID = r.nextShot
		r.nextShot++
		shots[i].TaskID = taskID
		r.screenshots[taskID] = append(r.screenshots[taskID], shots[i])
	}
	return nil
}

func (r *memTaskRepo) GetScreenshots(ctx context.Context, taskID int) ([]entities.Screenshot, error) {
	return append([]entities.Screenshot(nil), r.screenshots[taskID]...), nil
}

// memStore records saved and removed attachment refs.
type memStore struct {
	saved   []string
	removed []string
	next    int
}

func (s *memStore) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	io.Copy(io.Discard, content)
	s.next++
	ref := fmt.Sprintf("shot-%d.png", s.next)
	s.saved = append(s.saved, ref)
	return ref, nil
}

func (s *memStore) Remove(ctx context.Context, ref string) error {
	s.removed = append(s.removed, ref)
	return nil
}

// stubAdvisor replies with canned text, or an error.
type stubAdvisor struct {
	reply string
	err   error
	seen  string
}

func (a *stubAdvisor) NextTasks(ctx context.Context, prompt string) (string, error) {
	a.seen = prompt
	if a.err != nil {
		return "", a.err
	}
	return a.reply, nil
}

var (
	_ ports.CountryRepository  = (*memCountryRepo)(nil)
	_ ports.StateRepository    = (*memStateRepo)(nil)
	_ ports.CityRepository     = (*memCityRepo)(nil)
	_ ports.EmployeeRepository = (*memEmployeeRepo)(nil)
	_ ports.TaskRepository     = (*memTaskRepo)(nil)
	_ ports.AttachmentStore    = (*memStore)(nil)
	_ ports.Advisor            = (*stubAdvisor)(nil)
)
