package entities

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrCountryNotFound    = errors.New("country not found")
	ErrStateNotFound      = errors.New("state not found")
	ErrCityNotFound       = errors.New("city not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrScreenshotNotFound = errors.New("screenshot not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrConflict           = errors.New("record is referenced by existing children")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidClock       = errors.New("invalid clock value")
)

// ValidationError carries per-field messages so callers can surface one
// notification per field.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Enums and types
type EmployeeRole string

const (
	RoleEmployee EmployeeRole = "EMPLOYEE"
	RoleIntern   EmployeeRole = "INTERN"
)

type TaskStatus string

// Task status carries no transition graph: any status may be set to any
// other status directly. Workflow correctness is the operator's burden.
const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusBlocked    TaskStatus = "Blocked"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

type Meridiem string

const (
	MeridiemAM Meridiem = "AM"
	MeridiemPM Meridiem = "PM"
)

// Country is the root of the geographic reference hierarchy.
type Country struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// State belongs to exactly one country.
type State struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	CountryID   int       `json:"country" db:"country_id"`
	CountryName string    `json:"country_name" db:"country_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// City belongs to exactly one state.
type City struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	StateID     int       `json:"state" db:"state_id"`
	StateName   string    `json:"state_name" db:"state_name"`
	CountryName string    `json:"country_name" db:"country_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Employee holds a snapshot reference into the geo hierarchy. The snapshot
// is not repaired when a referenced node is later deleted.
type Employee struct {
	ID              int          `json:"id" db:"id"`
	FullName        string       `json:"full_name" db:"full_name"`
	Role            EmployeeRole `json:"role" db:"role"`
	DOB             *time.Time   `json:"dob" db:"dob"`
	Gender          *string      `json:"gender" db:"gender"`
	Phone           *string      `json:"phone" db:"phone"`
	Email           string       `json:"email" db:"email"`
	Address         *string      `json:"address" db:"address"`
	CountryID       *int         `json:"country" db:"country_id"`
	StateID         *int         `json:"state" db:"state_id"`
	CityID          *int         `json:"city" db:"city_id"`
	MaritalStatus   *string      `json:"marital_status" db:"marital_status"`
	JobTitle        *string      `json:"job_title" db:"job_title"`
	JoiningDate     *time.Time   `json:"joining_date" db:"joining_date"`
	PreviousCompany *string      `json:"previous_company" db:"previous_company"`
	ExperienceYears *float64     `json:"experience_years" db:"experience_years"`
	CollegeName     *string      `json:"college_name" db:"college_name"`
	Course          *string      `json:"course" db:"course"`
	YearOfPass      *int         `json:"year_of_pass" db:"year_of_pass"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// Task is the unit of assigned work.
type Task struct {
	ID             int          `json:"id" db:"id"`
	Title          string       `json:"title" db:"title"`
	Description    string       `json:"description" db:"description"`
	Status         TaskStatus   `json:"status" db:"status"`
	Priority       Priority     `json:"priority" db:"priority"`
	EmployeeID     int          `json:"employee" db:"employee_id"`
	EmployeeName   string       `json:"employee_name" db:"employee_name"`
	Date           time.Time    `json:"date" db:"date"`
	StartTime      string       `json:"start_time" db:"start_time"`
	EndTime        string       `json:"end_time" db:"end_time"`
	GitLink        *string      `json:"git_link" db:"git_link"`
	HostingLink    *string      `json:"hosting_link" db:"hosting_link"`
	TaskType       *string      `json:"task_type" db:"task_type"`
	EstimatedHours *float64     `json:"estimated_hours" db:"estimated_hours"`
	Screenshots    []Screenshot `json:"screenshots"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// Screenshot is owned by exactly one task and is destroyed only when the
// task is destroyed.
type Screenshot struct {
	ID     int    `json:"id" db:"id"`
	TaskID int    `json:"-" db:"task_id"`
	Image  string `json:"image" db:"image"`
}

// Suggestion is an ephemeral record produced by the suggestion parser. It
// is never persisted.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Session is the explicit authorization context created at login and
// destroyed at logout. Components that need identity receive a Session
// through context, never ambient storage.
type Session struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Clock is the 12-hour wall-clock triple as entered on the task form.
type Clock struct {
	Hour     int
	Minute   int
	Meridiem Meridiem
}

var validMinutes = map[int]bool{0: true, 15: true, 30: true, 45: true}

// Validate checks the triple against the form's value space: hour 1-12,
// minute one of 00/15/30/45, meridiem AM or PM.
func (c Clock) Validate() error {
	if c.Hour < 1 || c.Hour > 12 {
		return fmt.Errorf("%w: hour %d out of range 1-12", ErrInvalidClock, c.Hour)
	}
	if !validMinutes[c.Minute] {
		return fmt.Errorf("%w: minute %d not a quarter hour", ErrInvalidClock, c.Minute)
	}
	if !c.Meridiem.IsValid() {
		return fmt.Errorf("%w: meridiem %q", ErrInvalidClock, c.Meridiem)
	}
	return nil
}

// Normalize converts the triple to a 24-hour "HH:MM" string. 12 AM maps to
// hour 00, 12 PM stays 12, any other PM hour gains 12. Minutes pass through.
func (c Clock) Normalize() string {
	h := c.Hour
	if c.Meridiem == MeridiemPM && h != 12 {
		h += 12
	}
	if c.Meridiem == MeridiemAM && h == 12 {
		h = 0
	}
	return fmt.Sprintf("%02d:%02d", h, c.Minute)
}

// Selection models the cascading geo selector. The reset rules are part of
// the contract: they keep state and city selections referentially valid as
// the parent changes.
type Selection struct {
	CountryID int
	StateID   int
	CityID    int
}

// SelectCountry picks a country and clears both dependent selections.
func (s *Selection) SelectCountry(countryID int) {
	s.CountryID = countryID
	s.StateID = 0
	s.CityID = 0
}

// SelectState picks a state and clears only the city.
func (s *Selection) SelectState(stateID int) {
	s.StateID = stateID
	s.CityID = 0
}

func (s *Selection) SelectCity(cityID int) {
	s.CityID = cityID
}

// Utility methods
func (r EmployeeRole) IsValid() bool {
	switch r {
	case RoleEmployee, RoleIntern:
		return true
	default:
		return false
	}
}

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusBlocked:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (m Meridiem) IsValid() bool {
	return m == MeridiemAM || m == MeridiemPM
}
