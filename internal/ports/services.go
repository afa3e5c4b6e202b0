package ports

import (
	"io"
	"time"

	"github.com/staffdesk/core/internal/domain/entities"
)

// Request/Response types shared between handlers and services.

// Auth related types
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

// Geo related types. The same shape serves create and update; the backend
// treats both as a full write followed by a collection refetch.
type CountryRequest struct {
	Name string `json:"name"`
}

type StateRequest struct {
	Name      string `json:"name"`
	CountryID int    `json:"country"`
}

type CityRequest struct {
	Name    string `json:"name"`
	StateID int    `json:"state"`
}

// Employee related types
type EmployeeRequest struct {
	FullName        string                `json:"full_name" validate:"required"`
	Role            entities.EmployeeRole `json:"role" validate:"required,oneof=EMPLOYEE INTERN"`
	Email           string                `json:"email" validate:"required,email"`
	DOB             *time.Time            `json:"dob"`
	Gender          *string               `json:"gender"`
	Phone           *string               `json:"phone"`
	Address         *string               `json:"address"`
	CountryID       *int                  `json:"country"`
	StateID         *int                  `json:"state"`
	CityID          *int                  `json:"city"`
	MaritalStatus   *string               `json:"marital_status"`
	JobTitle        *string               `json:"job_title"`
	JoiningDate     *time.Time            `json:"joining_date"`
	PreviousCompany *string               `json:"previous_company"`
	ExperienceYears *float64              `json:"experience_years"`
	CollegeName     *string               `json:"college_name"`
	Course          *string               `json:"course"`
	YearOfPass      *int                  `json:"year_of_pass"`
}

// Attachment is one uploaded screenshot payload, decoded from a multipart
// file part.
type Attachment struct {
	Filename string
	Content  io.Reader
}

// SaveTaskRequest carries the task form. Start and end clocks arrive as the
// 12-hour triples the form collects; the service normalizes them to 24-hour
// strings before persisting. EmployeeID comes from the caller context, not
// the form.
type SaveTaskRequest struct {
	Title          string
	Description    string
	Date           time.Time
	Status         entities.TaskStatus
	Priority       entities.Priority
	EmployeeID     int
	Start          entities.Clock
	End            entities.Clock
	GitLink        *string
	HostingLink    *string
	TaskType       *string
	EstimatedHours *float64
	Screenshots    []Attachment
}

// SuggestionReport is the payload of the AI-suggestions endpoint: the
// employee's current tasks, the advisor's raw text, and its parsed form.
type SuggestionReport struct {
	EmployeeTasks []entities.Task       `json:"employee_tasks"`
	NextTasks     string                `json:"next_tasks"`
	Suggestions   []entities.Suggestion `json:"suggestions"`
}
