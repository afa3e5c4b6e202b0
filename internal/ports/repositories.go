package ports

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/staffdesk/core/internal/domain/entities"
)

// CountryRepository defines data operations on the hierarchy root.
type CountryRepository interface {
	Create(ctx context.Context, country *entities.Country) error
	GetByID(ctx context.Context, id int) (*entities.Country, error)
	Update(ctx context.Context, country *entities.Country) error
	// Delete removes the row and nothing else; it does not cascade to
	// states. Conflict enforcement is the service's job.
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]entities.Country, error)
}

// StateRepository defines data operations on the middle tier.
type StateRepository interface {
	Create(ctx context.Context, state *entities.State) error
	GetByID(ctx context.Context, id int) (*entities.State, error)
	Update(ctx context.Context, state *entities.State) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]entities.State, error)
	CountByCountry(ctx context.Context, countryID int) (int, error)
}

// CityRepository defines data operations on the leaf tier.
type CityRepository interface {
	Create(ctx context.Context, city *entities.City) error
	GetByID(ctx context.Context, id int) (*entities.City, error)
	Update(ctx context.Context, city *entities.City) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]entities.City, error)
	CountByState(ctx context.Context, stateID int) (int, error)
}

// EmployeeRepository defines data operations on the directory.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entities.Employee) error
	GetByID(ctx context.Context, id int) (*entities.Employee, error)
	Update(ctx context.Context, employee *entities.Employee) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]entities.Employee, error)
}

// TaskRepository defines data operations on tasks and their owned
// screenshots.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id int) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	// Delete removes the task; owned screenshot rows go with it.
	Delete(ctx context.Context, id int) error
	ListByEmployee(ctx context.Context, employeeID int) ([]entities.Task, error)
	// AddScreenshots appends attachment rows. Existing rows are never
	// touched; the attachment sequence is append-only.
	AddScreenshots(ctx context.Context, taskID int, screenshots []entities.Screenshot) error
	GetScreenshots(ctx context.Context, taskID int) ([]entities.Screenshot, error)
}

// UserRepository defines data operations for sign-in accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// AuthRepository defines refresh-token persistence.
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// AttachmentStore persists uploaded screenshot payloads outside the
// database and hands back a reference the Screenshot row stores.
type AttachmentStore interface {
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
}

// Advisor produces free-form next-task text for an employee from a prompt
// built out of their task history. The reply is consumed by the suggestion
// parser; the advisor itself makes no structural promises.
type Advisor interface {
	NextTasks(ctx context.Context, prompt string) (string, error)
}

// RefreshToken is a stored, hashed refresh credential.
type RefreshToken struct {
	ID        int        `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"token_hash" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsValid() bool {
	return !rt.IsExpired() && !rt.IsRevoked()
}
