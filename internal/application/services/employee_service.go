package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/infrastructure/logger"
	"github.com/staffdesk/core/internal/ports"
	"github.com/staffdesk/core/internal/query"
)

// EmployeeService handles the employee directory. Geo fields on an
// employee are snapshot references into the hierarchy; they are validated
// when written, not repaired when the hierarchy changes afterwards.
type EmployeeService struct {
	employeeRepo ports.EmployeeRepository
	logger       *logger.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo ports.EmployeeRepository, logger *logger.Logger) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// CreateEmployee validates the profile and persists it.
func (s *EmployeeService) CreateEmployee(ctx context.Context, req ports.EmployeeRequest) (*entities.Employee, error) {
	if err := validateEmployeeForm(req); err != nil {
		return nil, err
	}

	employee := employeeFromRequest(req)
	employee.CreatedAt = time.Now()
	employee.UpdatedAt = time.Now()

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.logger.Infow("employee created", "employee_id", employee.ID, "role", employee.Role)
	return employee, nil
}

// GetEmployee retrieves a profile by id.
func (s *EmployeeService) GetEmployee(ctx context.Context, id int) (*entities.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return employee, nil
}

// UpdateEmployee overwrites the profile with the submitted form.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int, req ports.EmployeeRequest) (*entities.Employee, error) {
	if err := validateEmployeeForm(req); err != nil {
		return nil, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}

	employee := employeeFromRequest(req)
	employee.ID = existing.ID
	employee.CreatedAt = existing.CreatedAt
	employee.UpdatedAt = time.Now()

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}

	s.logger.Infow("employee updated", "employee_id", employee.ID)
	return employee, nil
}

// DeleteEmployee removes a profile.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	s.logger.Infow("employee deleted", "employee_id", id)
	return nil
}

// ListEmployees loads the directory and applies the in-memory search and
// pagination engine. The search term matches name, email or role.
func (s *EmployeeService) ListEmployees(ctx context.Context, term string, page, pageSize int) (query.Page[entities.Employee], error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return query.Page[entities.Employee]{}, fmt.Errorf("list employees: %w", err)
	}

	filtered := query.FilterEmployees(employees, query.EmployeeSearch{Term: term})
	return query.Paginate(filtered, page, pageSize), nil
}

func employeeFromRequest(req ports.EmployeeRequest) *entities.Employee {
	return &entities.Employee{
		FullName:        strings.TrimSpace(req.FullName),
		Role:            req.Role,
		Email:           strings.TrimSpace(req.Email),
		DOB:             req.DOB,
		Gender:          req.Gender,
		Phone:           req.Phone,
		Address:         req.Address,
		CountryID:       req.CountryID,
		StateID:         req.StateID,
		CityID:          req.CityID,
		MaritalStatus:   req.MaritalStatus,
		JobTitle:        req.JobTitle,
		JoiningDate:     req.JoiningDate,
		PreviousCompany: req.PreviousCompany,
		ExperienceYears: req.ExperienceYears,
		CollegeName:     req.CollegeName,
		Course:          req.Course,
		YearOfPass:      req.YearOfPass,
	}
}

func validateEmployeeForm(req ports.EmployeeRequest) error {
	ve := entities.NewValidationError()
	if strings.TrimSpace(req.FullName) == "" {
		ve.Add("full_name", "This field is required.")
	}
	if strings.TrimSpace(req.Email) == "" {
		ve.Add("email", "This field is required.")
	}
	if !req.Role.IsValid() {
		ve.Add("role", fmt.Sprintf("%q is not a valid choice.", req.Role))
	}
	if !ve.Empty() {
		return ve
	}
	return nil
}
