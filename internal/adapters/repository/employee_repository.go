package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/ports"
)

// EmployeeRepositoryImpl implements the EmployeeRepository interface
type EmployeeRepositoryImpl struct {
	db *sqlx.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *sqlx.DB) ports.EmployeeRepository {
	return &EmployeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, full_name, role, dob, gender, phone, email, address,
	country_id, state_id, city_id, marital_status, job_title, joining_date,
	previous_company, experience_years, college_name, course, year_of_pass,
	created_at, updated_at`

func (r *EmployeeRepositoryImpl) Create(ctx context.Context, employee *entities.Employee) error {
	query := `
		INSERT INTO employees (full_name, role, dob, gender, phone, email, address,
			country_id, state_id, city_id, marital_status, job_title, joining_date,
			previous_company, experience_years, college_name, course, year_of_pass)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		employee.FullName, employee.Role, employee.DOB, employee.Gender,
		employee.Phone, employee.Email, employee.Address,
		employee.CountryID, employee.StateID, employee.CityID,
		employee.MaritalStatus, employee.JobTitle, employee.JoiningDate,
		employee.PreviousCompany, employee.ExperienceYears,
		employee.CollegeName, employee.Course, employee.YearOfPass,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create employee: %w", err)
	}

	return nil
}

func (r *EmployeeRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	var employee entities.Employee
	err := r.db.GetContext(ctx, &employee, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("get employee by id: %w", err)
	}

	return &employee, nil
}

func (r *EmployeeRepositoryImpl) Update(ctx context.Context, employee *entities.Employee) error {
	query := `
		UPDATE employees
		SET full_name = $2, role = $3, dob = $4, gender = $5, phone = $6, email = $7,
			address = $8, country_id = $9, state_id = $10, city_id = $11,
			marital_status = $12, job_title = $13, joining_date = $14,
			previous_company = $15, experience_years = $16, college_name = $17,
			course = $18, year_of_pass = $19, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		employee.ID, employee.FullName, employee.Role, employee.DOB, employee.Gender,
		employee.Phone, employee.Email, employee.Address,
		employee.CountryID, employee.StateID, employee.CityID,
		employee.MaritalStatus, employee.JobTitle, employee.JoiningDate,
		employee.PreviousCompany, employee.ExperienceYears,
		employee.CollegeName, employee.Course, employee.YearOfPass,
	).Scan(&employee.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrEmployeeNotFound
		}
		return fmt.Errorf("update employee: %w", err)
	}

	return nil
}

func (r *EmployeeRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if rows == 0 {
		return entities.ErrEmployeeNotFound
	}

	return nil
}

func (r *EmployeeRepositoryImpl) List(ctx context.Context) ([]entities.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY full_name`

	employees := []entities.Employee{}
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	return employees, nil
}
