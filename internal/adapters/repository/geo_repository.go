package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/ports"
)

// CountryRepositoryImpl implements the CountryRepository interface
type CountryRepositoryImpl struct {
	db *sqlx.DB
}

// NewCountryRepository creates a new country repository
func NewCountryRepository(db *sqlx.DB) ports.CountryRepository {
	return &CountryRepositoryImpl{db: db}
}

func (r *CountryRepositoryImpl) Create(ctx context.Context, country *entities.Country) error {
	query := `
		INSERT INTO countries (name)
		VALUES ($1)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, country.Name).Scan(&country.ID, &country.CreatedAt)
	if err != nil {
		return fmt.Errorf("create country: %w", err)
	}

	return nil
}

func (r *CountryRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Country, error) {
	query := `SELECT id, name, created_at FROM countries WHERE id = $1`

	var country entities.Country
	err := r.db.GetContext(ctx, &country, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrCountryNotFound
		}
		return nil, fmt.Errorf("get country by id: %w", err)
	}

	return &country, nil
}

func (r *CountryRepositoryImpl) Update(ctx context.Context, country *entities.Country) error {
	query := `UPDATE countries SET name = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, country.ID, country.Name)
	if err != nil {
		return fmt.Errorf("update country: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update country: %w", err)
	}
	if rows == 0 {
		return entities.ErrCountryNotFound
	}

	return nil
}

// Delete removes the row only. Attached states are not cascaded; the caller
// decides whether the delete is allowed.
func (r *CountryRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete country: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete country: %w", err)
	}
	if rows == 0 {
		return entities.ErrCountryNotFound
	}

	return nil
}

func (r *CountryRepositoryImpl) List(ctx context.Context) ([]entities.Country, error) {
	query := `SELECT id, name, created_at FROM countries ORDER BY name`

	countries := []entities.Country{}
	if err := r.db.SelectContext(ctx, &countries, query); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}

	return countries, nil
}

// StateRepositoryImpl implements the StateRepository interface
type StateRepositoryImpl struct {
	db *sqlx.DB
}

// NewStateRepository creates a new state repository
func NewStateRepository(db *sqlx.DB) ports.StateRepository {
	return &StateRepositoryImpl{db: db}
}

func (r *StateRepositoryImpl) Create(ctx context.Context, state *entities.State) error {
	query := `
		INSERT INTO states (name, country_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, state.Name, state.CountryID).Scan(&state.ID, &state.CreatedAt)
	if err != nil {
		return fmt.Errorf("create state: %w", err)
	}

	return nil
}

func (r *StateRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.State, error) {
	query := `
		SELECT s.id, s.name, s.country_id, c.name AS country_name, s.created_at
		FROM states s
		JOIN countries c ON c.id = s.country_id
		WHERE s.id = $1`

	var state entities.State
	err := r.db.GetContext(ctx, &state, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrStateNotFound
		}
		return nil, fmt.Errorf("get state by id: %w", err)
	}

	return &state, nil
}

func (r *StateRepositoryImpl) Update(ctx context.Context, state *entities.State) error {
	query := `UPDATE states SET name = $2, country_id = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, state.ID, state.Name, state.CountryID)
	if err != nil {
		return fmt.Errorf("update state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update state: %w", err)
	}
	if rows == 0 {
		return entities.ErrStateNotFound
	}

	return nil
}

func (r *StateRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM states WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	if rows == 0 {
		return entities.ErrStateNotFound
	}

	return nil
}

func (r *StateRepositoryImpl) List(ctx context.Context) ([]entities.State, error) {
	query := `
		SELECT s.id, s.name, s.country_id, c.name AS country_name, s.created_at
		FROM states s
		JOIN countries c ON c.id = s.country_id
		ORDER BY s.name`

	states := []entities.State{}
	if err := r.db.SelectContext(ctx, &states, query); err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}

	return states, nil
}

func (r *StateRepositoryImpl) CountByCountry(ctx context.Context, countryID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM states WHERE country_id = $1`, countryID)
	if err != nil {
		return 0, fmt.Errorf("count states by country: %w", err)
	}

	return count, nil
}

// CityRepositoryImpl implements the CityRepository interface
type CityRepositoryImpl struct {
	db *sqlx.DB
}

// NewCityRepository creates a new city repository
func NewCityRepository(db *sqlx.DB) ports.CityRepository {
	return &CityRepositoryImpl{db: db}
}

func (r *CityRepositoryImpl) Create(ctx context.Context, city *entities.City) error {
	query := `
		INSERT INTO cities (name, state_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, city.Name, city.StateID).Scan(&city.ID, &city.CreatedAt)
	if err != nil {
		return fmt.Errorf("create city: %w", err)
	}

	return nil
}

func (r *CityRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.City, error) {
	query := `
		SELECT ci.id, ci.name, ci.state_id, s.name AS state_name, c.name AS country_name, ci.created_at
		FROM cities ci
		JOIN states s ON s.id = ci.state_id
		JOIN countries c ON c.id = s.country_id
		WHERE ci.id = $1`

	var city entities.City
	err := r.db.GetContext(ctx, &city, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrCityNotFound
		}
		return nil, fmt.Errorf("get city by id: %w", err)
	}

	return &city, nil
}

func (r *CityRepositoryImpl) Update(ctx context.Context, city *entities.City) error {
	query := `UPDATE cities SET name = $2, state_id = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, city.ID, city.Name, city.StateID)
	if err != nil {
		return fmt.Errorf("update city: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update city: %w", err)
	}
	if rows == 0 {
		return entities.ErrCityNotFound
	}

	return nil
}

func (r *CityRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete city: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	if rows == 0 {
		return entities.ErrCityNotFound
	}

	return nil
}

func (r *CityRepositoryImpl) List(ctx context.Context) ([]entities.City, error) {
	query := `
		SELECT ci.id, ci.name, ci.state_id, s.name AS state_name, c.name AS country_name, ci.created_at
		FROM cities ci
		JOIN states s ON s.id = ci.state_id
		JOIN countries c ON c.id = s.country_id
		ORDER BY ci.name`

	cities := []entities.City{}
	if err := r.db.SelectContext(ctx, &cities, query); err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}

	return cities, nil
}

func (r *CityRepositoryImpl) CountByState(ctx context.Context, stateID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM cities WHERE state_id = $1`, stateID)
	if err != nil {
		return 0, fmt.Errorf("count cities by state: %w", err)
	}

	return count, nil
}
