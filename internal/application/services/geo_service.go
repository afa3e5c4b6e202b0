package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/infrastructure/logger"
	"github.com/staffdesk/core/internal/ports"
)

// GeoService owns the country/state/city reference hierarchy. Reads return
// full collections; the cascade (which states belong to a country, which
// cities to a state) is derived with the pure StatesOf/CitiesOf filters
// rather than scoped fetches, so "what is selectable" never depends on when
// data was fetched.
type GeoService struct {
	countryRepo ports.CountryRepository
	stateRepo   ports.StateRepository
	cityRepo    ports.CityRepository
	logger      *logger.Logger
}

// NewGeoService creates a new geo service
func NewGeoService(countryRepo ports.CountryRepository, stateRepo ports.StateRepository, cityRepo ports.CityRepository, logger *logger.Logger) *GeoService {
	return &GeoService{
		countryRepo: countryRepo,
		stateRepo:   stateRepo,
		cityRepo:    cityRepo,
		logger:      logger,
	}
}

// ListCountries returns the full country collection.
func (s *GeoService) ListCountries(ctx context.Context) ([]entities.Country, error) {
	countries, err := s.countryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return countries, nil
}

// ListStates returns the full state collection.
func (s *GeoService) ListStates(ctx context.Context) ([]entities.State, error) {
	states, err := s.stateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	return states, nil
}

// ListCities returns the full city collection.
func (s *GeoService) ListCities(ctx context.Context) ([]entities.City, error) {
	cities, err := s.cityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}

// StatesOf filters an already-loaded state collection down to one country.
func StatesOf(states []entities.State, countryID int) []entities.State {
	out := make([]entities.State, 0, len(states))
	for _, st := range states {
		if st.CountryID == countryID {
			out = append(out, st)
		}
	}
	return out
}

// CitiesOf filters an already-loaded city collection down to one state.
func CitiesOf(cities []entities.City, stateID int) []entities.City {
	out := make([]entities.City, 0, len(cities))
	for _, c := range cities {
		if c.StateID == stateID {
			out = append(out, c)
		}
	}
	return out
}

// CreateCountry adds a hierarchy root node.
func (s *GeoService) CreateCountry(ctx context.Context, req ports.CountryRequest) (*entities.Country, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	country := &entities.Country{Name: strings.TrimSpace(req.Name)}
	if err := s.countryRepo.Create(ctx, country); err != nil {
		return nil, fmt.Errorf("create country: %w", err)
	}

	s.logger.Infow("country created", "country_id", country.ID, "name", country.Name)
	return country, nil
}

// UpdateCountry renames an existing country.
func (s *GeoService) UpdateCountry(ctx context.Context, id int, req ports.CountryRequest) (*entities.Country, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	country, err := s.countryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update country: %w", err)
	}

	country.Name = strings.TrimSpace(req.Name)
	if err := s.countryRepo.Update(ctx, country); err != nil {
		return nil, fmt.Errorf("update country: %w", err)
	}

	s.logger.Infow("country updated", "country_id", country.ID, "name", country.Name)
	return country, nil
}

// DeleteCountry removes a country. A country still referenced by states is
// rejected with ErrConflict so the hierarchy cannot grow dangling children.
func (s *GeoService) DeleteCountry(ctx context.Context, id int) error {
	if _, err := s.countryRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("delete country: %w", err)
	}

	children, err := s.stateRepo.CountByCountry(ctx, id)
	if err != nil {
		return fmt.Errorf("delete country: %w", err)
	}
	if children > 0 {
		return fmt.Errorf("delete country %d: %d state(s) attached: %w", id, children, entities.ErrConflict)
	}

	if err := s.countryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete country: %w", err)
	}

	s.logger.Infow("country deleted", "country_id", id)
	return nil
}

// CreateState adds a state under an existing country.
func (s *GeoService) CreateState(ctx context.Context, req ports.StateRequest) (*entities.State, error) {
	if err := validateChild(req.Name, "country", req.CountryID); err != nil {
		return nil, err
	}

	if _, err := s.countryRepo.GetByID(ctx, req.CountryID); err != nil {
		return nil, fmt.Errorf("create state: %w", err)
	}

	state := &entities.State{Name: strings.TrimSpace(req.Name), CountryID: req.CountryID}
	if err := s.stateRepo.Create(ctx, state); err != nil {
		return nil, fmt.Errorf("create state: %w", err)
	}

	s.logger.Infow("state created", "state_id", state.ID, "country_id", state.CountryID)
	return state, nil
}

// UpdateState renames a state and/or moves it to another country.
func (s *GeoService) UpdateState(ctx context.Context, id int, req ports.StateRequest) (*entities.State, error) {
	if err := validateChild(req.Name, "country", req.CountryID); err != nil {
		return nil, err
	}

	state, err := s.stateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update state: %w", err)
	}

	if _, err := s.countryRepo.GetByID(ctx, req.CountryID); err != nil {
		return nil, fmt.Errorf("update state: %w", err)
	}

	state.Name = strings.TrimSpace(req.Name)
	state.CountryID = req.CountryID
	if err := s.stateRepo.Update(ctx, state); err != nil {
		return nil, fmt.Errorf("update state: %w", err)
	}

	s.logger.Infow("state updated", "state_id", state.ID, "country_id", state.CountryID)
	return state, nil
}

// DeleteState removes a state, refusing while cities still reference it.
func (s *GeoService) DeleteState(ctx context.Context, id int) error {
	if _, err := s.stateRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("delete state: %w", err)
	}

	children, err := s.cityRepo.CountByState(ctx, id)
	if err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	if children > 0 {
		return fmt.Errorf("delete state %d: %d city(ies) attached: %w", id, children, entities.ErrConflict)
	}

	if err := s.stateRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete state: %w", err)
	}

	s.logger.Infow("state deleted", "state_id", id)
	return nil
}

// CreateCity adds a city under an existing state.
func (s *GeoService) CreateCity(ctx context.Context, req ports.CityRequest) (*entities.City, error) {
	if err := validateChild(req.Name, "state", req.StateID); err != nil {
		return nil, err
	}

	if _, err := s.stateRepo.GetByID(ctx, req.StateID); err != nil {
		return nil, fmt.Errorf("create city: %w", err)
	}

	city := &entities.City{Name: strings.TrimSpace(req.Name), StateID: req.StateID}
	if err := s.cityRepo.Create(ctx, city); err != nil {
		return nil, fmt.Errorf("create city: %w", err)
	}

	s.logger.Infow("city created", "city_id", city.ID, "state_id", city.StateID)
	return city, nil
}

// UpdateCity renames a city and/or moves it to another state.
func (s *GeoService) UpdateCity(ctx context.Context, id int, req ports.CityRequest) (*entities.City, error) {
	if err := validateChild(req.Name, "state", req.StateID); err != nil {
		return nil, err
	}

	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update city: %w", err)
	}

	if _, err := s.stateRepo.GetByID(ctx, req.StateID); err != nil {
		return nil, fmt.Errorf("update city: %w", err)
	}

	city.Name = strings.TrimSpace(req.Name)
	city.StateID = req.StateID
	if err := s.cityRepo.Update(ctx, city); err != nil {
		return nil, fmt.Errorf("update city: %w", err)
	}

	s.logger.Infow("city updated", "city_id", city.ID, "state_id", city.StateID)
	return city, nil
}

// DeleteCity removes a leaf node. Cities have no children, so no conflict
// check applies; employee snapshots pointing at the city are left as-is.
func (s *GeoService) DeleteCity(ctx context.Context, id int) error {
	if _, err := s.cityRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("delete city: %w", err)
	}

	if err := s.cityRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete city: %w", err)
	}

	s.logger.Infow("city deleted", "city_id", id)
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		ve := entities.NewValidationError()
		ve.Add("name", "This field is required.")
		return ve
	}
	return nil
}

func validateChild(name, parentField string, parentID int) error {
	ve := entities.NewValidationError()
	if strings.TrimSpace(name) == "" {
		ve.Add("name", "This field is required.")
	}
	if parentID == 0 {
		ve.Add(parentField, "This field is required.")
	}
	if !ve.Empty() {
		return ve
	}
	return nil
}
