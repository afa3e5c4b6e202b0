package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/core/internal/application/services"
	"github.com/staffdesk/core/internal/infrastructure/logger"
	"github.com/staffdesk/core/internal/ports"
)

// GeoHandler serves the country/state/city reference hierarchy. Writes
// answer with the created or updated record; clients refetch the collection
// they care about.
type GeoHandler struct {
	geoService *services.GeoService
	logger     *logger.Logger
}

// NewGeoHandler creates a new geo handler
func NewGeoHandler(geoService *services.GeoService, logger *logger.Logger) *GeoHandler {
	return &GeoHandler{
		geoService: geoService,
		logger:     logger,
	}
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// ListCountries returns the full country collection
func (h *GeoHandler) ListCountries(c echo.Context) error {
	countries, err := h.geoService.ListCountries(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countries)
}

// CreateCountry adds a hierarchy root node
func (h *GeoHandler) CreateCountry(c echo.Context) error {
	var req ports.CountryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	country, err := h.geoService.CreateCountry(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, country)
}

// UpdateCountry renames a country
func (h *GeoHandler) UpdateCountry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ports.CountryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	country, err := h.geoService.UpdateCountry(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, country)
}

// DeleteCountry removes a country without states
func (h *GeoHandler) DeleteCountry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.geoService.DeleteCountry(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// StatesOfCountry returns the states under one country
func (h *GeoHandler) StatesOfCountry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	states, err := h.geoService.ListStates(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services.StatesOf(states, id))
}

// ListStates returns the full state collection
func (h *GeoHandler) ListStates(c echo.Context) error {
	states, err := h.geoService.ListStates(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, states)
}

// CreateState adds a state under a country
func (h *GeoHandler) CreateState(c echo.Context) error {
	var req ports.StateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	state, err := h.geoService.CreateState(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, state)
}

// UpdateState renames or moves a state
func (h *GeoHandler) UpdateState(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ports.StateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	state, err := h.geoService.UpdateState(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}

// DeleteState removes a state without cities
func (h *GeoHandler) DeleteState(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.geoService.DeleteState(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CitiesOfState returns the cities under one state
func (h *GeoHandler) CitiesOfState(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cities, err := h.geoService.ListCities(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services.CitiesOf(cities, id))
}

// ListCities returns the full city collection
func (h *GeoHandler) ListCities(c echo.Context) error {
	cities, err := h.geoService.ListCities(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cities)
}

// CreateCity adds a city under a state
func (h *GeoHandler) CreateCity(c echo.Context) error {
	var req ports.CityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	city, err := h.geoService.CreateCity(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, city)
}

// UpdateCity renames or moves a city
func (h *GeoHandler) UpdateCity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ports.CityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	city, err := h.geoService.UpdateCity(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, city)
}

// DeleteCity removes a city
func (h *GeoHandler) DeleteCity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.geoService.DeleteCity(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
