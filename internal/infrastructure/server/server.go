package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/staffdesk/core/docs"
	"github.com/staffdesk/core/internal/adapters/advisor"
	httpHandlers "github.com/staffdesk/core/internal/adapters/http"
	"github.com/staffdesk/core/internal/adapters/repository"
	"github.com/staffdesk/core/internal/adapters/storage"
	"github.com/staffdesk/core/internal/application/services"
	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/infrastructure/config"
	"github.com/staffdesk/core/internal/infrastructure/database"
	"github.com/staffdesk/core/internal/infrastructure/logger"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	db     *database.DB
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Repositories
	countryRepo := repository.NewCountryRepository(db.DB)
	stateRepo := repository.NewStateRepository(db.DB)
	cityRepo := repository.NewCityRepository(db.DB)
	employeeRepo := repository.NewEmployeeRepository(db.DB)
	taskRepo := repository.NewTaskRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)
	authRepo := repository.NewAuthRepository(db.DB)

	// Adapters
	store, err := storage.NewDiskStore(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("init attachment store: %w", err)
	}
	taskAdvisor := advisor.NewClient(cfg.Advisor)

	// Services
	authService := services.NewAuthService(userRepo, authRepo, cfg.JWT, appLogger)
	geoService := services.NewGeoService(countryRepo, stateRepo, cityRepo, appLogger)
	employeeService := services.NewEmployeeService(employeeRepo, appLogger)
	taskService := services.NewTaskService(taskRepo, employeeRepo, store, appLogger)
	suggestionService := services.NewSuggestionService(taskRepo, employeeRepo, taskAdvisor, appLogger)

	// Handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	geoHandler := httpHandlers.NewGeoHandler(geoService, appLogger)
	employeeHandler := httpHandlers.NewEmployeeHandler(employeeService, taskService, suggestionService, appLogger)
	taskHandler := httpHandlers.NewTaskHandler(taskService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	server.setupMiddleware()
	server.setupRoutes(authHandler, geoHandler, employeeHandler, taskHandler, authService)

	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, geoHandler *httpHandlers.GeoHandler, employeeHandler *httpHandlers.EmployeeHandler, taskHandler *httpHandlers.TaskHandler, authService *services.AuthService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/docs/*", echoSwagger.WrapHandler)

	v1 := s.echo.Group("/api/v1")

	// Auth routes (public except logout)
	authGroup := v1.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.RefreshToken)
	authGroup.POST("/logout", authHandler.Logout, s.authMiddleware(authService))

	// Reference hierarchy routes (authenticated)
	countryGroup := v1.Group("/countries", s.authMiddleware(authService))
	countryGroup.GET("", geoHandler.ListCountries)
	countryGroup.POST("", geoHandler.CreateCountry)
	countryGroup.PUT("/:id", geoHandler.UpdateCountry)
	countryGroup.DELETE("/:id", geoHandler.DeleteCountry, s.requireRole("admin"))
	countryGroup.GET("/:id/states", geoHandler.StatesOfCountry)

	stateGroup := v1.Group("/states", s.authMiddleware(authService))
	stateGroup.GET("", geoHandler.ListStates)
	stateGroup.POST("", geoHandler.CreateState)
	stateGroup.PUT("/:id", geoHandler.UpdateState)
	stateGroup.DELETE("/:id", geoHandler.DeleteState, s.requireRole("admin"))
	stateGroup.GET("/:id/cities", geoHandler.CitiesOfState)

	cityGroup := v1.Group("/cities", s.authMiddleware(authService))
	cityGroup.GET("", geoHandler.ListCities)
	cityGroup.POST("", geoHandler.CreateCity)
	cityGroup.PUT("/:id", geoHandler.UpdateCity)
	cityGroup.DELETE("/:id", geoHandler.DeleteCity, s.requireRole("admin"))

	// Employee directory routes (authenticated)
	employeeGroup := v1.Group("/employees", s.authMiddleware(authService))
	employeeGroup.GET("", employeeHandler.ListEmployees)
	employeeGroup.POST("", employeeHandler.CreateEmployee)
	employeeGroup.GET("/:id", employeeHandler.GetEmployee)
	employeeGroup.PUT("/:id", employeeHandler.UpdateEmployee)
	employeeGroup.DELETE("/:id", employeeHandler.DeleteEmployee, s.requireRole("admin"))
	employeeGroup.GET("/:id/tasks", employeeHandler.EmployeeTasks)
	employeeGroup.GET("/:id/suggestions", employeeHandler.EmployeeSuggestions)

	// Task routes (authenticated)
	taskGroup := v1.Group("/tasks", s.authMiddleware(authService))
	taskGroup.POST("", taskHandler.CreateTask)
	taskGroup.GET("/:id", taskHandler.GetTask)
	taskGroup.PUT("/:id", taskHandler.UpdateTask)
	taskGroup.DELETE("/:id", taskHandler.DeleteTask)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.Stats(),
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler translates domain errors to HTTP responses. Validation
// errors keep their per-field messages; everything unexpected collapses to a
// generic 500 so internals never leak.
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		var ve *entities.ValidationError
		var he *echo.HTTPError

		switch {
		case errors.As(err, &ve):
			code = http.StatusBadRequest
			msg = map[string]interface{}{"errors": ve.Fields}
		case errors.As(err, &he):
			code = he.Code
			msg = map[string]interface{}{"message": he.Message}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		case errors.Is(err, entities.ErrCountryNotFound),
			errors.Is(err, entities.ErrStateNotFound),
			errors.Is(err, entities.ErrCityNotFound),
			errors.Is(err, entities.ErrEmployeeNotFound),
			errors.Is(err, entities.ErrTaskNotFound):
			code = http.StatusNotFound
			msg = map[string]string{"message": err.Error()}
		case errors.Is(err, entities.ErrConflict):
			code = http.StatusConflict
			msg = map[string]string{"message": err.Error()}
		case errors.Is(err, entities.ErrUnauthorized):
			code = http.StatusUnauthorized
			msg = map[string]string{"message": "unauthorized"}
		default:
			msg = map[string]string{"message": "something went wrong, please try again"}
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("error sending response", "error", err)
			}
		}
	}
}
