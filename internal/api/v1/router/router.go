package router

import (
	"fmt"
	"net/http"

	"courseapi/internal/api/v1/handler"
	"courseapi/internal/config"
	"courseapi/internal/hash"
	"courseapi/internal/middleware"
	"courseapi/internal/pubsub"
	"courseapi/internal/repository"
	"courseapi/internal/service"
	"courseapi/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
)

// New wires repositories, services and handlers on top of db. publisher may
// be nil, in which case course events are not published.
func New(cfg *config.Config, db *bun.DB, publisher pubsub.Publisher, logger zerolog.Logger) (http.Handler, error) {
	// 1. Initialize validator and password hashing
	validate := validation.New()

	method, err := hash.ParseMethod(cfg.PasswordHasher)
	if err != nil {
		return nil, err
	}
	hasher, err := hash.New(method)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	// 2. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(db, validate)
	courseRepo := repository.NewCourseRepo(db, validate)

	var events *service.EventNotifier
	if publisher != nil && cfg.EventsEnabled() {
		events = service.NewEventNotifier(publisher, cfg.CourseEventsTopic, logger)
	}

	authSvc := service.NewAuthService(userRepo, hasher)
	userSvc := service.NewUserService(userRepo, hasher)
	courseSvc := service.NewCourseService(courseRepo, events)

	userHandler := handler.NewUserHandler(userSvc, validate, logger)
	courseHandler := handler.NewCourseHandler(courseSvc, validate, logger)

	// 3. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(authSvc, logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location", middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	// 4. Create router
	r := chi.NewRouter()
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(c.Handler)

	// Set before mounting so sub-routers inherit them.
	r.NotFound(routeNotFound)
	r.MethodNotAllowed(methodNotAllowed)

	routes := func(r chi.Router) {
		r.Get("/", welcome)
		userHandler.RegisterRoutes(r, authMiddleware)
		courseHandler.RegisterRoutes(r, authMiddleware)
	}
	routes(r)
	r.Route("/api", routes)

	logger.Info().Str("environment", cfg.Environment).Msg("Router initialized")
	return r, nil
}
