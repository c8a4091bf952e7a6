package rest

import (
	"net/http"

	"todos-backend/application/commands/bus"
	querybus "todos-backend/application/queries/bus"
	"todos-backend/interfaces/http/rest/handlers"
	"todos-backend/interfaces/http/rest/middleware"
	"todos-backend/pkg/auth"
	pkgerrors "todos-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterOptions holds the request pipeline settings
type RouterOptions struct {
	Identity     middleware.IdentityResolver
	AuthRequired bool
	RateLimiter  *auth.UserRateLimiter
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	errorHandler *pkgerrors.ErrorHandler
	options      RouterOptions
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	options RouterOptions,
	logger *zap.Logger,
) *Router {
	if options.Identity == nil {
		options.Identity = middleware.GatewayIdentity()
	}
	return &Router{
		commandBus:   commandBus,
		queryBus:     queryBus,
		errorHandler: errorHandler,
		options:      options,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	router.Use(rt.errorHandler.Middleware)
	router.Use(chimiddleware.StripSlashes)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.NotFound(rt.routeNotFound)
	router.MethodNotAllowed(rt.routeNotFound)

	router.Get("/health", rt.healthCheck)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Identity(rt.options.Identity, rt.options.AuthRequired, rt.errorHandler, rt.logger))
		if rt.options.RateLimiter != nil {
			r.Use(middleware.RateLimit(rt.options.RateLimiter, rt.errorHandler, rt.logger))
		}

		todoHandler := handlers.NewTodoHandler(rt.commandBus, rt.queryBus, rt.errorHandler, rt.logger)
		r.Get("/todos", todoHandler.ListTodos)
		r.Post("/todos", todoHandler.CreateTodo)
		r.Get("/todos/{id}", todoHandler.GetTodo)
		r.Delete("/todos/{id}", todoHandler.DeleteTodo)
		r.Put("/todos/{id}", todoHandler.ToggleTodo)
	})

	return router
}

// routeNotFound answers unmatched method/path combinations
func (rt *Router) routeNotFound(w http.ResponseWriter, req *http.Request) {
	rt.errorHandler.Handle(w, req, pkgerrors.NewRouteError(req.Method, req.URL.RequestURI()))
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
