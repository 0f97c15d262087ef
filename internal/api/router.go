package api

import (
	"github.com/devlinkr/devlinkr-be/internal/api/handlers"
	"github.com/devlinkr/devlinkr-be/internal/auth"
	"github.com/devlinkr/devlinkr-be/internal/services"
	"github.com/devlinkr/devlinkr-be/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, userService services.UserServiceProvider, postService services.PostServiceProvider, eventService services.EventServiceProvider, allowedOrigin string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the SPA
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(postService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", userHandler.Register)
		r.Post("/auth", userHandler.Login)

		// Websocket feed endpoints
		r.Get("/ws", wsHandler.Serve)
		r.Get("/ws/posts/{id}", wsHandler.Serve)

		// Everything below requires a valid identity
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware())

			r.Get("/auth", userHandler.GetMe)
			r.Get("/events", eventHandler.GetRecent)

			r.Route("/posts", func(r chi.Router) {
				r.Post("/", postHandler.Create)
				r.Get("/", postHandler.GetAll)
				r.Get("/{id}", postHandler.Get)
				r.Delete("/{id}", postHandler.Delete)
				r.Put("/like/{id}", postHandler.Like)
				r.Put("/unlike/{id}", postHandler.Unlike)
				r.Post("/comment/{id}", postHandler.Comment)
				r.Delete("/comment/{id}/{commentId}", postHandler.DeleteComment)
			})
		})
	})

	return r
}
