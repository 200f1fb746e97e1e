package handlers

import (
	"net/http"

	"job-board-backend/internal/middleware"
	"job-board-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router bundles everything the HTTP routes are wired to
type Router struct {
	Auth           *AuthHandler
	Users          *UserHandler
	JobPosts       *JobPostHandler
	Applicants     *ApplicantHandler
	WebSocket      *WebSocketHandler
	Health         *HealthHandler
	Tokens         *services.TokenService
	CookieName     string
	AllowedOrigins []string
	LoginLimiter   *middleware.RateLimiter
	// TrustProxy rewrites RemoteAddr from proxy headers before logging and rate limiting
	TrustProxy bool
}

// NewRouter builds the chi router with every API route
func NewRouter(rt Router) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	if rt.TrustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(rt.AllowedOrigins))

	r.NotFound(unknownEndpoint)
	r.MethodNotAllowed(methodNotAllowed)

	auth := middleware.AuthMiddleware(rt.Tokens, rt.CookieName)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(rt.LoginLimiter.Middleware).Post("/login", rt.Auth.Login)
			r.Get("/logout", rt.Auth.Logout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.Users.Register)
			r.Get("/", rt.Users.List)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/{id}", rt.Users.Get)
				r.Put("/{id}", rt.Users.Edit)
				r.Get("/{id}/friends", rt.Users.Friends)
				r.Patch("/{id}/{friendId}", rt.Users.ToggleFriend)
			})
		})

		r.Route("/job", func(r chi.Router) {
			r.Get("/jobs", rt.JobPosts.List)
			r.Get("/jobs/{jobId}", rt.JobPosts.Get)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/jobs", rt.JobPosts.Create)
				r.Get("/getMyJobPosts", rt.JobPosts.ListMine)
				r.Put("/update/{id}", rt.JobPosts.Update)
				r.Delete("/delete/{id}", rt.JobPosts.Delete)
			})
		})

		r.Route("/apply/jobs/{jobId}", func(r chi.Router) {
			r.Post("/apply", rt.Applicants.Apply)
			r.Get("/applicants", rt.Applicants.List)
			r.Get("/noofapplicants", rt.Applicants.Count)
			r.Get("/applicants/{applicantId}", rt.Applicants.Get)
			r.Delete("/applicants/{applicantId}", rt.Applicants.Delete)
		})
	})

	r.Get("/ws", rt.WebSocket.HandleWebSocket)
	r.Get("/healthz", rt.Health.Check)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
