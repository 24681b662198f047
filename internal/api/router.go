package api

import (
	"leetcode_tracker/internal/api/handler"
	"leetcode_tracker/internal/app/service"
	"leetcode_tracker/internal/common/security"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	issuer *security.TokenIssuer,
	authService *service.AuthService,
	problemService *service.ProblemService,
	accessLog bool,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	if accessLog {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifier only parses the bearer token into the context. Routes that need
	// it add middleware.Authenticator.
	r.Use(jwtauth.Verifier(issuer.Auth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		api.Route("/auth", authHandler.RegisterRoutes)

		problemHandler := handler.NewProblemHandler(problemService)
		api.Route("/problems", problemHandler.RegisterRoutes)
	})

	return r
}
