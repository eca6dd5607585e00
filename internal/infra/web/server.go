package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"homestyle-ai/internal/usecase"
)

// Server exposes the catalog and consultant engines over JSON REST.
type Server struct {
	catalogUC    usecase.CatalogUseCase
	consultantUC usecase.ConsultantUseCase
	jwtSecret    []byte
	validate     *validator.Validate
	log          *zerolog.Logger
}

func NewServer(
	catalogUC usecase.CatalogUseCase,
	consultantUC usecase.ConsultantUseCase,
	jwtSecret string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		catalogUC:    catalogUC,
		consultantUC: consultantUC,
		jwtSecret:    []byte(jwtSecret),
		validate:     validator.New(),
		log:          logger,
	}
}

// Router builds the chi handler tree.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/designs", s.handleBrowseDesigns)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/credits", s.handleCredits)
			r.Route("/chat", func(r chi.Router) {
				r.Get("/state", s.handleChatState)
				r.Post("/messages", s.handleSendMessage)
				r.Post("/new", s.handleNewChat)
				r.Get("/history", s.handleHistory)
				r.Post("/select", s.handleSelectChat)
				r.Delete("/history/{id}", s.handleDeleteChat)
				r.Post("/referral", s.handleReferral)
				r.Post("/credits-prompt/dismiss", s.handleDismissPrompt)
			})
		})
	})

	return r
}
