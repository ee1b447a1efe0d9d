// Package server exposes the solver operations over HTTP.
package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/manukrishna804/logic-solver-ai/internal/solver"
	"github.com/manukrishna804/logic-solver-ai/internal/streaming"
	"github.com/manukrishna804/logic-solver-ai/internal/validation"
)

//go:embed templates
var content embed.FS

// Deps holds the dependencies for the HTTP server.
type Deps struct {
	Service   *solver.Service
	Validator *validation.JSONSchemaValidator
	// Hub feeds GET /events. Nil disables the stream.
	Hub streaming.Hub
	// AllowedOrigins lists CORS origins. Empty or containing "*" allows all.
	AllowedOrigins []string
	// RequestTimeout bounds each request's context except the event stream.
	// Zero means no bound.
	RequestTimeout time.Duration
	Version        string
	Logger         *slog.Logger
}

// Server serves the HTTP API and the index page.
type Server struct {
	deps   Deps
	index  *template.Template
	engine *gin.Engine
}

// New creates a Server with all routes registered.
func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}

	s := &Server{
		deps:  deps,
		index: template.Must(template.ParseFS(content, "templates/index.html")),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(accessLog(s.deps.Logger))
	router.Use(timeout(s.deps.RequestTimeout, "/events"))
	router.Use(cors.New(corsConfig(s.deps.AllowedOrigins)))

	router.GET("/", s.handleIndex)
	router.GET("/health", s.handleHealth)

	router.POST("/generate-algorithm", s.handleAlgorithm)
	router.POST("/generate-flowchart", s.handleFlowchart)
	router.POST("/generate-code", s.handleCode)
	router.POST("/clean-code", s.handleClean)
	router.POST("/render-flowchart", s.handleRender)
	router.POST("/validate-diagram", s.handleValidateDiagram)

	router.GET("/history", s.handleHistory)
	router.GET("/history/:id", s.handleGeneration)

	router.GET("/events", s.handleEvents)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "X-Requested-With", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, DegradedHeader},
		MaxAge:        12 * time.Hour,
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
