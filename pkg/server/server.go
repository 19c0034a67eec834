// Package server exposes the reconciliation and report pipelines over
// HTTP. Every AI route sits behind the shared-token middleware; all
// request work is stateless and scoped to the single call.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/e-c-centric/ClassHelper/pkg/usecase/attendance"
	"github.com/e-c-centric/ClassHelper/pkg/usecase/report"
	"github.com/e-c-centric/ClassHelper/pkg/utils/logging"
)

// Server wires the use cases into a Gin engine.
type Server struct {
	engine     *gin.Engine
	attendance *attendance.UseCase
	report     *report.UseCase
	apiToken   string
	logger     *slog.Logger
}

// Option is a functional option for Server
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates the HTTP server. apiToken is the shared secret callers
// must present as a bearer token; an empty token disables auth, which is
// intended only for local development against the in-memory store.
func New(attendanceUC *attendance.UseCase, reportUC *report.UseCase, apiToken string, opts ...Option) *Server {
	s := &Server{
		attendance: attendanceUC,
		report:     reportUC,
		apiToken:   apiToken,
		logger:     logging.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	api := engine.Group("/api")
	{
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		ai := api.Group("/ai", s.requireAuth())
		{
			ai.POST("/analyze-participation", s.analyzeParticipation)
			ai.POST("/generate-report", s.generateReport)
			ai.POST("/transcribe-audio", s.transcribeAudio)
			ai.POST("/video-attendance", s.videoAttendance)
		}
	}

	s.engine = engine
	return s
}

// Handler returns the engine as an http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server on addr and blocks until it fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	return s.engine.Run(addr)
}
