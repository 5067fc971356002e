package web

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shutdown-timer/internal/domain"
	"shutdown-timer/internal/logging"
	"shutdown-timer/internal/usecase"
)

const requestIDHeader = "X-Request-ID"

// Server is a primary adapter that exposes a launcher page plus a JSON API.
// It depends on the use case (primary port).
type Server struct {
	usecase usecase.CommandDispatcher
	server  *http.Server
	log     zerolog.Logger
}

// NewServer creates the HTTP server bound to addr.
func NewServer(uc usecase.CommandDispatcher, addr string) *Server {
	srv := &Server{usecase: uc, log: logging.Component("web")}
	srv.server = &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.loggingMiddleware())
	r.GET("/", s.handleRoot)
	api := r.Group("/api")
	api.GET("/query", s.handleQuery)
	actions := api.Group("", sameOriginJSON())
	actions.POST("/execute", s.handleExecute)
	actions.POST("/cancel", s.handleCancel)
	return r
}

// Start blocks and serves HTTP traffic.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleQuery(c *gin.Context) {
	q := c.Query("q")
	results := s.usecase.Results(q)
	views := make([]map[string]any, 0, len(results))
	for _, r := range results {
		views = append(views, resultToView(r))
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "results": views})
}

type executePayload struct {
	Query string `json:"query"`
}

func (s *Server) handleExecute(c *gin.Context) {
	var req executePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	// The intent is recomputed from the query at confirmation time.
	intent := s.usecase.Evaluate(req.Query)
	s.respondOutcome(c, s.usecase.Execute(c.Request.Context(), intent))
}

func (s *Server) handleCancel(c *gin.Context) {
	s.respondOutcome(c, s.usecase.Execute(c.Request.Context(), s.usecase.CancelIntent()))
}

// respondOutcome always answers 200; the outcome status carries the result.
func (s *Server) respondOutcome(c *gin.Context, out domain.Outcome) {
	c.JSON(http.StatusOK, gin.H{
		"id":      out.ID,
		"status":  out.Status.String(),
		"title":   out.Title,
		"message": out.Message,
	})
}

func resultToView(r domain.Result) map[string]any {
	view := map[string]any{
		"title":    r.Title,
		"subtitle": r.Subtitle,
		"action":   nil,
	}
	switch r.Intent.Kind {
	case domain.IntentScheduleShutdown:
		view["action"] = map[string]any{"kind": r.Intent.Kind.String(), "seconds": r.Intent.Seconds}
	case domain.IntentCancelShutdown:
		view["action"] = map[string]any{"kind": r.Intent.Kind.String()}
	}
	return view
}

// sameOriginJSON guards the routes that touch the shutdown facility.
// Browsers send text/plain and form posts cross-origin without a
// preflight, so only JSON bodies from the launcher page itself pass.
func sameOriginJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != "application/json" {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{"error": "Content-Type must be application/json"})
			return
		}
		switch c.GetHeader("Sec-Fetch-Site") {
		case "", "same-origin", "none":
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "cross-origin request rejected"})
			return
		}
		if origin := c.GetHeader("Origin"); origin != "" && !sameHost(origin, c.Request.Host) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "cross-origin request rejected"})
			return
		}
		c.Next()
	}
}

func sameHost(origin, host string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && strings.EqualFold(u.Host, host)
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()
		s.log.Info().
			Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
