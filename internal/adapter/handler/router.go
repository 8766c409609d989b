package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meetmind/pkg/config"
	"github.com/johnquangdev/meetmind/pkg/jwt"
)

// HealthCheck reports whether one dependency is usable
type HealthCheck func(ctx context.Context) error

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	summaryHandler *Summary
	exportHandler  *Export
	meetingHandler *Meeting
	archiveHandler *Archive
	authMW         echo.MiddlewareFunc
	optionalAuthMW echo.MiddlewareFunc
	scopeMW        func(scope string) echo.MiddlewareFunc
	checks         map[string]HealthCheck
}

// RouterOptions are the optional parts of the router. A nil MeetingHandler
// or ArchiveHandler leaves those routes answering 501; nil auth middlewares
// leave them public. ScopeMW, when set, gates history and archive routes on
// the token's scopes.
type RouterOptions struct {
	MeetingHandler *Meeting
	ArchiveHandler *Archive
	AuthMW         echo.MiddlewareFunc
	OptionalAuthMW echo.MiddlewareFunc
	ScopeMW        func(scope string) echo.MiddlewareFunc
	HealthChecks   map[string]HealthCheck
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, summaryHandler *Summary, exportHandler *Export, opts RouterOptions) *Router {
	return &Router{
		cfg:            cfg,
		summaryHandler: summaryHandler,
		exportHandler:  exportHandler,
		meetingHandler: opts.MeetingHandler,
		archiveHandler: opts.ArchiveHandler,
		authMW:         opts.AuthMW,
		optionalAuthMW: opts.OptionalAuthMW,
		scopeMW:        opts.ScopeMW,
		checks:         opts.HealthChecks,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/", rt.root)
	e.GET("/health", rt.healthCheck)

	if rt.cfg.Metrics.Enabled {
		e.GET(rt.cfg.Metrics.Path, echo.WrapHandler(promhttp.Handler()))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	rt.setupSummaryRoutes(v1)
	rt.setupExportRoutes(e, v1)
	rt.setupMeetingRoutes(v1)
	rt.setupArchiveRoutes(v1)
}

// setupSummaryRoutes configures summarization routes
func (rt *Router) setupSummaryRoutes(g *echo.Group) {
	var mws []echo.MiddlewareFunc
	if rt.optionalAuthMW != nil {
		mws = append(mws, rt.optionalAuthMW)
	}

	g.POST("/summarize", rt.summaryHandler.Summarize, mws...)
	g.POST("/summarize/audio", rt.summaryHandler.SummarizeAudio, mws...)
}

// setupExportRoutes configures export routes
func (rt *Router) setupExportRoutes(e *echo.Echo, g *echo.Group) {
	exportGroup := g.Group("/export")
	exportGroup.POST("/notion", rt.exportHandler.Notion)
	exportGroup.POST("/trello", rt.exportHandler.Trello)

	e.POST("/export-to-trello", rt.exportHandler.ConfiguredTrello)
}

// setupMeetingRoutes configures meeting history routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings", rt.protect(jwt.ScopeHistory)...)

	if rt.meetingHandler != nil {
		meetingGroup.GET("", rt.meetingHandler.List)
		meetingGroup.GET("/:id", rt.meetingHandler.Get)
		meetingGroup.DELETE("/:id", rt.meetingHandler.Delete)
	} else {
		// History needs a database
		meetingGroup.GET("", rt.notImplemented)
		meetingGroup.GET("/:id", rt.notImplemented)
		meetingGroup.DELETE("/:id", rt.notImplemented)
	}
}

// setupArchiveRoutes configures raw output archive routes
func (rt *Router) setupArchiveRoutes(g *echo.Group) {
	archiveGroup := g.Group("/archive", rt.protect(jwt.ScopeArchive)...)

	if rt.archiveHandler != nil {
		archiveGroup.GET("/raw-outputs", rt.archiveHandler.List)
		archiveGroup.POST("/raw-outputs/redecode", rt.archiveHandler.Redecode)
	} else {
		archiveGroup.GET("/raw-outputs", rt.notImplemented)
		archiveGroup.POST("/raw-outputs/redecode", rt.notImplemented)
	}
}

// protect returns the auth chain for a group needing scope
func (rt *Router) protect(scope string) []echo.MiddlewareFunc {
	if rt.authMW == nil {
		return nil
	}
	mws := []echo.MiddlewareFunc{rt.authMW}
	if rt.scopeMW != nil {
		mws = append(mws, rt.scopeMW(scope))
	}
	return mws
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not enabled",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Meeting history requires DB_HOST and the archive requires STORAGE_ENDPOINT to be configured",
	})
}

// root is the liveness banner the web client checks
func (rt *Router) root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "MeetMind AI API is running",
		"endpoint": "/api/v1/summarize",
	})
}

// healthCheck returns health status, 503 when any dependency check fails
func (rt *Router) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(rt.checks))
	for name, check := range rt.checks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}

	return c.JSON(status, map[string]interface{}{
		"status":      state,
		"environment": rt.cfg.Server.Environment,
		"checks":      checks,
	})
}
