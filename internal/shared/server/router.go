package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-site/internal/auth"
	"resume-site/internal/resume"
	"resume-site/internal/services/health"
	"resume-site/internal/session"
	"resume-site/internal/shared/config"
	"resume-site/internal/shared/metrics"
	"resume-site/internal/shared/server/middleware"
	"resume-site/internal/shared/server/respond"
)

// RouterDeps carries the handlers and stores the router needs.
type RouterDeps struct {
	Config   config.Config
	Sessions session.Store
	Auth     *auth.Handler
	Resume   *resume.Handler
	Health   *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	r.GET("/metrics", metrics.Handler())

	site := r.Group("/")
	site.Use(session.Middleware(deps.Sessions, session.Options{
		CookieName: deps.Config.SessionCookieName,
		TTL:        deps.Config.SessionTTL,
		Secure:     deps.Config.SessionCookieSecure,
	}))
	site.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/resume")
	})
	deps.Auth.RegisterRoutes(site)
	deps.Resume.RegisterRoutes(site)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Page not found", nil)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
