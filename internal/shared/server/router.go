package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthire-backend/internal/questions"
	"smarthire-backend/internal/resumes"
	"smarthire-backend/internal/shared/auth"
	"smarthire-backend/internal/shared/config"
	"smarthire-backend/internal/shared/metrics"
	"smarthire-backend/internal/shared/server/middleware"
	"smarthire-backend/internal/shared/server/respond"
	"smarthire-backend/internal/users"
)

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Config    config.Config
	Tokens    *auth.TokenManager
	Users     *users.Handler
	Resumes   *resumes.Handler
	Questions *questions.Handler
}

// NewRouter assembles the gin engine: middleware chain, route groups and
// role gates.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(deps.Config.CORSAllowOrigin))

	r.GET("/api/test", func(c *gin.Context) {
		respond.OK(c, gin.H{"message": "API is working"})
	})
	r.GET("/metrics", metrics.Handler())

	authRequired := middleware.Auth(deps.Tokens)

	authPublic := r.Group("/api/auth")
	authPrivate := r.Group("/api/auth")
	authPrivate.Use(authRequired)
	deps.Users.RegisterAuthRoutes(authPublic, authPrivate)

	admin := r.Group("/api/users")
	admin.Use(authRequired, middleware.RequireRoles(users.RoleAdmin))
	deps.Users.RegisterAdminRoutes(admin)

	resumeGroup := r.Group("/api/resume")
	resumeGroup.Use(authRequired)
	deps.Resumes.RegisterRoutes(resumeGroup, uploadRateLimit())

	questionGroup := r.Group("/api/questions")
	deps.Questions.RegisterRoutes(questionGroup)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

// uploadRateLimit bounds how often one user can trigger the AI pipeline.
func uploadRateLimit() gin.HandlerFunc {
	return middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"UPLOAD": {Rate: 0.2, Burst: 5},
		},
		DefaultGroup: "UPLOAD",
	})
}

// Addr formats a port into a listen address.
func Addr(port string) string {
	return ":" + port
}
