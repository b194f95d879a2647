package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yourhome-ai/yourhome/internal/api/handlers"
	"github.com/yourhome-ai/yourhome/internal/api/middleware"
	"github.com/yourhome-ai/yourhome/internal/auth"
	"github.com/yourhome-ai/yourhome/internal/chat"
	"github.com/yourhome-ai/yourhome/internal/comparison"
	"github.com/yourhome-ai/yourhome/internal/screening"
	"github.com/yourhome-ai/yourhome/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	portal *service.PortalService,
	evaluator *screening.Evaluator,
	chatManager *chat.Manager,
	compare *comparison.Service,
	authService *auth.Service,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	accountHandler := handlers.NewAccountHandler(authService)

	// Public account routes (login, register)
	public := r.Group("/api/auth")
	accountHandler.RegisterPublicRoutes(public)

	// Everything else requires a login session
	session := r.Group("/api")
	session.Use(middleware.RequireSession(authService))

	accountHandler.RegisterSessionRoutes(session.Group("/auth"))
	handlers.NewPortalHandler(portal).RegisterRoutes(session)
	handlers.NewAnalysisHandler(evaluator).RegisterRoutes(session)
	handlers.NewComparisonHandler(compare).RegisterRoutes(session)

	// Chat is a premium surface: gated on an active subscription,
	// re-checked per request
	chatGroup := session.Group("/chat")
	chatGroup.Use(middleware.RequireSubscription(authService))
	handlers.NewChatHandler(chatManager).RegisterRoutes(chatGroup)

	return r
}
