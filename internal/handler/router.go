package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayflow/internal/domain/user"
	"stayflow/internal/handler/api"
	"stayflow/internal/handler/httperr"
	"stayflow/internal/handler/middleware"
	"stayflow/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	blockedDateHandler *api.BlockedDateHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookingHandler, availabilityHandler, blockedDateHandler, webhookHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	blockedDateHandler *api.BlockedDateHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.NoRoute(func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusNotFound, errors.New("no route"), "Resource not found", nil)
	})

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		// Guest-facing endpoints: no account needed to check dates or book.
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: availabilityHandler.Check},
			{Method: http.MethodPost, Path: "/bookings", Handler: bookingHandler.CreateBooking},
		})

		// Signature-verified, never cookie-authenticated.
		apiGroup.POST("/webhooks/stripe", webhookHandler.HandleStripeEvent)

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleHost))
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPut, Path: "", Handler: bookingHandler.BulkUpdateStatus},
				{Method: http.MethodPut, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking},
			})
		}

		apartments := apiGroup.Group("/apartments")
		apartments.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleHost))
		{
			addRoutes(apartments, []route{
				{Method: http.MethodPost, Path: "/:id/blocked-dates", Handler: blockedDateHandler.Block},
				{Method: http.MethodDelete, Path: "/:id/blocked-dates", Handler: blockedDateHandler.Unblock},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
