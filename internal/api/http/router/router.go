package router

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/dmaslov/campuschat-server/internal/api/http/handler"
	"github.com/dmaslov/campuschat-server/internal/api/http/middleware"
	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/model"
	"github.com/dmaslov/campuschat-server/internal/service"
)

// Router assembles the HTTP application from the services.
type Router struct {
	auth    *service.Auth
	profile *service.Profile
	chat    *service.Chat
	tokens  model.TokenManager
	logger  *logger.Logger
}

func New(
	auth *service.Auth,
	profile *service.Profile,
	chat *service.Chat,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		auth:    auth,
		profile: profile,
		chat:    chat,
		tokens:  tokens,
		logger:  logger,
	}
}

// Register builds the fiber app with all routes and middleware attached.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	authHandler := handler.NewAuth(r.auth, r.logger)
	profileHandler := handler.NewProfile(r.profile, r.logger)
	chatHandler := handler.NewChat(r.chat, r.auth, r.logger)
	wsHandler := handler.NewWS(r.chat, r.auth, r.logger)

	authenticate := middleware.NewAuthenticate(r.tokens, r.logger)
	logging := middleware.NewLogging(r.logger)

	app.Use(logging.Handle)

	api := app.Group("/api")
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	authed := api.Group("", authenticate.Handle)
	authed.Post("/auth/logout", authHandler.Logout)
	authed.Get("/auth/me", authHandler.Me)
	authed.Get("/profile/:id", profileHandler.Get)
	authed.Patch("/profile", profileHandler.Update)
	authed.Post("/profile/avatar", profileHandler.Avatar)
	authed.Get("/chat/global", chatHandler.ListGlobal)
	authed.Post("/chat/global", chatHandler.SendGlobal)
	authed.Get("/chat/private/:peer", chatHandler.ListPrivate)
	authed.Post("/chat/private/:peer", chatHandler.SendPrivate)

	ws := app.Group("/ws", authenticate.Handle, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	ws.Get("/chat/global", websocket.New(wsHandler.GlobalFeed))
	ws.Get("/chat/private/:peer", websocket.New(wsHandler.PrivateFeed))
	ws.Get("/auth/state", websocket.New(wsHandler.AuthState))

	return app
}
