package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/communehq/commune/internal/container"
	handlers "github.com/communehq/commune/internal/interface/http"
	"github.com/communehq/commune/internal/interface/middleware"
	"github.com/communehq/commune/pkg/helpers"
)

type AuthModule struct {
	Handler  *handlers.AuthHandler
	Sessions *helpers.SessionManager
}

func NewAuthModule(h *handlers.AuthHandler, sessions *helpers.SessionManager) *AuthModule {
	return &AuthModule{Handler: h, Sessions: sessions}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints: tight IP-based limits, the challenge endpoints
	// send email.
	challengeLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	answerLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/signup", challengeLimiter, m.Handler.Signup)
	rg.POST("/auth/login/init", challengeLimiter, m.Handler.LoginInit)
	rg.POST("/auth/login", answerLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Session(m.Sessions))
	auth.Use(middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/auth/challenge", m.Handler.Challenge)
		auth.POST("/auth/email/init", m.Handler.EmailInit)
		auth.POST("/auth/email/confirm", m.Handler.EmailConfirm)
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.POST("/auth/logout/all", m.Handler.LogoutAll)
		auth.POST("/auth/revoke", m.Handler.Revoke)
	}
}
