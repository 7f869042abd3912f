package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/communehq/commune/internal/interface/http"
	"github.com/communehq/commune/internal/interface/middleware"
	"github.com/communehq/commune/pkg/helpers"
)

type UserModule struct {
	Handler  *handlers.UserHandler
	Sessions *helpers.SessionManager
}

func NewUserModule(h *handlers.UserHandler, sessions *helpers.SessionManager) *UserModule {
	return &UserModule{Handler: h, Sessions: sessions}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	me := rg.Group("/users/me")
	me.Use(middleware.Session(m.Sessions))
	{
		me.GET("", m.Handler.Me)
		me.GET("/profile", m.Handler.Profile)
		me.POST("/profile", m.Handler.CreateProfile)
		me.POST("/profile/extend", m.Handler.ExtendProfile)
		me.GET("/bookmarks", m.Handler.Bookmarks)
		me.PUT("/bookmarks", m.Handler.AddBookmark)
		me.DELETE("/bookmarks", m.Handler.RemoveBookmark)
	}
}
