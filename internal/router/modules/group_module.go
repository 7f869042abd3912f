package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/communehq/commune/internal/interface/http"
	"github.com/communehq/commune/internal/interface/middleware"
	"github.com/communehq/commune/pkg/helpers"
)

type GroupModule struct {
	Handler  *handlers.GroupHandler
	Sessions *helpers.SessionManager
}

func NewGroupModule(h *handlers.GroupHandler, sessions *helpers.SessionManager) *GroupModule {
	return &GroupModule{Handler: h, Sessions: sessions}
}

func (m *GroupModule) Register(rg *gin.RouterGroup) {
	// Public reads
	rg.GET("/groups", m.Handler.List)
	rg.GET("/groups/:groupID", m.Handler.Get)
	rg.GET("/groups/:groupID/members", m.Handler.Members)

	auth := rg.Group("/groups")
	auth.Use(middleware.Session(m.Sessions))
	{
		auth.POST("", m.Handler.Create)
		auth.POST("/:groupID/members", m.Handler.Join)
		auth.DELETE("/:groupID/members/me", m.Handler.Leave)
		auth.DELETE("/:groupID/members/:userID", m.Handler.RemoveMember)
		auth.POST("/:groupID/invitation-secret", m.Handler.RotateSecret)
		auth.PUT("/:groupID/profile", m.Handler.SetProfile)
		auth.PUT("/:groupID/permissions", m.Handler.SetPermissions)
		auth.DELETE("/:groupID", m.Handler.Delete)
	}
}
