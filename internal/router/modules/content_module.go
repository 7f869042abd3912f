package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/communehq/commune/internal/interface/http"
	"github.com/communehq/commune/internal/interface/middleware"
	"github.com/communehq/commune/pkg/helpers"
)

type ContentModule struct {
	Handler  *handlers.ContentHandler
	Sessions *helpers.SessionManager
}

func NewContentModule(h *handlers.ContentHandler, sessions *helpers.SessionManager) *ContentModule {
	return &ContentModule{Handler: h, Sessions: sessions}
}

func (m *ContentModule) Register(rg *gin.RouterGroup) {
	// Public reads
	rg.GET("/templates", m.Handler.ListTemplates)
	rg.GET("/templates/:templateID", m.Handler.GetTemplate)
	rg.GET("/items", m.Handler.ListItems)
	rg.GET("/items/search", m.Handler.SearchItems)
	rg.GET("/items/:itemID", m.Handler.GetItem)

	auth := rg.Group("/")
	auth.Use(middleware.Session(m.Sessions))
	{
		auth.POST("/templates", m.Handler.CreateTemplate)
		auth.PUT("/templates/:templateID", m.Handler.SetTemplate)
		auth.POST("/items", m.Handler.CreateItem)
		auth.PUT("/items/:itemID", m.Handler.SetItem)
	}
}
