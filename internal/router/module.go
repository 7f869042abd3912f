package router

import "github.com/gin-gonic/gin"

// Module is a feature area (auth, users, groups, content) that knows
// how to mount its routes on the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
