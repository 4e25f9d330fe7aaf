package i

import "github.com/gin-gonic/gin"

// Controller registers a group of routes on the router.
// Protected routes are mounted behind the session authorization middleware.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}
