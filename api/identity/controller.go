package identity

import (
	"net/http"

	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/gin-gonic/gin"
)

// IdentityServer handles HTTP requests related to session tokens.
type IdentityServer struct {
	authService i.SessionAuthenticator
}

// NewIdentityServer creates a new IdentityServer.
func NewIdentityServer(a i.SessionAuthenticator) *IdentityServer {
	return &IdentityServer{
		authService: a,
	}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers privileged routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/refresh", c.refresh)
	}
}

// refresh issues a new token for the session of the current one.
func (c *IdentityServer) refresh(ctx *gin.Context) {
	sessionID, ok := SessionID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	token, err := c.authService.Issue(sessionID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while issuing token"})
		return
	}

	ctx.JSON(http.StatusOK, &TokenResponse{ID: sessionID.String(), Token: token})
}
