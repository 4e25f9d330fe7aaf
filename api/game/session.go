package gameapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/maze3d/api/identity"
	"github.com/beka-birhanu/maze3d/game"
	"github.com/beka-birhanu/maze3d/service"
	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionController exposes game sessions over HTTP.
type SessionController struct {
	gameSessionManager i.GameSessionManager
	authService        i.SessionAuthenticator
	logger             *zap.SugaredLogger
}

// NewSessionController initializes a SessionController.
func NewSessionController(gsm i.GameSessionManager, a i.SessionAuthenticator, logger *zap.SugaredLogger) (*SessionController, error) {
	if gsm == nil || a == nil || logger == nil {
		return nil, service.ErrMissingDependency
	}
	return &SessionController{
		gameSessionManager: gsm,
		authService:        a,
		logger:             logger,
	}, nil
}

// RegisterPublic registers public routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/sessions", sc.create)
}

// RegisterProtected registers protected routes.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/sessions/:ID")
	sessions.Use(sc.ownSession)
	{
		sessions.GET("", sc.state)
		sessions.GET("/maze", sc.maze)
		sessions.GET("/maze.txt", sc.mazeText)
		sessions.POST("/move", sc.move)
		sessions.POST("/rotate", sc.rotate)
		sessions.POST("/zoom", sc.zoom)
		sessions.POST("/reset", sc.reset)
		sessions.GET("/ws", sc.stream)
		sessions.DELETE("", sc.end)
	}
}

// ownSession only lets a token act on the session it was issued for.
func (sc *SessionController) ownSession(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	owner, ok := identity.SessionID(ctx)
	if !ok || owner != id {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not belong to this session"})
		return
	}
	ctx.Next()
}

// create starts a session and returns its ID with a token for it.
func (sc *SessionController) create(ctx *gin.Context) {
	id, err := sc.gameSessionManager.NewSession()
	if err != nil {
		sc.fail(ctx, err)
		return
	}

	token, err := sc.authService.Issue(id)
	if err != nil {
		sc.logger.Errorw("issuing session token", "session", id, "error", err)
		_ = sc.gameSessionManager.End(id)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while issuing token"})
		return
	}

	ctx.JSON(http.StatusCreated, &NewSessionResponse{ID: id.String(), Token: token})
}

func (sc *SessionController) state(ctx *gin.Context) {
	s, err := sc.gameSessionManager.Snapshot(sessionID(ctx))
	if err != nil {
		sc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toStateResponse(s))
}

func (sc *SessionController) maze(ctx *gin.Context) {
	s, err := sc.gameSessionManager.Snapshot(sessionID(ctx))
	if err != nil {
		sc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMazeResponse(s))
}

func (sc *SessionController) mazeText(ctx *gin.Context) {
	s, err := sc.gameSessionManager.Snapshot(sessionID(ctx))
	if err != nil {
		sc.fail(ctx, err)
		return
	}
	ctx.String(http.StatusOK, s.Grid.String())
}

func (sc *SessionController) move(ctx *gin.Context) {
	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := game.ParseDirection(request.Direction)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := sessionID(ctx)
	step, err := sc.gameSessionManager.Move(id, d, request.DT)
	if err != nil {
		sc.fail(ctx, err)
		return
	}
	s, err := sc.gameSessionManager.Snapshot(id)
	if err != nil {
		sc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &MoveResponse{
		Requested: step.Requested,
		Allowed:   step.Allowed,
		State:     toStateResponse(s),
	})
}

func (sc *SessionController) rotate(ctx *gin.Context) {
	var request RotateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := sessionID(ctx)
	if err := sc.gameSessionManager.Rotate(id, request.DX, request.DY); err != nil {
		sc.fail(ctx, err)
		return
	}
	sc.state(ctx)
}

func (sc *SessionController) zoom(ctx *gin.Context) {
	var request ZoomRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sc.gameSessionManager.Zoom(sessionID(ctx), request.DY); err != nil {
		sc.fail(ctx, err)
		return
	}
	sc.state(ctx)
}

func (sc *SessionController) reset(ctx *gin.Context) {
	var request ResetRequest
	// An empty body resets with a server picked seed.
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	id := sessionID(ctx)
	seed, err := sc.gameSessionManager.Reset(id, request.Seed)
	if err != nil {
		sc.fail(ctx, err)
		return
	}
	s, err := sc.gameSessionManager.Snapshot(id)
	if err != nil {
		sc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &ResetResponse{Seed: seed, State: toStateResponse(s)})
}

func (sc *SessionController) end(ctx *gin.Context) {
	if err := sc.gameSessionManager.End(sessionID(ctx)); err != nil {
		sc.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// fail maps service errors to HTTP statuses.
func (sc *SessionController) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
	case errors.Is(err, service.ErrTooManySessions):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrUnknownDirection), errors.Is(err, game.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		sc.logger.Errorw("handling session request", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// sessionID returns the path ID, already validated by ownSession.
func sessionID(ctx *gin.Context) uuid.UUID {
	id, _ := identity.SessionID(ctx)
	return id
}
