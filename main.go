package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/beka-birhanu/maze3d/api"
	gameapi "github.com/beka-birhanu/maze3d/api/game"
	api_i "github.com/beka-birhanu/maze3d/api/i"
	"github.com/beka-birhanu/maze3d/api/identity"
	"github.com/beka-birhanu/maze3d/config"
	"github.com/beka-birhanu/maze3d/game"
	logger "github.com/beka-birhanu/maze3d/infrastruture/log"
	"github.com/beka-birhanu/maze3d/infrastruture/metrics"
	"github.com/beka-birhanu/maze3d/infrastruture/token"
	"github.com/beka-birhanu/maze3d/motion"
	"github.com/beka-birhanu/maze3d/service"
	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Global variables for dependencies
var (
	registry           *prometheus.Registry
	gameMetrics        *metrics.Game
	httpMetrics        *metrics.HTTP
	gameConfig         game.Config
	gameSessionManager *service.GameSessionManager
	jwtTokenizer       i.Tokenizer
	authService        i.SessionAuthenticator
	sessionController  api_i.Controller
	authController     api_i.Controller
	router             *api.Router
	appLogger          *zap.SugaredLogger
)

func initMetrics() {
	registry = prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	gameMetrics = metrics.NewGame(registry)
	httpMetrics = metrics.NewHTTP(registry)
	appLogger.Info("Metrics initialized")
}

func initGameConfig() {
	tuning, err := config.LoadGame(config.Envs.GameConfig)
	if err != nil {
		appLogger.Errorf("Loading game config: %v", err)
		os.Exit(1)
	}

	gameConfig = game.Config{
		Width:  tuning.Maze.Width,
		Height: tuning.Maze.Height,
		Geometry: motion.Geometry{
			WallSize:      tuning.World.WallSize,
			WallThickness: tuning.World.WallThickness,
			Margin:        tuning.World.Margin,
		},
		Speed:       tuning.Player.Speed,
		Sensitivity: tuning.Player.Sensitivity,
	}
	appLogger.Infow("Game config loaded", "width", gameConfig.Width, "height", gameConfig.Height)
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Errorf("Creating session manager logger: %v", err)
		os.Exit(1)
	}

	gameSessionManager, err = service.NewGameSessionManager(&service.Config{
		GameConfig:  gameConfig,
		MaxSessions: config.Envs.MaxSessions,
		Logger:      sessionLogger,
		Metrics:     gameMetrics,
	})
	if err != nil {
		appLogger.Errorf("Creating session manager: %v", err)
		os.Exit(1)
	}

	appLogger.Info("Session manager initialized")
}

func initJWTTokenizer() {
	secret := config.Envs.JWTSecret
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			appLogger.Errorf("Generating JWT secret: %v", err)
			os.Exit(1)
		}
		secret = hex.EncodeToString(buf)
		appLogger.Warn("JWT_SECRET not set, tokens will not survive a restart")
	}

	jwtTokenizer = token.NewJwtService(secret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(jwtTokenizer, 0)
	if err != nil {
		appLogger.Errorf("Creating auth service: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initControllers() {
	controllerLogger, err := logger.New("HTTP", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Errorf("Creating controller logger: %v", err)
		os.Exit(1)
	}

	sessionController, err = gameapi.NewSessionController(gameSessionManager, authService, controllerLogger)
	if err != nil {
		appLogger.Errorf("Creating session controller: %v", err)
		os.Exit(1)
	}
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Controllers initialized")
}

func initRouter(a i.SessionAuthenticator) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{sessionController, authController},
		AuthorizationMiddleware: identity.Authoriz(a),
		Middlewares:             []gin.HandlerFunc{httpMetrics.Handler()},
		MetricsHandler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
	appLogger.Info("Router initialized")
}

func main() {
	logger.SetFile(logger.FileOptions{
		Path:       config.Envs.LogFile,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	defer func() {
		_ = logger.CloseFile()
	}()

	// Initialize dependencies
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating app logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	initMetrics()
	initGameConfig()
	initSessionManager()
	defer gameSessionManager.StopAll()

	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(authService)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Errorf("Starting server: %v", err)
		os.Exit(1)
	}
}
