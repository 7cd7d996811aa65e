package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/moodtrace-backend/internal/data/db"
	"github.com/yungbote/moodtrace-backend/internal/data/graph"
	apphttp "github.com/yungbote/moodtrace-backend/internal/http"
	httpMW "github.com/yungbote/moodtrace-backend/internal/http/middleware"
	"github.com/yungbote/moodtrace-backend/internal/observability"
	"github.com/yungbote/moodtrace-backend/internal/platform/envutil"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
	"github.com/yungbote/moodtrace-backend/internal/platform/neo4jdb"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Graph    *neo4jdb.Client
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig()

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: envutil.Str("OTEL_SERVICE_NAME", "moodtrace-backend"),
		Environment: envutil.Str("APP_ENV", "development"),
		Version:     envutil.Str("APP_VERSION", ""),
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	graphClient, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init neo4j: %w", err)
	}
	if graphClient != nil {
		if err := graph.EnsureEntrySchema(context.Background(), graphClient, log, cfg.EmbeddingDim); err != nil {
			log.Warn("neo4j schema init failed (continuing)", "error", err)
		}
	} else {
		log.Warn("NEO4J_URI not set; running without the graph mirror")
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, graphClient)
	handlerset := wireHandlers(log, serviceset)

	router := apphttp.NewRouter(apphttp.RouterConfig{
		Log:                log,
		AuthMiddleware:     httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey),
		EntryHandler:       handlerset.Entry,
		CalibrationHandler: handlerset.Calibration,
		PredictionHandler:  handlerset.Prediction,
		BaselineHandler:    handlerset.Baseline,
		HealthHandler:      handlerset.Health,
	})

	return &App{
		Log:          log,
		DB:           theDB,
		Graph:        graphClient,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.Graph != nil {
		if err := a.Graph.Close(ctx); err != nil {
			a.Log.Warn("neo4j close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
