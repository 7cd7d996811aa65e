package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/moodtrace-backend/internal/http/handlers"
	httpMW "github.com/yungbote/moodtrace-backend/internal/http/middleware"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware

	EntryHandler       *httpH.EntryHandler
	CalibrationHandler *httpH.CalibrationHandler
	PredictionHandler  *httpH.PredictionHandler
	BaselineHandler    *httpH.BaselineHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("moodtrace-backend"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			api.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.EntryHandler != nil {
			api.POST("/entries", cfg.EntryHandler.RecordEntry)
		}
		if cfg.CalibrationHandler != nil {
			api.POST("/calibration/train", cfg.CalibrationHandler.Train)
		}
		if cfg.PredictionHandler != nil {
			api.POST("/predict", cfg.PredictionHandler.Predict)
		}
		if cfg.BaselineHandler != nil {
			api.GET("/baseline", cfg.BaselineHandler.Snapshot)
		}
	}

	return r
}
