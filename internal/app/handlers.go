package app

import (
	httpH "github.com/yungbote/moodtrace-backend/internal/http/handlers"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
)

type Handlers struct {
	Entry       *httpH.EntryHandler
	Calibration *httpH.CalibrationHandler
	Prediction  *httpH.PredictionHandler
	Baseline    *httpH.BaselineHandler
	Health      *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Entry:       httpH.NewEntryHandler(s.Ingest),
		Calibration: httpH.NewCalibrationHandler(s.Train),
		Prediction:  httpH.NewPredictionHandler(s.Predict),
		Baseline:    httpH.NewBaselineHandler(s.Baseline),
		Health:      httpH.NewHealthHandler(),
	}
}
