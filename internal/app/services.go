package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
	"github.com/yungbote/moodtrace-backend/internal/platform/neo4jdb"
	"github.com/yungbote/moodtrace-backend/internal/services"
)

type Services struct {
	Ingest   services.IngestService
	Train    services.TrainService
	Predict  services.PredictService
	Baseline services.BaselineService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, graphClient *neo4jdb.Client) Services {
	log.Info("Wiring services...")
	return Services{
		Ingest: services.NewIngestService(
			db, log, graphClient, cfg.EmbeddingDim, cfg.HalfLifeDays,
			r.Entry, r.SelfReport, r.ContextPoint, r.AffectPoint,
			r.Feature, r.FeatureMention, r.BaselineStat,
		),
		Train: services.NewTrainService(
			db, log, graphClient, cfg.RidgeLambda,
			r.Entry, r.SelfReport, r.ContextPoint, r.AffectPoint,
			r.Feature, r.FeatureMention, r.CalibrationModel,
		),
		Predict: services.NewPredictService(
			db, log, graphClient, cfg.EmbeddingDim, cfg.DisagreementVarCap,
			r.Entry, r.ContextPoint, r.AffectPoint,
			r.Feature, r.FeatureMention, r.CalibrationModel,
		),
		Baseline: services.NewBaselineService(
			db, log, r.Entry, r.SelfReport, r.BaselineStat,
		),
	}
}
