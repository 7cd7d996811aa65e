package app

import (
	"gorm.io/gorm"

	moodrepos "github.com/yungbote/moodtrace-backend/internal/data/repos/mood"
	userrepos "github.com/yungbote/moodtrace-backend/internal/data/repos/user"
	"github.com/yungbote/moodtrace-backend/internal/platform/logger"
)

type Repos struct {
	User userrepos.UserRepo

	Entry            moodrepos.EntryRepo
	SelfReport       moodrepos.SelfReportRepo
	ContextPoint     moodrepos.ContextPointRepo
	AffectPoint      moodrepos.AffectPointRepo
	Feature          moodrepos.FeatureRepo
	FeatureMention   moodrepos.FeatureMentionRepo
	BaselineStat     moodrepos.BaselineStatRepo
	CalibrationModel moodrepos.CalibrationModelRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:             userrepos.NewUserRepo(db, log),
		Entry:            moodrepos.NewEntryRepo(db, log),
		SelfReport:       moodrepos.NewSelfReportRepo(db, log),
		ContextPoint:     moodrepos.NewContextPointRepo(db, log),
		AffectPoint:      moodrepos.NewAffectPointRepo(db, log),
		Feature:          moodrepos.NewFeatureRepo(db, log),
		FeatureMention:   moodrepos.NewFeatureMentionRepo(db, log),
		BaselineStat:     moodrepos.NewBaselineStatRepo(db, log),
		CalibrationModel: moodrepos.NewCalibrationModelRepo(db, log),
	}
}
