package domain

import (
	"github.com/yungbote/moodtrace-backend/internal/domain/mood"
	"github.com/yungbote/moodtrace-backend/internal/domain/user"
)

type User = user.User

type MoodEntry = mood.MoodEntry
type SelfReportLabel = mood.SelfReportLabel
type ContextPoint = mood.ContextPoint
type AffectPoint = mood.AffectPoint
type Feature = mood.Feature
type FeatureMention = mood.FeatureMention
type BaselineStat = mood.BaselineStat
type CalibrationModel = mood.CalibrationModel

const (
	FeatureTypeTheme    = mood.FeatureTypeTheme
	FeatureTypeSymptom  = mood.FeatureTypeSymptom
	FeatureTypeStressor = mood.FeatureTypeStressor
)

var (
	NormalizeFeatureName = mood.NormalizeFeatureName
	CanonicalFeatureKey  = mood.CanonicalFeatureKey
)
