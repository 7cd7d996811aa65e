package app

import (
	"github.com/yungbote/moodtrace-backend/internal/baseline"
	"github.com/yungbote/moodtrace-backend/internal/platform/envutil"
	"github.com/yungbote/moodtrace-backend/internal/services"
)

type Config struct {
	JWTSecretKey string

	// EmbeddingDim is the fixed dimension of entry embeddings supplied by the
	// upstream text-understanding service. 0 disables the dimension check and
	// the vector index.
	EmbeddingDim int

	HalfLifeDays       float64
	RidgeLambda        float64
	DisagreementVarCap float64
}

func LoadConfig() Config {
	return Config{
		JWTSecretKey:       envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		EmbeddingDim:       envutil.Int("EMBEDDING_DIM", 1536),
		HalfLifeDays:       envutil.Float("BASELINE_HALF_LIFE_DAYS", baseline.DefaultHalfLifeDays),
		RidgeLambda:        envutil.Float("RIDGE_LAMBDA", services.DefaultRidgeLambda),
		DisagreementVarCap: envutil.Float("DISAGREEMENT_VAR_CAP", services.DefaultDisagreementVarCap),
	}
}
