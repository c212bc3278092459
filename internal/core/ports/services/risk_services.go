package services

import (
	"context"

	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
)

// RiskSvcFacade defines the risk-scoring pipeline: feature extraction over
// fresh customer history plus classifier inference and ranking.
type RiskSvcFacade interface {
	// TopRisks returns the highest-risk customers, sorted descending by
	// probability (stable, first-seen tie-break) and truncated to the
	// configured cap. Customers without invoices are excluded.
	TopRisks(ctx context.Context) ([]domain.RiskScore, error)
}

// RiskClassifier is the frozen, pre-trained classifier consumed as an
// opaque capability. Implementations are loaded once from a fixed artifact
// and must be safe for concurrent use.
type RiskClassifier interface {
	// PredictRisk returns the probability of the positive (overdue) class
	// for one feature vector, in [0,1].
	PredictRisk(v domain.FeatureVector) float64
}
