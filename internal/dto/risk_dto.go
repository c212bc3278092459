package dto

import (
	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
)

// RiskScoreResponse is one ranked entry of the risk prediction endpoint.
// The riesgo field name is part of the consumer contract.
type RiskScoreResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Riesgo float64 `json:"riesgo"`
}

// ToRiskRankingResponse converts ranked domain scores to the response list,
// preserving their order.
func ToRiskRankingResponse(scores []domain.RiskScore) []RiskScoreResponse {
	out := make([]RiskScoreResponse, len(scores))
	for i, s := range scores {
		out[i] = RiskScoreResponse{
			ID:     s.CustomerID,
			Name:   s.Name,
			Riesgo: s.Probability,
		}
	}
	return out
}
