package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
	portsrepo "github.com/Carl2170/sw-conta-bi/internal/core/ports/repositories"
	portssvc "github.com/Carl2170/sw-conta-bi/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// riskService implements the RiskSvcFacade interface
type riskService struct {
	BaseService
	source     portsrepo.RecordSource
	classifier portssvc.RiskClassifier
	topN       int
	now        func() time.Time
}

// RiskServiceOption is a functional option for configuring the risk service
type RiskServiceOption func(*riskService)

// WithRiskTopN caps how many ranked customers TopRisks returns.
func WithRiskTopN(n int) RiskServiceOption {
	return func(s *riskService) {
		s.topN = n
	}
}

// WithClock overrides the wall clock used for the days-to-due feature.
// Intended for tests; production scoring is deliberately time-dependent.
func WithClock(now func() time.Time) RiskServiceOption {
	return func(s *riskService) {
		s.now = now
	}
}

// NewRiskService creates a new risk service with the provided options
func NewRiskService(source portsrepo.RecordSource, classifier portssvc.RiskClassifier, options ...RiskServiceOption) portssvc.RiskSvcFacade {
	svc := &riskService{
		source:     source,
		classifier: classifier,
		topN:       10,
		now:        time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.RiskSvcFacade = (*riskService)(nil)

// TopRisks fetches every customer's history, extracts feature vectors,
// applies the frozen classifier and returns the ranked, truncated list.
// Customers without invoices are skipped, never scored with defaults.
func (s *riskService) TopRisks(ctx context.Context) ([]domain.RiskScore, error) {
	customers, err := s.source.CustomersWithHistory(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch customers with history")
		return nil, fmt.Errorf("top risks: %w", err)
	}

	now := s.now()
	scores := make([]domain.RiskScore, 0, len(customers))
	skipped := 0
	for _, customer := range customers {
		vector, ok := ExtractFeatures(customer, now)
		if !ok {
			skipped++
			continue
		}

		probability := s.classifier.PredictRisk(vector)
		scores = append(scores, domain.RiskScore{
			CustomerID:  customer.ID,
			Name:        customer.Name,
			Probability: roundProbability(probability),
		})
	}

	// Stable sort keeps first-seen order among equal probabilities.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Probability > scores[j].Probability
	})
	if len(scores) > s.topN {
		scores = scores[:s.topN]
	}

	s.LogInfo(ctx, "Risk ranking computed",
		slog.Int("customers", len(customers)),
		slog.Int("skipped_without_invoices", skipped),
		slog.Int("ranked", len(scores)))
	return scores, nil
}

// ExtractFeatures derives the fixed 3-feature vector for one customer. The
// second return value is false when the customer has no invoices and thus
// no defined vector.
//
// The days-to-due feature follows the source's convention: it is taken
// from the first invoice in the provided order, not from the soonest-due
// one, and is signed relative to now (negative when already overdue). Both
// are deliberate; tests pin them.
func ExtractFeatures(customer domain.Customer, now time.Time) (domain.FeatureVector, bool) {
	if len(customer.Invoices) == 0 {
		return domain.FeatureVector{}, false
	}

	totalInvoiced := decimal.Zero
	for _, inv := range customer.Invoices {
		totalInvoiced = totalInvoiced.Add(inv.TotalAmount)
	}

	totalPaid := decimal.Zero
	for _, p := range customer.Payments {
		totalPaid = totalPaid.Add(p.Amount)
	}

	daysToDue := 0
	if due := customer.Invoices[0].DueDate; due != nil {
		// Floor of whole days, so a partially elapsed day already counts
		// as overdue on the negative side.
		daysToDue = int(math.Floor(due.Sub(now).Hours() / 24))
	}

	return domain.FeatureVector{
		TotalInvoiced: totalInvoiced.InexactFloat64(),
		TotalPaid:     totalPaid.InexactFloat64(),
		DaysToDue:     daysToDue,
	}, true
}

// roundProbability rounds to exactly 3 decimal digits for presentation.
func roundProbability(p float64) float64 {
	return math.Round(p*1000) / 1000
}
