package services

import (
	portsrepo "github.com/Carl2170/sw-conta-bi/internal/core/ports/repositories"
	portssvc "github.com/Carl2170/sw-conta-bi/internal/core/ports/services"
	"github.com/Carl2170/sw-conta-bi/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, source portsrepo.RecordSource, classifier portssvc.RiskClassifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The balance fetcher is shared infrastructure of the KPI pipeline; its
	// pool size is independent of (and typically larger than) the account cap.
	balanceFetcher := NewBalanceFetcher(source, cfg.BalanceWorkers)

	container.KPI = NewKPIService(source, balanceFetcher,
		WithAccountCap(cfg.BalanceAccountCap),
		WithTopBalanceN(cfg.BalanceAccountCap),
	)
	container.Risk = NewRiskService(source, classifier,
		WithRiskTopN(cfg.RiskTopN),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.KPISvcFacade  = (*kpiService)(nil)
	_ portssvc.RiskSvcFacade = (*riskService)(nil)
)
