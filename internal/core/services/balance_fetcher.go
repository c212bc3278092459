package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
	portsrepo "github.com/Carl2170/sw-conta-bi/internal/core/ports/repositories"
	portssvc "github.com/Carl2170/sw-conta-bi/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// balanceFetcher retrieves per-account balances in parallel through a
// bounded worker pool. Each sub-fetch is isolated; a failing account
// defaults to a zero balance and never aborts the batch.
type balanceFetcher struct {
	BaseService
	source  portsrepo.RecordSource
	workers int
}

// NewBalanceFetcher creates a balance fetcher running at most workers
// concurrent sub-fetches.
func NewBalanceFetcher(source portsrepo.RecordSource, workers int) portssvc.BalanceFetcherSvc {
	if workers < 1 {
		workers = 1
	}
	return &balanceFetcher{source: source, workers: workers}
}

var _ portssvc.BalanceFetcherSvc = (*balanceFetcher)(nil)

// fetchResult is the outcome of one sub-fetch. The error is carried here
// so the partial-failure policy is a single explicit fold, not control
// flow scattered across goroutines.
type fetchResult struct {
	account domain.Account
	balance decimal.Decimal
	err     error
}

// FetchBalances returns one balance per given account, in the given order.
// It blocks until every sub-fetch has completed or defaulted; there is no
// short-circuit timeout here. A caller needing bounded latency puts a
// deadline on ctx, which the sub-fetches inherit; expired fetches then fail
// fast and fold to zero like any other failure.
func (f *balanceFetcher) FetchBalances(ctx context.Context, accounts []domain.Account) []domain.AccountBalance {
	results := make(chan fetchResult, len(accounts))
	sem := make(chan struct{}, f.workers)

	var wg sync.WaitGroup
	for _, account := range accounts {
		wg.Add(1)
		go func(account domain.Account) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			balance, err := f.source.AccountBalance(ctx, account.AccountID)
			results <- fetchResult{account: account, balance: balance, err: err}
		}(account)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// The caller is the single collecting goroutine; workers never share
	// mutable state beyond the results channel.
	balanceByID := make(map[string]decimal.Decimal, len(accounts))
	for res := range results {
		balanceByID[res.account.AccountID] = f.foldResult(ctx, res)
	}

	out := make([]domain.AccountBalance, len(accounts))
	for i, account := range accounts {
		out[i] = domain.AccountBalance{
			AccountID: account.AccountID,
			Name:      account.Name,
			Balance:   balanceByID[account.AccountID],
		}
	}
	return out
}

// foldResult applies the default-on-error policy to one sub-fetch outcome.
func (f *balanceFetcher) foldResult(ctx context.Context, res fetchResult) decimal.Decimal {
	if res.err != nil {
		f.LogWarn(ctx, "Balance fetch failed, defaulting to zero",
			slog.String("account_id", res.account.AccountID),
			slog.String("account_name", res.account.Name),
			slog.String("error", res.err.Error()))
		return decimal.Zero
	}
	return res.balance
}
