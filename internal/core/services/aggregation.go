package services

import (
	"fmt"
	"sort"

	"github.com/Carl2170/sw-conta-bi/internal/apperrors"
	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Pure reductions over already-fetched records. No I/O happens here; the
// KPI service fetches first and folds second.

// StatusHistogram counts invoices per status. Every known status is
// present in the result, zero included. A status outside the enumerated
// set fails with apperrors.ErrUnknownStatus rather than being dropped;
// silent drops would mask schema drift in the source.
func StatusHistogram(invoices []domain.InvoiceRecord) (map[domain.InvoiceStatus]int, error) {
	histogram := make(map[domain.InvoiceStatus]int, len(domain.KnownStatuses))
	for _, status := range domain.KnownStatuses {
		histogram[status] = 0
	}

	for _, inv := range invoices {
		if !inv.Status.IsKnown() {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownStatus, inv.Status)
		}
		histogram[inv.Status]++
	}
	return histogram, nil
}

// SumByGroup folds (key, amount) pairs into per-group cumulative sums.
// Groups are discovered dynamically; the result keeps first-appearance
// order and is not sorted.
func SumByGroup(keys []string, amounts []decimal.Decimal) []domain.GroupedTotal {
	index := make(map[string]int, len(keys))
	totals := make([]domain.GroupedTotal, 0)

	for i, key := range keys {
		pos, seen := index[key]
		if !seen {
			index[key] = len(totals)
			totals = append(totals, domain.GroupedTotal{Key: key, Total: decimal.Zero})
			pos = len(totals) - 1
		}
		totals[pos].Total = totals[pos].Total.Add(amounts[i])
	}
	return totals
}

// DistinctOverdueCustomers deduplicates overdue invoices by customer id and
// reports both count and the names in first-seen order. When duplicates
// disagree on the name, the last-seen name wins; that is defined behavior,
// not a bug.
func DistinctOverdueCustomers(invoices []domain.OverdueInvoice) domain.OverdueCustomers {
	order := make([]string, 0, len(invoices))
	nameByID := make(map[string]string, len(invoices))

	for _, inv := range invoices {
		id := inv.Customer.ID
		if _, seen := nameByID[id]; !seen {
			order = append(order, id)
		}
		nameByID[id] = inv.Customer.Name
	}

	names := make([]string, len(order))
	for i, id := range order {
		names[i] = nameByID[id]
	}
	return domain.OverdueCustomers{Count: len(order), Names: names}
}

// RankBalances orders balances by absolute magnitude, descending, and
// truncates to n. The sort is stable, so ties keep first-seen order.
// Magnitude, not signed value: a large negative balance outranks a small
// positive one.
func RankBalances(balances []domain.AccountBalance, n int) []domain.AccountBalance {
	ranked := make([]domain.AccountBalance, len(balances))
	copy(ranked, balances)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Balance.Abs().GreaterThan(ranked[j].Balance.Abs())
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
