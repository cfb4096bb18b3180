package summary

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

import (
	"context"

	"financetracker/ledger"
)

// LedgerStore is the read side the aggregator runs against. Implementations
// must restrict every query to accounts owned by scope and to transactions
// dated within the period, inclusive on both ends.
type LedgerStore interface {
	FindAccountByRole(ctx context.Context, scope ledger.Scope, role ledger.AccountRole) (id string, found bool, err error)
	FindCategoryByName(ctx context.Context, scope ledger.Scope, name string) (id string, found bool, err error)
	FindAccountRole(ctx context.Context, scope ledger.Scope, accountID string) (role ledger.AccountRole, found bool, err error)

	AggregateMetrics(ctx context.Context, scope ledger.Scope, filter Filter, period Period) (Metrics, error)
	// AggregateRoleAmount sums the non-negative amounts matching filter.
	AggregateRoleAmount(ctx context.Context, scope ledger.Scope, filter Filter, period Period) (int64, error)
	// RankCategoriesByExpense sums |amount| of negative, categorized
	// transactions grouped by category name.
	RankCategoriesByExpense(ctx context.Context, scope ledger.Scope, filter Filter, period Period) ([]CategoryAmount, error)
	// GroupDailyByDate returns one point per day that has transactions, ascending.
	GroupDailyByDate(ctx context.Context, scope ledger.Scope, filter Filter, period Period) ([]DayPoint, error)
}
