package summary

import (
	"context"
	"fmt"
	"time"

	"financetracker/ledger"
	"financetracker/logger"

	"golang.org/x/sync/errgroup"
)

// Config tunes period defaults.
type Config struct {
	DefaultWindow WindowPolicy
	TrailingDays  int
	// Now defaults to time.Now.
	Now func() time.Time
}

// Aggregator computes summaries against a LedgerStore.
type Aggregator struct {
	store LedgerStore
	cfg   Config
}

func NewAggregator(store LedgerStore, cfg Config) *Aggregator {
	if cfg.DefaultWindow == "" {
		cfg.DefaultWindow = WindowTrailing
	}
	if cfg.TrailingDays <= 0 {
		cfg.TrailingDays = DefaultTrailingDays
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Aggregator{store: store, cfg: cfg}
}

// designations are the scope's special accounts and categories.
type designations struct {
	investmentAccountID  string
	hasInvestmentAccount bool
	salesAccountID       string
	hasSalesAccount      bool

	investmentCategoryID  string
	hasInvestmentCategory bool
	salesCategoryID       string
	hasSalesCategory      bool

	accountRole *ledger.AccountRole
}

// pivotAccount returns the account a pivot pins to, if it exists in scope.
func (d designations) pivotAccount(p Pivot) (string, bool) {
	switch p {
	case PivotInvestment:
		return d.investmentAccountID, d.hasInvestmentAccount
	case PivotSales:
		return d.salesAccountID, d.hasSalesAccount
	}
	return "", false
}

// plan holds the filters of one request, built once from the request and
// its designations.
type plan struct {
	bucket  Filter
	ranking Filter
}

func newPlan(req Request, d designations) plan {
	var base Filter
	if req.AccountID != "" {
		base = base.And(AccountIs{ID: req.AccountID})
	}

	bucket := base
	if req.Pivot != PivotNone && req.CategoryID == "" {
		if id, ok := d.pivotAccount(req.Pivot); ok {
			bucket = base.And(AccountIs{ID: id})
		}
	} else if req.CategoryID != "" {
		bucket = base.And(CategoryIs{ID: req.CategoryID})
	}

	ranking := base
	if req.CategoryID != "" {
		ranking = base.And(CategoryIs{ID: req.CategoryID})
	}
	return plan{bucket: bucket, ranking: ranking}
}

// periodTotals is everything computed per period.
type periodTotals struct {
	metrics    Metrics
	investment int64
	sales      int64
}

// Summarize computes the summary for scope. Either the complete summary is
// returned or an error; a failing sub-query cancels the others.
func (a *Aggregator) Summarize(ctx context.Context, scope ledger.Scope, req Request) (*Summary, error) {
	if !scope.Valid() {
		return nil, ErrUnauthorized
	}

	current, err := ResolvePeriod(req.From, req.To, a.cfg.DefaultWindow, a.cfg.TrailingDays, a.cfg.Now())
	if err != nil {
		return nil, err
	}
	prior := current.Prior()

	log := logger.FromContext(ctx)
	log.Debug().
		Str("period", current.String()).
		Str("prior", prior.String()).
		Str("pivot", req.Pivot.String()).
		Bool("org", scope.IsOrg()).
		Msg("Summarizing ledger")

	d, err := a.lookup(ctx, scope, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	p := newPlan(req, d)

	var (
		cur, prev  periodTotals
		categories []CategoryAmount
		days       []DayPoint
	)
	g, gctx := errgroup.WithContext(ctx)
	a.totals(gctx, g, scope, p, d, current, &cur)
	a.totals(gctx, g, scope, p, d, prior, &prev)
	g.Go(func() error {
		var err error
		categories, err = a.store.RankCategoriesByExpense(gctx, scope, p.ranking, current)
		return err
	})
	g.Go(func() error {
		var err error
		days, err = a.store.GroupDailyByDate(gctx, scope, p.bucket, current)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}

	if d.hasInvestmentAccount {
		cur.metrics.Remaining = cur.investment - cur.metrics.Expenses
		prev.metrics.Remaining = prev.investment - prev.metrics.Expenses
	}

	return &Summary{
		RemainingAmount:       cur.metrics.Remaining,
		CategoryBalance:       cur.metrics.CategoryBalance,
		RemainingChange:       PercentageChange(cur.metrics.Remaining, prev.metrics.Remaining),
		IncomeAmount:          cur.metrics.Income,
		IncomeChange:          PercentageChange(cur.metrics.Income, prev.metrics.Income),
		InvestmentAmount:      cur.investment,
		InvestmentChange:      PercentageChange(cur.investment, prev.investment),
		ExpensesAmount:        cur.metrics.Expenses,
		ExpensesChange:        PercentageChange(cur.metrics.Expenses, prev.metrics.Expenses),
		Categories:            RankCategories(categories),
		Days:                  FillMissingDays(days, current),
		HasInvestmentCategory: d.hasInvestmentCategory,
		HasInvestmentAccount:  d.hasInvestmentAccount,
		SalesAmount:           cur.sales,
		SalesChange:           PercentageChange(cur.sales, prev.sales),
		HasSalesCategory:      d.hasSalesCategory,
		AccountRole:           d.accountRole,
	}, nil
}

// lookup resolves the designated accounts and categories concurrently.
func (a *Aggregator) lookup(ctx context.Context, scope ledger.Scope, req Request) (designations, error) {
	var d designations
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		d.investmentAccountID, d.hasInvestmentAccount, err = a.store.FindAccountByRole(gctx, scope, ledger.RoleInvestment)
		return err
	})
	g.Go(func() error {
		var err error
		d.salesAccountID, d.hasSalesAccount, err = a.store.FindAccountByRole(gctx, scope, ledger.RoleSales)
		return err
	})
	g.Go(func() error {
		var err error
		d.investmentCategoryID, d.hasInvestmentCategory, err = a.store.FindCategoryByName(gctx, scope, ledger.InvestmentCategoryName)
		return err
	})
	g.Go(func() error {
		var err error
		d.salesCategoryID, d.hasSalesCategory, err = a.store.FindCategoryByName(gctx, scope, ledger.SalesCategoryName)
		return err
	})
	if req.AccountID != "" {
		g.Go(func() error {
			role, found, err := a.store.FindAccountRole(gctx, scope, req.AccountID)
			if found {
				d.accountRole = &role
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return designations{}, err
	}
	return d, nil
}

// totals schedules the per-period sub-queries on g.
func (a *Aggregator) totals(ctx context.Context, g *errgroup.Group, scope ledger.Scope, p plan, d designations, period Period, out *periodTotals) {
	g.Go(func() error {
		var err error
		out.metrics, err = a.store.AggregateMetrics(ctx, scope, p.bucket, period)
		return err
	})
	if d.hasInvestmentCategory {
		g.Go(func() error {
			var err error
			out.investment, err = a.store.AggregateRoleAmount(ctx, scope, Filter{CategoryIs{ID: d.investmentCategoryID}}, period)
			return err
		})
	}
	if d.hasSalesCategory {
		g.Go(func() error {
			var err error
			out.sales, err = a.store.AggregateRoleAmount(ctx, scope, Filter{CategoryIs{ID: d.salesCategoryID}}, period)
			return err
		})
	}
}
