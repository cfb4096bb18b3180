package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"financetracker/ledger"
	"financetracker/summary"
)

var _ summary.LedgerStore = (*Store)(nil)

// FindAccountByRole returns the oldest account with role in scope.
func (s *Store) FindAccountByRole(ctx context.Context, scope ledger.Scope, role ledger.AccountRole) (string, bool, error) {
	accounts, err := s.ListAccounts(ctx, scope)
	if err != nil {
		return "", false, err
	}
	var match *ledger.Account
	for i := range accounts {
		a := &accounts[i]
		if a.Role != role {
			continue
		}
		if match == nil || a.CreatedAt.Before(match.CreatedAt) || (a.CreatedAt.Equal(match.CreatedAt) && a.ID < match.ID) {
			match = a
		}
	}
	if match == nil {
		return "", false, nil
	}
	return match.ID, true, nil
}

func (s *Store) FindCategoryByName(ctx context.Context, scope ledger.Scope, name string) (string, bool, error) {
	categories, err := s.ListCategories(ctx, scope)
	if err != nil {
		return "", false, err
	}
	for _, c := range categories {
		if c.Name == name {
			return c.ID, true, nil
		}
	}
	return "", false, nil
}

func (s *Store) FindAccountRole(_ context.Context, scope ledger.Scope, accountID string) (ledger.AccountRole, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.account(scope, accountID)
	if errors.Is(err, ledger.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return a.Role, true, nil
}

func (s *Store) AggregateMetrics(ctx context.Context, scope ledger.Scope, filter summary.Filter, period summary.Period) (summary.Metrics, error) {
	var m summary.Metrics
	err := s.each(ctx, scope, filter, period, func(tx ledger.Transaction) {
		if tx.Amount >= 0 {
			m.Income += tx.Amount
		} else {
			m.Expenses -= tx.Amount
		}
		m.Remaining += tx.Amount
	})
	m.CategoryBalance = m.Remaining
	return m, err
}

func (s *Store) AggregateRoleAmount(ctx context.Context, scope ledger.Scope, filter summary.Filter, period summary.Period) (int64, error) {
	var total int64
	err := s.each(ctx, scope, filter, period, func(tx ledger.Transaction) {
		if tx.Amount >= 0 {
			total += tx.Amount
		}
	})
	return total, err
}

func (s *Store) RankCategoriesByExpense(ctx context.Context, scope ledger.Scope, filter summary.Filter, period summary.Period) ([]summary.CategoryAmount, error) {
	byName := map[string]int64{}
	err := s.each(ctx, scope, filter, period, func(tx ledger.Transaction) {
		if tx.Amount >= 0 || tx.CategoryID == nil {
			return
		}
		c, ok := s.categories[*tx.CategoryID]
		if !ok {
			return
		}
		byName[c.Name] -= tx.Amount
	})
	if err != nil {
		return nil, err
	}

	out := make([]summary.CategoryAmount, 0, len(byName))
	for name, value := range byName {
		out = append(out, summary.CategoryAmount{Name: name, Value: value})
	}
	slices.SortFunc(out, func(a, b summary.CategoryAmount) int {
		return cmp.Or(cmp.Compare(b.Value, a.Value), cmp.Compare(a.Name, b.Name))
	})
	return out, nil
}

func (s *Store) GroupDailyByDate(ctx context.Context, scope ledger.Scope, filter summary.Filter, period summary.Period) ([]summary.DayPoint, error) {
	byDay := map[int64]*summary.DayPoint{}
	err := s.each(ctx, scope, filter, period, func(tx ledger.Transaction) {
		key := tx.Date.Unix()
		p, ok := byDay[key]
		if !ok {
			p = &summary.DayPoint{Date: tx.Date}
			byDay[key] = p
		}
		if tx.Amount >= 0 {
			p.Income += tx.Amount
		} else {
			p.Expenses -= tx.Amount
		}
	})
	if err != nil {
		return nil, err
	}

	out := make([]summary.DayPoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b summary.DayPoint) int { return a.Date.Compare(b.Date) })
	return out, nil
}

// each calls fn for every transaction in scope, period and filter while
// holding the read lock.
func (s *Store) each(ctx context.Context, scope ledger.Scope, filter summary.Filter, period summary.Period, fn func(ledger.Transaction)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tx := range s.transactions {
		acc, ok := s.accounts[tx.AccountID]
		if !ok || !scope.Owns(acc.UserID, acc.OrgID) || !period.Contains(tx.Date) {
			continue
		}
		ok, err := matches(filter, tx)
		if err != nil {
			return err
		}
		if ok {
			fn(tx)
		}
	}
	return nil
}

func matches(filter summary.Filter, tx ledger.Transaction) (bool, error) {
	for _, p := range filter {
		switch p := p.(type) {
		case summary.AccountIs:
			if tx.AccountID != p.ID {
				return false, nil
			}
		case summary.CategoryIs:
			if tx.CategoryID == nil || *tx.CategoryID != p.ID {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported predicate %T", p)
		}
	}
	return true, nil
}
