package repository

import (
	"context"
	"errors"

	"financetracker/ledger"
	"financetracker/summary"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ summary.LedgerStore = (*Store)(nil)

const ledgerFrom = `FROM transactions t
JOIN accounts a ON a.id = t.account_id`

func (q *Queries) FindAccountByRole(ctx context.Context, scope ledger.Scope, role ledger.AccountRole) (string, bool, error) {
	w := &where{}
	w.and("a.role = " + w.arg(string(role)))
	w.scope("a", scope)

	var id pgtype.UUID
	err := q.db.QueryRow(ctx, "SELECT a.id FROM accounts a WHERE "+w.String()+" ORDER BY a.created_at, a.id LIMIT 1", w.args...).Scan(&id)
	return found(fromUUID(id), err, "find account by role")
}

func (q *Queries) FindCategoryByName(ctx context.Context, scope ledger.Scope, name string) (string, bool, error) {
	w := &where{}
	w.and("c.name = " + w.arg(name))
	w.scope("c", scope)

	var id pgtype.UUID
	err := q.db.QueryRow(ctx, "SELECT c.id FROM categories c WHERE "+w.String()+" LIMIT 1", w.args...).Scan(&id)
	return found(fromUUID(id), err, "find category by name")
}

func (q *Queries) FindAccountRole(ctx context.Context, scope ledger.Scope, accountID string) (ledger.AccountRole, bool, error) {
	w := &where{}
	w.and("a.id = " + w.arg(toUUID(accountID)))
	w.scope("a", scope)

	var role string
	err := q.db.QueryRow(ctx, "SELECT a.role FROM accounts a WHERE "+w.String(), w.args...).Scan(&role)
	r, ok, err := found(role, err, "find account role")
	return ledger.AccountRole(r), ok, err
}

// found turns a no-rows lookup into a miss instead of an error.
func found[T any](v T, err error, op string) (T, bool, error) {
	var zero T
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, mapError(err, op)
	}
	return v, true, nil
}

func (q *Queries) AggregateMetrics(ctx context.Context, scope ledger.Scope, filter summary.Filter, period summary.Period) (summary.Metrics, error) {
	w, err := ledgerWhere(scope, filter, period)
	if err != nil {
		return summary.Metrics{}, err
	}

	query := `SELECT
	COALESCE(SUM(CASE WHEN t.amount >= 0 THEN t.amount ELSE 0 END), 0)::bigint,
	COALESCE(SUM(CASE WHEN t.amount < 0 THEN -t.amount ELSE 0 END), 0)::bigint,
	COALESCE(SUM(t.amount), 0)::bigint
` + ledgerFrom + `
WHERE ` + w.String()

	var m summary.Metrics
	if err := q.db.QueryRow(ctx, query, w.args...).Scan(&m.Income, &m.Expenses, &m.Remaining); err != nil {
		return summary.Metrics{}, mapError(err, "aggregate metrics")
	}
	m.CategoryBalance = m.Remaining
	return m, nil
}

func (q *Queries) AggregateRoleAmount(ctx context.Context, scope ledger.Scope, filter summary.Filter, period summary.Period) (int64, error) {
	w, err := ledgerWhere(scope, filter, period)
	if err != nil {
		return 0, err
	}
	w.and("t.amount >= 0")

	var total int64
	query := "SELECT COALESCE(SUM(t.amount), 0)::bigint " + ledgerFrom + " WHERE " + w.String()
	if err := q.db.QueryRow(ctx, query, w.args...).Scan(&total); err != nil {
		return 0, mapError(err, "aggregate role amount")
	}
	return total, nil
}

func (q *Queries) RankCategoriesByExpense(ctx context.Context, scope ledger.Scope, filter summary.Filter, period summary.Period) ([]summary.CategoryAmount, error) {
	w, err := ledgerWhere(scope, filter, period)
	if err != nil {
		return nil, err
	}
	w.and("t.amount < 0")

	query := `SELECT c.name, SUM(-t.amount)::bigint AS value
` + ledgerFrom + `
JOIN categories c ON c.id = t.category_id
WHERE ` + w.String() + `
GROUP BY c.name
ORDER BY value DESC, c.name`

	rows, err := q.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError(err, "rank categories")
	}
	ranked, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (summary.CategoryAmount, error) {
		var e summary.CategoryAmount
		err := row.Scan(&e.Name, &e.Value)
		return e, err
	})
	return ranked, mapError(err, "rank categories")
}

func (q *Queries) GroupDailyByDate(ctx context.Context, scope ledger.Scope, filter summary.Filter, period summary.Period) ([]summary.DayPoint, error) {
	w, err := ledgerWhere(scope, filter, period)
	if err != nil {
		return nil, err
	}

	query := `SELECT t.date,
	COALESCE(SUM(CASE WHEN t.amount >= 0 THEN t.amount ELSE 0 END), 0)::bigint,
	COALESCE(SUM(CASE WHEN t.amount < 0 THEN -t.amount ELSE 0 END), 0)::bigint
` + ledgerFrom + `
WHERE ` + w.String() + `
GROUP BY t.date
ORDER BY t.date`

	rows, err := q.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError(err, "group daily")
	}
	days, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (summary.DayPoint, error) {
		var (
			p    summary.DayPoint
			date pgtype.Date
		)
		err := row.Scan(&date, &p.Income, &p.Expenses)
		p.Date = fromDate(date)
		return p, err
	})
	return days, mapError(err, "group daily")
}
