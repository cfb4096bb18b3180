package repository

import (
	"fmt"
	"strconv"
	"strings"

	"financetracker/ledger"
	"financetracker/summary"
)

// where accumulates AND-ed SQL conditions with positional arguments.
type where struct {
	clauses []string
	args    []any
}

// arg registers v and returns its placeholder.
func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *where) and(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return "TRUE"
	}
	return strings.Join(w.clauses, " AND ")
}

// scope restricts the rows of alias (accounts or categories) to the caller.
func (w *where) scope(alias string, scope ledger.Scope) {
	if scope.IsOrg() {
		w.and(alias + ".org_id = " + w.arg(scope.OrgID))
		return
	}
	w.and(alias + ".user_id = " + w.arg(scope.UserID) + " AND " + alias + ".org_id IS NULL")
}

// filter translates summary predicates over transactions aliased t.
func (w *where) filter(f summary.Filter) error {
	for _, p := range f {
		switch p := p.(type) {
		case summary.AccountIs:
			w.and("t.account_id = " + w.arg(toUUID(p.ID)))
		case summary.CategoryIs:
			w.and("t.category_id = " + w.arg(toUUID(p.ID)))
		default:
			return fmt.Errorf("unsupported predicate %T", p)
		}
	}
	return nil
}

func (w *where) period(p summary.Period) {
	w.and("t.date >= " + w.arg(toDate(p.Start)))
	w.and("t.date <= " + w.arg(toDate(p.End)))
}

// ledgerWhere is the condition every summary query runs under: accounts in
// scope, transactions in the period, and the filter predicates.
func ledgerWhere(scope ledger.Scope, f summary.Filter, p summary.Period) (*where, error) {
	w := &where{}
	w.scope("a", scope)
	if err := w.filter(f); err != nil {
		return nil, err
	}
	w.period(p)
	return w, nil
}
