package summary

import (
	"encoding/json"
	"strings"
	"time"

	"financetracker/ledger"
)

// DateLayout is the wire format of calendar days.
const DateLayout = "2006-01-02"

// Pivot selects the account the metric buckets are pinned to in company mode.
type Pivot int

const (
	PivotNone Pivot = iota
	PivotInvestment
	PivotSales
)

// ParsePivot maps the companyMode query value to a Pivot. Unknown values
// disable company mode.
func ParsePivot(companyMode string) Pivot {
	switch strings.ToLower(strings.TrimSpace(companyMode)) {
	case "true", "investment":
		return PivotInvestment
	case "sales":
		return PivotSales
	}
	return PivotNone
}

// Role is the account role a pivot pins to.
func (p Pivot) Role() (ledger.AccountRole, bool) {
	switch p {
	case PivotInvestment:
		return ledger.RoleInvestment, true
	case PivotSales:
		return ledger.RoleSales, true
	}
	return "", false
}

func (p Pivot) String() string {
	switch p {
	case PivotInvestment:
		return "investment"
	case PivotSales:
		return "sales"
	}
	return "none"
}

// Predicate is one condition of a Filter.
type Predicate interface {
	predicate()
}

// AccountIs restricts to transactions posted to one account.
type AccountIs struct{ ID string }

// CategoryIs restricts to transactions in one category.
type CategoryIs struct{ ID string }

func (AccountIs) predicate() {}
func (CategoryIs) predicate() {}

// Filter is a conjunction of predicates. Scope and date window are passed
// to the store separately and always apply.
type Filter []Predicate

// And returns a new filter with the extra predicates appended.
func (f Filter) And(p ...Predicate) Filter {
	out := make(Filter, 0, len(f)+len(p))
	out = append(out, f...)
	return append(out, p...)
}

// Metrics are the totals of one period, in milliunits.
type Metrics struct {
	Income          int64
	Expenses        int64
	Remaining       int64
	CategoryBalance int64
}

// CategoryAmount is one entry of the expense breakdown.
type CategoryAmount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// DayPoint is the income and expenses of one calendar day.
type DayPoint struct {
	Date     time.Time
	Income   int64
	Expenses int64
}

func (d DayPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date     string `json:"date"`
		Income   int64  `json:"income"`
		Expenses int64  `json:"expenses"`
	}{d.Date.Format(DateLayout), d.Income, d.Expenses})
}

// Summary is the aggregated view returned to the presentation layer.
type Summary struct {
	RemainingAmount       int64               `json:"remainingAmount"`
	CategoryBalance       int64               `json:"categoryBalance"`
	RemainingChange       float64             `json:"remainingChange"`
	IncomeAmount          int64               `json:"incomeAmount"`
	IncomeChange          float64             `json:"incomeChange"`
	InvestmentAmount      int64               `json:"investmentAmount"`
	InvestmentChange      float64             `json:"investmentChange"`
	ExpensesAmount        int64               `json:"expensesAmount"`
	ExpensesChange        float64             `json:"expensesChange"`
	Categories            []CategoryAmount    `json:"categories"`
	Days                  []DayPoint          `json:"days"`
	HasInvestmentCategory bool                `json:"hasInvestmentCategory"`
	HasInvestmentAccount  bool                `json:"hasInvestmentAccount"`
	SalesAmount           int64               `json:"salesAmount"`
	SalesChange           float64             `json:"salesChange"`
	HasSalesCategory      bool                `json:"hasSalesCategory"`
	AccountRole           *ledger.AccountRole `json:"accountRole"`
}

// Request carries the raw summary query parameters.
type Request struct {
	From       string
	To         string
	AccountID  string
	CategoryID string
	Pivot      Pivot
}
