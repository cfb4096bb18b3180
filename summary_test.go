package main

import (
	"net/http"
	"testing"

	"financetracker/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// summaryBody mirrors the summary payload with days kept as strings
type summaryBody struct {
	RemainingAmount int64   `json:"remainingAmount"`
	CategoryBalance int64   `json:"categoryBalance"`
	RemainingChange float64 `json:"remainingChange"`
	IncomeAmount    int64   `json:"incomeAmount"`
	IncomeChange    float64 `json:"incomeChange"`
	ExpensesAmount  int64   `json:"expensesAmount"`
	ExpensesChange  float64 `json:"expensesChange"`
	Categories      []struct {
		Name  string `json:"name"`
		Value int64  `json:"value"`
	} `json:"categories"`
	Days []struct {
		Date     string `json:"date"`
		Income   int64  `json:"income"`
		Expenses int64  `json:"expenses"`
	} `json:"days"`
	InvestmentAmount      int64   `json:"investmentAmount"`
	HasInvestmentCategory bool    `json:"hasInvestmentCategory"`
	HasInvestmentAccount  bool    `json:"hasInvestmentAccount"`
	SalesAmount           int64   `json:"salesAmount"`
	HasSalesCategory      bool    `json:"hasSalesCategory"`
	AccountRole           *string `json:"accountRole"`
}

func getSummaryBody(t *testing.T, url string, scope ledger.Scope) summaryBody {
	t.Helper()
	resp := makeScopedRequest("GET", url, nil, scope)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body dataResponse[summaryBody]
	require.NoError(t, parseJSONResponse(resp, &body))
	return body.Data
}

// TestGetSummary tests the GET /api/summary endpoint
func TestGetSummary(t *testing.T) {
	cleanupTestData()
	checking := createTestAccount(t, testScope, "Checking", ledger.RoleDefault)
	food := createTestCategory(t, testScope, "Food")
	rent := createTestCategory(t, testScope, "Rent")

	createTestTransaction(t, testScope, checking, nil, 100000, "2024-03-05")
	createTestTransaction(t, testScope, checking, &food, -20000, "2024-03-10")
	createTestTransaction(t, testScope, checking, &rent, -10000, "2024-03-11")
	createTestTransaction(t, testScope, checking, nil, 50000, "2024-02-15")

	t.Run("should aggregate the period against the prior one", func(t *testing.T) {
		got := getSummaryBody(t, "/api/summary?from=2024-03-01&to=2024-03-31", testScope)

		assert.Equal(t, int64(100000), got.IncomeAmount)
		assert.Equal(t, int64(30000), got.ExpensesAmount)
		assert.Equal(t, int64(70000), got.RemainingAmount)
		assert.Equal(t, got.IncomeAmount-got.ExpensesAmount, got.RemainingAmount)
		assert.InDelta(t, 100.0, got.IncomeChange, 1e-9)
		assert.InDelta(t, 100.0, got.ExpensesChange, 1e-9)
		assert.InDelta(t, 40.0, got.RemainingChange, 1e-9)

		require.Len(t, got.Categories, 2)
		assert.Equal(t, "Food", got.Categories[0].Name)
		assert.Equal(t, int64(20000), got.Categories[0].Value)
		assert.Equal(t, "Rent", got.Categories[1].Name)

		require.Len(t, got.Days, 31)
		assert.Equal(t, "2024-03-01", got.Days[0].Date)
		assert.Equal(t, "2024-03-05", got.Days[4].Date)
		assert.Equal(t, int64(100000), got.Days[4].Income)
		assert.Equal(t, int64(0), got.Days[5].Income)
		assert.Equal(t, "2024-03-31", got.Days[30].Date)

		assert.False(t, got.HasInvestmentAccount)
		assert.False(t, got.HasInvestmentCategory)
		assert.False(t, got.HasSalesCategory)
		assert.Nil(t, got.AccountRole)
	})

	t.Run("should default to the trailing window", func(t *testing.T) {
		got := getSummaryBody(t, "/api/summary", testScope)
		require.Len(t, got.Days, 31)
		assert.Equal(t, "2024-03-01", got.Days[0].Date)
		assert.Equal(t, "2024-03-31", got.Days[30].Date)
		assert.Equal(t, int64(100000), got.IncomeAmount)
	})

	t.Run("should filter by category", func(t *testing.T) {
		got := getSummaryBody(t, "/api/summary?from=2024-03-01&to=2024-03-31&categoryId="+food, testScope)
		assert.Equal(t, int64(0), got.IncomeAmount)
		assert.Equal(t, int64(20000), got.ExpensesAmount)
		require.Len(t, got.Categories, 1)
		assert.Equal(t, "Food", got.Categories[0].Name)
	})

	t.Run("should report the selected account role", func(t *testing.T) {
		got := getSummaryBody(t, "/api/summary?from=2024-03-01&to=2024-03-31&accountId="+checking, testScope)
		require.NotNil(t, got.AccountRole)
		assert.Equal(t, "default", *got.AccountRole)
	})

	t.Run("should not see another scope's data", func(t *testing.T) {
		got := getSummaryBody(t, "/api/summary?from=2024-03-01&to=2024-03-31&accountId="+checking, otherScope)
		assert.Equal(t, int64(0), got.IncomeAmount)
		assert.Equal(t, int64(0), got.ExpensesAmount)
		assert.Empty(t, got.Categories)
		assert.Nil(t, got.AccountRole)

		got = getSummaryBody(t, "/api/summary?from=2024-03-01&to=2024-03-31", orgScope)
		assert.Equal(t, int64(0), got.IncomeAmount)
	})

	t.Run("should reject an inverted period", func(t *testing.T) {
		resp := makeRequest("GET", "/api/summary?from=2024-04-01&to=2024-03-01", nil)
		assertErrorResponse(t, resp, http.StatusBadRequest)
	})

	t.Run("should reject a window longer than a century", func(t *testing.T) {
		resp := makeRequest("GET", "/api/summary?from=0001-01-01&to=2024-01-01", nil)
		assertErrorResponse(t, resp, http.StatusBadRequest)
	})

	t.Run("should reject a malformed date", func(t *testing.T) {
		resp := makeRequest("GET", "/api/summary?from=yesterday", nil)
		assertErrorResponse(t, resp, http.StatusBadRequest)
	})

	t.Run("should reject a malformed account id", func(t *testing.T) {
		resp := makeRequest("GET", "/api/summary?accountId=42", nil)
		assertErrorResponse(t, resp, http.StatusBadRequest)
	})
}

// TestGetSummaryInvestmentPivot tests the companyMode pivot onto the investment account
func TestGetSummaryInvestmentPivot(t *testing.T) {
	cleanupTestData()
	checking := createTestAccount(t, orgScope, "Operations", ledger.RoleDefault)
	brokerage := createTestAccount(t, orgScope, "Brokerage", ledger.RoleInvestment)
	investasi := createTestCategory(t, orgScope, ledger.InvestmentCategoryName)

	createTestTransaction(t, orgScope, brokerage, &investasi, 40000, "2024-03-02")
	createTestTransaction(t, orgScope, brokerage, nil, -5000, "2024-03-03")
	createTestTransaction(t, orgScope, checking, nil, 90000, "2024-03-04")

	t.Run("should pin the buckets to the investment account", func(t *testing.T) {
		got := getSummaryBody(t, "/api/summary?from=2024-03-01&to=2024-03-31&companyMode=true", orgScope)

		assert.True(t, got.HasInvestmentAccount)
		assert.True(t, got.HasInvestmentCategory)
		assert.Equal(t, int64(40000), got.IncomeAmount)
		assert.Equal(t, int64(5000), got.ExpensesAmount)
		assert.Equal(t, int64(40000), got.InvestmentAmount)
		assert.Equal(t, int64(35000), got.RemainingAmount)
	})

	t.Run("should span all accounts without the pivot", func(t *testing.T) {
		got := getSummaryBody(t, "/api/summary?from=2024-03-01&to=2024-03-31", orgScope)

		assert.Equal(t, int64(130000), got.IncomeAmount)
		assert.Equal(t, int64(5000), got.ExpensesAmount)
		assert.Equal(t, int64(35000), got.RemainingAmount)
	})

	t.Run("should not expose org accounts to the personal scope", func(t *testing.T) {
		got := getSummaryBody(t, "/api/summary?from=2024-03-01&to=2024-03-31&companyMode=true", testScope)
		assert.False(t, got.HasInvestmentAccount)
		assert.Equal(t, int64(0), got.IncomeAmount)
	})
}
