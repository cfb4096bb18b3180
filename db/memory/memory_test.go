package memory

import (
	"context"
	"testing"
	"time"

	"financetracker/ledger"
	"financetracker/summary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	personal = ledger.Scope{UserID: "user-1"}
	stranger = ledger.Scope{UserID: "user-2"}
	orgA     = ledger.Scope{UserID: "user-1", OrgID: "org-a"}
	orgB     = ledger.Scope{UserID: "user-3", OrgID: "org-b"}
)

func day(s string) time.Time {
	d, err := time.Parse(summary.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func mustAccount(t *testing.T, s *Store, scope ledger.Scope, name string, role ledger.AccountRole) ledger.Account {
	t.Helper()
	a, err := s.CreateAccount(context.Background(), scope, ledger.CreateAccountParams{Name: name, Role: role})
	require.NoError(t, err)
	return a
}

func mustCategory(t *testing.T, s *Store, scope ledger.Scope, name string) ledger.Category {
	t.Helper()
	c, err := s.CreateCategory(context.Background(), scope, ledger.CreateCategoryParams{Name: name})
	require.NoError(t, err)
	return c
}

func mustTx(t *testing.T, s *Store, scope ledger.Scope, accountID string, categoryID *string, amount int64, date string) ledger.Transaction {
	t.Helper()
	txs, err := s.CreateTransactions(context.Background(), scope, []ledger.CreateTransactionParams{{
		Amount:     amount,
		Payee:      "payee",
		Date:       day(date),
		AccountID:  accountID,
		CategoryID: categoryID,
	}})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	return txs[0]
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	s := New()

	mine := mustAccount(t, s, personal, "Wallet", "")
	org := mustAccount(t, s, orgA, "Company", ledger.RoleInvestment)

	t.Run("should default role", func(t *testing.T) {
		assert.Equal(t, ledger.RoleDefault, mine.Role)
		assert.Nil(t, mine.OrgID)
		require.NotNil(t, org.OrgID)
		assert.Equal(t, "org-a", *org.OrgID)
	})

	t.Run("should list only accounts in scope", func(t *testing.T) {
		list, err := s.ListAccounts(ctx, personal)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, mine.ID, list[0].ID)

		list, err = s.ListAccounts(ctx, orgB)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("should hide accounts of other scopes", func(t *testing.T) {
		_, err := s.GetAccount(ctx, stranger, mine.ID)
		assert.ErrorIs(t, err, ledger.ErrNotFound)
		_, err = s.GetAccount(ctx, personal, org.ID)
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})

	t.Run("should update account", func(t *testing.T) {
		updated, err := s.UpdateAccount(ctx, personal, ledger.UpdateAccountParams{ID: mine.ID, Name: "Cash", Role: ledger.RoleSales})
		require.NoError(t, err)
		assert.Equal(t, "Cash", updated.Name)
		assert.Equal(t, ledger.RoleSales, updated.Role)

		_, err = s.UpdateAccount(ctx, stranger, ledger.UpdateAccountParams{ID: mine.ID, Name: "Stolen"})
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})

	t.Run("should cascade delete to transactions", func(t *testing.T) {
		tx := mustTx(t, s, personal, mine.ID, nil, -1000, "2024-01-01")

		deleted, err := s.DeleteAccounts(ctx, stranger, []string{mine.ID})
		require.NoError(t, err)
		assert.Empty(t, deleted)

		deleted, err = s.DeleteAccounts(ctx, personal, []string{mine.ID, "missing"})
		require.NoError(t, err)
		assert.Equal(t, []string{mine.ID}, deleted)

		_, err = s.GetTransaction(ctx, personal, tx.ID)
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	s := New()

	food := mustCategory(t, s, personal, "Food")
	acc := mustAccount(t, s, personal, "Wallet", "")

	t.Run("should reject duplicate name within scope", func(t *testing.T) {
		_, err := s.CreateCategory(ctx, personal, ledger.CreateCategoryParams{Name: "Food"})
		assert.ErrorIs(t, err, ledger.ErrConflict)

		_, err = s.CreateCategory(ctx, orgA, ledger.CreateCategoryParams{Name: "Food"})
		assert.NoError(t, err)
	})

	t.Run("should reject rename onto existing name", func(t *testing.T) {
		rent := mustCategory(t, s, personal, "Rent")
		_, err := s.UpdateCategory(ctx, personal, ledger.UpdateCategoryParams{ID: rent.ID, Name: "Food"})
		assert.ErrorIs(t, err, ledger.ErrConflict)

		renamed, err := s.UpdateCategory(ctx, personal, ledger.UpdateCategoryParams{ID: rent.ID, Name: "Housing"})
		require.NoError(t, err)
		assert.Equal(t, "Housing", renamed.Name)
	})

	t.Run("should uncategorize transactions on delete", func(t *testing.T) {
		tx := mustTx(t, s, personal, acc.ID, &food.ID, -500, "2024-01-01")

		deleted, err := s.DeleteCategories(ctx, personal, []string{food.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{food.ID}, deleted)

		got, err := s.GetTransaction(ctx, personal, tx.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CategoryID)
	})
}

func TestTransactions(t *testing.T) {
	ctx := context.Background()
	s := New()

	acc := mustAccount(t, s, personal, "Wallet", "")
	food := mustCategory(t, s, personal, "Food")
	orgAcc := mustAccount(t, s, orgA, "Company", "")
	orgCat := mustCategory(t, s, orgA, "Supplies")

	t.Run("should reject account outside scope", func(t *testing.T) {
		_, err := s.CreateTransactions(ctx, personal, []ledger.CreateTransactionParams{{Amount: 1, Date: day("2024-01-01"), AccountID: orgAcc.ID}})
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})

	t.Run("should reject category outside scope", func(t *testing.T) {
		_, err := s.CreateTransactions(ctx, personal, []ledger.CreateTransactionParams{{Amount: 1, Date: day("2024-01-01"), AccountID: acc.ID, CategoryID: &orgCat.ID}})
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})

	t.Run("should create all or nothing", func(t *testing.T) {
		_, err := s.CreateTransactions(ctx, personal, []ledger.CreateTransactionParams{
			{Amount: 1, Date: day("2024-01-01"), AccountID: acc.ID},
			{Amount: 2, Date: day("2024-01-01"), AccountID: "missing"},
		})
		assert.ErrorIs(t, err, ledger.ErrNotFound)

		list, err := s.ListTransactions(ctx, personal, ledger.TransactionFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("should list with filters newest first", func(t *testing.T) {
		mustTx(t, s, personal, acc.ID, &food.ID, -1000, "2024-01-01")
		mustTx(t, s, personal, acc.ID, nil, 5000, "2024-01-05")
		mustTx(t, s, orgA, orgAcc.ID, nil, 7000, "2024-01-03")

		list, err := s.ListTransactions(ctx, personal, ledger.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, int64(5000), list[0].Amount)
		assert.Equal(t, "Wallet", list[0].Account)
		assert.Nil(t, list[0].Category)
		require.NotNil(t, list[1].Category)
		assert.Equal(t, "Food", *list[1].Category)

		from := day("2024-01-02")
		list, err = s.ListTransactions(ctx, personal, ledger.TransactionFilter{From: &from})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, int64(5000), list[0].Amount)

		list, err = s.ListTransactions(ctx, personal, ledger.TransactionFilter{CategoryID: food.ID})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, int64(-1000), list[0].Amount)
	})

	t.Run("should update and delete within scope only", func(t *testing.T) {
		tx := mustTx(t, s, personal, acc.ID, nil, -300, "2024-02-01")

		updated, err := s.UpdateTransaction(ctx, personal, ledger.UpdateTransactionParams{
			ID: tx.ID,
			CreateTransactionParams: ledger.CreateTransactionParams{
				Amount: -400, Payee: "Shop", Notes: strPtr("weekly"), Date: day("2024-02-02"), AccountID: acc.ID, CategoryID: &food.ID,
			},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(-400), updated.Amount)
		assert.Equal(t, "Shop", updated.Payee)
		assert.Equal(t, day("2024-02-02"), updated.Date)

		deleted, err := s.DeleteTransactions(ctx, stranger, []string{tx.ID})
		require.NoError(t, err)
		assert.Empty(t, deleted)

		deleted, err = s.DeleteTransactions(ctx, personal, []string{tx.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{tx.ID}, deleted)
	})
}

func TestLedgerStore(t *testing.T) {
	ctx := context.Background()
	s := New()
	period := summary.Period{Start: day("2024-01-01"), End: day("2024-01-31")}

	wallet := mustAccount(t, s, personal, "Wallet", "")
	invest := mustAccount(t, s, personal, "Fund", ledger.RoleInvestment)
	food := mustCategory(t, s, personal, "Food")
	rent := mustCategory(t, s, personal, "Rent")
	investasi := mustCategory(t, s, personal, ledger.InvestmentCategoryName)

	mustTx(t, s, personal, wallet.ID, &food.ID, -2000, "2024-01-02")
	mustTx(t, s, personal, wallet.ID, &food.ID, -1000, "2024-01-02")
	mustTx(t, s, personal, wallet.ID, &rent.ID, -5000, "2024-01-10")
	mustTx(t, s, personal, wallet.ID, nil, 10000, "2024-01-10")
	mustTx(t, s, personal, invest.ID, &investasi.ID, 20000, "2024-01-15")
	mustTx(t, s, personal, invest.ID, &investasi.ID, -3000, "2024-01-16")
	mustTx(t, s, personal, wallet.ID, nil, 999, "2023-12-31")

	orgAcc := mustAccount(t, s, orgA, "Org", ledger.RoleInvestment)
	mustTx(t, s, orgA, orgAcc.ID, nil, 123456, "2024-01-05")

	t.Run("should find designated entities", func(t *testing.T) {
		id, ok, err := s.FindAccountByRole(ctx, personal, ledger.RoleInvestment)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, invest.ID, id)

		_, ok, err = s.FindAccountByRole(ctx, personal, ledger.RoleSales)
		require.NoError(t, err)
		assert.False(t, ok)

		id, ok, err = s.FindCategoryByName(ctx, personal, ledger.InvestmentCategoryName)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, investasi.ID, id)

		role, ok, err := s.FindAccountRole(ctx, personal, invest.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, ledger.RoleInvestment, role)

		_, ok, err = s.FindAccountRole(ctx, personal, orgAcc.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = s.FindAccountRole(ctx, personal, "00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should aggregate metrics within window", func(t *testing.T) {
		m, err := s.AggregateMetrics(ctx, personal, nil, period)
		require.NoError(t, err)
		assert.Equal(t, int64(30000), m.Income)
		assert.Equal(t, int64(11000), m.Expenses)
		assert.Equal(t, int64(19000), m.Remaining)
		assert.Equal(t, m.Income-m.Expenses, m.Remaining)
		assert.Equal(t, m.Remaining, m.CategoryBalance)
	})

	t.Run("should apply predicates", func(t *testing.T) {
		m, err := s.AggregateMetrics(ctx, personal, summary.Filter{summary.AccountIs{ID: wallet.ID}, summary.CategoryIs{ID: food.ID}}, period)
		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Income)
		assert.Equal(t, int64(3000), m.Expenses)

		amount, err := s.AggregateRoleAmount(ctx, personal, summary.Filter{summary.CategoryIs{ID: investasi.ID}}, period)
		require.NoError(t, err)
		assert.Equal(t, int64(20000), amount)
	})

	t.Run("should rank categorized expenses", func(t *testing.T) {
		ranked, err := s.RankCategoriesByExpense(ctx, personal, nil, period)
		require.NoError(t, err)
		assert.Equal(t, []summary.CategoryAmount{
			{Name: "Rent", Value: 5000},
			{Name: "Food", Value: 3000},
			{Name: ledger.InvestmentCategoryName, Value: 3000},
		}, ranked)
	})

	t.Run("should group by day", func(t *testing.T) {
		days, err := s.GroupDailyByDate(ctx, personal, summary.Filter{summary.AccountIs{ID: wallet.ID}}, period)
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, summary.DayPoint{Date: day("2024-01-02"), Income: 0, Expenses: 3000}, days[0])
		assert.Equal(t, summary.DayPoint{Date: day("2024-01-10"), Income: 10000, Expenses: 5000}, days[1])
	})

	t.Run("should isolate scopes", func(t *testing.T) {
		for _, scope := range []ledger.Scope{stranger, orgB} {
			m, err := s.AggregateMetrics(ctx, scope, nil, period)
			require.NoError(t, err)
			assert.Equal(t, summary.Metrics{}, m)

			m, err = s.AggregateMetrics(ctx, scope, summary.Filter{summary.AccountIs{ID: wallet.ID}}, period)
			require.NoError(t, err)
			assert.Equal(t, summary.Metrics{}, m)

			ranked, err := s.RankCategoriesByExpense(ctx, scope, summary.Filter{summary.CategoryIs{ID: food.ID}}, period)
			require.NoError(t, err)
			assert.Empty(t, ranked)
		}

		m, err := s.AggregateMetrics(ctx, orgA, nil, period)
		require.NoError(t, err)
		assert.Equal(t, int64(123456), m.Income)
	})

	t.Run("should stop on cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.AggregateMetrics(cancelled, personal, nil, period)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
