package ledger

import "context"

// Querier is the CRUD surface over accounts, categories and transactions.
// Every method is restricted to the given scope; entities outside it behave
// as if they did not exist.
type Querier interface {
	ListAccounts(ctx context.Context, scope Scope) ([]Account, error)
	GetAccount(ctx context.Context, scope Scope, id string) (Account, error)
	CreateAccount(ctx context.Context, scope Scope, arg CreateAccountParams) (Account, error)
	UpdateAccount(ctx context.Context, scope Scope, arg UpdateAccountParams) (Account, error)
	DeleteAccounts(ctx context.Context, scope Scope, ids []string) ([]string, error)

	ListCategories(ctx context.Context, scope Scope) ([]Category, error)
	GetCategory(ctx context.Context, scope Scope, id string) (Category, error)
	CreateCategory(ctx context.Context, scope Scope, arg CreateCategoryParams) (Category, error)
	UpdateCategory(ctx context.Context, scope Scope, arg UpdateCategoryParams) (Category, error)
	DeleteCategories(ctx context.Context, scope Scope, ids []string) ([]string, error)

	ListTransactions(ctx context.Context, scope Scope, filter TransactionFilter) ([]TransactionView, error)
	GetTransaction(ctx context.Context, scope Scope, id string) (Transaction, error)
	CreateTransactions(ctx context.Context, scope Scope, args []CreateTransactionParams) ([]Transaction, error)
	UpdateTransaction(ctx context.Context, scope Scope, arg UpdateTransactionParams) (Transaction, error)
	DeleteTransactions(ctx context.Context, scope Scope, ids []string) ([]string, error)

	Ping(ctx context.Context) error
}
