package ledger

import (
	"fmt"
	"time"
)

// AccountRole tags an account with a business meaning.
type AccountRole string

const (
	RoleDefault    AccountRole = "default"
	RoleSales      AccountRole = "Sales"
	RoleInvestment AccountRole = "Investment"
	RoleBalancing  AccountRole = "Balancing"
)

// Category names that carry semantics for the summary.
const (
	InvestmentCategoryName = "Investasi"
	SalesCategoryName      = "Penjualan"
)

// ParseAccountRole validates a role string. The empty string maps to RoleDefault.
func ParseAccountRole(s string) (AccountRole, error) {
	switch AccountRole(s) {
	case "":
		return RoleDefault, nil
	case RoleDefault, RoleSales, RoleInvestment, RoleBalancing:
		return AccountRole(s), nil
	}
	return "", fmt.Errorf("invalid account role %q", s)
}

// Account represents a money container owned by a user or an organization
type Account struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Role      AccountRole `json:"role"`
	UserID    string      `json:"userId"`
	OrgID     *string     `json:"orgId"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Category represents a transaction category
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	OrgID     *string   `json:"orgId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Transaction is a single ledger entry. Amount is in milliunits; negative
// amounts are expenses.
type Transaction struct {
	ID         string    `json:"id"`
	Amount     int64     `json:"amount"`
	Payee      string    `json:"payee"`
	Notes      *string   `json:"notes"`
	Date       time.Time `json:"date"`
	AccountID  string    `json:"accountId"`
	CategoryID *string   `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TransactionView is a transaction joined with its account and category names.
type TransactionView struct {
	Transaction
	Account  string  `json:"account"`
	Category *string `json:"category"`
}

type CreateAccountParams struct {
	Name string
	Role AccountRole
}

type UpdateAccountParams struct {
	ID   string
	Name string
	Role AccountRole
}

type CreateCategoryParams struct {
	Name string
}

type UpdateCategoryParams struct {
	ID   string
	Name string
}

type CreateTransactionParams struct {
	Amount     int64
	Payee      string
	Notes      *string
	Date       time.Time
	AccountID  string
	CategoryID *string
}

type UpdateTransactionParams struct {
	ID string
	CreateTransactionParams
}

// TransactionFilter narrows a transaction listing. Zero values mean "no bound".
type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	AccountID  string
	CategoryID string
}
