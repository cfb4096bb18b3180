package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"financetracker/ledger"

	"github.com/google/uuid"
)

// Store keeps the whole ledger in process memory. It implements both
// ledger.Querier and summary.LedgerStore with the same scoping rules as the
// Postgres repository.
type Store struct {
	mu           sync.RWMutex
	now          func() time.Time
	accounts     map[string]ledger.Account
	categories   map[string]ledger.Category
	transactions map[string]ledger.Transaction
}

func New() *Store {
	return &Store{
		now:          time.Now,
		accounts:     map[string]ledger.Account{},
		categories:   map[string]ledger.Category{},
		transactions: map[string]ledger.Transaction{},
	}
}

func (s *Store) Ping(_ context.Context) error { return nil }

func ownerOrg(scope ledger.Scope) *string {
	if !scope.IsOrg() {
		return nil
	}
	org := scope.OrgID
	return &org
}

// Accounts

func (s *Store) ListAccounts(_ context.Context, scope ledger.Scope) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []ledger.Account{}
	for _, a := range s.accounts {
		if scope.Owns(a.UserID, a.OrgID) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b ledger.Account) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *Store) GetAccount(_ context.Context, scope ledger.Scope, id string) (ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account(scope, id)
}

func (s *Store) account(scope ledger.Scope, id string) (ledger.Account, error) {
	a, ok := s.accounts[id]
	if !ok || !scope.Owns(a.UserID, a.OrgID) {
		return ledger.Account{}, ledger.ErrNotFound
	}
	return a, nil
}

func (s *Store) CreateAccount(_ context.Context, scope ledger.Scope, arg ledger.CreateAccountParams) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	a := ledger.Account{
		ID:        uuid.NewString(),
		Name:      arg.Name,
		Role:      arg.Role,
		UserID:    scope.UserID,
		OrgID:     ownerOrg(scope),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if a.Role == "" {
		a.Role = ledger.RoleDefault
	}
	s.accounts[a.ID] = a
	return a, nil
}

func (s *Store) UpdateAccount(_ context.Context, scope ledger.Scope, arg ledger.UpdateAccountParams) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.account(scope, arg.ID)
	if err != nil {
		return ledger.Account{}, err
	}
	a.Name = arg.Name
	if arg.Role != "" {
		a.Role = arg.Role
	}
	a.UpdatedAt = s.now().UTC()
	s.accounts[a.ID] = a
	return a, nil
}

// DeleteAccounts removes the accounts in scope and cascades to their transactions.
func (s *Store) DeleteAccounts(_ context.Context, scope ledger.Scope, ids []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := []string{}
	for _, id := range ids {
		if _, err := s.account(scope, id); err != nil {
			continue
		}
		delete(s.accounts, id)
		for txID, tx := range s.transactions {
			if tx.AccountID == id {
				delete(s.transactions, txID)
			}
		}
		deleted = append(deleted, id)
	}
	return deleted, nil
}

// Categories

func (s *Store) ListCategories(_ context.Context, scope ledger.Scope) ([]ledger.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []ledger.Category{}
	for _, c := range s.categories {
		if scope.Owns(c.UserID, c.OrgID) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b ledger.Category) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, scope ledger.Scope, id string) (ledger.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.category(scope, id)
}

func (s *Store) category(scope ledger.Scope, id string) (ledger.Category, error) {
	c, ok := s.categories[id]
	if !ok || !scope.Owns(c.UserID, c.OrgID) {
		return ledger.Category{}, ledger.ErrNotFound
	}
	return c, nil
}

// nameTaken reports whether another category in scope already uses name.
func (s *Store) nameTaken(scope ledger.Scope, name, exceptID string) bool {
	for _, c := range s.categories {
		if c.ID != exceptID && c.Name == name && scope.Owns(c.UserID, c.OrgID) {
			return true
		}
	}
	return false
}

func (s *Store) CreateCategory(_ context.Context, scope ledger.Scope, arg ledger.CreateCategoryParams) (ledger.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(scope, arg.Name, "") {
		return ledger.Category{}, ledger.ErrConflict
	}
	now := s.now().UTC()
	c := ledger.Category{
		ID:        uuid.NewString(),
		Name:      arg.Name,
		UserID:    scope.UserID,
		OrgID:     ownerOrg(scope),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.categories[c.ID] = c
	return c, nil
}

func (s *Store) UpdateCategory(_ context.Context, scope ledger.Scope, arg ledger.UpdateCategoryParams) (ledger.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.category(scope, arg.ID)
	if err != nil {
		return ledger.Category{}, err
	}
	if s.nameTaken(scope, arg.Name, c.ID) {
		return ledger.Category{}, ledger.ErrConflict
	}
	c.Name = arg.Name
	c.UpdatedAt = s.now().UTC()
	s.categories[c.ID] = c
	return c, nil
}

// DeleteCategories removes the categories in scope and uncategorizes their transactions.
func (s *Store) DeleteCategories(_ context.Context, scope ledger.Scope, ids []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := []string{}
	for _, id := range ids {
		if _, err := s.category(scope, id); err != nil {
			continue
		}
		delete(s.categories, id)
		for txID, tx := range s.transactions {
			if tx.CategoryID != nil && *tx.CategoryID == id {
				tx.CategoryID = nil
				s.transactions[txID] = tx
			}
		}
		deleted = append(deleted, id)
	}
	return deleted, nil
}

// Transactions

func (s *Store) ListTransactions(_ context.Context, scope ledger.Scope, filter ledger.TransactionFilter) ([]ledger.TransactionView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []ledger.TransactionView{}
	for _, tx := range s.transactions {
		acc, ok := s.accounts[tx.AccountID]
		if !ok || !scope.Owns(acc.UserID, acc.OrgID) {
			continue
		}
		if filter.AccountID != "" && tx.AccountID != filter.AccountID {
			continue
		}
		if filter.CategoryID != "" && (tx.CategoryID == nil || *tx.CategoryID != filter.CategoryID) {
			continue
		}
		if filter.From != nil && tx.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && tx.Date.After(*filter.To) {
			continue
		}

		view := ledger.TransactionView{Transaction: tx, Account: acc.Name}
		if tx.CategoryID != nil {
			if c, ok := s.categories[*tx.CategoryID]; ok {
				name := c.Name
				view.Category = &name
			}
		}
		out = append(out, view)
	}
	slices.SortFunc(out, func(a, b ledger.TransactionView) int {
		return cmp.Or(b.Date.Compare(a.Date), b.CreatedAt.Compare(a.CreatedAt), strings.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, scope ledger.Scope, id string) (ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transaction(scope, id)
}

func (s *Store) transaction(scope ledger.Scope, id string) (ledger.Transaction, error) {
	tx, ok := s.transactions[id]
	if !ok {
		return ledger.Transaction{}, ledger.ErrNotFound
	}
	if _, err := s.account(scope, tx.AccountID); err != nil {
		return ledger.Transaction{}, ledger.ErrNotFound
	}
	return tx, nil
}

// checkRefs verifies that the referenced account and category are in scope.
func (s *Store) checkRefs(scope ledger.Scope, arg ledger.CreateTransactionParams) error {
	if _, err := s.account(scope, arg.AccountID); err != nil {
		return err
	}
	if arg.CategoryID != nil {
		if _, err := s.category(scope, *arg.CategoryID); err != nil {
			return err
		}
	}
	return nil
}

// CreateTransactions inserts all transactions or none.
func (s *Store) CreateTransactions(_ context.Context, scope ledger.Scope, args []ledger.CreateTransactionParams) ([]ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, arg := range args {
		if err := s.checkRefs(scope, arg); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	created := make([]ledger.Transaction, 0, len(args))
	for _, arg := range args {
		tx := ledger.Transaction{
			ID:         uuid.NewString(),
			Amount:     arg.Amount,
			Payee:      arg.Payee,
			Notes:      arg.Notes,
			Date:       dayOf(arg.Date),
			AccountID:  arg.AccountID,
			CategoryID: arg.CategoryID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		s.transactions[tx.ID] = tx
		created = append(created, tx)
	}
	return created, nil
}

func (s *Store) UpdateTransaction(_ context.Context, scope ledger.Scope, arg ledger.UpdateTransactionParams) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.transaction(scope, arg.ID)
	if err != nil {
		return ledger.Transaction{}, err
	}
	if err := s.checkRefs(scope, arg.CreateTransactionParams); err != nil {
		return ledger.Transaction{}, err
	}
	tx.Amount = arg.Amount
	tx.Payee = arg.Payee
	tx.Notes = arg.Notes
	tx.Date = dayOf(arg.Date)
	tx.AccountID = arg.AccountID
	tx.CategoryID = arg.CategoryID
	tx.UpdatedAt = s.now().UTC()
	s.transactions[tx.ID] = tx
	return tx, nil
}

func (s *Store) DeleteTransactions(_ context.Context, scope ledger.Scope, ids []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := []string{}
	for _, id := range ids {
		if _, err := s.transaction(scope, id); err != nil {
			continue
		}
		delete(s.transactions, id)
		deleted = append(deleted, id)
	}
	return deleted, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
