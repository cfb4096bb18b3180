package repository

import (
	"context"
	"fmt"

	"financetracker/ledger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const transactionColumns = "t.id, t.amount, t.payee, t.notes, t.date, t.account_id, t.category_id, t.created_at, t.updated_at"

func scanTransaction(row pgx.Row, extra ...any) (ledger.Transaction, error) {
	var (
		tx                        ledger.Transaction
		id, accountID, categoryID pgtype.UUID
		notes                     pgtype.Text
		date                      pgtype.Date
		createdAt, updatedAt      pgtype.Timestamptz
	)
	dest := append([]any{&id, &tx.Amount, &tx.Payee, &notes, &date, &accountID, &categoryID, &createdAt, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return ledger.Transaction{}, err
	}
	tx.ID = fromUUID(id)
	tx.AccountID = fromUUID(accountID)
	tx.CategoryID = fromNullableUUID(categoryID)
	tx.Notes = fromText(notes)
	tx.Date = fromDate(date)
	tx.CreatedAt = createdAt.Time
	tx.UpdatedAt = updatedAt.Time
	return tx, nil
}

func (q *Queries) ListTransactions(ctx context.Context, scope ledger.Scope, filter ledger.TransactionFilter) ([]ledger.TransactionView, error) {
	w := &where{}
	w.scope("a", scope)
	if filter.From != nil {
		w.and("t.date >= " + w.arg(toDate(*filter.From)))
	}
	if filter.To != nil {
		w.and("t.date <= " + w.arg(toDate(*filter.To)))
	}
	if filter.AccountID != "" {
		w.and("t.account_id = " + w.arg(toUUID(filter.AccountID)))
	}
	if filter.CategoryID != "" {
		w.and("t.category_id = " + w.arg(toUUID(filter.CategoryID)))
	}

	query := "SELECT " + transactionColumns + `, a.name, c.name
FROM transactions t
JOIN accounts a ON a.id = t.account_id
LEFT JOIN categories c ON c.id = t.category_id
WHERE ` + w.String() + `
ORDER BY t.date DESC, t.created_at DESC, t.id`

	rows, err := q.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError(err, "list transactions")
	}
	defer rows.Close()

	views := []ledger.TransactionView{}
	for rows.Next() {
		var (
			accountName  string
			categoryName pgtype.Text
		)
		tx, err := scanTransaction(rows, &accountName, &categoryName)
		if err != nil {
			return nil, mapError(err, "scan transaction")
		}
		views = append(views, ledger.TransactionView{Transaction: tx, Account: accountName, Category: fromText(categoryName)})
	}
	return views, mapError(rows.Err(), "list transactions")
}

func (q *Queries) GetTransaction(ctx context.Context, scope ledger.Scope, id string) (ledger.Transaction, error) {
	w := &where{}
	w.and("t.id = " + w.arg(toUUID(id)))
	w.scope("a", scope)

	query := "SELECT " + transactionColumns + " FROM transactions t JOIN accounts a ON a.id = t.account_id WHERE " + w.String()
	tx, err := scanTransaction(q.db.QueryRow(ctx, query, w.args...))
	return tx, mapError(err, "get transaction")
}

// checkRefs verifies that the referenced account and category are in scope.
func (q *Queries) checkRefs(ctx context.Context, scope ledger.Scope, arg ledger.CreateTransactionParams) error {
	if _, err := q.GetAccount(ctx, scope, arg.AccountID); err != nil {
		return err
	}
	if arg.CategoryID != nil {
		if _, err := q.GetCategory(ctx, scope, *arg.CategoryID); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queries) insertTransaction(ctx context.Context, arg ledger.CreateTransactionParams) (ledger.Transaction, error) {
	const query = `INSERT INTO transactions AS t (amount, payee, notes, date, account_id, category_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + transactionColumns

	tx, err := scanTransaction(q.db.QueryRow(ctx, query,
		arg.Amount, arg.Payee, toText(arg.Notes), toDate(arg.Date), toUUID(arg.AccountID), toNullableUUID(arg.CategoryID)))
	return tx, mapError(err, "insert transaction")
}

func (q *Queries) updateTransaction(ctx context.Context, arg ledger.UpdateTransactionParams) (ledger.Transaction, error) {
	const query = `UPDATE transactions AS t
SET amount = $1, payee = $2, notes = $3, date = $4, account_id = $5, category_id = $6, updated_at = now()
WHERE t.id = $7
RETURNING ` + transactionColumns

	tx, err := scanTransaction(q.db.QueryRow(ctx, query,
		arg.Amount, arg.Payee, toText(arg.Notes), toDate(arg.Date), toUUID(arg.AccountID), toNullableUUID(arg.CategoryID), toUUID(arg.ID)))
	return tx, mapError(err, "update transaction")
}

func (q *Queries) DeleteTransactions(ctx context.Context, scope ledger.Scope, ids []string) ([]string, error) {
	w := &where{}
	w.and("t.id = ANY(" + w.arg(toUUIDs(ids)) + ")")
	w.and("a.id = t.account_id")
	w.scope("a", scope)

	return q.deleteReturningIDs(ctx, "DELETE FROM transactions AS t USING accounts a WHERE "+w.String()+" RETURNING t.id", w.args, "delete transactions")
}

// CreateTransactions inserts all transactions in one database transaction.
func (s *Store) CreateTransactions(ctx context.Context, scope ledger.Scope, args []ledger.CreateTransactionParams) ([]ledger.Transaction, error) {
	created := make([]ledger.Transaction, 0, len(args))
	err := s.inTx(ctx, func(q *Queries) error {
		for i, arg := range args {
			if err := q.checkRefs(ctx, scope, arg); err != nil {
				return fmt.Errorf("transaction %d: %w", i, err)
			}
			tx, err := q.insertTransaction(ctx, arg)
			if err != nil {
				return err
			}
			created = append(created, tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, scope ledger.Scope, arg ledger.UpdateTransactionParams) (ledger.Transaction, error) {
	var updated ledger.Transaction
	err := s.inTx(ctx, func(q *Queries) error {
		if _, err := q.GetTransaction(ctx, scope, arg.ID); err != nil {
			return err
		}
		if err := q.checkRefs(ctx, scope, arg.CreateTransactionParams); err != nil {
			return err
		}
		var err error
		updated, err = q.updateTransaction(ctx, arg)
		return err
	})
	return updated, err
}
