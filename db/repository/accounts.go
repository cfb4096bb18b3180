package repository

import (
	"context"

	"financetracker/ledger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const accountColumns = "a.id, a.name, a.role, a.user_id, a.org_id, a.created_at, a.updated_at"

func scanAccount(row pgx.Row) (ledger.Account, error) {
	var (
		id                 pgtype.UUID
		a                  ledger.Account
		role               string
		orgID              pgtype.Text
		createdAt, updated pgtype.Timestamptz
	)
	if err := row.Scan(&id, &a.Name, &role, &a.UserID, &orgID, &createdAt, &updated); err != nil {
		return ledger.Account{}, err
	}
	a.ID = fromUUID(id)
	a.Role = ledger.AccountRole(role)
	a.OrgID = fromText(orgID)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updated.Time
	return a, nil
}

func ownerOrg(scope ledger.Scope) pgtype.Text {
	return pgtype.Text{String: scope.OrgID, Valid: scope.IsOrg()}
}

func (q *Queries) ListAccounts(ctx context.Context, scope ledger.Scope) ([]ledger.Account, error) {
	w := &where{}
	w.scope("a", scope)

	rows, err := q.db.Query(ctx, "SELECT "+accountColumns+" FROM accounts a WHERE "+w.String()+" ORDER BY a.name, a.id", w.args...)
	if err != nil {
		return nil, mapError(err, "list accounts")
	}
	defer rows.Close()

	accounts := []ledger.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, mapError(err, "scan account")
		}
		accounts = append(accounts, a)
	}
	return accounts, mapError(rows.Err(), "list accounts")
}

func (q *Queries) GetAccount(ctx context.Context, scope ledger.Scope, id string) (ledger.Account, error) {
	w := &where{}
	w.and("a.id = " + w.arg(toUUID(id)))
	w.scope("a", scope)

	a, err := scanAccount(q.db.QueryRow(ctx, "SELECT "+accountColumns+" FROM accounts a WHERE "+w.String(), w.args...))
	return a, mapError(err, "get account")
}

func (q *Queries) CreateAccount(ctx context.Context, scope ledger.Scope, arg ledger.CreateAccountParams) (ledger.Account, error) {
	role := arg.Role
	if role == "" {
		role = ledger.RoleDefault
	}
	const query = `INSERT INTO accounts AS a (name, role, user_id, org_id)
VALUES ($1, $2, $3, $4)
RETURNING ` + accountColumns

	a, err := scanAccount(q.db.QueryRow(ctx, query, arg.Name, string(role), scope.UserID, ownerOrg(scope)))
	return a, mapError(err, "create account")
}

func (q *Queries) UpdateAccount(ctx context.Context, scope ledger.Scope, arg ledger.UpdateAccountParams) (ledger.Account, error) {
	w := &where{}
	name := w.arg(arg.Name)
	role := w.arg(string(arg.Role))
	w.and("a.id = " + w.arg(toUUID(arg.ID)))
	w.scope("a", scope)

	query := "UPDATE accounts AS a SET name = " + name +
		", role = COALESCE(NULLIF(" + role + ", ''), a.role), updated_at = now() WHERE " + w.String() +
		" RETURNING " + accountColumns
	a, err := scanAccount(q.db.QueryRow(ctx, query, w.args...))
	return a, mapError(err, "update account")
}

// DeleteAccounts deletes the accounts in scope; transactions cascade.
func (q *Queries) DeleteAccounts(ctx context.Context, scope ledger.Scope, ids []string) ([]string, error) {
	w := &where{}
	w.and("a.id = ANY(" + w.arg(toUUIDs(ids)) + ")")
	w.scope("a", scope)

	return q.deleteReturningIDs(ctx, "DELETE FROM accounts AS a WHERE "+w.String()+" RETURNING a.id", w.args, "delete accounts")
}

func (q *Queries) deleteReturningIDs(ctx context.Context, query string, args []any, op string) ([]string, error) {
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, op)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[pgtype.UUID])
	if err != nil {
		return nil, mapError(err, op)
	}
	return fromUUIDs(ids), nil
}
