package repository

import (
	"context"

	"financetracker/ledger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const categoryColumns = "c.id, c.name, c.user_id, c.org_id, c.created_at, c.updated_at"

func scanCategory(row pgx.Row) (ledger.Category, error) {
	var (
		id                 pgtype.UUID
		c                  ledger.Category
		orgID              pgtype.Text
		createdAt, updated pgtype.Timestamptz
	)
	if err := row.Scan(&id, &c.Name, &c.UserID, &orgID, &createdAt, &updated); err != nil {
		return ledger.Category{}, err
	}
	c.ID = fromUUID(id)
	c.OrgID = fromText(orgID)
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updated.Time
	return c, nil
}

func (q *Queries) ListCategories(ctx context.Context, scope ledger.Scope) ([]ledger.Category, error) {
	w := &where{}
	w.scope("c", scope)

	rows, err := q.db.Query(ctx, "SELECT "+categoryColumns+" FROM categories c WHERE "+w.String()+" ORDER BY c.name, c.id", w.args...)
	if err != nil {
		return nil, mapError(err, "list categories")
	}
	defer rows.Close()

	categories := []ledger.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, mapError(err, "scan category")
		}
		categories = append(categories, c)
	}
	return categories, mapError(rows.Err(), "list categories")
}

func (q *Queries) GetCategory(ctx context.Context, scope ledger.Scope, id string) (ledger.Category, error) {
	w := &where{}
	w.and("c.id = " + w.arg(toUUID(id)))
	w.scope("c", scope)

	c, err := scanCategory(q.db.QueryRow(ctx, "SELECT "+categoryColumns+" FROM categories c WHERE "+w.String(), w.args...))
	return c, mapError(err, "get category")
}

func (q *Queries) CreateCategory(ctx context.Context, scope ledger.Scope, arg ledger.CreateCategoryParams) (ledger.Category, error) {
	const query = `INSERT INTO categories AS c (name, user_id, org_id)
VALUES ($1, $2, $3)
RETURNING ` + categoryColumns

	c, err := scanCategory(q.db.QueryRow(ctx, query, arg.Name, scope.UserID, ownerOrg(scope)))
	return c, mapError(err, "create category")
}

func (q *Queries) UpdateCategory(ctx context.Context, scope ledger.Scope, arg ledger.UpdateCategoryParams) (ledger.Category, error) {
	w := &where{}
	name := w.arg(arg.Name)
	w.and("c.id = " + w.arg(toUUID(arg.ID)))
	w.scope("c", scope)

	query := "UPDATE categories AS c SET name = " + name + ", updated_at = now() WHERE " + w.String() +
		" RETURNING " + categoryColumns
	c, err := scanCategory(q.db.QueryRow(ctx, query, w.args...))
	return c, mapError(err, "update category")
}

// DeleteCategories deletes the categories in scope; their transactions
// become uncategorized.
func (q *Queries) DeleteCategories(ctx context.Context, scope ledger.Scope, ids []string) ([]string, error) {
	w := &where{}
	w.and("c.id = ANY(" + w.arg(toUUIDs(ids)) + ")")
	w.scope("c", scope)

	return q.deleteReturningIDs(ctx, "DELETE FROM categories AS c WHERE "+w.String()+" RETURNING c.id", w.args, "delete categories")
}
