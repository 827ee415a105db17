package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/eringen/folio/content"
)

// Resource is the list/create/update/delete service of one ordered
// collection. All six list collections are instances of it.
type Resource[T any, P Row[T]] struct {
	store *Store
	gate  Gate
	table Table[T]

	selectSQL string
	getSQL    string
	insertSQL string
	updateSQL string
	deleteSQL string
}

// NewResource builds the service for table t.
func NewResource[T any, P Row[T]](s *Store, g Gate, t Table[T]) *Resource[T, P] {
	cols := strings.Join(t.Columns, ", ")
	returning := "id, " + cols
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	sets := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		sets[i] = c + " = ?"
	}
	return &Resource[T, P]{
		store: s,
		gate:  g,
		table: t,
		selectSQL: fmt.Sprintf(`SELECT %s FROM %s ORDER BY order_index ASC, id ASC`,
			returning, t.Name),
		getSQL: s.rebind(fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`,
			returning, t.Name)),
		insertSQL: s.rebind(fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
			t.Name, cols, marks, returning)),
		updateSQL: s.rebind(fmt.Sprintf(`UPDATE %s SET %s WHERE id = ? RETURNING %s`,
			t.Name, strings.Join(sets, ", "), returning)),
		deleteSQL: s.rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t.Name)),
	}
}

// List returns every row ordered by orderIndex, ties by insertion order.
// An empty table yields an empty, non-nil slice.
func (r *Resource[T, P]) List(ctx context.Context) ([]T, error) {
	rows, err := r.store.db.QueryContext(ctx, r.selectSQL)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var v T
		if err := rows.Scan(r.table.Dest(&v)...); err != nil {
			return nil, storageError(err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err)
	}
	return out, nil
}

// Get returns row id, or nil when it does not exist.
func (r *Resource[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	var v T
	err := r.store.db.QueryRowContext(ctx, r.getSQL, id).Scan(r.table.Dest(&v)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err)
	}
	return &v, nil
}

// Create inserts v after applying defaults and checking required fields.
func (r *Resource[T, P]) Create(ctx context.Context, v T) (*T, error) {
	if !r.gate.OwnerAuthenticated(ctx) {
		return nil, content.ErrUnauthorized
	}
	if err := P(&v).Normalize(); err != nil {
		return nil, err
	}
	if err := P(&v).Validate(); err != nil {
		return nil, err
	}
	return r.insert(ctx, r.store.db, &v)
}

func (r *Resource[T, P]) insert(ctx context.Context, q DBTX, v *T) (*T, error) {
	var out T
	if err := q.QueryRowContext(ctx, r.insertSQL, r.table.Values(v)...).Scan(r.table.Dest(&out)...); err != nil {
		return nil, storageError(err)
	}
	return &out, nil
}

// Update replaces every field of row id with v. Required fields are not
// re-checked; omitted fields are stored empty. A missing id is a no-op and
// yields (nil, nil).
func (r *Resource[T, P]) Update(ctx context.Context, id int64, v T) (*T, error) {
	if !r.gate.OwnerAuthenticated(ctx) {
		return nil, content.ErrUnauthorized
	}
	if err := P(&v).Normalize(); err != nil {
		return nil, err
	}
	args := append(r.table.Values(&v), id)
	var out T
	err := r.store.db.QueryRowContext(ctx, r.updateSQL, args...).Scan(r.table.Dest(&out)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err)
	}
	return &out, nil
}

// Delete removes row id. Deleting an absent row succeeds.
func (r *Resource[T, P]) Delete(ctx context.Context, id int64) error {
	if !r.gate.OwnerAuthenticated(ctx) {
		return content.ErrUnauthorized
	}
	if _, err := r.store.db.ExecContext(ctx, r.deleteSQL, id); err != nil {
		return storageError(err)
	}
	return nil
}

// clear empties the table inside tx. Used by seeding only.
func (r *Resource[T, P]) clear(ctx context.Context, tx DBTX) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+r.table.Name); err != nil {
		return storageError(err)
	}
	return nil
}

// The methods below erase T so that collections can be driven by kind.

func (r *Resource[T, P]) createValue(ctx context.Context, v any) (any, error) {
	row, err := r.assert(v)
	if err != nil {
		return nil, err
	}
	out, err := r.Create(ctx, row)
	return deref(out, err)
}

func (r *Resource[T, P]) updateValue(ctx context.Context, id int64, v any) (any, error) {
	row, err := r.assert(v)
	if err != nil {
		return nil, err
	}
	out, err := r.Update(ctx, id, row)
	return deref(out, err)
}

func (r *Resource[T, P]) listValues(ctx context.Context) (any, error) {
	return r.List(ctx)
}

func (r *Resource[T, P]) getValue(ctx context.Context, id int64) (any, error) {
	out, err := r.Get(ctx, id)
	return deref(out, err)
}

func (r *Resource[T, P]) assert(v any) (T, error) {
	switch row := v.(type) {
	case T:
		return row, nil
	case *T:
		if row != nil {
			return *row, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s: unexpected payload %T", r.table.Name, v)
}

// deref keeps a missing row as an untyped nil inside the interface.
func deref[T any](v *T, err error) (any, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

// collection is a Resource with its element type erased.
type collection interface {
	listValues(ctx context.Context) (any, error)
	getValue(ctx context.Context, id int64) (any, error)
	createValue(ctx context.Context, v any) (any, error)
	updateValue(ctx context.Context, id int64, v any) (any, error)
	Delete(ctx context.Context, id int64) error
}

func storageError(err error) error {
	return fmt.Errorf("%w: %w", content.ErrStorage, err)
}
