package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"smartfinance-server/src/models"
)

// fakeRow lets a test script what a QueryRow scan produces.
type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

func errRow(err error) pgx.Row {
	return fakeRow{scan: func(...any) error { return err }}
}

func categoryRow(c models.Category) pgx.Row {
	return fakeRow{scan: func(dest ...any) error {
		*dest[0].(*string) = c.ID
		*dest[1].(*string) = c.UserID
		*dest[2].(*string) = c.Name
		*dest[3].(*string) = c.Icon
		*dest[4].(*string) = c.Type
		*dest[5].(*bool) = c.IsDefault
		*dest[6].(*time.Time) = c.CreatedAt
		return nil
	}}
}

func countRow(n int) pgx.Row {
	return fakeRow{scan: func(dest ...any) error {
		*dest[0].(*int) = n
		return nil
	}}
}

// fakeQuerier replays scripted rows and command tags and records the SQL it
// was asked to execute.
type fakeQuerier struct {
	rows     []pgx.Row
	execTags []pgconn.CommandTag
	execSQL  []string
}

func (q *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.execSQL = append(q.execSQL, sql)
	if len(q.execTags) == 0 {
		return pgconn.CommandTag{}, errors.New("unexpected exec")
	}
	tag := q.execTags[0]
	q.execTags = q.execTags[1:]
	return tag, nil
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if len(q.rows) == 0 {
		return errRow(errors.New("unexpected query row"))
	}
	row := q.rows[0]
	q.rows = q.rows[1:]
	return row
}

// fakeTx adds the transaction surface on top of fakeQuerier. It satisfies
// both pgx.Tx and TxBeginner, standing in for the pool in cascade tests.
type fakeTx struct {
	fakeQuerier
	committed bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error { return nil }

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("unexpected copy")
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("unexpected prepare")
}

func (t *fakeTx) Conn() *pgx.Conn { return nil }
