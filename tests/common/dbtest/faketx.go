//go:build unit

package dbtest

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FakePool satisfies db.Pool for command-layer unit tests. The repositories
// around it are mocked, so the tx handle is passed through but never queried;
// only the Begin/Commit/Rollback bookkeeping matters.
type FakePool struct {
	BeginErr  error
	CommitErr error

	BeginCount    int
	CommitCount   int
	RollbackCount int
}

func (p *FakePool) Begin(_ context.Context) (pgx.Tx, error) {
	if p.BeginErr != nil {
		return nil, p.BeginErr
	}
	p.BeginCount++
	return &FakeTx{pool: p}, nil
}

func (p *FakePool) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (p *FakePool) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("dbtest: unexpected direct Query on FakePool")
}

func (p *FakePool) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("dbtest: unexpected direct QueryRow on FakePool")
}

// FakeTx implements pgx.Tx. Statement methods panic so a test that
// accidentally reaches the database fails loudly.
type FakeTx struct {
	pool      *FakePool
	committed bool
}

func (t *FakeTx) Commit(_ context.Context) error {
	if t.pool.CommitErr != nil {
		return t.pool.CommitErr
	}
	t.committed = true
	t.pool.CommitCount++
	return nil
}

func (t *FakeTx) Rollback(_ context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.pool.RollbackCount++
	return nil
}

func (t *FakeTx) Begin(context.Context) (pgx.Tx, error) {
	panic("dbtest: nested Begin not supported")
}

func (t *FakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	panic("dbtest: CopyFrom not supported")
}

func (t *FakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	panic("dbtest: SendBatch not supported")
}

func (t *FakeTx) LargeObjects() pgx.LargeObjects {
	panic("dbtest: LargeObjects not supported")
}

func (t *FakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	panic("dbtest: Prepare not supported")
}

func (t *FakeTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("dbtest: unexpected Exec on FakeTx")
}

func (t *FakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("dbtest: unexpected Query on FakeTx")
}

func (t *FakeTx) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("dbtest: unexpected QueryRow on FakeTx")
}

func (t *FakeTx) Conn() *pgx.Conn {
	return nil
}
