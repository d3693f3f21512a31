package postgres_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	kpool "github.com/modelplane/modelplane/pkg/conn/db/postgres/pool"
	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
	"github.com/modelplane/modelplane/pkg/domain/project/db/postgres"
)

// fakeTx records executed statements instead of talking to a database.
// The "projects" delete reports projectRows affected rows; everything
// else reports zero.
type fakeTx struct {
	t           *testing.T
	projectRows int

	execs      []string
	args       [][]interface{}
	committed  bool
	rolledBack bool
}

var _ kpool.Tx = &fakeTx{}

func (tx *fakeTx) Exec(_ context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	tx.execs = append(tx.execs, sql)
	tx.args = append(tx.args, arguments)
	if strings.Contains(sql, `"projects"`) && tx.projectRows == 1 {
		return pgconn.CommandTag("DELETE 1"), nil
	}
	return pgconn.CommandTag("DELETE 0"), nil
}

func (tx *fakeTx) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	tx.t.Fatal("should not be called: Query")
	return nil, nil
}

func (tx *fakeTx) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	tx.t.Fatal("should not be called: QueryRow")
	return nil
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.rolledBack = true
	return nil
}

type fakePool struct {
	t  *testing.T
	tx *fakeTx
}

var _ kpool.Pool = &fakePool{}

func (p *fakePool) Begin(context.Context) (kpool.Tx, error) { return p.tx, nil }

func (p *fakePool) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	p.t.Fatal("should not be called: Exec")
	return nil, nil
}

func (p *fakePool) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	p.t.Fatal("should not be called: Query")
	return nil, nil
}

func (p *fakePool) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	p.t.Fatal("should not be called: QueryRow")
	return nil
}

func (p *fakePool) Ping(context.Context) error { return nil }
func (p *fakePool) Close()                     {}

func TestRemove_CascadesToDependentRows(t *testing.T) {
	ctx := context.Background()

	tx := &fakeTx{t: t, projectRows: 1}
	testee := postgres.New(&fakePool{t: t, tx: tx})

	if err := testee.Remove(ctx, "my-project"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// referencing rows must go before the referenced project row, all
	// in one transaction.
	wantTables := []string{`"model_deployments"`, `"project_users"`, `"projects"`}
	if len(tx.execs) != len(wantTables) {
		t.Fatalf("unexpected statements: %v", tx.execs)
	}
	for i, table := range wantTables {
		if !strings.Contains(tx.execs[i], table) {
			t.Errorf("statement %d should delete from %s: %s", i, table, tx.execs[i])
		}
		if len(tx.args[i]) != 1 || tx.args[i][0] != "my-project" {
			t.Errorf("statement %d should be scoped to the project: %v", i, tx.args[i])
		}
	}
	if !tx.committed {
		t.Error("the transaction should be committed")
	}
}

func TestRemove_UnknownProjectRollsBack(t *testing.T) {
	ctx := context.Background()

	tx := &fakeTx{t: t, projectRows: 0}
	testee := postgres.New(&fakePool{t: t, tx: tx})

	err := testee.Remove(ctx, "no-such-project")
	if !kerr.AsNotFound(err) {
		t.Fatalf("expected NotFound, but: %v", err)
	}
	if tx.committed {
		t.Error("nothing should be committed for an unknown project")
	}
	if !tx.rolledBack {
		t.Error("the transaction should be rolled back")
	}
}
