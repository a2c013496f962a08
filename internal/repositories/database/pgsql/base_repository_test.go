package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records how a transaction ended. Methods not overridden panic via
// the nil embedded interface.
type fakeTx struct {
	pgx.Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestRunInTx_CommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	err := runInTx(context.Background(), fakeBeginner{tx: tx}, func(got pgx.Tx) error {
		assert.Same(t, tx, got)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	tx := &fakeTx{}
	boom := errors.New("insert failed")
	err := runInTx(context.Background(), fakeBeginner{tx: tx}, func(pgx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestRunInTx_CommitAndBeginFailures(t *testing.T) {
	tx := &fakeTx{commitErr: errors.New("serialization failure")}
	err := runInTx(context.Background(), fakeBeginner{tx: tx}, func(pgx.Tx) error { return nil })
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "failed to commit transaction", appErr.Message)
	assert.True(t, tx.rolledBack)

	called := false
	err = runInTx(context.Background(), fakeBeginner{err: errors.New("pool closed")}, func(pgx.Tx) error {
		called = true
		return nil
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "failed to begin transaction", appErr.Message)
	assert.False(t, called)
}
