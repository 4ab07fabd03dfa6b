// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"time"
)

type tursoConn struct {
	ctx    context.Context
	cfg    *Config
	client *PipelineClient
	inTx   bool
	closed bool
}

// exec runs one statement through the pipeline client and returns its
// result. Inside a transaction the batch stays open on the session baton;
// otherwise the builder appends the closing request and the server ends the
// session after this batch.
func (tc *tursoConn) exec(ctx context.Context, query string, bindings []driver.NamedValue) (*StatementResult, error) {
	if tc.closed {
		return nil, driver.ErrBadConn
	}
	normalized := normalizeBindings(bindings)
	if err := tc.client.builder.addStatement(query, normalized, tc.inTx); err != nil {
		return nil, err
	}
	if _, err := tc.client.Execute(ctx); err != nil {
		return nil, err
	}
	res := tc.client.firstResult()
	if res == nil {
		return nil, &TursoError{
			Number:  ErrCodeEmptyPipelineResponse,
			Message: errMsgEmptyPipelineResponse,
		}
	}
	return res, nil
}

// normalizeBindings converts time.Time bindings into SQLite's canonical
// datetime text, in UTC, before classification. Everything else passes
// through to bindValue untouched.
func normalizeBindings(bindings []driver.NamedValue) []driver.NamedValue {
	out := make([]driver.NamedValue, len(bindings))
	for i, b := range bindings {
		if t, ok := b.Value.(time.Time); ok {
			b.Value = t.UTC().Format(sqliteDatetimeFormat)
		}
		out[i] = b
	}
	return out
}

func (tc *tursoConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	logger.WithContext(ctx).Debug("QueryContext")
	res, err := tc.exec(ctx, query, args)
	if err != nil {
		return nil, err
	}
	decoder := NewResultDecoder(res, tc.cfg.Location)
	return &tursoRows{decoder: decoder, rows: decoder.MaterializeNum()}, nil
}

func (tc *tursoConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	logger.WithContext(ctx).Debug("ExecContext")
	res, err := tc.exec(ctx, query, args)
	if err != nil {
		return nil, err
	}
	result := &tursoResult{affectedRows: res.AffectedRowCount}
	if res.LastInsertRowid != nil {
		result.insertID = *res.LastInsertRowid
	}
	return result, nil
}

func (tc *tursoConn) Query(query string, args []driver.Value) (driver.Rows, error) {
	return tc.QueryContext(tc.connCtx(), query, toNamedValues(args))
}

func (tc *tursoConn) Exec(query string, args []driver.Value) (driver.Result, error) {
	return tc.ExecContext(tc.connCtx(), query, toNamedValues(args))
}

func (tc *tursoConn) connCtx() context.Context {
	if tc.ctx != nil {
		return tc.ctx
	}
	return context.Background()
}

func (tc *tursoConn) Prepare(query string) (driver.Stmt, error) {
	return tc.PrepareContext(tc.connCtx(), query)
}

func (tc *tursoConn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	logger.WithContext(ctx).Debug("PrepareContext")
	if tc.closed {
		return nil, driver.ErrBadConn
	}
	// the protocol has no server-side prepare; the statement is sent on
	// execution
	return &tursoStmt{tc: tc, query: query}, nil
}

func (tc *tursoConn) Begin() (driver.Tx, error) {
	return tc.BeginTx(tc.connCtx(), driver.TxOptions{})
}

func (tc *tursoConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	logger.WithContext(ctx).Debug("BeginTx")
	if tc.closed {
		return nil, driver.ErrBadConn
	}
	if opts.ReadOnly {
		return nil, &TursoError{
			Number:  ErrCodeNoReadOnlyTransaction,
			Message: errMsgNoReadOnlyTransaction,
		}
	}
	if int(opts.Isolation) != int(sql.LevelDefault) {
		return nil, &TursoError{
			Number:  ErrCodeNoDefaultTransactionIsolationLevel,
			Message: errMsgNoDefaultIsolationLevel,
		}
	}
	// inTx must be set before BEGIN goes out so the batch skips the
	// trailing close and the session stays open on the baton
	tc.inTx = true
	if _, err := tc.exec(ctx, "BEGIN", nil); err != nil {
		tc.inTx = false
		return nil, err
	}
	return &tursoTx{tc: tc}, nil
}

func (tc *tursoConn) Ping(ctx context.Context) error {
	_, err := tc.exec(ctx, "SELECT 1", nil)
	return err
}

// CheckNamedValue validates bindings early so misuse surfaces at the call
// site rather than mid-batch.
func (tc *tursoConn) CheckNamedValue(nv *driver.NamedValue) error {
	if _, ok := nv.Value.(time.Time); ok {
		return nil
	}
	_, err := bindValue(nv.Value)
	return err
}

func (tc *tursoConn) Close() error {
	logger.Debug("Conn.Close")
	if tc.closed {
		return nil
	}
	tc.closed = true
	return tc.client.Close()
}

type tursoTx struct {
	tc   *tursoConn
	done bool
}

func (tx *tursoTx) Commit() error {
	return tx.finish("COMMIT")
}

func (tx *tursoTx) Rollback() error {
	return tx.finish("ROLLBACK")
}

func (tx *tursoTx) finish(query string) error {
	if tx.done {
		return &TursoError{
			Number:  ErrCodeTransactionDone,
			Message: errMsgTransactionDone,
		}
	}
	tx.done = true
	// the finishing statement autocloses, ending the session
	tx.tc.inTx = false
	_, err := tx.tc.exec(tx.tc.connCtx(), query, nil)
	return err
}
