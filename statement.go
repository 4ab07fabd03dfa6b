// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"context"
	"database/sql/driver"
)

type tursoStmt struct {
	tc    *tursoConn
	query string
}

func (stmt *tursoStmt) Close() error {
	logger.Debug("Stmt.Close")
	return nil
}

func (stmt *tursoStmt) NumInput() int {
	logger.Debug("Stmt.NumInput")
	// the driver does not parse SQL, so the placeholder count is unknown
	return -1
}

func (stmt *tursoStmt) Exec(args []driver.Value) (driver.Result, error) {
	logger.Debug("Stmt.Exec")
	return stmt.tc.Exec(stmt.query, args)
}

func (stmt *tursoStmt) Query(args []driver.Value) (driver.Rows, error) {
	logger.Debug("Stmt.Query")
	return stmt.tc.Query(stmt.query, args)
}

func (stmt *tursoStmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	logger.WithContext(ctx).Debug("Stmt.ExecContext")
	return stmt.tc.ExecContext(ctx, stmt.query, args)
}

func (stmt *tursoStmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	logger.WithContext(ctx).Debug("Stmt.QueryContext")
	return stmt.tc.QueryContext(ctx, stmt.query, args)
}
