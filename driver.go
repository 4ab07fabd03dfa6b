// Package goturso is a Go Turso/LibSQL HTTP driver for Go's database/sql
//
// Copyright (c) 2025 The goturso authors. All right reserved.
//
package goturso

import (
	"context"
	"database/sql"
	"database/sql/driver"
)

// TursoDriver is a context of Go Driver
type TursoDriver struct{}

// Open creates a new connection.
func (d TursoDriver) Open(dsn string) (driver.Conn, error) {
	logger.Debug("Open")
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	return d.OpenWithConfig(context.Background(), cfg)
}

// OpenWithConfig creates a new connection from an already-parsed Config.
func (d TursoDriver) OpenWithConfig(ctx context.Context, cfg *Config) (driver.Conn, error) {
	pc, err := NewPipelineClient(cfg)
	if err != nil {
		return nil, err
	}
	return &tursoConn{ctx: ctx, cfg: cfg, client: pc}, nil
}

// Connector creates driver.Conn instances from a fixed Config. It lets
// callers use sql.OpenDB without going through a DSN string.
type Connector struct {
	driver TursoDriver
	cfg    *Config
}

// NewConnector returns a connector for the given Config.
func NewConnector(cfg *Config) Connector {
	return Connector{driver: TursoDriver{}, cfg: cfg}
}

// Connect creates a new connection.
func (c Connector) Connect(ctx context.Context) (driver.Conn, error) {
	return c.driver.OpenWithConfig(ctx, c.cfg)
}

// Driver returns the underlying TursoDriver.
func (c Connector) Driver() driver.Driver {
	return c.driver
}

func init() {
	sql.Register("turso", &TursoDriver{})
}
