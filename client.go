// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/google/uuid"
)

// PipelineClient batches SQL statements into pipeline requests against one
// Turso database and exposes typed accessors over the latest response.
//
// A PipelineClient is confined to one logical session: the baton threads
// session continuity across sequential Execute calls, not concurrent ones.
// Concurrent use of the same client is undefined behavior.
type PipelineClient struct {
	cfg     *Config
	rest    *tursoRestful
	builder pipelineBuilder

	response *PipelineResponse
	baseURL  string // server-directed endpoint override for the open session

	debugLog *debugLogger

	// BeforeExecute runs right before each batch is sent; AfterExecute runs
	// on Close. Both are optional side-effecting hooks whose results are
	// never consulted.
	BeforeExecute func()
	AfterExecute  func()
}

// NewPipelineClient returns a client for the database described by cfg.
func NewPipelineClient(cfg *Config) (*PipelineClient, error) {
	fillMissingConfigParameters(cfg)
	if cfg.Host == "" {
		return nil, ErrEmptyHost
	}
	if cfg.Location == nil {
		loc, err := loadLocation(cfg.Timezone)
		if err != nil {
			return nil, err
		}
		cfg.Location = loc
	}
	inspectAuthToken(cfg.AuthToken)
	pc := &PipelineClient{
		cfg: cfg,
		rest: &tursoRestful{
			Protocol: cfg.Protocol,
			Host:     cfg.Host,
			Port:     cfg.Port,
			Client: &http.Client{
				Timeout:   cfg.RequestTimeout,
				Transport: tursoTransport,
			},
			Token:            cfg.AuthToken,
			FuncPostPipeline: postPipeline,
		},
	}
	if cfg.DebugLog {
		pc.debugLog = newDebugLogger(cfg.DebugLogName, cfg.DebugLogPath)
	}
	return pc, nil
}

// AddStatement appends a statement to the next batch and marks the batch to
// close the server session once it ran. Parameters bind positionally unless
// a map or sql.Named values are given, which select named binding.
func (pc *PipelineClient) AddStatement(query string, params ...interface{}) error {
	return pc.builder.addStatement(query, toBindings(params), false)
}

// AddTransactionStatement appends a statement without a trailing close, so
// the session stays open for a subsequent batch on the same baton.
func (pc *PipelineClient) AddTransactionStatement(query string, params ...interface{}) error {
	return pc.builder.addStatement(query, toBindings(params), true)
}

// toBindings normalizes caller parameters into driver bindings. A single
// map argument becomes named bindings in key order so serialization is
// deterministic.
func toBindings(params []interface{}) []driver.NamedValue {
	if len(params) == 1 {
		if m, ok := params[0].(map[string]interface{}); ok {
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			bindings := make([]driver.NamedValue, 0, len(m))
			for i, k := range keys {
				bindings = append(bindings, driver.NamedValue{Name: k, Ordinal: i + 1, Value: m[k]})
			}
			return bindings
		}
	}
	bindings := make([]driver.NamedValue, 0, len(params))
	for i, p := range params {
		if named, ok := p.(sql.NamedArg); ok {
			bindings = append(bindings, driver.NamedValue{Name: named.Name, Ordinal: i + 1, Value: named.Value})
			continue
		}
		bindings = append(bindings, driver.NamedValue{Ordinal: i + 1, Value: p})
	}
	return bindings
}

// currentBaseURL prefers the endpoint the server directed the session to.
func (pc *PipelineClient) currentBaseURL() string {
	if pc.baseURL != "" {
		return pc.baseURL
	}
	return pc.rest.baseURL()
}

// Execute sends the accumulated batch and stores the response. The pending
// request list is cleared whether or not the request succeeded, so a failed
// batch never leaks statements into the next one. On success the baton and
// base_url are captured for session continuation and the client is returned
// for chaining.
func (pc *PipelineClient) Execute(ctx context.Context) (*PipelineClient, error) {
	if pc.BeforeExecute != nil {
		pc.BeforeExecute()
	}
	body, err := json.Marshal(pc.builder.build())
	if err != nil {
		pc.builder.reset()
		return pc, &TursoError{
			Number:      ErrCodePipelineFailure,
			Message:     errMsgPipelineTransportFailure,
			MessageArgs: []interface{}{err},
		}
	}
	if pc.debugLog != nil {
		pc.debugLog.logRequest(body)
	}
	requestID := uuid.New()
	ctx = context.WithValue(ctx, LogKeyRequestID, requestID.String())
	if pc.builder.baton != "" {
		ctx = context.WithValue(ctx, LogKeyBaton, pc.builder.baton)
	}
	logger.WithContext(ctx).Debugf("pipeline batch: %v requests", len(pc.builder.requests))
	resp, err := pc.rest.FuncPostPipeline(ctx, pc.rest, pc.currentBaseURL(), body, requestID)
	pc.builder.reset()
	if err != nil {
		logger.WithContext(ctx).Errorf("pipeline execution failed: %v", err)
		return pc, err
	}
	pc.response = resp
	pc.builder.baton = resp.Baton
	pc.baseURL = resp.BaseURL
	return pc, nil
}

// Close runs the after-execute hook, best effort. The HTTP layer keeps no
// per-client state to tear down.
func (pc *PipelineClient) Close() error {
	if pc.AfterExecute != nil {
		pc.AfterExecute()
	}
	return nil
}

// RawResponse returns the stored response of the last executed batch, nil
// before the first Execute.
func (pc *PipelineClient) RawResponse() *PipelineResponse {
	return pc.response
}

// ResponseJSON returns the stored response re-serialized as JSON, empty
// when there is none.
func (pc *PipelineClient) ResponseJSON() string {
	if pc.response == nil {
		return ""
	}
	b, err := json.Marshal(pc.response)
	if err != nil {
		return ""
	}
	return string(b)
}

// Baton returns the session token of the open session, empty once the
// session ended.
func (pc *PipelineClient) Baton() string {
	return pc.builder.baton
}

// BaseURL returns the server-directed endpoint of the open session, empty
// once the session ended.
func (pc *PipelineClient) BaseURL() string {
	return pc.baseURL
}

// Results returns all statement results of the last batch.
func (pc *PipelineClient) Results() []StatementResult {
	if pc.response == nil {
		return nil
	}
	return pc.response.Results
}

func (pc *PipelineClient) firstResult() *StatementResult {
	if pc.response == nil || len(pc.response.Results) == 0 {
		return nil
	}
	return &pc.response.Results[0]
}

// Columns returns the column metadata of the first statement result.
func (pc *PipelineClient) Columns() []Column {
	if res := pc.firstResult(); res != nil {
		return res.Cols
	}
	return nil
}

// Rows returns the raw typed rows of the first statement result.
func (pc *PipelineClient) Rows() [][]TypedValue {
	if res := pc.firstResult(); res != nil {
		return res.Rows
	}
	return nil
}

// AffectedRowCount returns the affected row count of the first statement
// result, 0 when absent.
func (pc *PipelineClient) AffectedRowCount() int64 {
	if res := pc.firstResult(); res != nil {
		return res.AffectedRowCount
	}
	return 0
}

// LastInsertRowID returns the last insert rowid of the first statement
// result, 0 when absent.
func (pc *PipelineClient) LastInsertRowID() int64 {
	if res := pc.firstResult(); res != nil && res.LastInsertRowid != nil {
		return *res.LastInsertRowid
	}
	return 0
}

// ReplicationIndex returns the replication index of the first statement
// result, empty when absent.
func (pc *PipelineClient) ReplicationIndex() string {
	if res := pc.firstResult(); res != nil {
		return res.ReplicationIndex
	}
	return ""
}

// Decoder returns a ResultDecoder over the first statement result, nil when
// there is none.
func (pc *PipelineClient) Decoder() *ResultDecoder {
	if res := pc.firstResult(); res != nil {
		return NewResultDecoder(res, pc.cfg.Location)
	}
	return nil
}
