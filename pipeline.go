// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"database/sql/driver"
	"strings"
)

// pipeline request types; anything else is a programmer error and is
// rejected before serialization
const (
	requestTypeExecute = "execute"
	requestTypeClose   = "close"
)

// paramNameMarkers are the placeholder prefixes stripped from named
// parameter keys before they go on the wire.
const paramNameMarkers = ":@$"

// NamedArg is a named statement argument on the wire.
type NamedArg struct {
	Name  string     `json:"name"`
	Value TypedValue `json:"value"`
}

// pipelineStmt is a single SQL statement with its bound arguments. Exactly
// one of Args and NamedArgs is populated per statement; when the statement
// has no parameters neither key is serialized at all, which the server
// requires.
type pipelineStmt struct {
	SQL       string       `json:"sql"`
	Args      []TypedValue `json:"args,omitempty"`
	NamedArgs []NamedArg   `json:"named_args,omitempty"`
}

// statementRequest is one entry of a pipeline. A close request carries no
// statement.
type statementRequest struct {
	Type string        `json:"type"`
	Stmt *pipelineStmt `json:"stmt,omitempty"`
}

// pipelineRequest is the full body of one POST to the pipeline endpoint.
// The baton ties the request to a previously established server-side
// session and is omitted on the first request.
type pipelineRequest struct {
	Baton    string             `json:"baton,omitempty"`
	Requests []statementRequest `json:"requests"`
}

// pipelineBuilder accumulates statement and close requests for the next
// batch. It is not safe for concurrent use; each builder belongs to one
// logical session.
type pipelineBuilder struct {
	baton    string
	requests []statementRequest
}

// addStatement binds the given arguments and appends an execute request.
// Arguments with a non-empty name select named binding for the whole
// statement, otherwise every argument is bound positionally in order.
// Unless inTransaction is set, a close request follows immediately and the
// server ends the session after this batch.
func (pb *pipelineBuilder) addStatement(sql string, args []driver.NamedValue, inTransaction bool) error {
	stmt := &pipelineStmt{SQL: sql}
	named := false
	for _, arg := range args {
		if arg.Name != "" {
			named = true
			break
		}
	}
	if named {
		stmt.NamedArgs = make([]NamedArg, 0, len(args))
		for _, arg := range args {
			tv, err := bindValue(arg.Value)
			if err != nil {
				return err
			}
			stmt.NamedArgs = append(stmt.NamedArgs, NamedArg{
				Name:  strings.TrimLeft(arg.Name, paramNameMarkers),
				Value: tv,
			})
		}
	} else if len(args) > 0 {
		stmt.Args = make([]TypedValue, 0, len(args))
		for _, arg := range args {
			tv, err := bindValue(arg.Value)
			if err != nil {
				return err
			}
			stmt.Args = append(stmt.Args, tv)
		}
	}
	if err := pb.appendRequest(requestTypeExecute, stmt); err != nil {
		return err
	}
	if !inTransaction {
		return pb.appendRequest(requestTypeClose, nil)
	}
	return nil
}

func (pb *pipelineBuilder) appendRequest(requestType string, stmt *pipelineStmt) error {
	switch requestType {
	case requestTypeExecute, requestTypeClose:
	default:
		return &TursoError{
			Number:      ErrCodeInvalidRequestType,
			Message:     errMsgInvalidRequestType,
			MessageArgs: []interface{}{requestType},
		}
	}
	pb.requests = append(pb.requests, statementRequest{Type: requestType, Stmt: stmt})
	return nil
}

func (pb *pipelineBuilder) build() *pipelineRequest {
	return &pipelineRequest{Baton: pb.baton, Requests: pb.requests}
}

// reset drops the accumulated requests so the builder can be reused for the
// next batch. The baton survives; only a response without one clears it.
func (pb *pipelineBuilder) reset() {
	pb.requests = nil
}
