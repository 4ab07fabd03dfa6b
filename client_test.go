// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	path "path/filepath"
	"testing"
)

// newTestServer returns a pipeline endpoint that records incoming request
// bodies and replies with the given handler.
func newTestServer(t *testing.T, handler func(w http.ResponseWriter, body pipelineRequest)) (*httptest.Server, *[]pipelineRequest) {
	t.Helper()
	var seen []pipelineRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pipelinePath {
			t.Errorf("unexpected path: %v", r.URL.Path)
		}
		b, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("failed to read request body: %v", err)
		}
		var req pipelineRequest
		if err = json.Unmarshal(b, &req); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		seen = append(seen, req)
		handler(w, req)
	}))
	t.Cleanup(ts.Close)
	return ts, &seen
}

func newTestClient(t *testing.T, ts *httptest.Server) *PipelineClient {
	t.Helper()
	cfg, err := ParseDSN(ts.URL)
	assertNilF(t, err)
	pc, err := NewPipelineClient(cfg)
	assertNilF(t, err)
	return pc
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", headerContentTypeApplicationJSON)
	json.NewEncoder(w).Encode(v)
}

func selectOneResponse() *PipelineResponse {
	return &PipelineResponse{
		Results: []StatementResult{
			{
				Cols: []Column{{Name: "1", Decltype: nil}},
				Rows: [][]TypedValue{{{Type: "integer", Value: "1"}}},
			},
		},
	}
}

func TestExecuteSelectOne(t *testing.T) {
	ts, seen := newTestServer(t, func(w http.ResponseWriter, body pipelineRequest) {
		writeJSON(w, selectOneResponse())
	})
	pc := newTestClient(t, ts)

	assertNilF(t, pc.AddStatement("SELECT 1"))
	_, err := pc.Execute(context.Background())
	assertNilF(t, err)

	assertEqualF(t, len(*seen), 1)
	req := (*seen)[0]
	assertEqualF(t, len(req.Requests), 2)
	assertEqualE(t, req.Requests[0].Type, requestTypeExecute)
	assertEqualE(t, req.Requests[0].Stmt.SQL, "SELECT 1")
	assertEqualE(t, req.Requests[1].Type, requestTypeClose)

	rows := pc.Rows()
	assertEqualF(t, len(rows), 1)
	assertEqualE(t, rows[0][0].Value, "1")
	cols := pc.Columns()
	assertEqualF(t, len(cols), 1)
	assertEqualE(t, cols[0].Name, "1")
}

func TestExecuteSendsHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(headerAuthorizationKey)
		gotRequestID = r.Header.Get(headerRequestIDKey)
		gotContentType = r.Header.Get("Content-Type")
		writeJSON(w, selectOneResponse())
	}))
	t.Cleanup(ts.Close)

	cfg, err := ParseDSN(ts.URL + "?authtoken=tok123")
	assertNilF(t, err)
	pc, err := NewPipelineClient(cfg)
	assertNilF(t, err)

	assertNilF(t, pc.AddStatement("SELECT 1"))
	_, err = pc.Execute(context.Background())
	assertNilF(t, err)

	assertEqualE(t, gotAuth, "Bearer tok123")
	assertEqualE(t, gotContentType, headerContentTypeApplicationJSON)
	assertTrueE(t, gotRequestID != "", "every batch must carry a request id")
}

func TestExecuteCapturesBatonAndBaseURL(t *testing.T) {
	var ts *httptest.Server
	calls := 0
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		b, _ := io.ReadAll(r.Body)
		var req pipelineRequest
		json.Unmarshal(b, &req)
		switch calls {
		case 1:
			if req.Baton != "" {
				t.Errorf("first batch must not carry a baton, got %v", req.Baton)
			}
			writeJSON(w, &PipelineResponse{
				Baton:   "baton-1",
				BaseURL: ts.URL,
				Results: []StatementResult{{}},
			})
		default:
			if req.Baton != "baton-1" {
				t.Errorf("expected baton-1 on continuation, got %v", req.Baton)
			}
			writeJSON(w, &PipelineResponse{Results: []StatementResult{{}}})
		}
	}))
	t.Cleanup(ts.Close)

	pc := newTestClient(t, ts)
	assertNilF(t, pc.AddTransactionStatement("BEGIN"))
	_, err := pc.Execute(context.Background())
	assertNilF(t, err)
	assertEqualE(t, pc.Baton(), "baton-1")
	assertEqualE(t, pc.BaseURL(), ts.URL)

	assertNilF(t, pc.AddStatement("COMMIT"))
	_, err = pc.Execute(context.Background())
	assertNilF(t, err)
	// the closing response carried no baton, so the session ended
	assertEqualE(t, pc.Baton(), "")
	assertEqualE(t, calls, 2)
}

func TestExecuteHTTPFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database is out to lunch", http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	pc := newTestClient(t, ts)
	assertNilF(t, pc.AddStatement("SELECT 1"))
	_, err := pc.Execute(context.Background())

	var te *TursoError
	assertErrorsAsF(t, err, &te)
	assertEqualE(t, te.Number, ErrCodePipelineFailure)
	assertEqualE(t, te.HTTPCode, http.StatusInternalServerError)
	assertStringContainsE(t, te.Error(), "database is out to lunch")

	// a failed batch must not leak statements into the next one
	assertEqualE(t, len(pc.builder.requests), 0)
}

func TestExecuteDecodeFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not json")
	}))
	t.Cleanup(ts.Close)

	pc := newTestClient(t, ts)
	assertNilF(t, pc.AddStatement("SELECT 1"))
	_, err := pc.Execute(context.Background())

	var te *TursoError
	assertErrorsAsF(t, err, &te)
	assertEqualE(t, te.Number, ErrCodePipelineFailure)
	assertEqualE(t, len(pc.builder.requests), 0)
}

func TestExecuteHooks(t *testing.T) {
	ts, _ := newTestServer(t, func(w http.ResponseWriter, body pipelineRequest) {
		writeJSON(w, selectOneResponse())
	})
	pc := newTestClient(t, ts)

	before, after := 0, 0
	pc.BeforeExecute = func() { before++ }
	pc.AfterExecute = func() { after++ }

	assertNilF(t, pc.AddStatement("SELECT 1"))
	_, err := pc.Execute(context.Background())
	assertNilF(t, err)
	assertEqualE(t, before, 1)
	assertEqualE(t, after, 0)

	assertNilE(t, pc.Close())
	assertEqualE(t, after, 1)
}

func TestNamedParameters(t *testing.T) {
	ts, seen := newTestServer(t, func(w http.ResponseWriter, body pipelineRequest) {
		writeJSON(w, &PipelineResponse{Results: []StatementResult{{}}})
	})
	pc := newTestClient(t, ts)

	err := pc.AddStatement("SELECT * FROM t WHERE a = :a AND b = :b",
		map[string]interface{}{":b": "two", ":a": int64(1)})
	assertNilF(t, err)
	_, err = pc.Execute(context.Background())
	assertNilF(t, err)

	stmt := (*seen)[0].Requests[0].Stmt
	assertEqualF(t, len(stmt.NamedArgs), 2)
	// map parameters serialize in key order
	assertEqualE(t, stmt.NamedArgs[0].Name, "a")
	assertEqualE(t, stmt.NamedArgs[0].Value.Value, "1")
	assertEqualE(t, stmt.NamedArgs[1].Name, "b")
	assertEqualE(t, stmt.NamedArgs[1].Value.Value, "two")
}

func TestAccessorsWithoutResponse(t *testing.T) {
	ts, _ := newTestServer(t, func(w http.ResponseWriter, body pipelineRequest) {})
	pc := newTestClient(t, ts)

	assertNilE(t, pc.RawResponse())
	assertEqualE(t, pc.ResponseJSON(), "")
	assertEqualE(t, pc.Baton(), "")
	assertEqualE(t, pc.BaseURL(), "")
	assertNilE(t, pc.Results())
	assertNilE(t, pc.Columns())
	assertNilE(t, pc.Rows())
	assertEqualE(t, pc.AffectedRowCount(), int64(0))
	assertEqualE(t, pc.LastInsertRowID(), int64(0))
	assertEqualE(t, pc.ReplicationIndex(), "")
	assertNilE(t, pc.Decoder())
}

func TestExecuteWritesDebugLog(t *testing.T) {
	ts, _ := newTestServer(t, func(w http.ResponseWriter, body pipelineRequest) {
		writeJSON(w, selectOneResponse())
	})
	dir := t.TempDir()
	cfg, err := ParseDSN(ts.URL)
	assertNilF(t, err)
	cfg.DebugLog = true
	cfg.DebugLogName = "pipelinedebug"
	cfg.DebugLogPath = dir
	pc, err := NewPipelineClient(cfg)
	assertNilF(t, err)

	assertNilF(t, pc.AddStatement("SELECT 1"))
	_, err = pc.Execute(context.Background())
	assertNilF(t, err)

	f, err := os.Open(path.Join(dir, "pipelinedebug.log"))
	assertNilF(t, err)
	defer f.Close()
	scanner := bufio.NewScanner(f)
	assertTrueF(t, scanner.Scan(), "debug log must contain at least one entry")
	var entry debugLogEntry
	assertNilF(t, json.Unmarshal(scanner.Bytes(), &entry))
	assertEqualE(t, entry.Name, "pipelinedebug")
	var req pipelineRequest
	assertNilF(t, json.Unmarshal(entry.Pipeline, &req))
	assertEqualF(t, len(req.Requests), 2)
	assertEqualE(t, req.Requests[0].Stmt.SQL, "SELECT 1")
}
