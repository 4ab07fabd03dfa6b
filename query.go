// Go Turso HTTP Driver - Turso/LibSQL driver for Go's database/sql package
//
// Copyright (c) 2025 The goturso authors. All right reserved.
//
package goturso

// Column is one entry of a statement result's column metadata. Its position
// matches the cell position inside every row of the same result.
type Column struct {
	Name     string  `json:"name"`
	Decltype *string `json:"decltype"`
}

// StatementResult is the typed result of one execute request.
type StatementResult struct {
	Cols             []Column       `json:"cols"`
	Rows             [][]TypedValue `json:"rows"`
	RowsRead         int64          `json:"rows_read"`
	RowsWritten      int64          `json:"rows_written"`
	QueryDurationMS  float64        `json:"query_duration_ms"`
	AffectedRowCount int64          `json:"affected_row_count"`
	LastInsertRowid  *int64         `json:"last_insert_rowid"`
	ReplicationIndex string         `json:"replication_index"`
}

// PipelineResponse is the body of a pipeline response. Baton and BaseURL
// must be carried into the next request to continue the session; their
// absence means the session ended.
type PipelineResponse struct {
	Baton   string            `json:"baton"`
	BaseURL string            `json:"base_url"`
	Results []StatementResult `json:"results"`
}
