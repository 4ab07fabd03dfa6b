// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"encoding/base64"
	"strconv"
	"time"
)

// FetchMode selects the row shape Materialize produces.
type FetchMode int

const (
	// FetchBoth keys each row by column name and by decimal column index.
	// It is the default fetch shape.
	FetchBoth FetchMode = iota
	// FetchAssoc keys each row by column name only.
	FetchAssoc
	// FetchNum produces plain ordered value slices.
	FetchNum
)

// QueryStats carries the server-reported execution statistics of one
// statement.
type QueryStats struct {
	RowsRead        int64
	RowsWritten     int64
	QueryDurationMS float64
}

// ResultDecoder materializes one statement result into native Go values.
// The full response body is already buffered by the time a decoder exists,
// so all of its methods are pure projections.
type ResultDecoder struct {
	result *StatementResult
	loc    *time.Location
}

// NewResultDecoder returns a decoder over one statement result. Datetime
// values are converted from UTC into loc; a nil loc means UTC.
func NewResultDecoder(result *StatementResult, loc *time.Location) *ResultDecoder {
	if loc == nil {
		loc = time.UTC
	}
	return &ResultDecoder{result: result, loc: loc}
}

// ColumnCount returns the number of columns of the result.
func (rd *ResultDecoder) ColumnCount() int {
	return len(rd.result.Cols)
}

// ColumnName returns the name of the column at idx.
func (rd *ResultDecoder) ColumnName(idx int) (string, error) {
	if idx < 0 || idx >= len(rd.result.Cols) {
		return "", rd.columnIndexError(idx)
	}
	return rd.result.Cols[idx].Name, nil
}

// ColumnDecltype returns the declared type of the column at idx, empty when
// the server reported none.
func (rd *ResultDecoder) ColumnDecltype(idx int) (string, error) {
	if idx < 0 || idx >= len(rd.result.Cols) {
		return "", rd.columnIndexError(idx)
	}
	if rd.result.Cols[idx].Decltype == nil {
		return "", nil
	}
	return *rd.result.Cols[idx].Decltype, nil
}

func (rd *ResultDecoder) columnIndexError(idx int) error {
	return &TursoError{
		Number:      ErrCodeColumnIndexOutOfRange,
		Message:     errMsgColumnIndexOutOfRange,
		MessageArgs: []interface{}{idx, len(rd.result.Cols)},
	}
}

// Stats returns the server-reported execution statistics.
func (rd *ResultDecoder) Stats() QueryStats {
	return QueryStats{
		RowsRead:        rd.result.RowsRead,
		RowsWritten:     rd.result.RowsWritten,
		QueryDurationMS: rd.result.QueryDurationMS,
	}
}

// MaterializeAssoc produces every row keyed by column name.
func (rd *ResultDecoder) MaterializeAssoc() []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(rd.result.Rows))
	for i := range rd.result.Rows {
		rows = append(rows, rd.decodeRowMap(i, FetchAssoc))
	}
	return rows
}

// MaterializeNum produces every row as a plain ordered value slice.
func (rd *ResultDecoder) MaterializeNum() [][]interface{} {
	rows := make([][]interface{}, 0, len(rd.result.Rows))
	for i := range rd.result.Rows {
		rows = append(rows, rd.decodeRowNum(i))
	}
	return rows
}

// MaterializeBoth produces every row keyed by column name and, alongside,
// by decimal column index.
func (rd *ResultDecoder) MaterializeBoth() []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(rd.result.Rows))
	for i := range rd.result.Rows {
		rows = append(rows, rd.decodeRowMap(i, FetchBoth))
	}
	return rows
}

// Materialize produces all rows in the shape selected by mode. The result
// is []map[string]interface{} for FetchAssoc and FetchBoth and
// [][]interface{} for FetchNum.
func (rd *ResultDecoder) Materialize(mode FetchMode) interface{} {
	switch mode {
	case FetchAssoc:
		return rd.MaterializeAssoc()
	case FetchNum:
		return rd.MaterializeNum()
	default:
		return rd.MaterializeBoth()
	}
}

func (rd *ResultDecoder) decodeRowNum(idx int) []interface{} {
	raw := rd.result.Rows[idx]
	row := make([]interface{}, len(raw))
	for i, cell := range raw {
		row[i] = rd.cast(cell.Type, cell.Value)
	}
	return row
}

func (rd *ResultDecoder) decodeRowMap(idx int, mode FetchMode) map[string]interface{} {
	raw := rd.result.Rows[idx]
	row := make(map[string]interface{}, len(raw)*2)
	for i, cell := range raw {
		value := rd.cast(cell.Type, cell.Value)
		if i < len(rd.result.Cols) {
			row[rd.result.Cols[i].Name] = value
		}
		if mode == FetchBoth {
			row[strconv.Itoa(i)] = value
		}
	}
	return row
}

// cast converts one raw cell into its native value, honoring the server's
// type tag. Two deviations from a straight mapping:
//
//   - blob values arrive base64-encoded and are encoded once more before
//     being returned, so callers must decode twice. Existing callers depend
//     on the double pass.
//   - a textual value that is exactly a canonical datetime is treated as a
//     datetime regardless of the declared type and converted from UTC into
//     the decoder's location.
//
// An unrecognized type tag yields nil rather than an error.
func (rd *ResultDecoder) cast(valueType string, raw interface{}) interface{} {
	if valueType == valueTypeBlob {
		s, _ := raw.(string)
		return base64.StdEncoding.EncodeToString([]byte(s))
	}
	if s, ok := raw.(string); ok && isDatetime(s) {
		valueType = valueTypeDatetime
	}
	switch valueType {
	case valueTypeNull:
		return nil
	case valueTypeBoolean, valueTypeInteger:
		return toInt64(raw)
	case valueTypeDouble, valueTypeFloat:
		return toFloat64(raw)
	case valueTypeString, valueTypeText:
		s, _ := raw.(string)
		return s
	case valueTypeDatetime:
		s, _ := raw.(string)
		return localizeDatetime(s, rd.loc)
	}
	return nil
}

// toInt64 is deliberately lenient: a cell tagged integer whose value does
// not parse becomes 0, matching the silent-default policy of the cast
// matrix.
func toInt64(raw interface{}) int64 {
	switch v := raw.(type) {
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int64(f)
		}
		return 0
	case float64:
		return int64(v)
	case int64:
		return v
	case bool:
		if v {
			return 1
		}
		return 0
	}
	return 0
}

func toFloat64(raw interface{}) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return 0
	case int64:
		return float64(v)
	}
	return 0
}

// RowCursor yields already-decoded rows in the FetchBoth shape one at a
// time. The underlying result is fully buffered, so the cursor defers row
// construction only; it is not restartable once consumed.
type RowCursor struct {
	rd  *ResultDecoder
	idx int
}

// Cursor returns a fresh cursor over the decoder's rows.
func (rd *ResultDecoder) Cursor() *RowCursor {
	return &RowCursor{rd: rd}
}

// Next returns the next decoded row, or false when the cursor is exhausted.
func (rc *RowCursor) Next() (map[string]interface{}, bool) {
	if rc.idx >= len(rc.rd.result.Rows) {
		return nil, false
	}
	row := rc.rd.decodeRowMap(rc.idx, FetchBoth)
	rc.idx++
	return row, true
}
