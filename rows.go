// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"database/sql/driver"
	"io"
	"strings"
)

// tursoRows is a driver.Rows over one fully-buffered statement result. The
// protocol returns whole result sets in the response body, so Next only
// walks the pre-decoded rows.
type tursoRows struct {
	decoder *ResultDecoder
	rows    [][]interface{}
	idx     int
}

func (rows *tursoRows) Columns() []string {
	logger.Debug("Rows.Columns")
	n := rows.decoder.ColumnCount()
	ret := make([]string, n)
	for i := 0; i < n; i++ {
		name, err := rows.decoder.ColumnName(i)
		if err != nil {
			break
		}
		ret[i] = name
	}
	return ret
}

// ColumnTypeDatabaseTypeName returns the column's declared storage type.
func (rows *tursoRows) ColumnTypeDatabaseTypeName(index int) string {
	decltype, err := rows.decoder.ColumnDecltype(index)
	if err != nil {
		return ""
	}
	return strings.ToUpper(decltype)
}

func (rows *tursoRows) Next(dest []driver.Value) error {
	if rows.idx >= len(rows.rows) {
		return io.EOF
	}
	row := rows.rows[rows.idx]
	rows.idx++
	for i := 0; i < len(dest) && i < len(row); i++ {
		dest[i] = row[i]
	}
	return nil
}

func (rows *tursoRows) Close() error {
	logger.Debug("Rows.Close")
	rows.rows = nil
	return nil
}
