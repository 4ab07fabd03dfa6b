// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

type tursoResult struct {
	affectedRows int64
	insertID     int64
}

func (res *tursoResult) LastInsertId() (int64, error) {
	return res.insertID, nil
}

func (res *tursoResult) RowsAffected() (int64, error) {
	return res.affectedRows, nil
}
