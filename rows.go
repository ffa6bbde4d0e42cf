package ygggo_dbclient

import "database/sql"

// scanRows reads every remaining row into column-name-to-value mappings.
// []byte column values become strings; MySQL returns most text and numeric
// columns as []byte unless the DSN asks otherwise.
func scanRows(rs *sql.Rows) ([]Row, error) {
	cols, err := rs.Columns()
	if err != nil {
		return nil, err
	}
	var out []Row
	buf := make([]any, len(cols))
	scan := make([]any, len(cols))
	for i := range buf {
		scan[i] = &buf[i]
	}
	for rs.Next() {
		if err := rs.Scan(scan...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			v := buf[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		out = append(out, row)
	}
	return out, rs.Err()
}
