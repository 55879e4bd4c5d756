package leaderboard

import "fmt"

// Schema declares the columns a table kind must carry and the kind each one
// is coerced to. Columns not listed are kept with an inferred kind.
type Schema struct {
	Name    string
	Columns map[string]Kind
}

// Table is an upstream result set whose cells have been coerced to typed Values.
// Rows are aligned with Columns.
type Table struct {
	Name    string
	Columns []string
	Kinds   []Kind
	Rows    [][]Value

	index map[string]int
}

// NewTable validates headers against schema and coerces every cell.
// A nil schema accepts any headers and infers every column's kind.
func NewTable(name string, headers []string, rows [][]interface{}, schema *Schema) (*Table, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}

	if schema != nil {
		for col := range schema.Columns {
			if _, ok := index[col]; !ok {
				return nil, fmt.Errorf("%s: %w: %s", name, ErrMissingColumn, col)
			}
		}
	}

	for r, row := range rows {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("%s row %d: %w (%d cells, %d headers)", name, r, ErrRowShape, len(row), len(headers))
		}
	}

	kinds := make([]Kind, len(headers))
	column := make([]interface{}, len(rows))
	for c, h := range headers {
		if schema != nil {
			if k, ok := schema.Columns[h]; ok {
				kinds[c] = k
				continue
			}
		}
		for r, row := range rows {
			column[r] = row[c]
		}
		kinds[c] = Infer(column)
	}

	typed := make([][]Value, len(rows))
	for r, row := range rows {
		cells := make([]Value, len(row))
		for c, raw := range row {
			v, err := Coerce(raw, kinds[c])
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %s: %w", name, r, headers[c], err)
			}
			cells[c] = v
		}
		typed[r] = cells
	}

	cols := make([]string, len(headers))
	copy(cols, headers)

	return &Table{
		Name:    name,
		Columns: cols,
		Kinds:   kinds,
		Rows:    typed,
		index:   index,
	}, nil
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of a column
func (t *Table) Index(column string) (int, bool) {
	if t == nil {
		return 0, false
	}
	if t.index == nil {
		// literal tables; never mutate so concurrent readers stay safe
		for i, c := range t.Columns {
			if c == column {
				return i, true
			}
		}
		return 0, false
	}
	i, ok := t.index[column]
	return i, ok
}

// mustIndex is Index with the schema error attached
func (t *Table) mustIndex(column string) (int, error) {
	i, ok := t.Index(column)
	if !ok {
		return 0, fmt.Errorf("%s: %w: %s", t.Name, ErrMissingColumn, column)
	}
	return i, nil
}

// Get returns the cell at row r for the named column
func (t *Table) Get(r int, column string) (Value, error) {
	c, err := t.mustIndex(column)
	if err != nil {
		return Value{}, err
	}
	return t.Rows[r][c], nil
}

// FindRow returns the first row whose column equals want, compared numerically
func (t *Table) FindRow(column string, want int64) (int, bool, error) {
	c, err := t.mustIndex(column)
	if err != nil {
		return 0, false, err
	}
	for r, row := range t.Rows {
		n, ok, err := row[c].Number()
		if err != nil {
			return 0, false, fmt.Errorf("%s row %d column %s: %w", t.Name, r, column, err)
		}
		if ok && n == float64(want) {
			return r, true, nil
		}
	}
	return 0, false, nil
}

// Record returns row r as a column -> value map
func (t *Table) Record(r int) map[string]interface{} {
	rec := make(map[string]interface{}, len(t.Columns))
	for c, col := range t.Columns {
		rec[col] = t.Rows[r][c].Interface()
	}
	return rec
}

// Records returns every row as a column -> value map
func (t *Table) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, t.Len())
	for r := 0; r < t.Len(); r++ {
		out = append(out, t.Record(r))
	}
	return out
}
