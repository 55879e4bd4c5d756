package leaderboard

import (
	"fmt"
	"sort"
)

// Qualifier excludes small-sample rows, e.g. FGA >= 5
type Qualifier struct {
	Column  string
	Minimum float64
}

// Query parameterizes one leaderboard extraction.
// AffiliationColumn is optional; the others are required.
type Query struct {
	StatColumn        string
	IDColumn          string
	NameColumn        string
	AffiliationColumn string
	Qualifier         *Qualifier
	Ascending         bool
	Limit             int
	Format            Format
}

// Entry is one ranked, formatted leaderboard row
type Entry struct {
	Name        string
	ID          int64
	Affiliation string
	Value       string
}

type candidate struct {
	row  []Value
	stat float64
	null bool
}

// Extract filters table rows by the query's qualifier, stable-sorts them by
// the statistic column and returns the first Limit rows as formatted entries.
// The table is never modified. An empty table yields an empty, non-nil slice.
func Extract(table *Table, q Query) ([]Entry, error) {
	if q.Limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, q.Limit)
	}
	if table == nil {
		return []Entry{}, nil
	}

	statIdx, err := table.mustIndex(q.StatColumn)
	if err != nil {
		return nil, err
	}
	idIdx, err := table.mustIndex(q.IDColumn)
	if err != nil {
		return nil, err
	}
	nameIdx, err := table.mustIndex(q.NameColumn)
	if err != nil {
		return nil, err
	}
	affIdx := -1
	if q.AffiliationColumn != "" {
		if affIdx, err = table.mustIndex(q.AffiliationColumn); err != nil {
			return nil, err
		}
	}
	qualIdx := -1
	if q.Qualifier != nil {
		if qualIdx, err = table.mustIndex(q.Qualifier.Column); err != nil {
			return nil, err
		}
	}

	candidates := make([]candidate, 0, len(table.Rows))
	for r, row := range table.Rows {
		if qualIdx >= 0 {
			attempts, ok, err := row[qualIdx].Number()
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %s: %w", table.Name, r, q.Qualifier.Column, err)
			}
			if !ok || attempts < q.Qualifier.Minimum {
				continue
			}
		}

		stat, ok, err := row[statIdx].Number()
		if err != nil {
			return nil, fmt.Errorf("%s row %d column %s: %w", table.Name, r, q.StatColumn, err)
		}
		candidates = append(candidates, candidate{row: row, stat: stat, null: !ok})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.null || b.null {
			// nulls last in either direction
			return !a.null && b.null
		}
		if q.Ascending {
			return a.stat < b.stat
		}
		return a.stat > b.stat
	})

	if len(candidates) > q.Limit {
		candidates = candidates[:q.Limit]
	}

	entries := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		id, _, err := c.row[idIdx].Number()
		if err != nil {
			return nil, fmt.Errorf("%s column %s: %w", table.Name, q.IDColumn, err)
		}

		entry := Entry{
			Name: c.row[nameIdx].Text(),
			ID:   int64(id),
		}
		if affIdx >= 0 {
			entry.Affiliation = c.row[affIdx].Text()
		}
		if !c.null {
			entry.Value = q.Format.Apply(c.stat)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
