package domain

// Melt unpivots a wide table into long form. Each row yields one record per
// category, in row-major order. Duplicate states are not collapsed, and a
// category missing from a row's values melts to 0.
func Melt(wide WideTable, categories []string) LongTable {
	out := make(LongTable, 0, len(wide.Rows)*len(categories))
	for _, row := range wide.Rows {
		for _, c := range categories {
			out = append(out, EmissionRecord{
				State:    row.State,
				Category: c,
				Value:    row.Values[c],
			})
		}
	}
	return out
}

// Select returns the records whose category matches exactly, preserving order.
// An absent category yields an empty, non-nil table.
func Select(long LongTable, category string) LongTable {
	out := make(LongTable, 0, len(long))
	for _, r := range long {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// TotalEmissions sums the given columns of a wide row.
func TotalEmissions(row WideRow, columns []string) float64 {
	var total float64
	for _, c := range columns {
		total += row.Values[c]
	}
	return total
}
