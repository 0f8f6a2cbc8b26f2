package tradedata

import "sort"

// DerivedRow is a partner record extended with computed fields. QtyKnown is
// false when the source did not report a quantity; Tonnes is 0 in that case
// and callers must not present it as a real zero.
type DerivedRow struct {
	Country  string
	ValueUSD float64
	Tonnes   float64
	QtyKnown bool
	SharePct float64
}

// Derived is the output of ComputeDerived for one category dataset.
type Derived struct {
	Rows        []DerivedRow
	TotalUSD    float64
	TotalTonnes float64
}

// ComputeDerived turns the raw partner list into ranked, percentage-annotated
// rows. The EU bloc aggregate is dropped before any arithmetic so it cannot
// double-count its members. Rows come back sorted by descending share, stable
// for ties. Absent fields degrade to zero or an unknown flag; the function
// never fails.
func ComputeDerived(ds CategoryDataset) Derived {
	rows := make([]DerivedRow, 0, len(ds.Partners))
	var totalUSD, totalTonnes float64
	for _, p := range ds.Partners {
		if p.Country == BlocAggregateSentinel {
			continue
		}
		value := p.ValueUSD
		if ds.ValuesInThousands {
			value = p.ValueKUSD * 1000
		} else if value == 0 && p.ValueKUSD != 0 {
			// Legacy records mix both fields within one file; keep the
			// thousands fallback until the source formats are untangled.
			value = p.ValueKUSD * 1000
		}
		row := DerivedRow{Country: p.Country, ValueUSD: value}
		if p.QtyKg != nil {
			row.Tonnes = *p.QtyKg / 1000
			row.QtyKnown = true
		}
		totalUSD += row.ValueUSD
		totalTonnes += row.Tonnes
		rows = append(rows, row)
	}

	if totalUSD > 0 {
		for i := range rows {
			rows[i].SharePct = rows[i].ValueUSD / totalUSD * 100
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SharePct > rows[j].SharePct })

	return Derived{Rows: rows, TotalUSD: totalUSD, TotalTonnes: totalTonnes}
}
