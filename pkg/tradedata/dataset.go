// Package tradedata holds the phosphate trade dataset model and the
// aggregation that turns raw partner records into ranked, share-weighted rows.
package tradedata

import "sort"

// Direction is the trade direction of a category dataset.
type Direction string

const (
	Exports Direction = "exports"
	Imports Direction = "imports"
)

// Category keys as they appear in trade_flows.json.
const (
	CategoryFertilizersBulk = "fertilizers_bulk"
	CategoryPhosphoricAcid  = "phosphoric_acid"
	CategoryPhosphateRock   = "phosphate_rock"
	CategorySpecialty       = "specialty"
)

// BlocAggregateSentinel is the synthetic partner row representing the EU
// total. It double-counts member countries and must never reach output rows.
const BlocAggregateSentinel = "European Union"

// PartnerRecord is one trading partner's figures for one category and year.
// QtyKg is nil when the source reporting does not separate quantities for the
// category; that is distinct from a true zero.
type PartnerRecord struct {
	Country   string
	ValueUSD  float64
	ValueKUSD float64
	QtyKg     *float64
}

// CategoryDataset is the partner list for one (direction, category) pair.
// ValuesInThousands marks legacy sources that report value in thousands of
// USD; ComputeDerived scales those by 1000. The flag is set per source format
// by the loader, never inferred from the records themselves.
type CategoryDataset struct {
	Label             string
	Year              int
	Partners          []PartnerRecord
	ValuesInThousands bool
}

// TradeData is the full in-memory dataset, keyed by direction then category.
type TradeData struct {
	Exports map[string]CategoryDataset
	Imports map[string]CategoryDataset
}

// Tab returns the category map for a direction. Unknown directions yield the
// export tab so a stale state value cannot crash a render pass.
func (td *TradeData) Tab(dir Direction) map[string]CategoryDataset {
	if dir == Imports {
		return td.Imports
	}
	return td.Exports
}

// CategoryKeys returns the category keys for a direction in display order:
// alphabetical, except that bulk fertilizers always sort first on the export
// tab when present.
func (td *TradeData) CategoryKeys(dir Direction) []string {
	tab := td.Tab(dir)
	keys := make([]string, 0, len(tab))
	for k := range tab {
		if dir == Exports && k == CategoryFertilizersBulk {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if dir == Exports {
		if _, ok := tab[CategoryFertilizersBulk]; ok {
			keys = append([]string{CategoryFertilizersBulk}, keys...)
		}
	}
	return keys
}
