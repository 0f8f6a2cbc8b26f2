package tradedata

import (
	"math"
	"testing"
)

func TestComputeDerivedSharesSumTo100(t *testing.T) {
	ds := CategoryDataset{
		Year: 2023,
		Partners: []PartnerRecord{
			{Country: "Brazil", ValueUSD: 1_000_000, QtyKg: fptr(500_000)},
			{Country: "India", ValueUSD: 3_000_000, QtyKg: fptr(1_500_000)},
			{Country: "Spain", ValueUSD: 250_000, QtyKg: fptr(90_000)},
		},
	}
	d := ComputeDerived(ds)
	sum := 0.0
	for _, r := range d.Rows {
		sum += r.SharePct
	}
	if math.Abs(sum-100) > 1e-6 {
		t.Errorf("share sum = %f; want 100", sum)
	}
}

func TestComputeDerivedRanking(t *testing.T) {
	ds := CategoryDataset{
		Year: 2023,
		Partners: []PartnerRecord{
			{Country: "Brazil", ValueUSD: 1_000_000, QtyKg: fptr(500_000)},
			{Country: "India", ValueUSD: 3_000_000, QtyKg: fptr(1_500_000)},
		},
	}
	d := ComputeDerived(ds)
	if d.TotalUSD != 4_000_000 {
		t.Fatalf("TotalUSD = %f; want 4000000", d.TotalUSD)
	}
	if len(d.Rows) != 2 || d.Rows[0].Country != "India" || d.Rows[1].Country != "Brazil" {
		t.Fatalf("unexpected row order: %+v", d.Rows)
	}
	if math.Abs(d.Rows[0].SharePct-75) > 1e-9 {
		t.Errorf("India share = %f; want 75", d.Rows[0].SharePct)
	}
	if math.Abs(d.Rows[1].SharePct-25) > 1e-9 {
		t.Errorf("Brazil share = %f; want 25", d.Rows[1].SharePct)
	}
	if math.Abs(d.TotalTonnes-2000) > 1e-9 {
		t.Errorf("TotalTonnes = %f; want 2000", d.TotalTonnes)
	}
}

func TestComputeDerivedStableTieOrder(t *testing.T) {
	ds := CategoryDataset{
		Partners: []PartnerRecord{
			{Country: "Latvia", ValueUSD: 100},
			{Country: "Peru", ValueUSD: 300},
			{Country: "Chile", ValueUSD: 100},
			{Country: "Angola", ValueUSD: 100},
		},
	}
	d := ComputeDerived(ds)
	want := []string{"Peru", "Latvia", "Chile", "Angola"}
	for i, r := range d.Rows {
		if r.Country != want[i] {
			t.Errorf("row %d = %s; want %s", i, r.Country, want[i])
		}
	}
}

func TestComputeDerivedExcludesBlocAggregate(t *testing.T) {
	ds := CategoryDataset{
		Partners: []PartnerRecord{
			{Country: "Spain", ValueUSD: 500, QtyKg: fptr(1000)},
			{Country: BlocAggregateSentinel, ValueUSD: 10_000, QtyKg: fptr(50_000)},
			{Country: "France", ValueUSD: 500, QtyKg: fptr(1000)},
		},
	}
	d := ComputeDerived(ds)
	if d.TotalUSD != 1000 {
		t.Errorf("TotalUSD = %f; want 1000 (bloc aggregate must not contribute)", d.TotalUSD)
	}
	if d.TotalTonnes != 2 {
		t.Errorf("TotalTonnes = %f; want 2", d.TotalTonnes)
	}
	for _, r := range d.Rows {
		if r.Country == BlocAggregateSentinel {
			t.Errorf("bloc aggregate appeared in output rows")
		}
	}
	for _, r := range d.Rows {
		if math.Abs(r.SharePct-50) > 1e-9 {
			t.Errorf("%s share = %f; want 50", r.Country, r.SharePct)
		}
	}
}

func TestComputeDerivedZeroTotal(t *testing.T) {
	d := ComputeDerived(CategoryDataset{
		Partners: []PartnerRecord{{Country: "Chile"}, {Country: "Peru"}},
	})
	for _, r := range d.Rows {
		if r.SharePct != 0 {
			t.Errorf("%s share = %f; want 0 with zero total", r.Country, r.SharePct)
		}
		if math.IsNaN(r.SharePct) {
			t.Errorf("share is NaN")
		}
	}
}

func TestComputeDerivedLegacyThousands(t *testing.T) {
	tests := []struct {
		name string
		ds   CategoryDataset
		want float64
	}{
		{
			name: "flagged source scales kUSD",
			ds: CategoryDataset{
				ValuesInThousands: true,
				Partners:          []PartnerRecord{{Country: "Turkey", ValueKUSD: 250}},
			},
			want: 250_000,
		},
		{
			name: "fallback when primary field absent",
			ds: CategoryDataset{
				Partners: []PartnerRecord{{Country: "Turkey", ValueKUSD: 250}},
			},
			want: 250_000,
		},
		{
			name: "primary field wins when present",
			ds: CategoryDataset{
				Partners: []PartnerRecord{{Country: "Turkey", ValueUSD: 300, ValueKUSD: 250}},
			},
			want: 300,
		},
	}
	for _, tt := range tests {
		d := ComputeDerived(tt.ds)
		if len(d.Rows) != 1 || d.Rows[0].ValueUSD != tt.want {
			t.Errorf("%s: ValueUSD = %f; want %f", tt.name, d.Rows[0].ValueUSD, tt.want)
		}
	}
}

func TestComputeDerivedMissingQuantity(t *testing.T) {
	d := ComputeDerived(CategoryDataset{
		Partners: []PartnerRecord{
			{Country: "China", ValueUSD: 100},
			{Country: "Spain", ValueUSD: 100, QtyKg: fptr(5000)},
		},
	})
	for _, r := range d.Rows {
		switch r.Country {
		case "China":
			if r.QtyKnown {
				t.Errorf("China quantity should be unknown")
			}
			if r.Tonnes != 0 {
				t.Errorf("unknown quantity must contribute 0 tonnes, got %f", r.Tonnes)
			}
		case "Spain":
			if !r.QtyKnown || r.Tonnes != 5 {
				t.Errorf("Spain tonnes = %f known=%v; want 5 true", r.Tonnes, r.QtyKnown)
			}
		}
	}
	if d.TotalTonnes != 5 {
		t.Errorf("TotalTonnes = %f; want 5", d.TotalTonnes)
	}
}
