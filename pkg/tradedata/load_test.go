package tradedata

import "testing"

func TestParseWireFormat(t *testing.T) {
	raw := []byte(`{
		"fertilizers_bulk": {"year": 2023, "rows": [
			{"partner": "Brazil", "value_usd": 1000000, "quantity_kg": 500000},
			{"partner": "China", "value_usd": 200000, "quantity_kg": null}
		]},
		"specialty_imports": {"year": 2022, "rows": [
			{"partner": "Germany", "value_usd": 21000000}
		]}
	}`)
	td, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ds, ok := td.Exports[CategoryFertilizersBulk]
	if !ok {
		t.Fatal("missing fertilizers_bulk export category")
	}
	if ds.Year != 2023 || len(ds.Partners) != 2 {
		t.Errorf("year=%d partners=%d; want 2023, 2", ds.Year, len(ds.Partners))
	}
	if ds.Partners[0].QtyKg == nil || *ds.Partners[0].QtyKg != 500000 {
		t.Errorf("Brazil quantity not carried through")
	}
	if ds.Partners[1].QtyKg != nil {
		t.Errorf("null quantity_kg must stay nil, got %v", *ds.Partners[1].QtyKg)
	}
	imp, ok := td.Imports[CategorySpecialty]
	if !ok || imp.Year != 2022 {
		t.Errorf("specialty import block missing or wrong year")
	}
}

func TestParseRejectsEmptyFile(t *testing.T) {
	if _, err := Parse([]byte(`{}`)); err == nil {
		t.Error("expected error for file with no category blocks")
	}
}

func TestCategoryKeysOrdering(t *testing.T) {
	td := DefaultDataset()
	keys := td.CategoryKeys(Exports)
	if len(keys) == 0 || keys[0] != CategoryFertilizersBulk {
		t.Errorf("export keys = %v; fertilizers_bulk must sort first", keys)
	}
	for i := 2; i < len(keys); i++ {
		if keys[i] < keys[i-1] {
			t.Errorf("remaining keys not sorted: %v", keys)
		}
	}
	impKeys := td.CategoryKeys(Imports)
	if len(impKeys) != 1 || impKeys[0] != CategorySpecialty {
		t.Errorf("import keys = %v; want [specialty]", impKeys)
	}
}

func TestSiteByName(t *testing.T) {
	if s, ok := SiteByName("Jorf Lasfar"); !ok || s.Kind != SiteChemicalHub {
		t.Errorf("Jorf Lasfar lookup failed: %+v %v", s, ok)
	}
	if _, ok := SiteByName("Atlantis"); ok {
		t.Error("unknown site should not resolve")
	}
}
