package tradedata

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// wireCategory is one category block in trade_flows.json.
type wireCategory struct {
	Year int `json:"year"`
	Rows []struct {
		Partner    string   `json:"partner"`
		ValueUSD   float64  `json:"value_usd"`
		ValueKUSD  float64  `json:"value_kusd"`
		QuantityKg *float64 `json:"quantity_kg"`
	} `json:"rows"`
}

// wireFile maps the top-level source keys of trade_flows.json.
type wireFile struct {
	FertilizersBulk  *wireCategory `json:"fertilizers_bulk"`
	PhosphoricAcid   *wireCategory `json:"phosphoric_acid"`
	PhosphateRockRaw *wireCategory `json:"phosphate_rock_raw"`
	SpecialtyImports *wireCategory `json:"specialty_imports"`
}

// Load reads trade_flows.json from path, downloading it from url first when
// the file is missing and a url is given. Any failure falls back to the
// built-in default dataset so the viewer always has something to render.
func Load(path, url string) *TradeData {
	if _, err := os.Stat(path); os.IsNotExist(err) && url != "" {
		if err := Download(url, path); err != nil {
			log.Printf("Trade data download failed: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Trade data unavailable (%v), using built-in dataset", err)
		return DefaultDataset()
	}
	td, err := Parse(data)
	if err != nil {
		log.Printf("Trade data malformed (%v), using built-in dataset", err)
		return DefaultDataset()
	}
	return td
}

// Parse decodes the external trade_flows.json format into a TradeData.
// Source blocks missing from the file are simply absent from the result.
func Parse(raw []byte) (*TradeData, error) {
	var wf wireFile
	if err := json.Unmarshal(raw, &wf); err != nil {
		return nil, fmt.Errorf("decoding trade flows: %w", err)
	}
	td := &TradeData{
		Exports: make(map[string]CategoryDataset),
		Imports: make(map[string]CategoryDataset),
	}
	put := func(m map[string]CategoryDataset, key, label string, wc *wireCategory) {
		if wc == nil {
			return
		}
		ds := CategoryDataset{Label: label, Year: wc.Year}
		for _, r := range wc.Rows {
			ds.Partners = append(ds.Partners, PartnerRecord{
				Country:   r.Partner,
				ValueUSD:  r.ValueUSD,
				ValueKUSD: r.ValueKUSD,
				QtyKg:     r.QuantityKg,
			})
		}
		m[key] = ds
	}
	put(td.Exports, CategoryFertilizersBulk, "Fertilizers", wf.FertilizersBulk)
	put(td.Exports, CategoryPhosphoricAcid, "Phosphoric acid", wf.PhosphoricAcid)
	put(td.Exports, CategoryPhosphateRock, "Phosphate rock", wf.PhosphateRockRaw)
	put(td.Imports, CategorySpecialty, "Specialty phosphates", wf.SpecialtyImports)
	if len(td.Exports) == 0 && len(td.Imports) == 0 {
		return nil, fmt.Errorf("no recognized category blocks")
	}
	return td, nil
}

// Download fetches url to path atomically via a temp file in the same
// directory.
func Download(url, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Error closing response body: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()
	defer func() {
		if err := os.Remove(tmpName); err != nil && !os.IsNotExist(err) {
			log.Printf("Error removing temp file %s: %v", tmpName, err)
		}
	}()
	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func fptr(v float64) *float64 { return &v }

// DefaultDataset is a small snapshot of the 2023 figures, enough to keep the
// map meaningful when the external file cannot be loaded.
func DefaultDataset() *TradeData {
	return &TradeData{
		Exports: map[string]CategoryDataset{
			CategoryFertilizersBulk: {
				Label: "Fertilizers", Year: 2023,
				Partners: []PartnerRecord{
					{Country: "Brazil", ValueUSD: 1_430_000_000, QtyKg: fptr(2_950_000_000)},
					{Country: "India", ValueUSD: 1_180_000_000, QtyKg: fptr(2_410_000_000)},
					{Country: "United States", ValueUSD: 540_000_000, QtyKg: fptr(980_000_000)},
					{Country: "Ethiopia", ValueUSD: 310_000_000, QtyKg: fptr(640_000_000)},
					{Country: "Others", ValueUSD: 890_000_000, QtyKg: fptr(1_800_000_000)},
				},
			},
			CategoryPhosphoricAcid: {
				Label: "Phosphoric acid", Year: 2023,
				Partners: []PartnerRecord{
					{Country: "India", ValueUSD: 1_620_000_000, QtyKg: fptr(1_710_000_000)},
					{Country: "Brazil", ValueUSD: 240_000_000, QtyKg: fptr(260_000_000)},
					{Country: "Netherlands", ValueUSD: 180_000_000, QtyKg: fptr(190_000_000)},
				},
			},
			CategoryPhosphateRock: {
				Label: "Phosphate rock", Year: 2023,
				Partners: []PartnerRecord{
					{Country: "India", ValueUSD: 210_000_000, QtyKg: fptr(1_350_000_000)},
					{Country: "Lithuania", ValueUSD: 90_000_000, QtyKg: fptr(560_000_000)},
					{Country: "Mexico", ValueUSD: 70_000_000, QtyKg: fptr(430_000_000)},
				},
			},
		},
		Imports: map[string]CategoryDataset{
			CategorySpecialty: {
				Label: "Specialty phosphates", Year: 2023,
				Partners: []PartnerRecord{
					{Country: "China", ValueUSD: 46_000_000},
					{Country: "Germany", ValueUSD: 21_000_000},
					{Country: "Spain", ValueUSD: 14_000_000},
					{Country: "United States", ValueUSD: 9_000_000},
				},
			},
		},
	}
}
