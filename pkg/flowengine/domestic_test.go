package flowengine

import (
	"testing"

	"github.com/romeli7/phosflow/pkg/tradedata"
)

func TestDomesticSuppressedByToggle(t *testing.T) {
	state := DefaultViewState()
	state.ShowDomestic = false
	for _, category := range []string{
		tradedata.CategoryPhosphateRock,
		tradedata.CategoryPhosphoricAcid,
		tradedata.CategoryFertilizersBulk,
	} {
		state.CategoryKey = category
		for _, zoom := range []float64{2, 4, 8} {
			if lines := domesticLines(state, zoom); len(lines) != 0 {
				t.Errorf("category %s zoom %f: %d lines with showDomestic=false", category, zoom, len(lines))
			}
		}
	}
}

func TestDomesticSuppressedAtWorldZoom(t *testing.T) {
	state := DefaultViewState()
	if lines := domesticLines(state, MinDomesticZoom-1); len(lines) != 0 {
		t.Errorf("domestic layer visible below minimum zoom")
	}
	if lines := domesticLines(state, MinDomesticZoom); len(lines) == 0 {
		t.Errorf("domestic layer missing at minimum zoom")
	}
}

func TestDomesticHighlightRules(t *testing.T) {
	tests := []struct {
		category string
		// highlighted link labels, by From->To
		want map[string]bool
	}{
		{
			category: tradedata.CategoryPhosphateRock,
			// Every fixed link touches a mine.
			want: map[string]bool{
				"Benguerir->Safi":        true,
				"Youssoufia->Safi":       true,
				"Khouribga->Jorf Lasfar": true,
				"Bou Craa->Laâyoune":     true,
			},
		},
		{
			category: tradedata.CategoryPhosphoricAcid,
			want: map[string]bool{
				"Khouribga->Jorf Lasfar": true,
			},
		},
		{
			category: tradedata.CategoryFertilizersBulk,
			want: map[string]bool{
				"Benguerir->Safi":        true,
				"Youssoufia->Safi":       true,
				"Khouribga->Jorf Lasfar": true,
			},
		},
		{
			category: tradedata.CategorySpecialty,
			want:     map[string]bool{},
		},
	}

	for _, tt := range tests {
		for _, link := range tradedata.DomesticLinks {
			from, _ := tradedata.SiteByName(link.From)
			to, _ := tradedata.SiteByName(link.To)
			key := link.From + "->" + link.To
			got := linkHighlighted(tt.category, link, from, to)
			if got != tt.want[key] {
				t.Errorf("category %s link %s: highlighted=%v; want %v", tt.category, key, got, tt.want[key])
			}
		}
	}
}

func TestDomesticHighlightStyling(t *testing.T) {
	state := DefaultViewState()
	state.CategoryKey = tradedata.CategoryPhosphoricAcid
	lines := domesticLines(state, 6)
	if len(lines) != len(tradedata.DomesticLinks) {
		t.Fatalf("got %d lines; want %d", len(lines), len(tradedata.DomesticLinks))
	}
	for _, l := range lines {
		base := LineStyle{}
		for _, link := range tradedata.DomesticLinks {
			if link.Label == l.Tooltip {
				base = linkBaseStyles[link.Kind]
				break
			}
		}
		if l.Tooltip == "Slurry pipeline: Khouribga → Jorf Lasfar" {
			if l.Style.Weight != base.Weight+1 {
				t.Errorf("highlighted weight = %f; want %f", l.Style.Weight, base.Weight+1)
			}
			want := base.Opacity + 0.2
			if want > 1 {
				want = 1
			}
			if l.Style.Opacity != want {
				t.Errorf("highlighted opacity = %f; want %f", l.Style.Opacity, want)
			}
		} else {
			if l.Style.Weight != base.Weight || l.Style.Opacity != base.Opacity {
				t.Errorf("unhighlighted link %q restyled: %+v vs %+v", l.Tooltip, l.Style, base)
			}
		}
		if l.Kind != FlowDomestic {
			t.Errorf("domestic line tagged %v", l.Kind)
		}
	}
}
