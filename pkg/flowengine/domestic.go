package flowengine

import (
	"github.com/romeli7/phosflow/pkg/tradedata"
)

// MinDomesticZoom is the zoom level below which the domestic layer is
// suppressed; at world scale the short intra-country links are only clutter.
const MinDomesticZoom = 4

// linkBaseStyles are the per-kind base styles for domestic links.
var linkBaseStyles = map[tradedata.LinkKind]LineStyle{
	tradedata.LinkRailOrHaul:     {Color: ColorDomestic, Weight: 2, Opacity: 0.45, Dash: []float64{3, 7}},
	tradedata.LinkSlurryPipeline: {Color: ColorDomestic, Weight: 3, Opacity: 0.55},
	tradedata.LinkConveyor:       {Color: ColorDomestic, Weight: 2, Opacity: 0.50, Dash: []float64{8, 6}},
}

// domesticLines styles the fixed intra-country links for the current
// category. Links with stale endpoint names are skipped; that is a data
// defect, not a runtime fault.
func domesticLines(state ViewState, zoom float64) []FlowLine {
	if !state.ShowDomestic || zoom < MinDomesticZoom {
		return nil
	}

	var lines []FlowLine
	for _, link := range tradedata.DomesticLinks {
		from, okFrom := tradedata.SiteByName(link.From)
		to, okTo := tradedata.SiteByName(link.To)
		if !okFrom || !okTo {
			continue
		}

		style := linkBaseStyles[link.Kind]
		if linkHighlighted(state.CategoryKey, link, from, to) {
			style.Weight++
			style.Opacity += 0.2
			if style.Opacity > 1 {
				style.Opacity = 1
			}
		}

		lines = append(lines, FlowLine{
			Points:  []LatLng{{from.Lat, from.Lng}, {to.Lat, to.Lng}},
			Style:   style,
			Kind:    FlowDomestic,
			Tooltip: link.Label,
		})
	}
	return lines
}

// linkHighlighted applies the per-category highlight rules. The specialty
// import category highlights nothing: that value chain continues abroad.
func linkHighlighted(category string, link tradedata.DomesticLink, from, to tradedata.Site) bool {
	switch category {
	case tradedata.CategoryPhosphateRock:
		return from.Kind == tradedata.SiteMine || to.Kind == tradedata.SiteMine
	case tradedata.CategoryPhosphoricAcid:
		return link.From == "Khouribga" && link.To == "Jorf Lasfar"
	case tradedata.CategoryFertilizersBulk:
		return link.To == "Jorf Lasfar" || link.To == "Safi"
	}
	return false
}
