package flowengine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/romeli7/phosflow/pkg/tradedata"
)

const (
	flowWeight       = 3
	flowOpacity      = 0.75
	markerRadius     = 6
	partnerTipFormat = "%s — %s (%d)"
)

var importDash = []float64{8, 8}

// Render builds a complete frame from the view state and dataset. It is a
// pure function: no ambient reads, no retained output, so calling it twice
// with the same inputs yields identical frames.
func Render(state ViewState, data *tradedata.TradeData, geo *GeoService, zoom float64) Frame {
	var frame Frame

	if state.ShowSites {
		frame.Sites = siteMarkers()
	}

	if state.ShowFlows {
		if ds, ok := data.Tab(state.Tab)[state.CategoryKey]; ok {
			renderFlows(&frame, state, ds, geo)
			frame.YearHint = fmt.Sprintf("Data year: %d • %s", ds.Year, ds.Label)
		}
	}

	frame.Domestic = domesticLines(state, zoom)
	frame.Caption = StoryCaption(state.StoryStep)

	if state.ProductMode == ModeTransformation {
		applyCeiling(&frame)
	}
	return frame
}

func siteMarkers() []Marker {
	markers := make([]Marker, 0, len(tradedata.MoroccoSites))
	for _, s := range tradedata.MoroccoSites {
		c := ColorLogistics
		switch s.Kind {
		case tradedata.SiteMine:
			c = ColorMine
		case tradedata.SiteChemicalHub:
			c = ColorHub
		}
		markers = append(markers, Marker{
			At:        LatLng{s.Lat, s.Lng},
			Color:     c,
			Opacity:   0.95,
			Radius:    markerRadius,
			Tooltip:   fmt.Sprintf("%s — %s", s.Name, s.Note),
			SiteKind:  s.Kind,
			SiteStage: s.Stage,
		})
	}
	return markers
}

func flowHubs() []LatLng {
	hubs := make([]LatLng, 0, len(tradedata.FlowHubNames))
	for _, name := range tradedata.FlowHubNames {
		if s, ok := tradedata.SiteByName(name); ok {
			hubs = append(hubs, LatLng{s.Lat, s.Lng})
		}
	}
	return hubs
}

func renderFlows(frame *Frame, state ViewState, ds tradedata.CategoryDataset, geo *GeoService) {
	derived := tradedata.ComputeDerived(ds)
	hubs := flowHubs()
	if len(hubs) == 0 {
		return
	}
	exporting := state.Tab == tradedata.Exports

	for _, row := range derived.Rows {
		partner, ok := geo.PartnerLatLng(row.Country)
		if !ok {
			continue // "Others" buckets and unresolvable names
		}

		label := "Imports from"
		if exporting {
			label = "Exports to"
		}
		frame.Partners = append(frame.Partners, Marker{
			At:      partner,
			Color:   ColorPartner,
			Opacity: 0.95,
			Radius:  markerRadius,
			Tooltip: fmt.Sprintf(partnerTipFormat, row.Country, label+" — "+metricText(state.Metric, row), ds.Year),
		})

		hub := NearestHub(partner, hubs)
		origin, dest := hub, partner
		kind := FlowExport
		lineColor := ColorExport
		var dash []float64
		if !exporting {
			origin, dest = partner, hub
			kind = FlowImport
			lineColor = ColorImport
			dash = importDash
		}

		pts := BezierArcPoints(origin, dest, DefaultBend, DefaultArcSteps)
		frame.Flows = append(frame.Flows, FlowLine{
			Points:  pts,
			Style:   LineStyle{Color: lineColor, Weight: flowWeight, Opacity: flowOpacity, Dash: dash},
			Kind:    kind,
			Tooltip: fmt.Sprintf("%s: %s", label, row.Country),
		})
		frame.Arrows = append(frame.Arrows, ArrowGlyph{
			At:          pts[len(pts)-1],
			RotationDeg: ArrowRotationDegrees(EndTangentAngle(pts)),
			Color:       lineColor,
			Opacity:     0.9,
		})
	}
}

// metricText renders the tooltip figure for the selected metric. Rows without
// quantity data get an explicit unavailable message on the tonnes metric; a
// fabricated "0 tonnes" would misrepresent the source reporting.
func metricText(m Metric, row tradedata.DerivedRow) string {
	switch m {
	case MetricUSD:
		return "$" + formatGrouped(row.ValueUSD)
	case MetricTonnes:
		if !row.QtyKnown {
			return "not available in source data"
		}
		return formatGrouped(row.Tonnes) + " tonnes"
	default:
		return formatPct(row.SharePct) + " of this category"
	}
}

func formatPct(v float64) string {
	if v < 0.01 {
		return "<0.01%"
	}
	return fmt.Sprintf("%.2f%%", v)
}

// formatGrouped formats a value with thousands separators and no decimals.
func formatGrouped(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
