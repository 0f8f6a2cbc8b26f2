package flowengine

import (
	"image/color"

	"github.com/romeli7/phosflow/pkg/tradedata"
)

var (
	ColorMine      = color.RGBA{196, 106, 43, 255}  // ochre
	ColorHub       = color.RGBA{46, 139, 130, 255}  // teal
	ColorLogistics = color.RGBA{120, 120, 140, 255} // slate
	ColorPartner   = color.RGBA{90, 120, 180, 255}  // steel blue
	ColorExport    = color.RGBA{217, 119, 6, 255}   // amber
	ColorImport    = color.RGBA{147, 51, 234, 255}  // violet
	ColorDomestic  = color.RGBA{46, 64, 87, 255}    // deep slate
)

// FlowKind tags a polyline with its semantic category so styling passes never
// have to recover meaning from tooltip text.
type FlowKind int

const (
	FlowDomestic FlowKind = iota
	FlowExport
	FlowImport
)

// LineStyle carries the visual parameters for a polyline.
type LineStyle struct {
	Color   color.RGBA
	Weight  float64
	Opacity float64
	Dash    []float64 // nil for solid
}

// Marker is a circular site or partner dot.
type Marker struct {
	At      LatLng
	Color   color.RGBA
	Opacity float64
	Radius  float64
	Tooltip string

	// Site metadata, zero-valued for partner markers.
	SiteKind  tradedata.SiteKind
	SiteStage tradedata.Stage
}

// FlowLine is one drawable polyline, either a cross-border arc or a domestic
// infrastructure link.
type FlowLine struct {
	Points  []LatLng
	Style   LineStyle
	Kind    FlowKind
	Tooltip string
}

// ArrowGlyph is the rotated arrowhead placed at the end of a flow arc.
type ArrowGlyph struct {
	At          LatLng
	RotationDeg float64
	Color       color.RGBA
	Opacity     float64
}

// Frame is one complete render pass output: every drawable the map needs,
// grouped by layer. A frame is rebuilt from scratch on every render, so
// re-rendering can never accumulate stale drawables.
type Frame struct {
	Sites    []Marker
	Partners []Marker
	Flows    []FlowLine
	Arrows   []ArrowGlyph
	Domestic []FlowLine
	YearHint string
	Caption  string
}
