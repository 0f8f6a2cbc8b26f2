package flowengine

import (
	"github.com/romeli7/phosflow/pkg/tradedata"
)

// Transformation-ceiling dimming levels.
const (
	ceilingDimOpacity   = 0.15
	ceilingImportWeight = flowWeight + 2
)

// applyCeiling is the transformation-ceiling highlight pass. It dims every
// site and flow to a low baseline, then restores the pieces of the domestic
// value chain: extraction and bulk-fertilizer stage production sites,
// logistics nodes, domestic links, and the inbound specialty flows. Import
// flows are additionally emphasized: they carry value that leaks abroad and
// returns as imports.
//
// The pass runs over a freshly built frame on every render, so engaging it
// twice produces the same frame as once, and disengaging simply means the
// pass is not applied: base styles are re-derived, never cached.
func applyCeiling(frame *Frame) {
	for i := range frame.Sites {
		s := &frame.Sites[i]
		if ceilingKeepsSite(s.SiteKind, s.SiteStage) {
			continue
		}
		s.Opacity = ceilingDimOpacity
	}
	for i := range frame.Partners {
		frame.Partners[i].Opacity = ceilingDimOpacity
	}
	for i := range frame.Flows {
		f := &frame.Flows[i]
		switch f.Kind {
		case FlowImport:
			f.Style.Weight = ceilingImportWeight
		case FlowDomestic:
			// kept at full style
		default:
			f.Style.Opacity = ceilingDimOpacity
		}
	}
	for i := range frame.Arrows {
		// Arrows inherit their arc's fate: import arrows stay, export fade.
		if frame.Flows[i].Kind != FlowImport {
			frame.Arrows[i].Opacity = ceilingDimOpacity
		}
	}
}

// ceilingKeepsSite reports whether a site stays at full opacity under the
// ceiling overlay: extraction or bulk-fertilizer stage sites of the mine and
// chemical-hub kinds, plus every logistics node.
func ceilingKeepsSite(kind tradedata.SiteKind, stage tradedata.Stage) bool {
	if kind == tradedata.SiteLogistics {
		return true
	}
	if kind != tradedata.SiteMine && kind != tradedata.SiteChemicalHub {
		return false
	}
	return stage == tradedata.StageExtraction || stage == tradedata.StageBulkFertilizer
}
