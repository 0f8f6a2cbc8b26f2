package flowengine

import (
	"github.com/romeli7/phosflow/pkg/tradedata"
)

// Metric selects the figure shown in partner tooltips.
type Metric string

const (
	MetricShare  Metric = "share"
	MetricUSD    Metric = "usd"
	MetricTonnes Metric = "tonnes"
)

// ProductMode selects the analysis overlay.
type ProductMode string

const (
	// ModeTrade is the plain trade view.
	ModeTrade ProductMode = "trade"
	// ModeTransformation engages the transformation-ceiling highlight pass.
	ModeTransformation ProductMode = "transformation"
)

// ViewState is the single mutable record every render pass reads. It is
// mutated only by UI event handlers; the render core takes it by value and
// never writes it back.
type ViewState struct {
	Tab          tradedata.Direction
	CategoryKey  string
	Metric       Metric
	ShowSites    bool
	ShowFlows    bool
	ShowDomestic bool
	ProductMode  ProductMode
	StoryStep    int
}

// DefaultViewState opens on bulk fertilizer exports with every layer visible.
func DefaultViewState() ViewState {
	return ViewState{
		Tab:          tradedata.Exports,
		CategoryKey:  tradedata.CategoryFertilizersBulk,
		Metric:       MetricShare,
		ShowSites:    true,
		ShowFlows:    true,
		ShowDomestic: true,
		ProductMode:  ModeTrade,
	}
}

// storyPreset is one step of the guided narrative.
type storyPreset struct {
	Caption     string
	Tab         tradedata.Direction
	CategoryKey string
	Metric      Metric
	ProductMode ProductMode
}

var storyPresets = []storyPreset{
	{Caption: "Phosphate rock leaves the mining basins raw", Tab: tradedata.Exports, CategoryKey: tradedata.CategoryPhosphateRock, Metric: MetricTonnes, ProductMode: ModeTrade},
	{Caption: "Phosphoric acid: first stage of domestic processing", Tab: tradedata.Exports, CategoryKey: tradedata.CategoryPhosphoricAcid, Metric: MetricUSD, ProductMode: ModeTrade},
	{Caption: "Bulk fertilizers dominate export value", Tab: tradedata.Exports, CategoryKey: tradedata.CategoryFertilizersBulk, Metric: MetricShare, ProductMode: ModeTrade},
	{Caption: "Specialty phosphates come back as imports", Tab: tradedata.Imports, CategoryKey: tradedata.CategorySpecialty, Metric: MetricUSD, ProductMode: ModeTransformation},
}

// StorySteps is the number of guided steps; step 0 is free exploration.
func StorySteps() int { return len(storyPresets) + 1 }

// AdvanceStory moves to the next story step, wrapping back to free
// exploration, and applies that step's preset to the state.
func AdvanceStory(s *ViewState) {
	s.StoryStep = (s.StoryStep + 1) % StorySteps()
	ApplyStoryStep(s)
}

// ApplyStoryStep applies the preset for the current story step. Step 0
// switches back to the trade overlay but otherwise leaves the state alone.
func ApplyStoryStep(s *ViewState) {
	if s.StoryStep <= 0 || s.StoryStep > len(storyPresets) {
		s.StoryStep = 0
		s.ProductMode = ModeTrade
		return
	}
	p := storyPresets[s.StoryStep-1]
	s.Tab = p.Tab
	s.CategoryKey = p.CategoryKey
	s.Metric = p.Metric
	s.ProductMode = p.ProductMode
}

// StoryCaption returns the caption for the current step, empty for step 0.
func StoryCaption(step int) string {
	if step <= 0 || step > len(storyPresets) {
		return ""
	}
	return storyPresets[step-1].Caption
}

// NextMetric cycles share -> usd -> tonnes -> share.
func NextMetric(m Metric) Metric {
	switch m {
	case MetricShare:
		return MetricUSD
	case MetricUSD:
		return MetricTonnes
	default:
		return MetricShare
	}
}
