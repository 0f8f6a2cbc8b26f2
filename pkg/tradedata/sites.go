package tradedata

// SiteKind classifies a fixed facility.
type SiteKind string

const (
	SiteMine        SiteKind = "mine"
	SiteChemicalHub SiteKind = "chemical_hub"
	SiteLogistics   SiteKind = "logistics"
)

// Stage is the value-chain stage a site operates at.
type Stage string

const (
	StageExtraction     Stage = "extraction"
	StageBulkFertilizer Stage = "bulk_fertilizer"
	StageLogistics      Stage = "logistics"
)

// Site is a fixed production or logistics facility inside Morocco. Static,
// created at load, never mutated.
type Site struct {
	Name     string
	Kind     SiteKind
	Lat, Lng float64
	Stage    Stage
	Note     string
}

// LinkKind classifies a domestic transport link.
type LinkKind string

const (
	LinkRailOrHaul     LinkKind = "rail_or_haul"
	LinkSlurryPipeline LinkKind = "slurry_pipeline"
	LinkConveyor       LinkKind = "conveyor"
)

// DomesticLink is an intra-country infrastructure link between two sites,
// referenced by site name.
type DomesticLink struct {
	From, To string
	Kind     LinkKind
	Label    string
}

// MoroccoSites are the fixed facilities drawn on the site layer.
var MoroccoSites = []Site{
	{Name: "Khouribga", Kind: SiteMine, Lat: 32.886, Lng: -6.906, Stage: StageExtraction, Note: "Major phosphate basin (OCP)."},
	{Name: "Benguerir", Kind: SiteMine, Lat: 32.238, Lng: -7.953, Stage: StageExtraction, Note: "Gantour region operations."},
	{Name: "Youssoufia", Kind: SiteMine, Lat: 32.246, Lng: -8.529, Stage: StageExtraction, Note: "Gantour region operations."},
	{Name: "Jorf Lasfar", Kind: SiteChemicalHub, Lat: 33.138, Lng: -8.616, Stage: StageBulkFertilizer, Note: "Coastal industrial hub / export platform."},
	{Name: "Safi", Kind: SiteChemicalHub, Lat: 32.299, Lng: -9.237, Stage: StageBulkFertilizer, Note: "Coastal processing / exports."},
	{Name: "Bou Craa", Kind: SiteMine, Lat: 26.313, Lng: -13.007, Stage: StageExtraction, Note: "Southern phosphate operations (Phosboucraa)."},
	{Name: "Laâyoune", Kind: SiteLogistics, Lat: 27.153, Lng: -13.203, Stage: StageLogistics, Note: "Southern logistics / export node."},
}

// FlowHubNames are the coastal sites that can originate or terminate
// cross-border arcs. Each partner uses the nearest one, which keeps the
// hub-and-spoke picture stable across renders.
var FlowHubNames = []string{"Jorf Lasfar", "Safi"}

// DomesticLinks are the fixed intra-country transport links.
var DomesticLinks = []DomesticLink{
	{From: "Benguerir", To: "Safi", Kind: LinkRailOrHaul, Label: "Domestic link: Gantour → Safi"},
	{From: "Youssoufia", To: "Safi", Kind: LinkRailOrHaul, Label: "Domestic link: Gantour → Safi"},
	{From: "Khouribga", To: "Jorf Lasfar", Kind: LinkSlurryPipeline, Label: "Slurry pipeline: Khouribga → Jorf Lasfar"},
	{From: "Bou Craa", To: "Laâyoune", Kind: LinkConveyor, Label: "Conveyor: Bou Craa → Laâyoune terminal"},
}

// SiteByName returns the site with the given name, or false when the name is
// stale or misconfigured.
func SiteByName(name string) (Site, bool) {
	for _, s := range MoroccoSites {
		if s.Name == name {
			return s, true
		}
	}
	return Site{}, false
}
