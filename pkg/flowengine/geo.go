package flowengine

import (
	"math"

	"github.com/biter777/countries"
)

// nameAliases normalizes known naming mismatches between trade reporting and
// the country registry before lookup.
var nameAliases = map[string]string{
	"Slovak Republic":  "Slovakia",
	"Czech Republic":   "Czechia",
	"Bosnia and Herz.": "Bosnia and Herzegovina",
	"United States":    "USA",
}

// partnerCentroids maps ISO alpha-2 codes to approximate country centroids.
// Keeping this table local prevents partners from landing on random islands
// when a remote boundary source is unavailable.
var partnerCentroids = map[string]LatLng{
	"BR": {-10.0, -55.0}, "AU": {-25.0, 133.0}, "CA": {56.0, -106.0},
	"AR": {-38.0, -64.0}, "US": {39.0, -98.0}, "PY": {-23.4, -58.4},
	"UY": {-32.8, -56.0}, "NA": {-22.6, 17.1}, "SI": {46.1, 14.9},
	"CL": {-35.7, -71.5}, "IT": {42.8, 12.5}, "ES": {40.4, -3.7},
	"LT": {55.3, 23.9}, "LV": {56.9, 24.6}, "BG": {42.7, 25.5},
	"ZM": {-13.1, 27.8}, "PL": {52.1, 19.4}, "FR": {46.2, 2.2},
	"TR": {39.0, 35.0}, "JP": {36.2, 138.2}, "UA": {49.0, 31.0},
	"PT": {39.6, -8.0}, "CO": {4.5, -74.0}, "RO": {45.9, 24.9},
	"BE": {50.6, 4.7}, "BO": {-16.3, -63.6}, "AO": {-12.3, 17.6},
	"SE": {62.0, 15.0}, "DE": {51.2, 10.4}, "SK": {48.7, 19.7},
	"HR": {45.1, 15.2}, "NI": {12.9, -85.0}, "CZ": {49.8, 15.5},
	"GT": {15.8, -90.2}, "DO": {18.7, -70.2}, "MW": {-13.2, 34.3},
	"EE": {58.6, 25.0}, "LB": {33.9, 35.8}, "GB": {55.4, -3.4},
	"MD": {47.2, 28.4}, "PE": {-9.2, -75.0}, "IN": {22.0, 79.0},
	"MY": {4.2, 102.0}, "EC": {-1.4, -78.4}, "AZ": {40.1, 47.5},
	"MR": {20.3, -10.3}, "SA": {23.9, 45.1}, "MK": {41.6, 21.7},
	"BA": {44.2, 17.7}, "SN": {14.5, -14.4}, "CN": {35.0, 103.0},
	"TH": {15.8, 101.0}, "MX": {23.6, -102.5}, "AT": {47.5, 14.5},
	"IL": {31.0, 35.0}, "NL": {52.2, 5.3}, "PK": {30.4, 69.3},
	"NO": {60.5, 8.5}, "NZ": {-40.9, 174.9}, "ID": {-0.8, 113.9},
	"ET": {9.1, 40.5},
}

// GeoService resolves partner country names to map coordinates and projects
// geographic coordinates onto the screen.
type GeoService struct {
	width, height int
	scale         float64
}

func NewGeoService(width, height int, scale float64) *GeoService {
	return &GeoService{width: width, height: height, scale: scale}
}

// PartnerLatLng resolves a partner country name to its centroid. Names are
// normalized through the alias table, then canonicalized via the country
// registry. Returns false for anything unresolvable: "Others" buckets and
// regional totals end up here, and callers skip them silently.
func (g *GeoService) PartnerLatLng(name string) (LatLng, bool) {
	if alias, ok := nameAliases[name]; ok {
		name = alias
	}
	cc := countries.ByName(name)
	if cc == countries.Unknown {
		return LatLng{}, false
	}
	c, ok := partnerCentroids[cc.Alpha2()]
	return c, ok
}

// Project maps lat/lng onto screen pixels using the same projection the
// background is drawn with. Iterative Equal Earth-style solve; latitudes are
// clamped short of the poles where the denominator vanishes.
func (g *GeoService) Project(lat, lng float64) (x, y float64) {
	if lat > 89.5 {
		lat = 89.5
	}
	if lat < -89.5 {
		lat = -89.5
	}

	latRad, lngRad := lat*math.Pi/180, lng*math.Pi/180
	theta := latRad
	for i := 0; i < 10; i++ {
		denom := 2 + 2*math.Cos(2*theta)
		if math.Abs(denom) < 1e-9 {
			break
		}
		delta := (2*theta + math.Sin(2*theta) - math.Pi*math.Sin(latRad)) / denom
		theta -= delta
		if math.Abs(delta) < 1e-7 {
			break
		}
	}
	r := g.scale
	x = (float64(g.width) / 2) + r*(2*math.Sqrt(2)/math.Pi)*lngRad*math.Cos(theta)
	y = (float64(g.height) / 2) - r*math.Sqrt(2)*math.Sin(theta)
	return x, y
}
