// Package flowengine renders the phosphate trade network: curved flow arcs to
// trading partners, domestic infrastructure links, and the site layer, all
// derived from an explicit view state so every render pass is reproducible.
package flowengine

import "math"

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat, Lng float64
}

const (
	// DefaultBend is the control-point offset factor for flow arcs.
	DefaultBend = 0.22
	// DefaultArcSteps is the Bézier sample count; paths have steps+1 points.
	DefaultArcSteps = 70
)

// BezierArcPoints returns steps+1 points sampling a quadratic Bézier from
// origin to dest. The control point sits at the segment midpoint displaced
// along the perpendicular by clamp(dist*0.6, 2, 12)*bend, which keeps very
// short and very long hops from degenerating. origin==dest yields the single
// point repeated.
func BezierArcPoints(origin, dest LatLng, bend float64, steps int) []LatLng {
	x1, y1 := origin.Lng, origin.Lat
	x2, y2 := dest.Lng, dest.Lat

	mx, my := (x1+x2)/2, (y1+y2)/2

	dx, dy := x2-x1, y2-y1
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		dist = 1
	}
	// Unit perpendicular; its sign flips with traversal direction, so A->B
	// and B->A bow to opposite sides of the chord.
	px, py := -dy/dist, dx/dist

	bendScale := math.Max(2, math.Min(12, dist*0.6)) * bend
	cx, cy := mx+px*bendScale, my+py*bendScale

	pts := make([]LatLng, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		xt := (1-t)*(1-t)*x1 + 2*(1-t)*t*cx + t*t*x2
		yt := (1-t)*(1-t)*y1 + 2*(1-t)*t*cy + t*t*y2
		pts = append(pts, LatLng{Lat: yt, Lng: xt})
	}
	return pts
}

// EndTangentAngle returns the path direction at its end, in radians, measured
// as atan2(dLat, dLng). The reference point sits several samples back rather
// than adjacent, which keeps the angle stable against sampling noise.
func EndTangentAngle(pts []LatLng) float64 {
	if len(pts) < 2 {
		return 0
	}
	last := pts[len(pts)-1]
	prev := pts[len(pts)-2]
	if len(pts) >= 6 {
		prev = pts[len(pts)-6]
	}
	return math.Atan2(last.Lat-prev.Lat, last.Lng-prev.Lng)
}

// ArrowRotationDegrees converts an end-tangent angle into the rotation for the
// arrowhead glyph, whose default orientation points up; the fixed 90 degree
// offset aligns it with the path direction.
func ArrowRotationDegrees(tangent float64) float64 {
	return (tangent - math.Pi/2) * 180 / math.Pi
}

const earthRadiusKm = 6371.0

// GreatCircleKm returns the haversine distance between two coordinates.
func GreatCircleKm(a, b LatLng) float64 {
	lat1, lng1 := a.Lat*math.Pi/180, a.Lng*math.Pi/180
	lat2, lng2 := b.Lat*math.Pi/180, b.Lng*math.Pi/180
	dLat, dLng := lat2-lat1, lng2-lng1
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// NearestHub picks the flow hub closest to the partner by great-circle
// distance. A fixed rule here keeps renders deterministic; choosing per
// partner rather than per category spreads arcs across both coastal hubs.
func NearestHub(partner LatLng, hubs []LatLng) LatLng {
	best := hubs[0]
	bestDist := GreatCircleKm(partner, best)
	for _, h := range hubs[1:] {
		if d := GreatCircleKm(partner, h); d < bestDist {
			best, bestDist = h, d
		}
	}
	return best
}
