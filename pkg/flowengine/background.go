package flowengine

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"os"
	"sort"

	geojson "github.com/paulmach/go.geojson"
	"github.com/romeli7/phosflow/pkg/tradedata"
)

var (
	colorOcean   = color.RGBA{10, 14, 18, 255}
	colorLand    = color.RGBA{28, 33, 38, 255}
	colorOutline = color.RGBA{42, 50, 58, 255}
)

// backgroundRenderer rasterizes the world outline with the same projection
// and screen offset the flow layers use.
type backgroundRenderer struct {
	geo           *GeoService
	offX, offY    float64
	width, height int
}

// renderBackground fills the land polygons of a world GeoJSON onto an RGBA
// image. A nil or unparseable outline degrades to a plain ocean background;
// the map stays usable without borders.
func (br *backgroundRenderer) renderBackground(outline []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, br.width, br.height))
	draw.Draw(img, img.Bounds(), &image.Uniform{colorOcean}, image.Point{}, draw.Src)
	if len(outline) == 0 {
		return img
	}
	fc, err := geojson.UnmarshalFeatureCollection(outline)
	if err != nil {
		log.Printf("World outline unparseable (%v); drawing plain background", err)
		return img
	}
	for _, f := range fc.Features {
		if f.Geometry.IsPolygon() {
			br.fillPolygon(img, f.Geometry.Polygon, colorLand)
			for _, ring := range f.Geometry.Polygon {
				br.drawRing(img, ring, colorOutline)
			}
		} else if f.Geometry.IsMultiPolygon() {
			for _, poly := range f.Geometry.MultiPolygon {
				br.fillPolygon(img, poly, colorLand)
				for _, ring := range poly {
					br.drawRing(img, ring, colorOutline)
				}
			}
		}
	}
	return img
}

func (br *backgroundRenderer) project(lat, lng float64) (float64, float64) {
	x, y := br.geo.Project(lat, lng)
	return x - br.offX, y - br.offY
}

// fillPolygon scanline-fills one polygon (outer ring plus holes) after
// projection.
func (br *backgroundRenderer) fillPolygon(img *image.RGBA, rings [][][]float64, c color.RGBA) {
	if len(rings) == 0 {
		return
	}
	type point struct{ x, y float64 }
	projectedRings := make([][]point, len(rings))
	minY, maxY := float64(br.height), 0.0
	for i, ring := range rings {
		projectedRings[i] = make([]point, len(ring))
		for j, p := range ring {
			x, y := br.project(p[1], p[0])
			projectedRings[i][j] = point{x, y}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	for y := int(minY); y <= int(maxY); y++ {
		if y < 0 || y >= br.height {
			continue
		}
		var nodes []int
		fy := float64(y)
		for _, ring := range projectedRings {
			for i := 0; i < len(ring); i++ {
				j := (i + 1) % len(ring)
				if (ring[i].y < fy && ring[j].y >= fy) || (ring[j].y < fy && ring[i].y >= fy) {
					nodeX := ring[i].x + (fy-ring[i].y)/(ring[j].y-ring[i].y)*(ring[j].x-ring[i].x)
					nodes = append(nodes, int(nodeX))
				}
			}
		}
		sort.Ints(nodes)
		for i := 0; i < len(nodes)-1; i += 2 {
			xs, xe := nodes[i], nodes[i+1]
			if xs < 0 {
				xs = 0
			}
			if xe >= br.width {
				xe = br.width - 1
			}
			for x := xs; x < xe; x++ {
				off := y*img.Stride + x*4
				img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = c.R, c.G, c.B, 255
			}
		}
	}
}

func (br *backgroundRenderer) drawRing(img *image.RGBA, coords [][]float64, c color.RGBA) {
	for i := 0; i < len(coords)-1; i++ {
		x1, y1 := br.project(coords[i][1], coords[i][0])
		x2, y2 := br.project(coords[i+1][1], coords[i+1][0])
		br.drawLine(img, int(x1), int(y1), int(x2), int(y2), c)
	}
}

// drawLine is a plain Bresenham line clipped to the image.
func (br *backgroundRenderer) drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	dx, dy := math.Abs(float64(x2-x1)), math.Abs(float64(y2-y1))
	if dx > float64(br.width)*2 || dy > float64(br.height)*2 {
		return // segment far off screen at this zoom
	}
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy
	for {
		if x1 >= 0 && x1 < br.width && y1 >= 0 && y1 < br.height {
			off := y1*img.Stride + x1*4
			img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = c.R, c.G, c.B, 255
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// LoadWorldOutline reads the world GeoJSON from disk, downloading it first
// when missing and a url is configured. Failure is not fatal; the caller
// renders a plain background.
func LoadWorldOutline(path, url string) []byte {
	if _, err := os.Stat(path); os.IsNotExist(err) && url != "" {
		if err := tradedata.Download(url, path); err != nil {
			log.Printf("World outline download failed: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("World outline unavailable (%v); drawing plain background", err)
		return nil
	}
	return data
}
