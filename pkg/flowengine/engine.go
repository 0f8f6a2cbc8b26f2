package flowengine

import (
	"bytes"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/romeli7/phosflow/pkg/tradedata"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// worldZoom is the zoom level at which the whole world fits the window.
	worldZoom = 3
	minZoom   = 2
	maxZoom   = 7
)

// mapCenter keeps the view anchored on the Moroccan coast.
var mapCenter = LatLng{31.8, -6.0}

// Engine is the interactive map viewer. It owns the single mutable ViewState,
// mutates it from keyboard events, and re-renders the frame after every
// mutation. Rendering itself is delegated to the pure Render function.
type Engine struct {
	Width, Height   int
	FrameCaptureDir string

	state   ViewState
	data    *tradedata.TradeData
	outline []byte

	zoom   float64
	geo    *GeoService
	offX   float64
	offY   float64
	frame  Frame
	dirty  bool
	bgDone bool

	bgImage    *ebiten.Image
	fontSource *text.GoTextFaceSource
	monoSource *text.GoTextFaceSource

	capturePending bool
}

func NewEngine(width, height int, data *tradedata.TradeData, outline []byte) *Engine {
	s, _ := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	m, _ := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))

	e := &Engine{
		Width:      width,
		Height:     height,
		state:      DefaultViewState(),
		data:       data,
		outline:    outline,
		zoom:       4,
		fontSource: s,
		monoSource: m,
		dirty:      true,
	}
	e.refreshProjection()
	return e
}

// State returns a copy of the current view state, mainly for tests.
func (e *Engine) State() ViewState { return e.state }

// Zoom returns the current zoom level.
func (e *Engine) Zoom() float64 { return e.zoom }

func (e *Engine) scaleForZoom() float64 {
	// At worldZoom the full equal-earth width (about 5.66 projection radii)
	// spans the window.
	base := float64(e.Width) / 5.66
	return base * math.Pow(2, e.zoom-worldZoom)
}

// refreshProjection rebuilds the projector and screen offset so mapCenter
// lands mid-window, then invalidates the background raster.
func (e *Engine) refreshProjection() {
	e.geo = NewGeoService(e.Width, e.Height, e.scaleForZoom())
	cx, cy := e.geo.Project(mapCenter.Lat, mapCenter.Lng)
	e.offX = cx - float64(e.Width)/2
	e.offY = cy - float64(e.Height)/2
	e.bgDone = false
	e.dirty = true
}

func (e *Engine) screenXY(p LatLng) (float64, float64) {
	x, y := e.geo.Project(p.Lat, p.Lng)
	return x - e.offX, y - e.offY
}

// Update handles the UI surface: every key mutates exactly one state field
// and marks the frame dirty, which triggers one full re-render.
func (e *Engine) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		if e.state.Tab == tradedata.Exports {
			e.state.Tab = tradedata.Imports
		} else {
			e.state.Tab = tradedata.Exports
		}
		e.resetCategory()
		e.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		e.cycleCategory()
		e.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		e.state.Metric = NextMetric(e.state.Metric)
		e.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		e.state.ShowSites = !e.state.ShowSites
		e.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		e.state.ShowFlows = !e.state.ShowFlows
		e.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		e.state.ShowDomestic = !e.state.ShowDomestic
		e.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		if e.state.ProductMode == ModeTrade {
			e.state.ProductMode = ModeTransformation
		} else {
			e.state.ProductMode = ModeTrade
		}
		e.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		AdvanceStory(&e.state)
		e.dirty = true
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		if e.zoom < maxZoom {
			e.zoom++
			e.refreshProjection()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		if e.zoom > minZoom {
			e.zoom--
			e.refreshProjection()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		e.capturePending = true
	}

	if e.dirty {
		e.frame = Render(e.state, e.data, e.geo, e.zoom)
		e.dirty = false
	}
	return nil
}

func (e *Engine) resetCategory() {
	keys := e.data.CategoryKeys(e.state.Tab)
	if len(keys) > 0 {
		e.state.CategoryKey = keys[0]
	}
}

func (e *Engine) cycleCategory() {
	keys := e.data.CategoryKeys(e.state.Tab)
	if len(keys) == 0 {
		return
	}
	for i, k := range keys {
		if k == e.state.CategoryKey {
			e.state.CategoryKey = keys[(i+1)%len(keys)]
			return
		}
	}
	e.state.CategoryKey = keys[0]
}

func (e *Engine) Draw(screen *ebiten.Image) {
	if !e.bgDone {
		br := &backgroundRenderer{geo: e.geo, offX: e.offX, offY: e.offY, width: e.Width, height: e.Height}
		e.bgImage = ebiten.NewImageFromImage(br.renderBackground(e.outline))
		e.bgDone = true
	}
	screen.DrawImage(e.bgImage, nil)

	for _, l := range e.frame.Domestic {
		e.strokeFlowLine(screen, l)
	}
	for _, l := range e.frame.Flows {
		e.strokeFlowLine(screen, l)
	}
	for _, a := range e.frame.Arrows {
		e.drawArrow(screen, a)
	}
	for _, m := range e.frame.Partners {
		e.drawMarker(screen, m)
	}
	for _, m := range e.frame.Sites {
		e.drawMarker(screen, m)
	}

	e.drawHUD(screen)
	e.drawHoverTooltip(screen)

	if e.capturePending {
		e.capturePending = false
		e.captureFrame(screen)
	}
}

func (e *Engine) Layout(w, h int) (int, int) { return e.Width, e.Height }

// withOpacity premultiplies a color by an opacity in [0,1].
func withOpacity(c color.RGBA, o float64) color.RGBA {
	if o < 0 {
		o = 0
	}
	if o > 1 {
		o = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * o),
		G: uint8(float64(c.G) * o),
		B: uint8(float64(c.B) * o),
		A: uint8(255 * o),
	}
}

func (e *Engine) drawMarker(screen *ebiten.Image, m Marker) {
	x, y := e.screenXY(m.At)
	if x < -20 || x > float64(e.Width)+20 || y < -20 || y > float64(e.Height)+20 {
		return
	}
	c := withOpacity(m.Color, m.Opacity)
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(m.Radius), c, true)
	vector.StrokeCircle(screen, float32(x), float32(y), float32(m.Radius), 1.5, withOpacity(color.RGBA{0, 0, 0, 255}, 0.10*m.Opacity), true)
}

// strokeFlowLine draws a polyline segment by segment, honoring the dash
// pattern in screen pixels.
func (e *Engine) strokeFlowLine(screen *ebiten.Image, l FlowLine) {
	if len(l.Points) < 2 {
		return
	}
	c := withOpacity(l.Style.Color, l.Style.Opacity)
	w := float32(l.Style.Weight)

	if l.Style.Dash == nil {
		for i := 1; i < len(l.Points); i++ {
			x1, y1 := e.screenXY(l.Points[i-1])
			x2, y2 := e.screenXY(l.Points[i])
			vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), w, c, true)
		}
		return
	}

	// Walk the path accumulating arc length against the on/off pattern.
	period := 0.0
	for _, d := range l.Style.Dash {
		period += d
	}
	if period <= 0 {
		return
	}
	walked := 0.0
	for i := 1; i < len(l.Points); i++ {
		x1, y1 := e.screenXY(l.Points[i-1])
		x2, y2 := e.screenXY(l.Points[i])
		segLen := math.Hypot(x2-x1, y2-y1)
		if segLen == 0 {
			continue
		}
		pos := 0.0
		for pos < segLen {
			phase := math.Mod(walked+pos, period)
			on := phase < l.Style.Dash[0]
			var run float64
			if on {
				run = l.Style.Dash[0] - phase
			} else {
				run = period - phase
			}
			if pos+run > segLen {
				run = segLen - pos
			}
			if on {
				t1, t2 := pos/segLen, (pos+run)/segLen
				vector.StrokeLine(screen,
					float32(x1+(x2-x1)*t1), float32(y1+(y2-y1)*t1),
					float32(x1+(x2-x1)*t2), float32(y1+(y2-y1)*t2), w, c, true)
			}
			pos += run
		}
		walked += segLen
	}
}

// drawArrow renders the arrowhead as a chevron whose stem points along the
// arc tangent. RotationDeg of zero means "pointing up" on screen.
func (e *Engine) drawArrow(screen *ebiten.Image, a ArrowGlyph) {
	x, y := e.screenXY(a.At)
	c := withOpacity(a.Color, a.Opacity)

	// Screen y grows downward, so the travel angle negates on screen. The
	// barbs trail the tip along the travel direction.
	rot := -(a.RotationDeg + 90) * math.Pi / 180
	size := 9.0
	spread := 25 * math.Pi / 180
	for _, side := range []float64{spread, -spread} {
		bx := x - size*math.Cos(rot+side)
		by := y - size*math.Sin(rot+side)
		vector.StrokeLine(screen, float32(x), float32(y), float32(bx), float32(by), 3, c, true)
	}
}

// LogDatasetSummary logs one line per category so startup problems with the
// data file are visible without a debugger.
func (e *Engine) LogDatasetSummary() {
	for _, dir := range []tradedata.Direction{tradedata.Exports, tradedata.Imports} {
		for _, key := range e.data.CategoryKeys(dir) {
			ds := e.data.Tab(dir)[key]
			d := tradedata.ComputeDerived(ds)
			log.Printf("%s/%s: %d partners, total $%s (%d)", dir, key, len(d.Rows), formatGrouped(d.TotalUSD), ds.Year)
		}
	}
}
