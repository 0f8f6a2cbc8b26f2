package flowengine

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/romeli7/phosflow/pkg/tradedata"
)

var (
	colorHUDBox    = color.RGBA{0, 0, 0, 100}
	colorHUDBorder = color.RGBA{36, 42, 53, 255}
	colorHUDAccent = color.RGBA{217, 119, 6, 255}
)

type legendEntry struct {
	label string
	color color.RGBA
}

func (e *Engine) drawHUD(screen *ebiten.Image) {
	if e.fontSource == nil {
		return
	}
	margin, fontSize := 20.0, 15.0
	if e.Width > 2000 {
		margin, fontSize = 40.0, 30.0
	}
	face := &text.GoTextFace{Source: e.fontSource, Size: fontSize}
	titleFace := &text.GoTextFace{Source: e.fontSource, Size: fontSize * 0.8}
	monoFace := &text.GoTextFace{Source: e.monoSource, Size: fontSize * 0.85}

	// 1. Top left: current selection.
	ds, ok := e.data.Tab(e.state.Tab)[e.state.CategoryKey]
	label := e.state.CategoryKey
	if ok {
		label = ds.Label
	}
	mode := "trade"
	if e.state.ProductMode == ModeTransformation {
		mode = "transformation"
	}
	status := fmt.Sprintf("%s / %s  [%s, %s]", e.state.Tab, label, metricName(e.state.Metric), mode)
	statusY := margin + fontSize
	e.drawBoxedText(screen, status, face, margin, statusY, true)

	// 2. Below it: the layer legend.
	entries := []legendEntry{
		{"mine", ColorMine},
		{"chemical hub", ColorHub},
		{"logistics", ColorLogistics},
		{"trade partner", ColorPartner},
	}
	if e.state.Tab == tradedata.Exports {
		entries = append(entries, legendEntry{"export flow", ColorExport})
	} else {
		entries = append(entries, legendEntry{"import flow", ColorImport})
	}
	entries = append(entries, legendEntry{"domestic link", ColorDomestic})

	legendX := margin
	legendY := statusY + fontSize*2.5
	rowH := fontSize * 1.5
	boxW := 190.0
	if e.Width > 2000 {
		boxW = 380.0
	}
	boxH := rowH*float64(len(entries)) + 14

	vector.DrawFilledRect(screen, float32(legendX-10), float32(legendY-fontSize-5), float32(boxW), float32(boxH), colorHUDBox, false)
	vector.StrokeRect(screen, float32(legendX-10), float32(legendY-fontSize-5), float32(boxW), float32(boxH), 1, colorHUDBorder, false)
	vector.DrawFilledRect(screen, float32(legendX-10), float32(legendY-fontSize-5), 4, float32(fontSize+8), colorHUDAccent, false)

	for i, en := range entries {
		y := legendY + float64(i)*rowH
		vector.DrawFilledCircle(screen, float32(legendX+6), float32(y-fontSize*0.35), float32(fontSize*0.35), en.color, true)
		op := &text.DrawOptions{}
		op.GeoM.Translate(legendX+20, y-fontSize)
		op.ColorScale.Scale(1, 1, 1, 0.85)
		text.Draw(screen, en.label, titleFace, op)
	}

	// 3. Bottom left: data year hint.
	if e.frame.YearHint != "" {
		e.drawBoxedText(screen, e.frame.YearHint, titleFace, margin, float64(e.Height)-margin, false)
	}

	// 4. Bottom center: story caption.
	if e.frame.Caption != "" {
		caption := fmt.Sprintf("Story %d/%d: %s", e.state.StoryStep, StorySteps()-1, e.frame.Caption)
		tw, _ := text.Measure(caption, face, 0)
		e.drawBoxedText(screen, caption, face, (float64(e.Width)-tw)/2, float64(e.Height)-margin-fontSize*2.2, true)
	}

	// 5. Bottom right: key bindings.
	help := "tab:dir  c:cat  m:metric  s/f/d:layers  t:mode  n:story  +/-:zoom  p:png"
	tw, _ := text.Measure(help, monoFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(e.Width)-tw-margin, float64(e.Height)-margin-fontSize)
	op.ColorScale.Scale(1, 1, 1, 0.4)
	text.Draw(screen, help, monoFace, op)
}

func (e *Engine) drawBoxedText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, accent bool) {
	tw, th := text.Measure(s, face, 0)
	vector.DrawFilledRect(screen, float32(x-10), float32(y-th), float32(tw+24), float32(th+10), colorHUDBox, false)
	vector.StrokeRect(screen, float32(x-10), float32(y-th), float32(tw+24), float32(th+10), 1, colorHUDBorder, false)
	if accent {
		vector.DrawFilledRect(screen, float32(x-10), float32(y-th), 4, float32(th+10), colorHUDAccent, false)
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x+2, y-th+4)
	op.ColorScale.Scale(1, 1, 1, 0.9)
	text.Draw(screen, s, face, op)
}

func metricName(m Metric) string {
	switch m {
	case MetricUSD:
		return "value"
	case MetricTonnes:
		return "tonnes"
	default:
		return "share"
	}
}

// drawHoverTooltip shows the tooltip of the marker or flow under the cursor.
// Markers win over flows when both are in range.
func (e *Engine) drawHoverTooltip(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	cx, cy := float64(mx), float64(my)

	tip := ""
	best := math.MaxFloat64

	pick := func(m Marker) {
		x, y := e.screenXY(m.At)
		d := math.Hypot(x-cx, y-cy)
		if d <= m.Radius+4 && d < best {
			best = d
			tip = m.Tooltip
		}
	}
	for _, m := range e.frame.Sites {
		pick(m)
	}
	for _, m := range e.frame.Partners {
		pick(m)
	}

	if tip == "" {
		const flowPickPx = 6.0
		lines := append(append([]FlowLine{}, e.frame.Flows...), e.frame.Domestic...)
		for _, l := range lines {
			if l.Tooltip == "" {
				continue
			}
			for _, p := range l.Points {
				x, y := e.screenXY(p)
				d := math.Hypot(x-cx, y-cy)
				if d <= flowPickPx && d < best {
					best = d
					tip = l.Tooltip
				}
			}
		}
	}

	if tip == "" {
		return
	}

	fontSize := 14.0
	if e.Width > 2000 {
		fontSize = 28.0
	}
	face := &text.GoTextFace{Source: e.fontSource, Size: fontSize}
	tw, th := text.Measure(tip, face, 0)

	x, y := cx+14, cy-th-10
	if x+tw+20 > float64(e.Width) {
		x = cx - tw - 20
	}
	if y < 0 {
		y = cy + 20
	}
	vector.DrawFilledRect(screen, float32(x-8), float32(y-4), float32(tw+16), float32(th+8), color.RGBA{0, 0, 0, 180}, false)
	vector.StrokeRect(screen, float32(x-8), float32(y-4), float32(tw+16), float32(th+8), 1, colorHUDBorder, false)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	text.Draw(screen, tip, face, op)
}
