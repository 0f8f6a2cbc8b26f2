package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/romeli7/phosflow/pkg/flowengine"
	"github.com/romeli7/phosflow/pkg/tradedata"
)

var (
	headlessFlag = flag.Bool("headless", false, "Run without a local window (Xvfb rendering active)")
	renderWidth  = flag.Int("width", 1600, "Internal rendering width")
	renderHeight = flag.Int("height", 900, "Internal rendering height")
	windowWidth  = flag.Int("window-width", 1280, "Initial window width (non-headless only)")
	windowHeight = flag.Int("window-height", 720, "Initial window height (non-headless only)")
	tpsFlag      = flag.Int("tps", 30, "Ticks per second (engine updates)")
	dataPath     = flag.String("data", "data/phosphate_trade.json", "Path to the trade dataset")
	dataURL      = flag.String("data-url", "", "URL to download the trade dataset from when the file is missing")
	outlinePath  = flag.String("outline", "data/world.geo.json", "Path to the world outline GeoJSON")
	outlineURL   = flag.String("outline-url", "https://raw.githubusercontent.com/johan/world.geo.json/master/countries.geo.json", "URL to download the world outline from when the file is missing")
	captureDir   = flag.String("capture-dir", "", "Directory for PNG frame captures (empty disables capture)")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	data := tradedata.Load(*dataPath, *dataURL)
	outline := flowengine.LoadWorldOutline(*outlinePath, *outlineURL)

	engine := flowengine.NewEngine(*renderWidth, *renderHeight, data, outline)
	engine.FrameCaptureDir = *captureDir
	engine.LogDatasetSummary()

	ebiten.SetTPS(*tpsFlag)
	if *headlessFlag {
		log.Println("Running in HEADLESS mode (Rendering active).")
		if err := ebiten.RunGame(engine); err != nil {
			log.Fatal(err)
		}
	} else {
		ebiten.SetWindowSize(*windowWidth, *windowHeight)
		ebiten.SetWindowTitle("Phosphate Trade Flow Map")
		if err := ebiten.RunGame(engine); err != nil {
			log.Fatal(err)
		}
	}
}
