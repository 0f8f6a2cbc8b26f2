package flowengine

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// captureFrame writes the current screen to FrameCaptureDir as a PNG. The
// pixels are copied synchronously and encoded in a goroutine so a slow disk
// never stalls the frame loop.
func (e *Engine) captureFrame(img *ebiten.Image) {
	if e.FrameCaptureDir == "" {
		return
	}

	if err := os.MkdirAll(e.FrameCaptureDir, 0o755); err != nil {
		log.Printf("Error creating capture directory: %v", err)
		return
	}

	filename := fmt.Sprintf("phosflow-%s-%s-%s.png", time.Now().Format("20060102-150405"), e.state.Tab, e.state.CategoryKey)
	path := filepath.Join(e.FrameCaptureDir, filename)

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	img.ReadPixels(rgba.Pix)

	go func() {
		f, err := os.Create(path)
		if err != nil {
			log.Printf("Error creating capture file: %v", err)
			return
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("Error closing capture file: %v", err)
			}
		}()

		if err := png.Encode(f, rgba); err != nil {
			log.Printf("Error encoding capture: %v", err)
		}
		log.Printf("Captured frame: %s", path)
	}()
}
