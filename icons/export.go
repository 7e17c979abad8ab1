// Package icons exports the favicon asset set from a transparent image: a
// generic thumbnail favicon, exact-size PNG variants and a multi-resolution
// ICO bundle.
package icons

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"path/filepath"
	"sync/atomic"

	"favgen/imgio"
	"favgen/parallel"

	"golang.org/x/image/draw"
)

// MaxFavicon caps the generic favicon's larger dimension.
const MaxFavicon = 128

// PNGSizes maps each fixed-size output filename to its square dimension.
var PNGSizes = map[string]int{
	"favicon-16x16.png":    16,
	"favicon-32x32.png":    32,
	"favicon-192x192.png":  192,
	"apple-touch-icon.png": 180,
}

// ICOSizes are the square resolutions embedded in favicon.ico, in order.
var ICOSizes = []int{16, 32, 48}

// Thumbnail scales img down to fit within a size×size box, preserving aspect
// ratio. Images already within the box are copied unscaled, never enlarged.
func Thumbnail(img image.Image, size int) *image.NRGBA {
	bounds := img.Bounds()
	scale := math.Min(float64(size)/float64(bounds.Dx()), float64(size)/float64(bounds.Dy()))
	if scale >= 1 {
		return Exact(img, bounds.Dx(), bounds.Dy())
	}

	width := int(math.Round(float64(bounds.Dx()) * scale))
	height := int(math.Round(float64(bounds.Dy()) * scale))
	return Exact(img, width, height)
}

// Exact resizes img to exactly width×height, ignoring its aspect ratio.
func Exact(img image.Image, width, height int) *image.NRGBA {
	dest := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dest, dest.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dest
}

// WriteFavicon writes the generic thumbnail favicon to dest.
func WriteFavicon(img image.Image, dest string) error {
	favicon := Thumbnail(img, MaxFavicon)
	if err := imgio.SavePNG(favicon, dest); err != nil {
		return err
	}

	slog.Info("saved favicon", "file", dest,
		"width", favicon.Bounds().Dx(), "height", favicon.Bounds().Dy())
	return nil
}

// WriteSet exports every fixed-size PNG through the worker pool, then builds
// favicon.ico. The pool is drained before the ICO is written, so files from a
// partially failed run stay on disk but the ICO is only built on full success.
func WriteSet(img image.Image, destDir string, worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	var errCount atomic.Uint64
	for name, size := range PNGSizes {
		worker(func(name string, size int) func() {
			return func() {
				dest := filepath.Join(destDir, name)
				if err := imgio.SavePNG(Exact(img, size, size), dest); err != nil {
					errCount.Add(1)
					slog.Error("could not save icon", "file", dest, "error", err)
					return
				}
				slog.Info("saved icon", "file", dest, "width", size, "height", size)
			}
		}(name, size))
	}

	wait(true)

	if errors := errCount.Load(); errors > 0 {
		return fmt.Errorf("error writing %d icons", errors)
	}
	return writeICO(img, filepath.Join(destDir, "favicon.ico"))
}

func writeICO(img image.Image, dest string) error {
	bundle := make([]image.Image, 0, len(ICOSizes))
	for _, size := range ICOSizes {
		bundle = append(bundle, Exact(img, size, size))
	}

	if err := imgio.SaveICO(bundle, dest); err != nil {
		return err
	}

	slog.Info("saved icon bundle", "file", dest, "sizes", ICOSizes)
	return nil
}
