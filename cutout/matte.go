// Package cutout removes the background from the generated source artwork by
// per-pixel color classification and crops the result to the subject.
package cutout

import (
	"image"
	"image/draw"
)

// Rule holds the color thresholds deciding whether a pixel belongs to the
// subject. The defaults are tuned for green-to-cyan artwork on a dark
// background; they are configuration constants, not a general matting
// algorithm.
type Rule struct {
	// GreenFloor is the minimum green channel value for the primary rule.
	GreenFloor int
	// ChannelLead is how far green or blue must exceed red for the primary
	// rule to keep the pixel.
	ChannelLead int
	// CyanFloor is the minimum green and blue channel value for the
	// secondary rule, which keeps bright cyan pixels regardless of red.
	CyanFloor int
}

// DefaultRule matches the thresholds the source artwork was tuned with.
var DefaultRule = Rule{
	GreenFloor:  100,
	ChannelLead: 20,
	CyanFloor:   150,
}

// Keep reports whether a pixel with the given 8-bit channels is subject color.
func (r Rule) Keep(red, green, blue uint8) bool {
	rd, g, b := int(red), int(green), int(blue)
	if g > r.GreenFloor && (g > rd+r.ChannelLead || b > rd+r.ChannelLead) {
		return true
	}
	return b > r.CyanFloor && g > r.CyanFloor
}

// cropMargin is kept around the subject bounding box, clamped to the image.
const cropMargin = 5

// Matte classifies every pixel of img against rule, forces the alpha of
// background pixels to zero, and crops to the opaque bounding box plus a
// fixed margin. Only alpha is ever modified; RGB channels stay untouched.
// If nothing was classified as subject the image is returned uncropped.
func Matte(img image.Image, rule Rule) *image.NRGBA {
	src := asNRGBA(img)
	bounds := src.Bounds()

	for y := 0; y < bounds.Dy(); y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+bounds.Dx()*4]
		for x := 0; x < bounds.Dx(); x++ {
			px := row[x*4 : x*4+4 : x*4+4]
			if !rule.Keep(px[0], px[1], px[2]) {
				px[3] = 0
			}
		}
	}

	box, ok := opaqueBounds(src)
	if !ok {
		return src
	}
	box = box.Inset(-cropMargin).Intersect(bounds)
	return crop(src, box)
}

// opaqueBounds returns the smallest rectangle containing every pixel with a
// nonzero alpha, and whether any such pixel exists.
func opaqueBounds(img *image.NRGBA) (image.Rectangle, bool) {
	bounds := img.Bounds()
	box := image.Rectangle{Min: bounds.Max, Max: bounds.Min}
	found := false

	for y := 0; y < bounds.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+bounds.Dx()*4]
		for x := 0; x < bounds.Dx(); x++ {
			if row[x*4+3] == 0 {
				continue
			}
			found = true
			box.Min.X = min(box.Min.X, x)
			box.Min.Y = min(box.Min.Y, y)
			box.Max.X = max(box.Max.X, x+1)
			box.Max.Y = max(box.Max.Y, y+1)
		}
	}

	return box, found
}

func crop(img *image.NRGBA, box image.Rectangle) *image.NRGBA {
	dest := image.NewNRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	draw.Draw(dest, dest.Bounds(), img, box.Min, draw.Src)
	return dest
}

func asNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Bounds().Min == (image.Point{}) {
		return src
	}
	bounds := img.Bounds()
	dest := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dest, dest.Bounds(), img, bounds.Min, draw.Src)
	return dest
}
