package cutout

import (
	"image"
	"image/color"
	"testing"
)

func TestRuleKeep(t *testing.T) {
	rule := DefaultRule

	tests := []struct {
		name    string
		r, g, b uint8
		keep    bool
	}{
		{"dark gray background", 20, 20, 20, false},
		{"bright green leads red", 10, 150, 10, true},
		{"green with blue lead only", 100, 110, 140, true},
		{"green without lead over red", 200, 150, 10, false},
		{"bright cyan via both rules", 0, 160, 160, true},
		{"cyan rule despite high red", 200, 160, 200, true},
		{"green floor is exclusive", 0, 100, 120, false},
		{"cyan floor is exclusive", 200, 150, 150, false},
		{"white keeps via cyan rule", 255, 255, 255, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.Keep(tt.r, tt.g, tt.b); got != tt.keep {
				t.Errorf("Keep(%d, %d, %d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.keep)
			}
		})
	}
}

// fillNRGBA builds a w×h image filled with a single color.
func fillNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestMatteClearsOnlyAlpha(t *testing.T) {
	background := color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	img := fillNRGBA(8, 8, background)
	img.SetNRGBA(3, 3, color.NRGBA{R: 10, G: 200, B: 120, A: 255})

	out := Matte(img, DefaultRule)

	// 1×1 subject at (3,3) padded by 5 and clamped to the 8×8 bounds.
	if got := out.Bounds(); got.Dx() != 8 || got.Dy() != 8 {
		t.Fatalf("unexpected crop: %v", got)
	}

	subject := out.NRGBAAt(3, 3)
	if subject.A != 255 {
		t.Errorf("subject pixel alpha = %d, want 255", subject.A)
	}
	cleared := out.NRGBAAt(0, 0)
	if cleared.A != 0 {
		t.Errorf("background pixel alpha = %d, want 0", cleared.A)
	}
	if cleared.R != 20 || cleared.G != 20 || cleared.B != 20 {
		t.Errorf("background RGB modified: %v, want (20,20,20)", cleared)
	}
}

func TestMatteCropsWithMargin(t *testing.T) {
	img := fillNRGBA(40, 40, color.NRGBA{R: 20, G: 20, B: 20, A: 255})
	for y := 15; y < 20; y++ {
		for x := 15; x < 20; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0, G: 180, B: 80, A: 255})
		}
	}

	out := Matte(img, DefaultRule)

	// Subject box is (15,15)-(20,20); plus the 5px margin that is 15×15.
	if got := out.Bounds(); got.Dx() != 15 || got.Dy() != 15 {
		t.Fatalf("cropped to %dx%d, want 15x15", got.Dx(), got.Dy())
	}
	if center := out.NRGBAAt(7, 7); center.A != 255 {
		t.Errorf("subject center alpha = %d, want 255", center.A)
	}
	if corner := out.NRGBAAt(0, 0); corner.A != 0 {
		t.Errorf("margin corner alpha = %d, want 0", corner.A)
	}
}

func TestMatteClampsMarginAtEdges(t *testing.T) {
	img := fillNRGBA(10, 10, color.NRGBA{R: 20, G: 20, B: 20, A: 255})
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 180, B: 80, A: 255})

	out := Matte(img, DefaultRule)

	// Padded box (-5,-5)-(6,6) clamps to (0,0)-(6,6).
	if got := out.Bounds(); got.Dx() != 6 || got.Dy() != 6 {
		t.Fatalf("cropped to %dx%d, want 6x6", got.Dx(), got.Dy())
	}
}

func TestMatteEmptySubjectSkipsCrop(t *testing.T) {
	img := fillNRGBA(100, 100, color.NRGBA{R: 20, G: 20, B: 20, A: 255})

	out := Matte(img, DefaultRule)

	if got := out.Bounds(); got.Dx() != 100 || got.Dy() != 100 {
		t.Fatalf("crop is not a no-op: %dx%d", got.Dx(), got.Dy())
	}
	for _, pt := range []image.Point{{0, 0}, {50, 50}, {99, 99}} {
		if px := out.NRGBAAt(pt.X, pt.Y); px.A != 0 {
			t.Errorf("pixel %v alpha = %d, want 0", pt, px.A)
		}
	}
}

func TestMatteAlreadyTransparentPixelsIgnored(t *testing.T) {
	img := fillNRGBA(10, 10, color.NRGBA{})
	// Subject-colored but fully transparent; the classifier leaves its
	// alpha unchanged, so the bounding box stays empty.
	img.SetNRGBA(5, 5, color.NRGBA{R: 0, G: 200, B: 200, A: 0})

	out := Matte(img, DefaultRule)

	if got := out.Bounds(); got.Dx() != 10 || got.Dy() != 10 {
		t.Fatalf("crop is not a no-op: %dx%d", got.Dx(), got.Dy())
	}
}
