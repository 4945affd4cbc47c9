package cstack

import(
	"fmt"
	"image"
	"log"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// ScaleBarSpec describes the calibrated scale bar overlay.
type ScaleBarSpec struct {
	Enabled     bool
	LengthUm    float64  // physical bar length, microns
	PixelSizeUm float64  // microns per pixel
	Thickness   int      // bar height in pixels
	Position    string   // bottomright | bottomleft | topright | topleft
	Color       string   // white | black
	ShowLabel   bool
	FontSize    float64
}

func NewScaleBarSpec() ScaleBarSpec {
	return ScaleBarSpec{
		LengthUm:    10,
		PixelSizeUm: 0.1,
		Thickness:   5,
		Position:    "bottomright",
		Color:       "white",
		ShowLabel:   true,
		FontSize:    12,
	}
}

// AddScaleBar overlays a filled bar (and optional label) onto the
// composite. Every geometry failure is fail-soft: a bar that can't be
// drawn sensibly returns the image untouched rather than erroring.
func AddScaleBar(img *image.RGBA, spec ScaleBarSpec) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	lengthPx := BarLengthPixels(spec.LengthUm, spec.PixelSizeUm, w)
	if lengthPx < 1 {
		log.Printf("scale bar skipped: %g um at %.4f um/px is under one pixel\n", spec.LengthUm, spec.PixelSizeUm)
		return img
	}

	marginX := int(float64(w) * 0.03)
	marginY := int(float64(h) * 0.03)

	var x1, y1 int
	switch spec.Position {
	case "bottomright": x1, y1 = w - marginX - lengthPx, h - marginY - spec.Thickness
	case "bottomleft":  x1, y1 = marginX,                h - marginY - spec.Thickness
	case "topright":    x1, y1 = w - marginX - lengthPx, marginY
	default:            x1, y1 = marginX,                marginY // topleft
	}
	x2 := x1 + lengthPx
	y2 := y1 + spec.Thickness

	if x1 < 0 || y1 < 0 || x2 > w || y2 > h {
		log.Printf("scale bar skipped: bar (%d,%d)-(%d,%d) outside %dx%d image\n", x1, y1, x2, y2, w, h)
		return img
	}

	dc := gg.NewContextForImage(img)
	if spec.Color == "black" {
		dc.SetRGB255(0, 0, 0)
	} else {
		dc.SetRGB255(255, 255, 255)
	}
	dc.DrawRectangle(float64(x1), float64(y1), float64(lengthPx), float64(spec.Thickness))
	dc.Fill()

	if spec.ShowLabel {
		drawLabel(dc, spec, x1, y1, y2, lengthPx, h)
	}

	return dc.Image().(*image.RGBA)
}

func drawLabel(dc *gg.Context, spec ScaleBarSpec, x1, y1, y2, lengthPx, h int) {
	text := labelText(spec.LengthUm)

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("scale bar label skipped: %v\n", err)
		return
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: spec.FontSize}))

	textW, textH := dc.MeasureString(text)

	// Centered over the bar; above it for bottom corners, below for top.
	textX := float64(x1) + (float64(lengthPx) - textW) / 2.0

	var textY float64
	onBottom := spec.Position == "bottomright" || spec.Position == "bottomleft"
	if onBottom {
		textY = float64(y1) - float64(spec.Thickness)*0.5
	} else {
		textY = float64(y2) + textH + float64(spec.Thickness)*0.5
	}

	// A baseline outside the image nudges to a small fixed offset
	// instead of failing.
	if textY < 0 || textY > float64(h) {
		if onBottom {
			textY = float64(y1) - 5
		} else {
			textY = float64(y2) + textH + 5
		}
	}

	dc.DrawString(text, textX, textY)
}

// labelText formats the bar length: integral lengths as integers, the
// rest verbatim.
func labelText(lengthUm float64) string {
	if lengthUm == math.Trunc(lengthUm) {
		return fmt.Sprintf("%d um", int(lengthUm))
	}
	return fmt.Sprintf("%g um", lengthUm)
}

// BarLengthPixels exposes the bar geometry rule on its own: round to
// the nearest pixel, zero means "don't draw", over-wide bars clamp to
// 30% of the image width.
func BarLengthPixels(lengthUm, pixelSizeUm float64, imageWidth int) int {
	if pixelSizeUm <= 0 {
		return 0
	}
	lengthPx := int(math.Round(lengthUm / pixelSizeUm))
	if lengthPx < 1 {
		return 0
	}
	if float64(lengthPx) > float64(imageWidth)*0.9 {
		return int(float64(imageWidth) * 0.3)
	}
	return lengthPx
}
