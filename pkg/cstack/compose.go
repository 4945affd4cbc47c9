package cstack

import(
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// A ComposerFunc merges the enabled channels' pseudo-colored planes
// into the final RGB composite. tolerance is only meaningful to the
// replace-gray method; the others ignore it.
type ComposerFunc func(planes []*image.RGBA, bounds image.Rectangle, tolerance int) *image.RGBA

// The five white-background algorithms. Add new methods here, not at
// the call sites.
var WhiteComposers = map[string]ComposerFunc{
	"landini": ComposeLandini,
	"hsl":     ComposeInvertHSL,
	"yiq":     ComposeInvertYIQ,
	"lab":     ComposeInvertLab,
	"replace": ComposeReplaceGray,
}

// ComposeAdditive is the black-background mode: accumulate each channel
// left to right with saturating adds. The per-step clipping makes the
// fold non-associative, so the channel order is part of the contract.
func ComposeAdditive(planes []*image.RGBA, bounds image.Rectangle, tolerance int) *image.RGBA {
	out := image.NewRGBA(bounds)
	for i:=3; i<len(out.Pix); i+=4 { out.Pix[i] = 0xff }

	for _, p := range planes {
		for i:=0; i<len(out.Pix); i+=4 {
			for c:=0; c<3; c++ {
				v := int32(out.Pix[i+c]) + int32(p.Pix[i+c])
				if v > 255 { v = 255 }
				out.Pix[i+c] = uint8(v)
			}
		}
	}
	return out
}

// ComposeLandini is the direct subtractive method (G. Landini): sum the
// channels' R/G/B planes independently, then
//   R = 255 - Gsum - Bsum, G = 255 - Rsum - Bsum, B = 255 - Rsum - Gsum
// clipped to [0,255]. No channels means solid white.
func ComposeLandini(planes []*image.RGBA, bounds image.Rectangle, tolerance int) *image.RGBA {
	if len(planes) == 0 {
		return solidWhite(bounds)
	}

	out := image.NewRGBA(bounds)
	n := bounds.Dx() * bounds.Dy()

	for i:=0; i<n; i++ {
		var rSum, gSum, bSum float64
		for _, p := range planes {
			rSum += float64(p.Pix[i*4+0])
			gSum += float64(p.Pix[i*4+1])
			bSum += float64(p.Pix[i*4+2])
		}
		out.Pix[i*4+0] = clip255(255 - gSum - bSum)
		out.Pix[i*4+1] = clip255(255 - rSum - bSum)
		out.Pix[i*4+2] = clip255(255 - rSum - gSum)
		out.Pix[i*4+3] = 0xff
	}
	return out
}

// ComposeInvertHSL builds the additive composite, then flips L in
// hue/saturation/lightness space, leaving hue and saturation alone.
func ComposeInvertHSL(planes []*image.RGBA, bounds image.Rectangle, tolerance int) *image.RGBA {
	return invertComposite(planes, bounds, func(r, g, b float64) (float64, float64, float64) {
		h, s, l := colorful.Color{R: r, G: g, B: b}.Hsl()
		out := colorful.Hsl(h, s, 1.0-l).Clamped()
		return out.R, out.G, out.B
	})
}

// ComposeInvertYIQ flips the luma channel in YIQ space.
func ComposeInvertYIQ(planes []*image.RGBA, bounds image.Rectangle, tolerance int) *image.RGBA {
	return invertComposite(planes, bounds, func(r, g, b float64) (float64, float64, float64) {
		y, i, q := RGBToYIQ(r, g, b)
		return YIQToRGB(1.0-y, i, q)
	})
}

// ComposeInvertLab flips L* in CIELab. go-colorful scales L* to [0,1],
// so 1-L here is 100-L* in the usual units.
func ComposeInvertLab(planes []*image.RGBA, bounds image.Rectangle, tolerance int) *image.RGBA {
	return invertComposite(planes, bounds, func(r, g, b float64) (float64, float64, float64) {
		l, a, bb := colorful.Color{R: r, G: g, B: b}.Lab()
		out := colorful.Lab(1.0-l, a, bb).Clamped()
		return out.R, out.G, out.B
	})
}

// ComposeReplaceGray builds the additive composite, then 255-complements
// only the achromatic pixels - those whose R/G/B spread (population
// std-dev) is at or below the tolerance. Colored pixels pass through
// untouched.
func ComposeReplaceGray(planes []*image.RGBA, bounds image.Rectangle, tolerance int) *image.RGBA {
	comp := ComposeAdditive(planes, bounds, tolerance)
	if allZero(comp) {
		return solidWhite(bounds)
	}

	tol := float64(tolerance)
	for i:=0; i<len(comp.Pix); i+=4 {
		r := float64(comp.Pix[i+0])
		g := float64(comp.Pix[i+1])
		b := float64(comp.Pix[i+2])

		mean := (r + g + b) / 3.0
		std := math.Sqrt(((r-mean)*(r-mean) + (g-mean)*(g-mean) + (b-mean)*(b-mean)) / 3.0)

		if std <= tol {
			comp.Pix[i+0] = 255 - comp.Pix[i+0]
			comp.Pix[i+1] = 255 - comp.Pix[i+1]
			comp.Pix[i+2] = 255 - comp.Pix[i+2]
		}
	}
	return comp
}

// invertComposite is the shared shape of the three color-space
// inversion methods: additive intermediate, all-zero short-circuits to
// white, otherwise a pure per-pixel map in unit-float RGB.
func invertComposite(planes []*image.RGBA, bounds image.Rectangle, invert func(r, g, b float64) (float64, float64, float64)) *image.RGBA {
	comp := ComposeAdditive(planes, bounds, 0)
	if allZero(comp) {
		return solidWhite(bounds)
	}

	for i:=0; i<len(comp.Pix); i+=4 {
		r, g, b := invert(
			float64(comp.Pix[i+0])/255.0,
			float64(comp.Pix[i+1])/255.0,
			float64(comp.Pix[i+2])/255.0,
		)
		comp.Pix[i+0] = uint8(clampUnit(r)*255.0 + 0.5)
		comp.Pix[i+1] = uint8(clampUnit(g)*255.0 + 0.5)
		comp.Pix[i+2] = uint8(clampUnit(b)*255.0 + 0.5)
	}
	return comp
}

func solidWhite(bounds image.Rectangle) *image.RGBA {
	out := image.NewRGBA(bounds)
	for i:=0; i<len(out.Pix); i++ { out.Pix[i] = 0xff }
	return out
}

func allZero(img *image.RGBA) bool {
	for i:=0; i<len(img.Pix); i+=4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			return false
		}
	}
	return true
}

func clip255(v float64) uint8 {
	if v < 0   { return 0 }
	if v > 255 { return 255 }
	return uint8(v)
}
