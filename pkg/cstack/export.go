package cstack

import(
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"golang.org/x/image/tiff"
)

// Export writes the last rendered composite, picking the codec from
// the filename extension. PNG and TIFF are lossless; JPEG goes out at
// quality 95.
func (s *Stack)Export(filename string) error {
	if s.CompositeRGB == nil {
		return fmt.Errorf("nothing rendered yet")
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return WritePNG(s.CompositeRGB, filename)
	case ".tif", ".tiff":
		return WriteTIFF(s.CompositeRGB, filename)
	case ".jpg", ".jpeg":
		return WriteJPEG(s.CompositeRGB, filename)
	default:
		return fmt.Errorf("no encoder for '%s'", filename)
	}
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

func WriteTIFF(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
}

func WriteJPEG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: 95})
	}
}

// planeHDR wraps a projected plane as a grayscale hdr.Image, so planes
// that exceed the display range (sum projections especially) can be
// dumped losslessly for inspection in HDR tooling.
type planeHDR struct {
	plane Plane
	scale float64 // the value that maps to 1.0
}

func (ph planeHDR)ColorModel() color.Model { return hdrcolor.RGBModel }
func (ph planeHDR)Bounds() image.Rectangle { return image.Rect(0, 0, ph.plane.Dx(), ph.plane.Dy()) }
func (ph planeHDR)At(x, y int) color.Color { return ph.HDRAt(x, y) }
func (ph planeHDR)Size() int               { return ph.plane.Dx() * ph.plane.Dy() }

func (ph planeHDR)HDRAt(x, y int) hdrcolor.Color {
	v := ph.plane.Get(x, y) / ph.scale
	return hdrcolor.RGB{R: v, G: v, B: v}
}

// WritePlaneHDR dumps one plane as Radiance RGBE, normalized so the
// channel's nominal max value lands at 1.0.
func WritePlaneHDR(p Plane, maxValue float64, filename string) error {
	var img hdr.Image = planeHDR{plane: p, scale: maxValue}

	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return rgbe.Encode(writer, img)
	}
}
