package cstack

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"
)

// Load pulls in config YAML and image data. A directory is one
// channel's Z-stack (every image file inside is one slice, in sorted
// order); a grayscale file is a single-plane channel; a color file is
// split into R/G/B channels so it flows through the normal per-channel
// pipeline.
func (s *Stack)Load(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			if err := s.LoadChannelDir(arg); err != nil {
				return fmt.Errorf("load %s: %v", arg, err)
			}

		default:
			if err := s.LoadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %v", arg, err)
			}
		}
	}

	return nil
}

func (s *Stack)LoadFile(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {

	case ".yaml", ".yml":
		cfg, err := LoadConfiguration(filename)
		if err != nil {
			return fmt.Errorf("loading %s as config YAML failed: %v", filename, err)
		}
		s.Configuration = cfg
		log.Printf("Loaded base configuration from %s\n", filename)

	case ".tif", ".tiff":
		img, err := decodeTIFF(filename)
		if err != nil {
			return fmt.Errorf("loading %s as TIFF failed: %v", filename, err)
		}
		if err := s.addImageAsChannels(img, filepath.Base(filename)); err != nil {
			return err
		}
		s.sniffPixelSize(filename)

	case ".png", ".jpg", ".jpeg":
		img, err := decodeStandard(filename)
		if err != nil {
			return fmt.Errorf("loading %s failed: %v", filename, err)
		}
		if err := s.addImageAsChannels(img, filepath.Base(filename)); err != nil {
			return err
		}
	}

	return nil
}

// LoadChannelDir treats every image file in dir as one Z slice of a
// single channel.
func (s *Stack)LoadChannelDir(dir string) error {
	contents, err := ioutil.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("readdir %s: %v", dir, err)
	}

	names := []string{}
	for _, content := range contents {
		ext := strings.ToLower(filepath.Ext(content.Name()))
		if ext == ".tif" || ext == ".tiff" || ext == ".png" || ext == ".jpg" || ext == ".jpeg" {
			names = append(names, content.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return fmt.Errorf("no image slices in %s", dir)
	}

	ch := ChannelStack{Name: filepath.Base(dir)}
	for _, name := range names {
		path := filepath.Join(dir, name)
		var img image.Image
		var err error
		if ext := strings.ToLower(filepath.Ext(name)); ext == ".tif" || ext == ".tiff" {
			img, err = decodeTIFF(path)
		} else {
			img, err = decodeStandard(path)
		}
		if err != nil {
			return fmt.Errorf("slice %s: %v", path, err)
		}
		ch.Planes = append(ch.Planes, s.grayPlaneOf(img))
	}

	if err := s.Add(ch); err != nil {
		return err
	}
	if ext := strings.ToLower(filepath.Ext(names[0])); ext == ".tif" || ext == ".tiff" {
		s.sniffPixelSize(filepath.Join(dir, names[0]))
	}

	s.deriveBitDepth()
	log.Printf("Loaded channel '%s': %d slice(s)\n", ch.Name, len(ch.Planes))
	return nil
}

func decodeTIFF(filename string) (image.Image, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	img, err := tiff.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("tiff loading '%s': %v", filename, err)
	}
	return img, nil
}

func decodeStandard(filename string) (image.Image, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decoding '%s': %v", filename, err)
	}
	return img, nil
}

// addImageAsChannels slots a decoded image into the stack: grayscale
// becomes one single-plane channel, color splits into three.
func (s *Stack)addImageAsChannels(img image.Image, name string) error {
	switch img.(type) {

	case *image.Gray, *image.Gray16:
		if err := s.Add(ChannelStack{Name: name, Planes: []Plane{s.grayPlaneOf(img)}}); err != nil {
			return err
		}

	default:
		r, g, b := s.splitRGB(img)
		for i, p := range []Plane{r, g, b} {
			ch := ChannelStack{
				Name:   fmt.Sprintf("%s[%c]", name, "RGB"[i]),
				Planes: []Plane{p},
			}
			if err := s.Add(ch); err != nil {
				return err
			}
		}
	}

	s.deriveBitDepth()
	return nil
}

// grayPlaneOf samples an image into a single intensity plane, noting
// the native sample width and observed maximum for bit-depth detection.
func (s *Stack)grayPlaneOf(img image.Image) Plane {
	b := img.Bounds()
	p := NewPlane(b.Dx(), b.Dy())

	switch im := img.(type) {

	case *image.Gray:
		s.native8 = true
		for y:=0; y<b.Dy(); y++ {
			for x:=0; x<b.Dx(); x++ {
				v := int(im.Pix[y*im.Stride + x])
				p.Set(x, y, float64(v))
				if v > s.obsMax { s.obsMax = v }
			}
		}

	case *image.Gray16:
		s.native16 = true
		for y:=0; y<b.Dy(); y++ {
			for x:=0; x<b.Dx(); x++ {
				o := y*im.Stride + 2*x
				v := int(uint16(im.Pix[o])<<8 | uint16(im.Pix[o+1]))
				p.Set(x, y, float64(v))
				if v > s.obsMax { s.obsMax = v }
			}
		}

	default:
		// A color slice in a Z-stack directory; take its luma.
		s.native8 = true
		for y:=0; y<b.Dy(); y++ {
			for x:=0; x<b.Dx(); x++ {
				v := int(color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y)
				p.Set(x, y, float64(v))
				if v > s.obsMax { s.obsMax = v }
			}
		}
	}

	return p
}

func (s *Stack)splitRGB(img image.Image) (Plane, Plane, Plane) {
	b := img.Bounds()
	rp := NewPlane(b.Dx(), b.Dy())
	gp := NewPlane(b.Dx(), b.Dy())
	bp := NewPlane(b.Dx(), b.Dy())

	_, is64 := img.(*image.RGBA64)
	_, isN64 := img.(*image.NRGBA64)
	wide := is64 || isN64
	if wide { s.native16 = true } else { s.native8 = true }

	for y:=0; y<b.Dy(); y++ {
		for x:=0; x<b.Dx(); x++ {
			r, g, bb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if ! wide {
				r, g, bb = r>>8, g>>8, bb>>8
			}
			rp.Set(x, y, float64(r))
			gp.Set(x, y, float64(g))
			bp.Set(x, y, float64(bb))
			if int(r) > s.obsMax { s.obsMax = int(r) }
			if int(g) > s.obsMax { s.obsMax = int(g) }
			if int(bb) > s.obsMax { s.obsMax = int(bb) }
		}
	}
	return rp, gp, bp
}

// deriveBitDepth settles the (bits, max) descriptor once per load: a
// pure 8-bit source is 8-bit, a pure 16-bit source is 16-bit, and a
// mixed or ambiguous one falls back to the smallest bracket that holds
// the observed maximum.
func (s *Stack)deriveBitDepth() {
	switch {
	case s.native8 && !s.native16:
		s.BitDepth = Depth8
	case s.native16 && !s.native8:
		s.BitDepth = Depth16
	default:
		s.BitDepth = BitDepthFromMax(s.obsMax)
	}
}

// sniffPixelSize pulls a um/px calibration from the TIFF resolution
// tags when they're present. Purely best-effort: microscopy exports
// often omit them, and the config value wins silence.
func (s *Stack)sniffPixelSize(filename string) {
	reader, err := os.Open(filename)
	if err != nil {
		return
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return
	}

	var num, denom int64
	if tag, err := ex.Get(exif.XResolution); err != nil {
		return
	} else if num, denom, err = tag.Rat2(0); err != nil || num == 0 {
		return
	}

	umPerUnit := 25400.0 // unit 2: pixels per inch
	if tag, err := ex.Get(exif.ResolutionUnit); err == nil {
		if unit, err := tag.Int64(0); err == nil && unit == 3 {
			umPerUnit = 10000.0 // pixels per cm
		}
	}

	pixelSize := umPerUnit * float64(denom) / float64(num)
	s.ScaleBar.PixelSizeUm = pixelSize
	log.Printf("Pixel size from %s resolution tags: %.4f um/px\n", filepath.Base(filename), pixelSize)
}

func LoadConfiguration(filename string) (Configuration, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return Configuration{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return NewConfigurationFromYaml(contents)
}
