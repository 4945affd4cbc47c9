package cstack

import(
	"fmt"
	"image"
)

// The named pseudo-color LUTs, as RGB weight triples. Applying a LUT is
// out = intensity * weight / 255 per output channel, so the named
// entries (weights 0 or 255) copy the intensity exactly and "Custom
// RGB" scales it. Add new LUTs here, not at the call sites.
var LUTWeights = map[string][3]uint8{
	"Gray":    {255, 255, 255},
	"Red":     {255,   0,   0},
	"Green":   {  0, 255,   0},
	"Blue":    {  0,   0, 255},
	"Cyan":    {  0, 255, 255},
	"Magenta": {255,   0, 255},
	"Yellow":  {255, 255,   0},
}

// ApplyLUT expands an 8-bit intensity plane into a pseudo-colored RGB
// plane. An unknown LUT name is a caller bug, reported as an error.
func ApplyLUT(intensity *image.Gray, lutName string, customRGB [3]uint8) (*image.RGBA, error) {
	weights, ok := LUTWeights[lutName]
	if lutName == "Custom RGB" {
		weights, ok = customRGB, true
	}
	if !ok {
		return nil, fmt.Errorf("no LUT named '%s'", lutName)
	}

	b := intensity.Bounds()
	out := image.NewRGBA(b)

	for y:=b.Min.Y; y<b.Max.Y; y++ {
		for x:=b.Min.X; x<b.Max.X; x++ {
			v := uint32(intensity.Pix[(y-b.Min.Y)*intensity.Stride + (x-b.Min.X)])
			i := out.PixOffset(x, y)
			out.Pix[i+0] = uint8(v * uint32(weights[0]) / 255)
			out.Pix[i+1] = uint8(v * uint32(weights[1]) / 255)
			out.Pix[i+2] = uint8(v * uint32(weights[2]) / 255)
			out.Pix[i+3] = 0xff
		}
	}

	return out, nil
}
