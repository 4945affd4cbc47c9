package cstack

import(
	"fmt"
	"log"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

rendering:
  outputfilename: out.png
  background: white
  whitemethod: landini
  graytolerance: 30
  projection: max

channels:
  - enabled: true
    lut: Green
    minintensity: 20
    maxintensity: 900
    median: true
    mediansize: 3
  - enabled: true
    lut: Magenta
    autocontrast: true
    tophat: true
    tophatradius: 15

scalebar:
  enabled: true
  lengthum: 10
  pixelsizeum: 0.1
  thickness: 5
  position: bottomright
  color: white
  showlabel: true
  fontsize: 12

*/

type RenderOptions struct {
	OutputFilename   string
	Background       string  // "black" (additive) or "white" (one of the inversion methods)
	WhiteMethod      string  // landini | hsl | yiq | lab | replace
	GrayTolerance    int     // replace-gray: std-dev at or below this counts as achromatic
	Projection       string  // max | avg | sum
	DumpProjectedHDR bool    // write each projected plane as Radiance RGBE, for inspection

	// Values we resolve in Finalize
	projector ProjectorFunc
	composer  ComposerFunc
}

// ChannelSettings is a frozen per-channel configuration value. The
// engine only ever sees these by value; whoever edits them owns the
// mutable copy.
type ChannelSettings struct {
	Enabled        bool
	LUT            string
	CustomRGB      [3]uint8  // only used when LUT is "Custom RGB"

	MinIntensity   int       // contrast bounds, in source bit-depth units
	MaxIntensity   int
	AutoContrast   bool      // derive the bounds from intensity percentiles instead
	Brightness     int       // -100..100, applied after the remap to [0,255]

	Median         bool      // salt-and-pepper noise reduction
	MedianSize     int       // odd kernel size
	TopHat         bool      // uneven illumination removal
	TopHatRadius   int       // disk structuring element radius
	GaussianBG     bool      // gaussian background estimate subtraction
	GaussianSigma  float64
	Threshold      bool      // zero everything below ThresholdLevel
	ThresholdLevel int
}

type Configuration struct {
	Rendering   RenderOptions
	Channels  []ChannelSettings
	ScaleBar    ScaleBarSpec
}

func NewConfiguration() Configuration {
	return Configuration{
		Rendering: RenderOptions{
			OutputFilename: "out.png",
			Background:     "white",
			WhiteMethod:    "landini",
			GrayTolerance:  30,
			Projection:     "max",
		},
		ScaleBar: NewScaleBarSpec(),
	}
}

// NewChannelSettings gives the same defaults the original controls
// start from: everything enabled, full contrast range, no filters.
func NewChannelSettings(bd BitDepth) ChannelSettings {
	threshold := 100
	if t := bd.MaxValue / 100; t < threshold { threshold = t }

	return ChannelSettings{
		Enabled:        true,
		LUT:            "Gray",
		CustomRGB:      [3]uint8{255, 255, 255},
		MinIntensity:   0,
		MaxIntensity:   bd.MaxValue,
		MedianSize:     3,
		TopHatRadius:   15,
		GaussianSigma:  5.0,
		ThresholdLevel: threshold,
	}
}

func NewConfigurationFromYaml(b []byte) (Configuration, error) {
	c := NewConfiguration()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, c.Finalize()
}

func (c Configuration)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Printf("can't marshal config yaml: %v\n", err)
		return ""
	}
	return string(b)
}

// Finalize resolves the strategy names into functions, so bad names
// surface as errors at config time rather than mid-pipeline.
func (c *Configuration)Finalize() error {
	if c.Rendering.Projection == "" { c.Rendering.Projection = "max" }

	proj, ok := Projectors[c.Rendering.Projection]
	if !ok {
		return fmt.Errorf("no projection strategy named '%s'", c.Rendering.Projection)
	}
	c.Rendering.projector = proj

	switch c.Rendering.Background {
	case "", "black":
		c.Rendering.Background = "black"
		c.Rendering.composer = ComposeAdditive

	case "white":
		if c.Rendering.WhiteMethod == "" { c.Rendering.WhiteMethod = "landini" }
		comp, ok := WhiteComposers[c.Rendering.WhiteMethod]
		if !ok {
			return fmt.Errorf("no white-background method named '%s'", c.Rendering.WhiteMethod)
		}
		c.Rendering.composer = comp

	default:
		return fmt.Errorf("no background mode named '%s'", c.Rendering.Background)
	}

	return nil
}

func (c Configuration)GetProjector() ProjectorFunc { return c.Rendering.projector }
func (c Configuration)GetComposer() ComposerFunc   { return c.Rendering.composer }

// ChannelFor returns the settings for channel i, falling back to
// defaults when the config names fewer channels than the image has.
func (c Configuration)ChannelFor(i int, bd BitDepth) ChannelSettings {
	if i < len(c.Channels) {
		return c.Channels[i].WithDefaults(bd)
	}
	return NewChannelSettings(bd)
}

// WithDefaults fills in the numeric fields a hand-written config is
// likely to omit. A YAML zero for the contrast ceiling means "full
// range", not a degenerate config.
func (cs ChannelSettings)WithDefaults(bd BitDepth) ChannelSettings {
	if cs.LUT == ""            { cs.LUT = "Gray" }
	if cs.CustomRGB == [3]uint8{} { cs.CustomRGB = [3]uint8{255, 255, 255} }
	if cs.MaxIntensity == 0    { cs.MaxIntensity = bd.MaxValue }
	if cs.MedianSize == 0      { cs.MedianSize = 3 }
	if cs.TopHatRadius == 0    { cs.TopHatRadius = 15 }
	if cs.GaussianSigma == 0   { cs.GaussianSigma = 5.0 }
	return cs
}
