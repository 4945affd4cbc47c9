package main

import(
	"flag"
	"log"

	"confocal-compositor/pkg/cstack"
)

var(
	fOutputFilename string
	fProjection     string
	fBackground     string
	fWhiteMethod    string
	fGrayTolerance  int
	fScaleBar       bool
	fDumpHDR        bool
)

func init() {
	flag.StringVar(&fOutputFilename, "o", "", "name of output image file (.png, .tif, .jpg)")
	flag.StringVar(&fProjection, "project", "", "z-projection policy: max, avg or sum")
	flag.StringVar(&fBackground, "bg", "", "background mode: black (additive) or white")
	flag.StringVar(&fWhiteMethod, "method", "", "white-background method: landini, hsl, yiq, lab or replace")
	flag.IntVar(&fGrayTolerance, "tolerance", -1, "gray detection tolerance for the replace method (0-100)")
	flag.BoolVar(&fScaleBar, "scalebar", false, "overlay the calibrated scale bar")
	flag.BoolVar(&fDumpHDR, "dumphdr", false, "dump each projected plane as Radiance RGBE")
	flag.Parse()

	log.Printf("Starting\n")
}

func main() {
	s := cstack.NewStack()
	if err := s.Load(flag.Args()...); err != nil {
		log.Fatal(err)
	}

	// Override the config file with command line args, if relevant
	if fOutputFilename != "" { s.Rendering.OutputFilename = fOutputFilename }
	if fProjection != ""     { s.Rendering.Projection = fProjection }
	if fBackground != ""     { s.Rendering.Background = fBackground }
	if fWhiteMethod != ""    { s.Rendering.WhiteMethod = fWhiteMethod }
	if fGrayTolerance >= 0   { s.Rendering.GrayTolerance = fGrayTolerance }
	if fScaleBar             { s.ScaleBar.Enabled = true }
	if fDumpHDR              { s.Rendering.DumpProjectedHDR = true }

	if err := s.Finalize(); err != nil {
		log.Fatalf("bad configuration: %v\n", err)
	}

	log.Printf("Channels loaded: %s", s)

	if err := s.Project(); err != nil {
		log.Fatalf("projection failed: %v\n", err)
	}
	if err := s.Render(); err != nil {
		log.Fatalf("render failed: %v\n", err)
	}

	if err := s.Export(s.Rendering.OutputFilename); err != nil {
		log.Fatalf("export failed: %v\n", err)
	}
	log.Printf("Composite written to '%s'\n", s.Rendering.OutputFilename)
}
