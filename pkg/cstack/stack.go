package cstack

import(
	"fmt"
	"image"
	"log"
)

// A ChannelStack is one channel's Z-stack of intensity planes, in
// acquisition order.
type ChannelStack struct {
	Name     string
	Planes []Plane
}

func (cs ChannelStack)String() string {
	return fmt.Sprintf("%s: %d plane(s) %dx%d", cs.Name, len(cs.Planes), cs.Planes[0].Dx(), cs.Planes[0].Dy())
}

// A Stack holds the loaded channels and drives the pipeline:
// Project (Z-stacks -> planes), then Render (planes -> processed ->
// pseudo-colored -> composite -> scale bar). The stack owns each
// intermediate and replaces it wholesale on recompute; nothing is
// cached across runs.
type Stack struct {
	Channels []ChannelStack
	Configuration
	BitDepth   BitDepth

	Projected    []Plane      // one plane per channel, refreshed by Project
	CompositeRGB *image.RGBA  // the last rendered composite, kept for export

	// Bit depth bookkeeping from the loader
	obsMax        int
	native8       bool
	native16      bool
}

func NewStack() Stack {
	return Stack{
		Channels:      []ChannelStack{},
		Configuration: NewConfiguration(),
		BitDepth:      Depth8,
	}
}

func (s Stack)String() string {
	str := fmt.Sprintf("Stack[%s\n", s.BitDepth)
	for _, ch := range s.Channels {
		str += fmt.Sprintf("  %s\n", ch)
	}
	return str + "]"
}

// Add appends one channel, enforcing the shape invariant: every
// channel of a loaded image shares Y,X dimensions, and Z >= 1.
func (s *Stack)Add(ch ChannelStack) error {
	if len(ch.Planes) == 0 {
		return fmt.Errorf("channel '%s' has no planes", ch.Name)
	}
	for i:=1; i<len(ch.Planes); i++ {
		if ! ch.Planes[0].SameSize(&ch.Planes[i]) {
			return fmt.Errorf("channel '%s' plane %d is %dx%d, want %dx%d",
				ch.Name, i, ch.Planes[i].Dx(), ch.Planes[i].Dy(), ch.Planes[0].Dx(), ch.Planes[0].Dy())
		}
	}
	if len(s.Channels) > 0 {
		p0 := &s.Channels[0].Planes[0]
		if ! p0.SameSize(&ch.Planes[0]) {
			return fmt.Errorf("channel '%s' is %dx%d, existing channels are %dx%d",
				ch.Name, ch.Planes[0].Dx(), ch.Planes[0].Dy(), p0.Dx(), p0.Dy())
		}
	}

	s.Channels = append(s.Channels, ch)
	return nil
}

// Project reduces every channel's Z-stack to a single plane using the
// configured policy, clamping to the nominal bit-depth maximum so a
// sum projection can't silently wrap downstream arithmetic.
func (s *Stack)Project() error {
	if len(s.Channels) == 0 {
		return fmt.Errorf("no channels loaded")
	}

	proj := s.GetProjector()
	if proj == nil {
		if err := s.Finalize(); err != nil { return err }
		proj = s.GetProjector()
	}

	s.Projected = make([]Plane, len(s.Channels))
	for i, ch := range s.Channels {
		p := proj(ch.Planes)
		p.CeilingAt(float64(s.BitDepth.MaxValue))
		s.Projected[i] = p

		if s.Rendering.DumpProjectedHDR {
			name := fmt.Sprintf("projected-%02d.hdr", i)
			if err := WritePlaneHDR(p, float64(s.BitDepth.MaxValue), name); err != nil {
				log.Printf("HDR dump '%s': %v\n", name, err)
			}
		}
	}

	log.Printf("Projected %d channel(s) using '%s'\n", len(s.Channels), s.Rendering.Projection)
	return nil
}

// Render runs the per-channel processing and LUT steps over the
// projected planes, composites them under the configured background
// mode, and overlays the scale bar. The result lands in CompositeRGB.
func (s *Stack)Render() error {
	if len(s.Projected) == 0 {
		if err := s.Project(); err != nil { return err }
	}

	composer := s.GetComposer()
	if composer == nil {
		if err := s.Finalize(); err != nil { return err }
		composer = s.GetComposer()
	}

	bounds := image.Rect(0, 0, s.Projected[0].Dx(), s.Projected[0].Dy())

	planes := []*image.RGBA{}
	for i := range s.Projected {
		cs := s.ChannelFor(i, s.BitDepth)
		if ! cs.Enabled {
			continue
		}

		intensity := ProcessChannel(s.Projected[i], cs)
		rgb, err := ApplyLUT(intensity, cs.LUT, cs.CustomRGB)
		if err != nil {
			return fmt.Errorf("channel %d: %v", i, err)
		}
		planes = append(planes, rgb)
	}

	out := composer(planes, bounds, s.Rendering.GrayTolerance)

	if s.ScaleBar.Enabled {
		out = AddScaleBar(out, s.ScaleBar)
	}

	s.CompositeRGB = out
	return nil
}
