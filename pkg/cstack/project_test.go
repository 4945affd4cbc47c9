package cstack

import "testing"

func uniformPlane(w, h int, v float64) Plane {
	p := NewPlane(w, h)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			p.Set(x, y, v)
		}
	}
	return p
}

// TestProjectors checks the three reduction policies on a 3-plane
// stack holding [10,20,30] at every pixel.
func TestProjectors(t *testing.T) {
	planes := []Plane{
		uniformPlane(4, 3, 10),
		uniformPlane(4, 3, 20),
		uniformPlane(4, 3, 30),
	}

	cases := []struct{
		name string
		want float64
	}{
		{"max", 30},
		{"avg", 20},
		{"sum", 60},
	}

	for _, c := range cases {
		proj, ok := Projectors[c.name]
		if !ok {
			t.Fatalf("no projector registered for %q", c.name)
		}
		out := proj(planes)
		if out.Dx() != 4 || out.Dy() != 3 {
			t.Errorf("%s: got %dx%d plane, want 4x3", c.name, out.Dx(), out.Dy())
		}
		for y:=0; y<3; y++ {
			for x:=0; x<4; x++ {
				if got := out.Get(x, y); got != c.want {
					t.Errorf("%s: pixel (%d,%d) = %f, want %f", c.name, x, y, got, c.want)
				}
			}
		}
	}
}

// TestProjectorsLeaveInputAlone makes sure projection doesn't mutate
// the source stack.
func TestProjectorsLeaveInputAlone(t *testing.T) {
	planes := []Plane{uniformPlane(2, 2, 5), uniformPlane(2, 2, 7)}
	ProjectSum(planes)
	if planes[0].Get(0, 0) != 5 || planes[1].Get(0, 0) != 7 {
		t.Errorf("projection mutated its input planes")
	}
}

// TestSumProjectionClampsToBitDepth verifies the stack clamps a sum
// projection to the nominal max value, so an 8-bit stack can't leak
// values above 255 into the processor.
func TestSumProjectionClampsToBitDepth(t *testing.T) {
	s := NewStack()
	s.BitDepth = Depth8
	s.Rendering.Projection = "sum"
	s.Channels = []ChannelStack{
		{Name: "ch0", Planes: []Plane{uniformPlane(2, 2, 200), uniformPlane(2, 2, 200)}},
	}

	if err := s.Project(); err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if got := s.Projected[0].Get(0, 0); got != 255 {
		t.Errorf("sum projection = %f, want clamp to 255", got)
	}
}

// TestProjectSinglePlane: a Z=1 stack projects to itself under every
// policy.
func TestProjectSinglePlane(t *testing.T) {
	planes := []Plane{uniformPlane(3, 3, 42)}
	for name, proj := range Projectors {
		out := proj(planes)
		if got := out.Get(1, 1); got != 42 {
			t.Errorf("%s on single plane = %f, want 42", name, got)
		}
	}
}
