package cstack

import "testing"

func TestAddRejectsBadShapes(t *testing.T) {
	s := NewStack()

	if err := s.Add(ChannelStack{Name: "empty"}); err == nil {
		t.Errorf("expected an error for a channel with no planes")
	}

	ragged := ChannelStack{
		Name:   "ragged",
		Planes: []Plane{NewPlane(4, 4), NewPlane(4, 5)},
	}
	if err := s.Add(ragged); err == nil {
		t.Errorf("expected an error for mismatched plane sizes within a channel")
	}

	if err := s.Add(ChannelStack{Name: "a", Planes: []Plane{NewPlane(4, 4)}}); err != nil {
		t.Fatalf("well-formed channel rejected: %v", err)
	}
	if err := s.Add(ChannelStack{Name: "b", Planes: []Plane{NewPlane(4, 4)}}); err != nil {
		t.Fatalf("matching second channel rejected: %v", err)
	}
	if err := s.Add(ChannelStack{Name: "c", Planes: []Plane{NewPlane(5, 4)}}); err == nil {
		t.Errorf("expected an error for a channel sized unlike the others")
	}
}

func TestProjectNoChannels(t *testing.T) {
	s := NewStack()
	if err := s.Project(); err == nil {
		t.Errorf("expected an error projecting an empty stack")
	}
}

// TestRenderAdditive runs the whole pipeline on a tiny two-channel
// stack: project, process, LUT, composite.
func TestRenderAdditive(t *testing.T) {
	red := NewPlane(4, 4)
	green := NewPlane(4, 4)
	red.Set(0, 0, 200)
	green.Set(0, 0, 200)
	green.Set(1, 0, 100)

	s := NewStack()
	s.BitDepth = Depth8
	s.Rendering.Background = "black"
	s.Channels = []ChannelStack{
		{Name: "r", Planes: []Plane{red}},
		{Name: "g", Planes: []Plane{green}},
	}
	s.Configuration.Channels = []ChannelSettings{
		{Enabled: true, LUT: "Red"},
		{Enabled: true, LUT: "Green"},
	}

	if err := s.Render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if s.CompositeRGB == nil {
		t.Fatal("no composite produced")
	}

	if r, g, b := getRGB(s.CompositeRGB, 0, 0); r != 200 || g != 200 || b != 0 {
		t.Errorf("overlap pixel = (%d,%d,%d), want (200,200,0)", r, g, b)
	}
	if r, g, b := getRGB(s.CompositeRGB, 1, 0); r != 0 || g != 100 || b != 0 {
		t.Errorf("green-only pixel = (%d,%d,%d), want (0,100,0)", r, g, b)
	}
	if r, g, b := getRGB(s.CompositeRGB, 3, 3); r != 0 || g != 0 || b != 0 {
		t.Errorf("empty pixel = (%d,%d,%d), want black", r, g, b)
	}
}

// TestRenderSkipsDisabledChannels: a disabled channel contributes
// nothing to the composite.
func TestRenderSkipsDisabledChannels(t *testing.T) {
	p := NewPlane(2, 2)
	p.Set(0, 0, 255)

	s := NewStack()
	s.Rendering.Background = "black"
	s.Channels = []ChannelStack{{Name: "off", Planes: []Plane{p}}}
	s.Configuration.Channels = []ChannelSettings{{Enabled: false, LUT: "Red"}}

	if err := s.Render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if r, g, b := getRGB(s.CompositeRGB, 0, 0); r != 0 || g != 0 || b != 0 {
		t.Errorf("disabled channel leaked (%d,%d,%d) into the composite", r, g, b)
	}
}

// TestRenderWhiteBackground: the same stack under the landini method
// gives a white background with the signal's color preserved.
func TestRenderWhiteBackground(t *testing.T) {
	p := NewPlane(2, 2)
	p.Set(0, 0, 255)

	s := NewStack()
	s.Rendering.Background = "white"
	s.Rendering.WhiteMethod = "landini"
	s.Channels = []ChannelStack{{Name: "r", Planes: []Plane{p}}}
	s.Configuration.Channels = []ChannelSettings{{Enabled: true, LUT: "Red"}}

	if err := s.Render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if r, g, b := getRGB(s.CompositeRGB, 1, 1); r != 255 || g != 255 || b != 255 {
		t.Errorf("background pixel = (%d,%d,%d), want white", r, g, b)
	}
	if r, g, b := getRGB(s.CompositeRGB, 0, 0); r != 255 || g != 0 || b != 0 {
		t.Errorf("signal pixel = (%d,%d,%d), want (255,0,0)", r, g, b)
	}
}

func TestRenderRejectsBadLUT(t *testing.T) {
	s := NewStack()
	s.Channels = []ChannelStack{{Name: "x", Planes: []Plane{NewPlane(2, 2)}}}
	s.Configuration.Channels = []ChannelSettings{{Enabled: true, LUT: "Chartreuse"}}

	if err := s.Render(); err == nil {
		t.Errorf("expected an error for an unknown LUT name")
	}
}
