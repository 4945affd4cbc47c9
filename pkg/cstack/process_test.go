package cstack

import "testing"

// TestProcessChannelIdentity: with no filters and full-range contrast,
// 8-bit values pass straight through.
func TestProcessChannelIdentity(t *testing.T) {
	p := NewPlane(3, 1)
	p.Set(0, 0, 0)
	p.Set(1, 0, 100)
	p.Set(2, 0, 255)

	cs := NewChannelSettings(Depth8)
	out := ProcessChannel(p, cs)

	for i, want := range []uint8{0, 100, 255} {
		if got := out.GrayAt(i, 0).Y; got != want {
			t.Errorf("pixel %d = %d, want %d", i, got, want)
		}
	}
}

// TestProcessChannelDegenerateBounds: min >= max yields an all-zero
// channel rather than a divide by zero.
func TestProcessChannelDegenerateBounds(t *testing.T) {
	p := uniformPlane(4, 4, 180)
	cs := NewChannelSettings(Depth8)
	cs.MinIntensity = 200
	cs.MaxIntensity = 100

	out := ProcessChannel(p, cs)
	for i:=0; i<len(out.Pix); i++ {
		if out.Pix[i] != 0 {
			t.Fatalf("degenerate contrast bounds produced nonzero pixel %d", out.Pix[i])
		}
	}
}

// TestProcessChannelContrastRemap: a 12-bit plane remaps into [0,255]
// with values at and beyond the bounds pinned.
func TestProcessChannelContrastRemap(t *testing.T) {
	p := NewPlane(4, 1)
	p.Set(0, 0, 50)    // below min
	p.Set(1, 0, 100)   // at min
	p.Set(2, 0, 1100)  // at max
	p.Set(3, 0, 4000)  // above max

	cs := NewChannelSettings(Depth12)
	cs.MinIntensity = 100
	cs.MaxIntensity = 1100
	cs.Threshold = false

	out := ProcessChannel(p, cs)

	for i, want := range []uint8{0, 0, 255, 255} {
		if got := out.GrayAt(i, 0).Y; got != want {
			t.Errorf("pixel %d = %d, want %d", i, got, want)
		}
	}
	// Midpoint: (600-100)/1000 * 255 = 127.5, truncated
	p.Set(0, 0, 600)
	out = ProcessChannel(p, cs)
	if got := out.GrayAt(0, 0).Y; got != 127 {
		t.Errorf("midpoint = %d, want 127", got)
	}
}

// TestProcessChannelBrightnessClips: the brightness shift happens after
// the remap, pinned to [0,255].
func TestProcessChannelBrightnessClips(t *testing.T) {
	p := NewPlane(2, 1)
	p.Set(0, 0, 250)
	p.Set(1, 0, 5)

	cs := NewChannelSettings(Depth8)
	cs.Brightness = 20
	out := ProcessChannel(p, cs)
	if got := out.GrayAt(0, 0).Y; got != 255 {
		t.Errorf("250 + 20 = %d, want clip to 255", got)
	}
	if got := out.GrayAt(1, 0).Y; got != 25 {
		t.Errorf("5 + 20 = %d, want 25", got)
	}

	cs.Brightness = -20
	out = ProcessChannel(p, cs)
	if got := out.GrayAt(1, 0).Y; got != 0 {
		t.Errorf("5 - 20 = %d, want clip to 0", got)
	}
}

// TestProcessChannelThreshold: values under the level go to zero,
// values at or over it survive intact.
func TestProcessChannelThreshold(t *testing.T) {
	p := NewPlane(3, 1)
	p.Set(0, 0, 40)
	p.Set(1, 0, 50)
	p.Set(2, 0, 60)

	cs := NewChannelSettings(Depth8)
	cs.Threshold = true
	cs.ThresholdLevel = 50

	out := ProcessChannel(p, cs)
	for i, want := range []uint8{0, 50, 60} {
		if got := out.GrayAt(i, 0).Y; got != want {
			t.Errorf("pixel %d = %d, want %d", i, got, want)
		}
	}
}

// TestMedianFilterRemovesSaltPixel: a lone hot pixel in a flat field
// vanishes under a 3x3 median.
func TestMedianFilterRemovesSaltPixel(t *testing.T) {
	p := uniformPlane(5, 5, 10)
	p.Set(2, 2, 255)

	out := medianFilter(p, 3)
	if got := out.Get(2, 2); got != 10 {
		t.Errorf("salt pixel survived the median: %f", got)
	}
	if got := out.Get(0, 0); got != 10 {
		t.Errorf("flat field corner changed to %f", got)
	}
}

// TestTopHatFlattensConstantPlane: the opening of a constant plane is
// the plane itself, so the top-hat residual is zero everywhere.
func TestTopHatFlattensConstantPlane(t *testing.T) {
	p := uniformPlane(8, 8, 100)

	cs := NewChannelSettings(Depth8)
	cs.TopHat = true
	cs.TopHatRadius = 2

	out := ProcessChannel(p, cs)
	for i:=0; i<len(out.Pix); i++ {
		if out.Pix[i] != 0 {
			t.Fatalf("top-hat left %d in a constant plane", out.Pix[i])
		}
	}
}

// TestGaussianBlurPreservesConstant: the kernel is normalized, so a
// flat plane blurs to itself (and the subtraction step zeroes it).
func TestGaussianBlurPreservesConstant(t *testing.T) {
	p := uniformPlane(6, 6, 100)
	out := gaussianBlur(p, 1.5)
	for y:=0; y<6; y++ {
		for x:=0; x<6; x++ {
			v := out.Get(x, y)
			if v < 100-1e-9 || v > 100+1e-9 {
				t.Fatalf("blurred constant plane drifted to %f at (%d,%d)", v, x, y)
			}
		}
	}
}

// TestReflectIdx pins the mirrored border indexing the filters share:
// d c b a | a b c d | d c b a for n=4.
func TestReflectIdx(t *testing.T) {
	cases := []struct{ in, n, want int }{
		{-1, 4, 0},
		{-2, 4, 1},
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 3},
		{5, 4, 2},
	}
	for _, c := range cases {
		if got := reflectIdx(c.in, c.n); got != c.want {
			t.Errorf("reflectIdx(%d, %d) = %d, want %d", c.in, c.n, got, c.want)
		}
	}
}

// TestAutoContrastUniformPlane: a flat plane has no percentile spread,
// so the bounds fall back to (0, observed max).
func TestAutoContrastUniformPlane(t *testing.T) {
	p := uniformPlane(10, 10, 100)
	lo, hi := AutoContrastBounds(p)
	if lo != 0 || hi != 100 {
		t.Errorf("uniform plane bounds = (%f,%f), want (0,100)", lo, hi)
	}
}

// TestAutoContrastGradient: a uniform 0..999 ramp should bracket out
// roughly the central 99.3% of the distribution.
func TestAutoContrastGradient(t *testing.T) {
	p := NewPlane(40, 25)
	for y:=0; y<25; y++ {
		for x:=0; x<40; x++ {
			p.Set(x, y, float64(y*40+x))
		}
	}

	lo, hi := AutoContrastBounds(p)
	if lo < 0 || lo > 50 {
		t.Errorf("low bound = %f, want a small value near the 0.35th percentile", lo)
	}
	if hi < 950 || hi > 999 {
		t.Errorf("high bound = %f, want a value near the 99.65th percentile", hi)
	}
	if hi <= lo {
		t.Errorf("bounds inverted: (%f,%f)", lo, hi)
	}
}
