package cstack

import(
	"github.com/codahale/hdrhistogram"
)

// The percentile bracket ImageJ's auto-contrast uses: saturate 0.35% of
// pixels at each end.
const(
	autoContrastLoQ = 0.35
	autoContrastHiQ = 99.65
)

// AutoContrastBounds picks contrast bounds from the plane's intensity
// distribution, so a headless run doesn't need hand-tuned min/max
// sliders. Returns (0, observed max) when the distribution is too
// narrow to bracket.
func AutoContrastBounds(p Plane) (float64, float64) {
	max := p.Max()
	if max < 1 {
		return 0, 255
	}

	// The histogram can't track zero, so record intensity+1.
	h := hdrhistogram.New(1, int64(max)+1, 3)
	for i:=0; i<len(p.values); i++ {
		v := int64(p.values[i]) + 1
		if v < 1 { v = 1 }
		h.RecordValue(v)
	}

	lo := float64(h.ValueAtQuantile(autoContrastLoQ) - 1)
	hi := float64(h.ValueAtQuantile(autoContrastHiQ) - 1)
	if hi <= lo {
		return 0, max
	}
	return lo, hi
}
