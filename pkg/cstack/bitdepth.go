package cstack

import "fmt"

// BitDepth describes the numeric domain of the loaded samples. All
// channels of one image share a single BitDepth; it is derived once at
// load time and drives the contrast slider range and the sum-projection
// clamp.
type BitDepth struct {
	Bits     int
	MaxValue int
}

var(
	Depth8  = BitDepth{ 8,   255}
	Depth12 = BitDepth{12,  4095}
	Depth16 = BitDepth{16, 65535}
)

func (bd BitDepth)String() string { return fmt.Sprintf("%d-bit (max %d)", bd.Bits, bd.MaxValue) }

// BitDepthFromMax picks the smallest bracket that holds the observed
// maximum sample value. Used when the source pixel format is ambiguous
// (e.g. 12-bit data stored in 16-bit containers).
func BitDepthFromMax(max int) BitDepth {
	switch {
	case max <= 255:  return Depth8
	case max <= 4095: return Depth12
	default:          return Depth16
	}
}
