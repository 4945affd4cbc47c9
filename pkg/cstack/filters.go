package cstack

import(
	"math"
	"sort"
)

// The background-removal filters. They all read through a reflected
// border (see reflectIdx) and return fresh planes, leaving the input
// untouched.

// medianFilter replaces each value with the median of a size x size
// window. size must be odd.
func medianFilter(p Plane, size int) Plane {
	w, h := p.Dx(), p.Dy()
	r := size / 2
	out := NewPlane(w, h)
	window := make([]float64, 0, size*size)

	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			window = window[:0]
			for dy:=-r; dy<=r; dy++ {
				for dx:=-r; dx<=r; dx++ {
					window = append(window, p.Get(reflectIdx(x+dx, w), reflectIdx(y+dy, h)))
				}
			}
			sort.Float64s(window)
			out.Set(x, y, window[len(window)/2])
		}
	}
	return out
}

// gaussianBlur is a separable gaussian with kernel radius 4σ, the
// background estimate for the subtraction step.
func gaussianBlur(p Plane, sigma float64) Plane {
	w, h := p.Dx(), p.Dy()
	radius := int(4.0*sigma + 0.5)
	if radius < 1 { radius = 1 }

	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i:=-radius; i<=radius; i++ {
		kernel[i+radius] = math.Exp(-float64(i*i) / (2.0 * sigma * sigma))
		sum += kernel[i+radius]
	}
	for i:=0; i<len(kernel); i++ { kernel[i] /= sum }

	// X pass into T, then Y pass into the output
	T := NewPlane(w, h)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			acc := 0.0
			for i:=-radius; i<=radius; i++ {
				acc += kernel[i+radius] * p.Get(reflectIdx(x+i, w), y)
			}
			T.Set(x, y, acc)
		}
	}

	out := NewPlane(w, h)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			acc := 0.0
			for i:=-radius; i<=radius; i++ {
				acc += kernel[i+radius] * T.Get(x, reflectIdx(y+i, h))
			}
			out.Set(x, y, acc)
		}
	}
	return out
}

// diskOffsets is the circular structuring element for the top-hat
// filter: every (dx,dy) with dx²+dy² <= radius².
func diskOffsets(radius int) [][2]int {
	offsets := [][2]int{}
	for dy:=-radius; dy<=radius; dy++ {
		for dx:=-radius; dx<=radius; dx++ {
			if dx*dx + dy*dy <= radius*radius {
				offsets = append(offsets, [2]int{dx, dy})
			}
		}
	}
	return offsets
}

func grayErode(p Plane, offsets [][2]int) Plane {
	w, h := p.Dx(), p.Dy()
	out := NewPlane(w, h)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			min := math.MaxFloat64
			for _, off := range offsets {
				if v := p.Get(reflectIdx(x+off[0], w), reflectIdx(y+off[1], h)); v < min {
					min = v
				}
			}
			out.Set(x, y, min)
		}
	}
	return out
}

func grayDilate(p Plane, offsets [][2]int) Plane {
	w, h := p.Dx(), p.Dy()
	out := NewPlane(w, h)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			max := -math.MaxFloat64
			for _, off := range offsets {
				if v := p.Get(reflectIdx(x+off[0], w), reflectIdx(y+off[1], h)); v > max {
					max = v
				}
			}
			out.Set(x, y, max)
		}
	}
	return out
}

// grayOpening (erosion then dilation) estimates the smoothly varying
// illumination; subtracting it is the top-hat.
func grayOpening(p Plane, offsets [][2]int) Plane {
	return grayDilate(grayErode(p, offsets), offsets)
}
