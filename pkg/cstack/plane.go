package cstack

import(
	"fmt"
	"math"
)

// A Plane is one 2D grid of intensity values for a single channel.
// Values are float64 so that projection and background subtraction can
// run without worrying about the source bit depth; the channel
// processor squeezes everything back into [0,255] at the very end.
type Plane struct {
	stride int
	values []float64
}

func NewPlane(w, h int) Plane {
	return Plane{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (p *Plane)Set(x, y int, v float64) { p.values[p.stride*y + x] = v }
func (p *Plane)Get(x, y int) float64    { return p.values[p.stride*y + x] }
func (p *Plane)Dx() int                 { return p.stride }
func (p *Plane)Dy() int                 { return len(p.values) / p.stride }

func (p *Plane)Copy() Plane {
	p2 := Plane{stride: p.stride, values: make([]float64, len(p.values))}
	copy(p2.values, p.values)
	return p2
}

// SameSize reports whether two planes share dimensions. Channels of one
// loaded image must all agree; the loader enforces this via SameSize.
func (p *Plane)SameSize(q *Plane) bool {
	return p.stride == q.stride && len(p.values) == len(q.values)
}

func (p *Plane)Max() float64 {
	max := 0.0
	for i:=0; i<len(p.values); i++ {
		if p.values[i] > max { max = p.values[i] }
	}
	return max
}

// FloorAt clamps every value to be >= floor. Background subtraction
// leaves negative values behind; they clamp to zero, never wrap.
func (p *Plane)FloorAt(floor float64) {
	for i:=0; i<len(p.values); i++ {
		if p.values[i] < floor { p.values[i] = floor }
	}
}

func (p *Plane)CeilingAt(ceil float64) {
	for i:=0; i<len(p.values); i++ {
		if p.values[i] > ceil { p.values[i] = ceil }
	}
}

func (p Plane)String() string {
	min, max := math.MaxFloat64, -math.MaxFloat64
	for i:=0; i<len(p.values); i++ {
		if p.values[i] > max { max = p.values[i] }
		if p.values[i] < min { min = p.values[i] }
	}
	return fmt.Sprintf("plane[%dx%d, vals{%.1f,%.1f}]", p.Dx(), p.Dy(), min, max)
}

// reflectIdx mirrors an out-of-range index back into [0,n), the same
// border mode the filters in the processing pipeline assume
// (d c b a | a b c d).
func reflectIdx(i, n int) int {
	if i < 0  { i = -i - 1 }
	if i >= n { i = 2*n - 1 - i }
	return i
}
