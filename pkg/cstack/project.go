package cstack

import(
	"gonum.org/v1/gonum/floats"
)

// A ProjectorFunc flattens one channel's Z-stack into a single plane.
// Callers guarantee at least one plane; all planes share dimensions.
type ProjectorFunc func(planes []Plane) Plane

// Add new projection policies here, not at the call sites.
var Projectors = map[string]ProjectorFunc{
	"max": ProjectMaximum,
	"avg": ProjectAverage,
	"sum": ProjectSum,
}

// ProjectMaximum is the classic maximum-intensity projection: the
// brightest sample along Z wins, per pixel.
func ProjectMaximum(planes []Plane) Plane {
	out := planes[0].Copy()
	for i:=1; i<len(planes); i++ {
		for j:=0; j<len(out.values); j++ {
			if v := planes[i].values[j]; v > out.values[j] {
				out.values[j] = v
			}
		}
	}
	return out
}

func ProjectAverage(planes []Plane) Plane {
	out := ProjectSum(planes)
	floats.Scale(1.0/float64(len(planes)), out.values)
	return out
}

// ProjectSum can exceed the nominal bit-depth range; the stack clamps
// the result to the channel's max value right after projection.
func ProjectSum(planes []Plane) Plane {
	out := planes[0].Copy()
	for i:=1; i<len(planes); i++ {
		floats.Add(out.values, planes[i].values)
	}
	return out
}
