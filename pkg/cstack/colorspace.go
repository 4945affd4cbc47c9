package cstack

// YIQ is the NTSC luma/chrominance space. go-colorful doesn't carry it,
// so these are the reference conversions with the standard FCC
// coefficients; the inversion methods rely on them being exact.
// All channel values are in [0,1].

func RGBToYIQ(r, g, b float64) (float64, float64, float64) {
	y := 0.30*r + 0.59*g + 0.11*b
	i := 0.74*(r-y) - 0.27*(b-y)
	q := 0.48*(r-y) + 0.41*(b-y)
	return y, i, q
}

func YIQToRGB(y, i, q float64) (float64, float64, float64) {
	r := y + 0.9468822170900693*i + 0.6235565819861433*q
	g := y - 0.27478764629897834*i - 0.6356910791873801*q
	b := y - 1.1085450346420322*i + 1.7090069284064666*q
	return clampUnit(r), clampUnit(g), clampUnit(b)
}

func clampUnit(v float64) float64 {
	if v < 0 { return 0 }
	if v > 1 { return 1 }
	return v
}
