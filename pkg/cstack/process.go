package cstack

import(
	"image"
)

// ProcessChannel turns one projected plane into an 8-bit intensity
// plane, applying the channel's background removal, contrast remap and
// brightness shift. The steps run in a fixed order - noise reduction
// before the structural filters, background estimates before the
// threshold, contrast before brightness - and the order is part of the
// contract, not an implementation detail.
func ProcessChannel(p Plane, cs ChannelSettings) *image.Gray {
	data := p.Copy()

	// 1. Median filter, so salt-and-pepper noise doesn't feed the
	// background estimators.
	if cs.Median {
		data = medianFilter(data, cs.MedianSize)
	}

	// 2. Top-hat: subtract the opening, keeping small bright structure
	// and dropping smoothly varying illumination.
	if cs.TopHat {
		opened := grayOpening(data, diskOffsets(cs.TopHatRadius))
		for i:=0; i<len(data.values); i++ {
			data.values[i] -= opened.values[i]
		}
		data.FloorAt(0)
	}

	// 3. Gaussian background subtraction, the poor man's rolling ball.
	if cs.GaussianBG {
		blurred := gaussianBlur(data, cs.GaussianSigma)
		for i:=0; i<len(data.values); i++ {
			data.values[i] -= blurred.values[i]
		}
		data.FloorAt(0)
	}

	// 4. Kill everything below the absolute noise floor.
	if cs.Threshold {
		level := float64(cs.ThresholdLevel)
		for i:=0; i<len(data.values); i++ {
			if data.values[i] < level { data.values[i] = 0 }
		}
	}

	// 5. Contrast remap into display range. min >= max is a degenerate
	// config and yields a blank channel, by documented policy.
	min := float64(cs.MinIntensity)
	max := float64(cs.MaxIntensity)
	if cs.AutoContrast {
		min, max = AutoContrastBounds(data)
	}

	w, h := data.Dx(), data.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	if max <= min {
		return out // all zero
	}

	// 6. Remap then shift brightness, clipping to [0,255] at each step.
	brightness := float64(cs.Brightness)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			v := data.Get(x, y)
			if v < min { v = min }
			if v > max { v = max }
			v = (v - min) / (max - min) * 255.0

			v += brightness
			if v < 0   { v = 0 }
			if v > 255 { v = 255 }

			out.Pix[y*out.Stride+x] = uint8(v)
		}
	}

	return out
}
