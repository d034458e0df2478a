package theme

import (
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	goldenRatioConjugate = 0.618033988749895
	saturationReduction  = 0.70
)

// HSV is a color with hue, saturation, and value in [0, 1].
type HSV [3]float64

// RGB is a color with components in [0, 255].
type RGB [3]float64

// HSVToRGB converts a HSV color to RGB.
// The hue wraps around at 1.
func HSVToRGB(hsv HSV) RGB {
	h := hsv[0] - math.Floor(hsv[0])
	c := colorful.Hsv(h*360, hsv[1], hsv[2])
	return RGB{c.R * 255, c.G * 255, c.B * 255}
}

// RandomHSVColor returns the i-th color of a sequence
// of well distinguishable hues using the golden ratio.
// The value is randomized slightly, rnd may be nil
// to use the global random source.
func RandomHSVColor(i int, rnd *rand.Rand) HSV {
	random := rand.Float64
	if rnd != nil {
		random = rnd.Float64
	}
	hue := math.Mod(float64(i)*goldenRatioConjugate, 1)
	return HSV{hue, 0.7, 0.7 + random()/10}
}

// RGBToHex formats a RGB color as lower case "#rrggbb"
// with the components rounded down.
func RGBToHex(rgb RGB) string {
	var b []byte
	b = append(b, '#')
	for _, component := range rgb {
		v := int(math.Floor(min(max(component, 0), 255)))
		if v < 16 {
			b = append(b, '0')
		}
		b = strconv.AppendInt(b, int64(v), 16)
	}
	return string(b)
}

// ReducedSaturationHex returns the hex color with the saturation
// reduced to 70% and the lightness to 95% as used for night mode.
func ReducedSaturationHex(hex string) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", err
	}
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s*saturationReduction, l*0.95).Clamped().Hex(), nil
}
