package components

import (
	"image/color"

	"github.com/pthm-cable/heronet/config"
)

// Palette is the fixed set of colors particles are drawn from.
type Palette []color.NRGBA

// PaletteFromConfig returns the configured particle palette.
func PaletteFromConfig(cfg *config.Config) Palette {
	p := make(Palette, len(cfg.Particles.Palette))
	for i, hex := range cfg.Particles.Palette {
		p[i] = config.MustHexColor(hex)
	}
	return p
}

// WithAlpha returns c with its alpha replaced by opacity in [0, 1].
// Values outside the range are clamped.
func WithAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(opacity*255 + 0.5)
	return c
}
