package world

import (
	"image/color"

	"github.com/san-kum/gravwell/internal/physics"
)

type Palette struct {
	Background color.RGBA
	Horizon    color.RGBA
	Glow       color.RGBA
	DragLine   color.RGBA
	Head       color.RGBA
	Cyan       color.RGBA
	Purple     color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 10, G: 15, B: 28, A: 255},
		Horizon:    color.RGBA{A: 255},
		Glow:       color.RGBA{R: 100, G: 255, B: 218, A: 128},
		DragLine:   color.RGBA{R: 255, G: 255, B: 255, A: 128},
		Head:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Cyan:       color.RGBA{R: 0x64, G: 0xff, B: 0xda, A: 255},
		Purple:     color.RGBA{R: 0xbd, G: 0x34, B: 0xfe, A: 255},
	}
}

func (p Palette) Tint(t physics.Tint) color.RGBA {
	if t == physics.TintPurple {
		return p.Purple
	}
	return p.Cyan
}

const (
	glowWidth  = 2.0
	trailWidth = 0.5
	dashLength = 5.0
)
