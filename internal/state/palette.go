package state

import "image/color"

var palette = map[string]color.NRGBA{
	"black":  {A: 255},
	"red":    {R: 255, A: 255},
	"green":  {G: 128, A: 255},
	"blue":   {B: 255, A: 255},
	"yellow": {R: 255, G: 255, A: 255},
	"orange": {R: 255, G: 165, A: 255},
	"purple": {R: 128, B: 128, A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
}

// RGBA resolves a palette color name. Unknown names render black.
func RGBA(name string) color.NRGBA {
	if c, ok := palette[name]; ok {
		return c
	}
	return palette["black"]
}
