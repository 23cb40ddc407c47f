package utils

import "rhystmorgan/veDesk/internal/animation"

// ColourScheme is the Catppuccin Mocha subset the interface draws with.
type ColourScheme struct {
	Red      string
	Peach    string
	Yellow   string
	Green    string
	Sky      string
	Mauve    string
	Lavender string
	Text     string
	Subtext0 string
	Overlay0 string
	Surface1 string
	Surface0 string
	Base     string
}

var Colours = ColourScheme{
	Red:      "#f38ba8",
	Peach:    "#fab387",
	Yellow:   "#f9e2af",
	Green:    "#a6e3a1",
	Sky:      "#89dceb",
	Mauve:    "#cba6f7",
	Lavender: "#b4befe",
	Text:     "#cdd6f4",
	Subtext0: "#a6adc8",
	Overlay0: "#6c7086",
	Surface1: "#45475a",
	Surface0: "#313244",
	Base:     "#1e1e2e",
}

// Fade returns colour mixed into the background. alpha 1 leaves it as is,
// alpha 0 gives the background.
func (c ColourScheme) Fade(colour string, alpha float64) string {
	return animation.Blend(c.Base, colour, alpha)
}
