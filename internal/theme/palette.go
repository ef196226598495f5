package theme

import "github.com/fatih/color"

// Palette is the set of colours adapters draw with.
type Palette struct {
	Name string

	// Hex colours for HTML and framed terminal panels.
	Background string
	Foreground string
	Accent     string
	Muted      string
	Border     string

	Label   *color.Color
	Value   *color.Color
	Heading *color.Color
	Dim     *color.Color
	Warn    *color.Color
}

// PaletteFor returns the dark or light palette.
func PaletteFor(dark bool) Palette {
	if dark {
		return Palette{
			Name:       "dark",
			Background: "#1e1e24",
			Foreground: "#e8e6e3",
			Accent:     "#f4a259",
			Muted:      "#9a9a9a",
			Border:     "#5b5b66",
			Label:      color.New(color.FgHiCyan),
			Value:      color.New(color.FgHiWhite),
			Heading:    color.New(color.FgHiYellow, color.Bold),
			Dim:        color.New(color.FgHiBlack),
			Warn:       color.New(color.FgHiRed),
		}
	}
	return Palette{
		Name:       "light",
		Background: "#fdfcf8",
		Foreground: "#2b2b2b",
		Accent:     "#b5522b",
		Muted:      "#6b6b6b",
		Border:     "#c9c4b8",
		Label:      color.New(color.FgCyan),
		Value:      color.New(color.FgBlack),
		Heading:    color.New(color.FgBlue, color.Bold),
		Dim:        color.New(color.FgHiBlack),
		Warn:       color.New(color.FgRed),
	}
}
