package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/arcanaland/cardex/internal/render"
	"github.com/arcanaland/cardex/internal/router"
	"github.com/arcanaland/cardex/internal/search"
	"github.com/arcanaland/cardex/internal/theme"
)

const defaultWidth = 80

// Screen draws router states to a terminal.
type Screen struct {
	Out      io.Writer
	Palette  theme.Palette
	Width    int
	Art      ArtCache
	Renderer *render.Renderer
	// NoArt skips image conversion and always draws the placeholder.
	NoArt bool
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// Draw renders a full router state.
func (s *Screen) Draw(st router.State, indicator string) {
	fmt.Fprintln(s.Out, s.Palette.Dim.Sprintf("cardex %s  %s", indicator, st.Fragment))
	switch st.View {
	case router.ViewDetail:
		if st.Card != nil {
			s.Detail(s.Renderer.Render(*st.Card))
		}
		fmt.Fprintln(s.Out, s.Palette.Dim.Sprint(":back to return to the list"))
	default:
		if st.NotFound != "" {
			s.NotFound(st.NotFound)
		}
		s.Results(st.Results, st.Highlight)
	}
}

// Results prints the autocomplete list. Hidden results print nothing.
func (s *Screen) Results(res search.Result, highlight int) {
	if !res.Visible {
		return
	}
	if res.NoResults {
		fmt.Fprintln(s.Out, s.Palette.Warn.Sprint("No cards found"))
		return
	}
	for i, c := range res.Cards {
		marker := " "
		if i == highlight {
			marker = ">"
		}
		fmt.Fprintf(s.Out, "%s %2d. %s  %s\n", marker, i+1,
			s.Palette.Value.Sprint(c.DisplayName()),
			s.Palette.Dim.Sprint(c.Type))
	}
}

// NotFound prints the message for an unknown deep link.
func (s *Screen) NotFound(id string) {
	fmt.Fprintln(s.Out, s.Palette.Warn.Sprint(render.NotFoundMessage(id)))
	fmt.Fprintln(s.Out, s.Palette.Dim.Sprint("Search for a card or type :back to return to the list."))
}

// Detail prints a card with its art on the left and details on the right.
func (s *Screen) Detail(vm render.ViewModel) {
	art := placeholderArt()
	if !s.NoArt {
		if a, err := s.Art.Art(vm.Image); err == nil {
			art = a
		}
	}
	art = strings.TrimRight(art, "\n")

	width := s.Width
	if width <= 0 {
		width = defaultWidth
	}
	infoWidth := width - lipgloss.Width(art) - 6
	if infoWidth < 24 {
		infoWidth = 24
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(s.Palette.Border)).
		Padding(0, 1).
		Width(infoWidth).
		Render(s.info(vm))

	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, lipgloss.JoinHorizontal(lipgloss.Top, art, "  ", panel))
	fmt.Fprintln(s.Out)
}

func (s *Screen) info(vm render.ViewModel) string {
	p := s.Palette
	var lines []string
	lines = append(lines, p.Heading.Sprint(vm.Title))
	lines = append(lines, p.Label.Sprint("Type: ")+p.Value.Sprint(vm.TypeLabel))
	lines = append(lines, p.Label.Sprint("ID:   ")+p.Value.Sprint(vm.ID))

	if len(vm.Stats) > 0 {
		lines = append(lines, "")
		for _, st := range vm.Stats {
			lines = append(lines, p.Label.Sprintf("%-10s ", st.Label)+p.Value.Sprint(st.Value))
		}
	}

	lines = append(lines, "", p.Label.Sprint("Description:"))
	if vm.HasDescription {
		lines = append(lines, vm.Description)
	} else {
		lines = append(lines, p.Dim.Sprint(vm.Description))
	}

	if len(vm.Rules) > 0 {
		lines = append(lines, "", p.Label.Sprint("Special Rules:"))
		for _, rule := range vm.Rules {
			lines = append(lines, "• "+rule)
		}
	}
	return strings.Join(lines, "\n")
}
