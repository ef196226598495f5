package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/arcanaland/cardex/internal/app"
	"github.com/arcanaland/cardex/internal/router"
	"github.com/arcanaland/cardex/internal/theme"
)

// Browser is the interactive terminal front-end. It translates input lines
// into router transitions and repaints after each one.
type Browser struct {
	app    *app.App
	screen *Screen
	in     io.Reader
}

// NewBrowser wires a browser to the application's router.
func NewBrowser(a *app.App, screen *Screen, in io.Reader) *Browser {
	b := &Browser{app: a, screen: screen, in: in}
	a.Router.Subscribe(func(st router.State) {
		b.screen.Draw(st, a.Theme.Indicator())
	})
	return b
}

// Run reads commands until EOF, ":q" or ctx is cancelled. start is the
// initial location, resolved like any other fragment change. Input is read
// on its own goroutine so cancellation is not held up by a blocked reader.
func (b *Browser) Run(ctx context.Context, start string) error {
	b.printHelp()
	b.app.Router.Navigate(start)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(b.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(b.screen.Out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(b.screen.Out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(b.screen.Out)
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if quit := b.Handle(line); quit {
				return nil
			}
		}
	}
}

// Handle applies one line of input. It reports whether the user asked to quit.
func (b *Browser) Handle(line string) bool {
	r := b.app.Router
	cmd := strings.TrimSpace(line)

	switch {
	case cmd == ":q" || cmd == ":quit":
		return true
	case cmd == ":back" || cmd == ":b":
		r.Back()
	case cmd == ":theme":
		b.toggleTheme()
	case cmd == ":help" || cmd == "?":
		b.printHelp()
	case cmd == "":
		r.Confirm()
	case cmd == "n" || cmd == ":next":
		r.Highlight(1)
	case cmd == "p" || cmd == ":prev":
		r.Highlight(-1)
	case strings.HasPrefix(cmd, "#"), strings.HasPrefix(cmd, "?id="):
		r.Navigate(cmd)
	default:
		if n, err := strconv.Atoi(cmd); err == nil {
			st := r.State()
			if st.Results.Visible && n >= 1 && n <= len(st.Results.Cards) {
				r.Select(st.Results.Cards[n-1].ID)
				return false
			}
		}
		r.Search(line)
	}
	return false
}

func (b *Browser) toggleTheme() {
	dark, err := b.app.Theme.Toggle()
	if err != nil {
		b.app.Logger.Warn("theme preference not saved", zap.Error(err))
	}
	b.screen.Palette = theme.PaletteFor(dark)
	b.screen.Draw(b.app.Router.State(), b.app.Theme.Indicator())
}

func (b *Browser) printHelp() {
	p := b.screen.Palette
	fmt.Fprintln(b.screen.Out, p.Heading.Sprint("cardex browser"))
	fmt.Fprintln(b.screen.Out, p.Dim.Sprint("type to search · number to open · n/p + enter to pick · #card-<id> to jump · :back · :theme · :q"))
	if b.app.Store.Fallback() {
		fmt.Fprintln(b.screen.Out, p.Warn.Sprint("card database unavailable, showing sample cards"))
	}
}
