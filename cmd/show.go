package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardex/internal/app"
	"github.com/arcanaland/cardex/internal/config"
	"github.com/arcanaland/cardex/internal/logging"
	"github.com/arcanaland/cardex/internal/router"
	"github.com/arcanaland/cardex/internal/theme"
	"github.com/arcanaland/cardex/internal/tui"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id | #card-<id> | ?id=<id>]",
	Short: "Display a card with ANSI art",
	Long: `Show displays the details of a card: type, stats, description and
special rules, next to ANSI art generated from the card's image when the image
is a local file. A placeholder frame is drawn otherwise.

The card can be named by its ID or by a deep link.

Examples:
  cardex show goomba
  cardex show '#card-baseline-earth'
  cardex show --no-art '?id=goomba'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), logging.FormatConsole, app.Options{})
		if err != nil {
			return err
		}
		defer syncLogger(a)

		loc := args[0]
		if _, ok := router.ParseLocation(loc); !ok {
			loc = router.FragmentFor(loc)
		}
		st := a.Router.Navigate(loc)

		noArt, _ := cmd.Flags().GetBool("no-art")
		screen := &tui.Screen{
			Out:      cmd.OutOrStdout(),
			Palette:  theme.PaletteFor(a.Theme.Dark()),
			Width:    tui.TerminalWidth(),
			Art:      tui.ArtCache{Dir: filepath.Join(config.GetCacheDir(), "ansi_cache")},
			Renderer: a.Renderer,
			NoArt:    noArt,
		}

		if st.View != router.ViewDetail {
			screen.NotFound(st.NotFound)
			return fmt.Errorf("card not found: %s", st.NotFound)
		}
		screen.Detail(a.Renderer.Render(*st.Card))
		if a.Store.Fallback() {
			fmt.Fprintln(cmd.ErrOrStderr(), "note: card database unavailable, showing sample data")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("no-art", false, "Skip image conversion and draw the placeholder frame")
}
