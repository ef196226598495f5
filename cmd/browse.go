package cmd

import (
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardex/internal/app"
	"github.com/arcanaland/cardex/internal/config"
	"github.com/arcanaland/cardex/internal/logging"
	"github.com/arcanaland/cardex/internal/theme"
	"github.com/arcanaland/cardex/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [#card-<id>]",
	Short: "Browse the catalog interactively",
	Long: `Browse opens an interactive session. Type to search, enter a result number
to open a card, use n/p and enter to move through the results, type a
#card-<id> link to jump to a card, :back to return to the list, :theme to
toggle dark mode and :q to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		a, err := newApp(ctx, logging.FormatConsole, app.Options{})
		if err != nil {
			return err
		}
		defer syncLogger(a)

		noArt, _ := cmd.Flags().GetBool("no-art")
		screen := &tui.Screen{
			Out:      cmd.OutOrStdout(),
			Palette:  theme.PaletteFor(a.Theme.Dark()),
			Width:    tui.TerminalWidth(),
			Art:      tui.ArtCache{Dir: filepath.Join(config.GetCacheDir(), "ansi_cache")},
			Renderer: a.Renderer,
			NoArt:    noArt,
		}

		start := ""
		if len(args) == 1 {
			start = args[0]
		}
		return tui.NewBrowser(a, screen, cmd.InOrStdin()).Run(ctx, start)
	},
}

func init() {
	RootCmd.AddCommand(browseCmd)

	browseCmd.Flags().Bool("no-art", false, "Skip image conversion and draw placeholder frames")
}
