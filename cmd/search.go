package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardex/internal/app"
	"github.com/arcanaland/cardex/internal/logging"
	"github.com/arcanaland/cardex/internal/theme"
	"github.com/arcanaland/cardex/internal/tui"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search cards by name, type or description",
	Long: `Search lists the cards whose name, type or description contains the query,
ignoring case, sorted by name. Use --ids to print only card IDs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), logging.FormatConsole, app.Options{})
		if err != nil {
			return err
		}
		defer syncLogger(a)

		res := a.Router.Search(strings.Join(args, " ")).Results

		if ids, _ := cmd.Flags().GetBool("ids"); ids {
			for _, c := range res.Cards {
				fmt.Fprintln(cmd.OutOrStdout(), c.ID)
			}
			return nil
		}

		screen := &tui.Screen{Out: cmd.OutOrStdout(), Palette: theme.PaletteFor(a.Theme.Dark())}
		if !res.Visible {
			fmt.Fprintln(cmd.OutOrStdout(), "Enter a search term.")
			return nil
		}
		screen.Results(res, -1)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(searchCmd)

	searchCmd.Flags().Bool("ids", false, "Print only matching card IDs")
}
