package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardex/internal/app"
	"github.com/arcanaland/cardex/internal/logging"
	"github.com/arcanaland/cardex/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog as a web site",
	Long: `Serve starts an HTTP server with the list and detail views, a JSON search
endpoint (/api/search?q=) and card endpoint (/api/cards/{id}). Card pages are
linkable as /card?id=<id>; #card-<id> fragments are followed in the browser.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		limit, _ := cmd.Flags().GetInt("limit")
		a, err := newApp(ctx, logging.FormatJSON, app.Options{SearchLimit: limit})
		if err != nil {
			return err
		}
		defer syncLogger(a)

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = a.Config.Listen
		}
		assets, _ := cmd.Flags().GetString("assets")
		if assets == "" {
			assets = app.AssetsDir(a.Config, a.Store)
		}

		// Local images are served under /assets; remote bases are linked directly.
		renderer := a.Renderer
		if assets != "" {
			renderer = a.RendererFor("/assets")
		}
		srv, err := web.New(web.Config{Addr: addr, AssetsDir: assets}, a.Store, a.Index, renderer, a.Logger.Named("web"))
		if err != nil {
			return fmt.Errorf("creating web server: %w", err)
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "cardex listening on http://%s (%d cards)\n", addr, a.Store.Len())
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default from config)")
	serveCmd.Flags().String("assets", "", "Directory served under /assets/ for card images (default: the database directory)")
	serveCmd.Flags().Int("limit", 0, "Maximum search results per query (0 = no limit)")
}
