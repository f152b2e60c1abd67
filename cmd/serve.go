package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/treemap/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive treemap page over HTTP",
	Long: `Starts an HTTP server hosting the treemap page at / (select the dataset with
?data=kickstarter|movies|videogames), a standalone SVG, a JSON layout API, the
render history and a websocket feed of render state transitions.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (default from config)")
	serveCmd.Flags().Bool("open", false, "open the page in a browser")
	serveCmd.Flags().Bool("allow-all", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Server.Port
	}
	allowAll, _ := cmd.Flags().GetBool("allow-all")
	open, _ := cmd.Flags().GetBool("open")

	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	database, store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	runner := newRunner("html", store)
	srv := server.New(server.Config{
		Port:     port,
		AllowAll: allowAll || cfg.Server.AllowAll,
		Dataset:  cfg.Dataset,
		Render:   opts,
	}, runner, store)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://localhost:%d/", port)
	fmt.Fprintf(os.Stderr, "treemap server v%s starting on port %d\n", Version, port)
	fmt.Fprintf(os.Stderr, "  Dataset: %s\n", cfg.Dataset)
	fmt.Fprintf(os.Stderr, "  History: %s\n", database.Path())
	fmt.Fprintf(os.Stderr, "  Page: %s\n", url)

	if open {
		server.OpenBrowser(url)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
