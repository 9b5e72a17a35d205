package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/telemetry"
	"github.com/Zachkp/portfolio/internal/visitors"
	"github.com/Zachkp/portfolio/internal/web"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Personal portfolio site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newContentCmd())
	root.AddCommand(newStatsCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var port, dbPath, contentPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(nil)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if contentPath != "" {
				cfg.ContentPath = contentPath
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	cmd.Flags().StringVar(&contentPath, "content", "", "site content YAML (overrides CONTENT_PATH)")
	return cmd
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	site, err := content.Load(cfg.ContentPath)
	if err != nil {
		return err
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Printf("Error flushing traces: %v", err)
		}
	}()

	var store *visitors.Store
	if cfg.TrackVisitors {
		store, err = visitors.Open(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		go func() {
			n, err := store.Cleanup(ctx)
			if err != nil {
				log.Printf("Error cleaning up old visitor data: %v", err)
				return
			}
			if n > 0 {
				log.Printf("Privacy cleanup: removed %d records older than 12 months", n)
			}
		}()
		log.Println("Privacy: visitor tracking enabled with hashed IP addresses")
	}

	srv, err := web.New(cfg, site, store)
	if err != nil {
		return err
	}
	// Runs before store.Close.
	defer srv.Wait()
	go srv.Views().Run(ctx, time.Minute)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", httpSrv.Addr)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(sctx)
}

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "content", Short: "Inspect site content"}
	cmd.AddCommand(&cobra.Command{
		Use:   "check [path]",
		Short: "Validate a content file (the embedded content when no path is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			site, err := content.Load(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ok: %d sections, %d projects, %d skill categories\n",
				len(site.Sections), len(site.Projects.Items), len(site.Skills.Categories))
			return nil
		},
	})
	return cmd
}

func newStatsCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print visitor statistics as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				cfg, err := config.Load(nil)
				if err != nil {
					return err
				}
				dbPath = cfg.DBPath
			}
			store, err := visitors.Open(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	return cmd
}
