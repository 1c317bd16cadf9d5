package cmd

import (
	"ytsummarizer/internal/api"
	"ytsummarizer/internal/app"
	"ytsummarizer/pkg/config"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the summarizer web server",
	Long: `Serve the summarizer page on / and the JSON API on POST /summarize
(also /api/summarize) until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	service, err := app.BuildService(ctx, cfg)
	if err != nil {
		return err
	}

	server := api.NewServer(app.NewPipeline(service), api.Options{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})
	return server.Start(ctx)
}
