package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-pdf/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the validators, the draft session and PDF generation.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	sess, err := a.session(ctx)
	if err != nil {
		a.Close()
		return err
	}

	port := a.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:       port,
		Session:    sess,
		Renderer:   a.renderer,
		Logger:     a.logger,
		OnShutdown: a.Close,
	})
	if err != nil {
		a.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
