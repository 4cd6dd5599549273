package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zain/bacteria-identifier/internal/identify"
	"github.com/zain/bacteria-identifier/internal/reference"
	"github.com/zain/bacteria-identifier/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for identification, the reference schema, and stored run history.`,
	RunE:  runServe,
}

var (
	servePort      int
	serveReference string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveReference, "reference", "r", "", "Path to reference table (.csv or .xlsx)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	referencePath := serveReference
	if referencePath == "" {
		referencePath = os.Getenv("REFERENCE_TABLE")
	}
	if referencePath == "" {
		return fmt.Errorf("a reference table is required (--reference flag or REFERENCE_TABLE environment variable)")
	}

	table, err := reference.LoadTable(referencePath)
	if err != nil {
		return fmt.Errorf("failed to load reference table: %w", err)
	}

	// The table is immutable from here on; one identifier serves all requests.
	identifier := identify.New(table, identify.Options{})

	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: os.Getenv("DATABASE_URL"), // optional run history
	}

	srv, err := server.New(cfg, table, identifier)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
