// Package main implements the bacteria_agent CLI for reference-table based
// bacterial genus identification.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bacteria_agent",
	Short: "Bacteria Identification Assistant",
	Long:  "Bacteria Identification Assistant ranks candidate genera from a reference table against observed laboratory test results and explains the ranking.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
