package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotline-org/plotline/config"
)

const version = "0.1.0"

var (
	cfgFile string
	cfg     *config.Global
)

var rootCmd = &cobra.Command{
	Use:     "plotline",
	Short:   "plotline answers data analysis tasks written in plain English",
	Version: version,
	Long: `plotline takes a free-text analysis task plus a data source — a web
page with a table, a delimited file, or a parquet-backed columnar store —
classifies what the task asks for, runs the statistics, and returns the
answers (optionally with a base64-encoded chart).`,
}

// Execute is the entry point called by main.
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.plotline/config.yaml)")
}

func loadConfig() {
	c, err := config.Load(cfgFile)
	if err != nil {
		// Non-fatal: defaults still let sourceless commands run.
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		c = &config.Global{}
	}
	cfg = c
}
