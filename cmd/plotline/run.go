package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/plotline-org/plotline/classify"
	"github.com/plotline-org/plotline/colstore"
	"github.com/plotline-org/plotline/pipeline"
)

// ============================================================================
// RUN COMMAND — One task through the pipeline
// ============================================================================

var (
	runTask   string
	runURL    string
	runFile   string
	runStore  bool
	runFormat string
	runOut    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one analysis task against a data source",
	Example: `  plotline run --task "How many rows have score over 90?" --file data.csv
  plotline run --task task.txt --url https://en.wikipedia.org/wiki/List_of_highest-grossing_films
  plotline run --task "Which high court disposed the most cases?" --store --format pretty`,
	RunE: runTaskCmd,
}

func init() {
	runCmd.Flags().StringVar(&runTask, "task", "", "task text, or a path to a file holding it (required)")
	runCmd.Flags().StringVar(&runURL, "url", "", "page URL to scrape a table from")
	runCmd.Flags().StringVar(&runFile, "file", "", "path to a delimited data file")
	runCmd.Flags().BoolVar(&runStore, "store", false, "query the columnar judgment store")
	runCmd.Flags().StringVar(&runFormat, "format", "json", "output format: json, pretty")
	runCmd.Flags().StringVar(&runOut, "out", "", "write output to file instead of stdout")
	_ = runCmd.MarkFlagRequired("task")

	rootCmd.AddCommand(runCmd)
}

func runTaskCmd(cmd *cobra.Command, _ []string) error {
	task := runTask
	// A task flag naming a readable file means the text lives there.
	if b, err := os.ReadFile(runTask); err == nil {
		task = string(b)
	}

	src, cleanup, err := buildSource()
	if err != nil {
		return err
	}
	defer cleanup()

	opts := []pipeline.Option{
		pipeline.WithChartBudget(cfg.ChartBudget),
		pipeline.WithFetchTimeout(time.Duration(cfg.FetchTimeoutSec) * time.Second),
		pipeline.WithTaskTimeout(time.Duration(cfg.TaskTimeoutSec) * time.Second),
	}
	if cfg.StorePathPattern != "" {
		opts = append(opts, pipeline.WithPathPattern(cfg.StorePathPattern))
	}
	if cfg.MaxTableRows > 0 {
		opts = append(opts, pipeline.WithMaxRows(cfg.MaxTableRows))
	}
	coord := pipeline.New(buildClassifier(), opts...)

	resp, err := coord.Run(context.Background(), task, src)
	if err != nil {
		return err
	}
	return writeResponse(resp)
}

// buildClassifier selects the delegated strategy when an API key is
// configured, the keyword strategy otherwise.
func buildClassifier() classify.Classifier {
	if cfg.GeminiAPIKey == "" {
		return classify.Keyword{}
	}
	gc := classify.DefaultGeminiConfig(cfg.GeminiAPIKey)
	if cfg.GeminiModel != "" {
		gc.Model = cfg.GeminiModel
	}
	if cfg.GeminiEndpoint != "" {
		gc.Endpoint = cfg.GeminiEndpoint
	}
	return classify.NewGemini(gc)
}

// buildSource maps the mutually exclusive source flags onto one Source.
func buildSource() (pipeline.Source, func(), error) {
	noop := func() {}

	set := 0
	for _, on := range []bool{runURL != "", runFile != "", runStore} {
		if on {
			set++
		}
	}
	if set > 1 {
		return pipeline.Source{}, noop, fmt.Errorf("pick at most one of --url, --file, --store")
	}

	switch {
	case runURL != "":
		return pipeline.HTMLSource(runURL), noop, nil

	case runFile != "":
		data, err := os.ReadFile(runFile)
		if err != nil {
			return pipeline.Source{}, noop, fmt.Errorf("read data file: %w", err)
		}
		return pipeline.DelimitedSource(data), noop, nil

	case runStore:
		opts := []colstore.Option{}
		if cfg.StoreDSN != "" {
			opts = append(opts, colstore.WithDSN(cfg.StoreDSN))
		}
		if cfg.StorePathPattern != "" {
			opts = append(opts, colstore.WithPathPattern(cfg.StorePathPattern))
		}
		store := colstore.New(opts...)
		return pipeline.QuerySource(store), func() { _ = store.Close() }, nil

	default:
		return pipeline.NoSource(), noop, nil
	}
}

func writeResponse(resp *pipeline.Response) error {
	var out []byte
	var err error
	if runFormat == "pretty" {
		out, err = json.MarshalIndent(resp, "", "  ")
	} else {
		out, err = json.Marshal(resp)
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	if runOut != "" {
		return os.WriteFile(runOut, append(out, '\n'), 0o644)
	}
	fmt.Println(string(out))
	return nil
}
