package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rspamd/kagome-go/logger"
	"github.com/rspamd/kagome-go/pipeline"
	"github.com/rspamd/kagome-go/tokenizer"
)

var (
	batchLogDir  string
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Tokenize stdin line by line across a worker pool",
	Long: `batch reads one sentence per line from stdin and tokenizes them
concurrently through a buffered ingest/tokenize pipeline, the way a host
mail filter would batch many messages across goroutines without sharing
a single lattice instance.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if batchLogDir != "" {
			if err := os.MkdirAll(batchLogDir, 0755); err != nil {
				return fmt.Errorf("batch: creating log dir: %w", err)
			}
			if err := logger.InitLogs(batchLogDir); err != nil {
				return fmt.Errorf("batch: clearing log dir: %w", err)
			}
		}

		d := loadDict()
		tk := tokenizer.New(d)
		p := pipeline.New(tk, parseMode(mode))

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		p.StartPool(ctx, batchWorkers)

		scanner := bufio.NewScanner(cmd.InOrStdin())
		pending := 0
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if _, err := p.Ingest(line); err != nil {
				continue
			}
			pending++
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("batch: reading stdin: %w", err)
		}

		for i := 0; i < pending; i++ {
			result := <-p.TokenizedChan
			if batchLogDir != "" {
				if err := logger.LogSession(batchLogDir, result.Sentence.ID, result.Sentence.Text, result.Tokens); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "batch: logging session %s: %v\n", result.Sentence.ID, err)
				}
				continue
			}
			surfaces := make([]string, len(result.Tokens))
			for j, t := range result.Tokens {
				surfaces[j] = string(t.Surface)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", result.Sentence.ID, strings.Join(surfaces, " "))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchLogDir, "log-dir", "", "write a JSON session record per sentence to this directory instead of printing surfaces")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 1, "number of concurrent tokenization workers")
}
