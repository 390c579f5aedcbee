package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rspamd/kagome-go/tokenizer"
)

var tokenizeJSON bool

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [text]",
	Short: "Tokenize Japanese text and print each token's surface, POS, and reading",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := loadDict()
		tk := tokenizer.New(d)
		toks := tk.Analyze(args[0], parseMode(mode))

		if tokenizeJSON {
			snaps := make([]interface{}, len(toks))
			for i, t := range toks {
				snaps[i] = t.Snapshot()
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			_ = enc.Encode(snaps)
			return
		}

		for _, t := range toks {
			pos := strings.Join(t.POS(), ",")
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", t.Surface, pos, t.Reading())
		}
	},
}

func init() {
	tokenizeCmd.Flags().BoolVar(&tokenizeJSON, "json", false, "emit tokens as a JSON array instead of tab-separated text")
}
