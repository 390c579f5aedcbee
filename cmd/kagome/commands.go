package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rspamd/kagome-go/config"
	"github.com/rspamd/kagome-go/dict"
	"github.com/rspamd/kagome-go/tokenizer"
)

var (
	dictPath string
	mode     string

	rootCmd = &cobra.Command{
		Use:   "kagome",
		Short: "A Japanese morphological analyzer CLI",
		Long: `kagome tokenizes Japanese text using a double-array trie
dictionary and a Viterbi shortest-path lattice search.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dictPath, "dict", "", "path to a dictionary bundle (defaults to the standard search path)")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "normal", "tokenization mode: normal, search, or extended")

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(wakatiCmd)
	rootCmd.AddCommand(detectLangCmd)
	rootCmd.AddCommand(batchCmd)
}

// loadDict resolves --dict, falling back to config.ResolveDictPath and
// finally to the fallback dictionary, matching the init behavior
// described for capi.kagome_init.
func loadDict() *dict.Dict {
	path := dictPath
	if path == "" {
		if resolved, ok := config.ResolveDictPath(); ok {
			path = resolved
		}
	}
	if path != "" {
		if d, err := dict.LoadBundleFile(path); err == nil {
			return d
		} else {
			fmt.Fprintf(os.Stderr, "kagome: failed to load %s: %v; using fallback dictionary\n", path, err)
		}
	}
	return dict.NewFallbackDict()
}

func parseMode(s string) tokenizer.Mode {
	switch s {
	case "search":
		return tokenizer.Search
	case "extended":
		return tokenizer.Extended
	default:
		return tokenizer.Normal
	}
}
