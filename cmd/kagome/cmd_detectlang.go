package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rspamd/kagome-go/lang"
)

var detectLangCmd = &cobra.Command{
	Use:   "detect-lang [text]",
	Short: "Print the Japanese-script-density confidence score for text",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		score := lang.DetectLanguage([]byte(args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", score)
	},
}
