package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rspamd/kagome-go/tokenizer"
)

var wakatiCmd = &cobra.Command{
	Use:   "wakati [text]",
	Short: "Split Japanese text into space-separated surface forms",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := loadDict()
		tk := tokenizer.New(d)
		surfaces := tk.Wakati(args[0])
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(surfaces, " "))
	},
}
