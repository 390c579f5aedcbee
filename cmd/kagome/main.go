// Command kagome is a thin demonstration CLI over the tokenizer
// library, grounded on jinterlante1206-AleutianLocal's cmd/aleutian
// cobra tree: a package-level rootCmd plus one file per subcommand.
package main

import (
	"log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("kagome: %v", err)
	}
}
