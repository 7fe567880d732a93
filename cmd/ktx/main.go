// Command ktx validates KTX2 texture container files against the
// conformance rules in pkg/validator.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ktx",
	Short: "ktx inspects and validates KTX2 texture containers",
}

func main() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		if ec, ok := err.(*exitCodeError); ok {
			os.Exit(ec.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
