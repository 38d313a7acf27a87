// main is the entrypoint for the secpulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/secpulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
