// Command interestcalc computes statutory interest from request files, lists
// the bundled and fetched rate history, and serves the calculator over HTTP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
