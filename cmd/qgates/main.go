// Command qgates builds reversible circuits and exports, draws, and
// simulates them.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
