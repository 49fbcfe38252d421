// Command starward computes positions, rise/set times and phases of the Sun,
// Moon, planets and fixed targets, and shows a live sky dashboard.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
