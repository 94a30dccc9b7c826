// Package main is the entry point for the plipbox frame classifier.
package main

import (
	"fmt"
	"os"

	"firestige.xyz/plipbox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
