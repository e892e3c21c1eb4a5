// Command codecanvas renders and explores code graphs on an infinite
// pan/zoom canvas.
package main

import (
	"os"

	"github.com/ha1tch/codecanvas/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
