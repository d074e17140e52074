// Package main is the entry point for the fluidbench application
package main

import (
	"os"

	"github.com/beshkenadze/FluidAudio/cmd"
)

func main() {
	if len(os.Args) == 1 {
		// No arguments - run interactive mode
		runInteractive()
		return
	}

	cmd.Execute()
}
