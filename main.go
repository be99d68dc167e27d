package main

import (
	"os"

	"github.com/axelenergy/homeflex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
