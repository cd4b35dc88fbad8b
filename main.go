package main

import (
	"os"

	"github.com/parkwise/parkwise/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
