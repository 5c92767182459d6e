package main

import (
	"os"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
