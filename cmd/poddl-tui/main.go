package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/poddl/internal/config"
	"github.com/handiism/poddl/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to settings file")
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
