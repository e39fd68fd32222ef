package main

import (
	"os"

	"github.com/lugondev/go-launchpad/cmd/launchpad/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
