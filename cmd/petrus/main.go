package main

import (
	"os"

	"github.com/jask/petrus/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
