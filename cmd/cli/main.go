package main

import (
	"os"

	"github.com/guesswho-dev/guesswho/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
