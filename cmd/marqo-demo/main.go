package main

import (
	"os"

	"github.com/vicilliar/marqo-overall-demo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
