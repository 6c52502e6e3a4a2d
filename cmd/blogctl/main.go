package main

import (
	"os"

	"github.com/eniola256/Blog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
