package main

import (
	"os"

	"github.com/MikeBiancalana/qeydar/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
