package main

import (
	"os"

	"github.com/jortega22/ytsub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
