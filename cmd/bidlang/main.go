package main

import (
	"os"

	"github.com/solatis/bidlang/cmd/bidlang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
