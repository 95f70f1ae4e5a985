package main

import (
	"os"

	"github.com/nav-io/libblsct-bindings/cmd/blsct/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
