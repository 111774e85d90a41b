package main

import (
	"os"

	"github.com/abhi11j/CodeCatalyst/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
