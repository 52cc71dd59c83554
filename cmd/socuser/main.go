// Package main is the entry point for the socuser CLI binary.
package main

import (
	"os"

	_ "github.com/mattn/go-sqlite3"

	cli "socuser/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
