// Package main is the entry point for the docdb CLI.
package main

import (
	"docdb/cli/cmd"
)

func main() {
	cmd.Execute()
}
